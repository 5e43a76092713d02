package core

import "context"

const (
	WordExit = "exit"
	WordHelp = "help"
)

// ExitCommand ends the session.
type ExitCommand struct{}

func (ExitCommand) Word() string { return WordExit }

func (ExitCommand) Execute(context.Context, *Env) (CommandResult, error) {
	return CommandResult{Feedback: "Exiting roster as requested ...", Exit: true}, nil
}

// HelpCommand carries the usage text assembled by the parser.
type HelpCommand struct {
	Usage string
}

func (HelpCommand) Word() string { return WordHelp }

func (c HelpCommand) Execute(context.Context, *Env) (CommandResult, error) {
	return CommandResult{Feedback: c.Usage, ShowHelp: true}, nil
}

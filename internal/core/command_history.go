package core

import "context"

const (
	WordUndo = "undo"
	WordRedo = "redo"
)

// UndoCommand reverts the most recent reversible command.
type UndoCommand struct{}

func (UndoCommand) Word() string { return WordUndo }

func (UndoCommand) Execute(_ context.Context, env *Env) (CommandResult, error) {
	res, err := env.History.Undo(env.Model)
	if err != nil {
		return CommandResult{}, err
	}
	res.Changed = true
	return res, nil
}

// RedoCommand replays the most recently undone command.
type RedoCommand struct{}

func (RedoCommand) Word() string { return WordRedo }

func (RedoCommand) Execute(_ context.Context, env *Env) (CommandResult, error) {
	res, err := env.History.Redo(env.Model)
	if err != nil {
		return CommandResult{}, err
	}
	res.Changed = true
	return res, nil
}

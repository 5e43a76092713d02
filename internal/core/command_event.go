package core

import (
	"context"

	"rostercore/pkg/domain"
)

const (
	WordAddEvent    = "addevent"
	WordDeleteEvent = "deleteevent"
)

// AddEventCommand appends an event. Event commands do not enter history.
type AddEventCommand struct {
	event *domain.Event
}

func NewAddEventCommand(e *domain.Event) *AddEventCommand {
	return &AddEventCommand{event: e}
}

func (c *AddEventCommand) Word() string { return WordAddEvent }

func (c *AddEventCommand) Execute(_ context.Context, env *Env) (CommandResult, error) {
	if err := env.Model.AddEvent(c.event); err != nil {
		return CommandResult{}, err
	}
	return feedback("New event added: %s", c.event), nil
}

// DeleteEventCommand removes the event at a 1-based position in the event list.
type DeleteEventCommand struct {
	index Index
}

func NewDeleteEventCommand(index Index) *DeleteEventCommand {
	return &DeleteEventCommand{index: index}
}

func (c *DeleteEventCommand) Word() string { return WordDeleteEvent }

func (c *DeleteEventCommand) Execute(_ context.Context, env *Env) (CommandResult, error) {
	e, err := eventAt(env.Model, c.index)
	if err != nil {
		return CommandResult{}, err
	}
	if err := env.Model.DeleteEvent(e); err != nil {
		return CommandResult{}, err
	}
	return feedback("Deleted Event: %s", e), nil
}

package core

import (
	"context"
	"fmt"
	"time"

	"rostercore/internal/blob"
	"rostercore/pkg/domain"
)

// Fixed feedback messages shared by several commands.
const (
	MessageInvalidPersonIndex = "The person index provided is invalid"
	MessageInvalidEventIndex  = "The event index provided is invalid"
	MessageNothingToUndo      = "No command to undo"
	MessageNothingToRedo      = "No command to redo"
	MessageUndoMissingPerson  = "Undo failed: " + domain.MessagePersonNotFound
	MessageRedoMissingPerson  = "Redo failed: " + domain.MessagePersonNotFound
	MessageNotEdited          = "At least one field to edit must be provided."
)

// CommandResult is what the display layer renders after a command.
type CommandResult struct {
	Feedback string
	// ShowHelp asks the display layer to open the help view.
	ShowHelp bool
	// Exit asks the caller to terminate the session.
	Exit bool
	// Changed reports that the store was mutated and should be persisted.
	Changed bool
}

// Env is everything a command may touch while executing.
type Env struct {
	Model   domain.Model
	History *History
	Groups  *GroupAllocator
	Blobs   blob.Store
	Clock   Clock
}

func (e *Env) now() time.Time {
	if e.Clock == nil {
		return time.Now().UTC()
	}
	return e.Clock.Now()
}

// Command is one parsed unit of work. Execute validates against the live
// store before mutating it and never leaves a partial change behind.
type Command interface {
	Word() string
	Execute(ctx context.Context, env *Env) (CommandResult, error)
}

// ReversibleCommand captures at Execute time exactly the prior state needed to
// rebuild the store as it was. Undo is only called after a successful Execute
// or Redo; Redo only after a successful Undo.
type ReversibleCommand interface {
	Command
	Undo(model domain.Model) (CommandResult, error)
	Redo(model domain.Model) (CommandResult, error)
}

// Index is a validated 1-based position into the filtered person or event view.
type Index struct {
	zero int
}

// IndexFromOneBased rejects anything below 1.
func IndexFromOneBased(n int) (Index, error) {
	if n < 1 {
		return Index{}, domain.ValidationError{Field: "index", Message: "Index must be a positive integer"}
	}
	return Index{zero: n - 1}, nil
}

// MustIndex is IndexFromOneBased for literals known to be valid.
func MustIndex(n int) Index {
	idx, err := IndexFromOneBased(n)
	if err != nil {
		panic(err)
	}
	return idx
}

func (i Index) ZeroBased() int { return i.zero }
func (i Index) OneBased() int  { return i.zero + 1 }

func (i Index) String() string { return fmt.Sprintf("%d", i.OneBased()) }

// personAt re-validates idx against the live filtered view.
func personAt(model domain.Model, idx Index) (*domain.Person, error) {
	view := model.FilteredPersons()
	if idx.ZeroBased() >= len(view) {
		return nil, domain.CommandError{Message: MessageInvalidPersonIndex, Kind: domain.ErrNotFound}
	}
	return view[idx.ZeroBased()], nil
}

func eventAt(model domain.Model, idx Index) (*domain.Event, error) {
	events := model.Events()
	if idx.ZeroBased() >= len(events) {
		return nil, domain.CommandError{Message: MessageInvalidEventIndex, Kind: domain.ErrNotFound}
	}
	return events[idx.ZeroBased()], nil
}

func feedback(format string, args ...any) CommandResult {
	return CommandResult{Feedback: fmt.Sprintf(format, args...), Changed: true}
}

func readOnly(format string, args ...any) CommandResult {
	return CommandResult{Feedback: fmt.Sprintf(format, args...)}
}

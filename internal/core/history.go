package core

import "rostercore/pkg/domain"

// History is the linear undo/redo ledger. A command moves between stacks only
// when its Undo or Redo succeeds.
type History struct {
	undo []ReversibleCommand
	redo []ReversibleCommand
}

// NewHistory returns an empty ledger.
func NewHistory() *History { return &History{} }

// Register records a command whose Execute just succeeded. Any redo branch is
// discarded.
func (h *History) Register(cmd ReversibleCommand) {
	h.undo = append(h.undo, cmd)
	h.redo = nil
}

// Undo reverts the most recent command.
func (h *History) Undo(model domain.Model) (CommandResult, error) {
	if len(h.undo) == 0 {
		return CommandResult{}, domain.HistoryEmptyError{Message: MessageNothingToUndo}
	}
	top := h.undo[len(h.undo)-1]
	res, err := top.Undo(model)
	if err != nil {
		return CommandResult{}, err
	}
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, top)
	return res, nil
}

// Redo replays the most recently undone command.
func (h *History) Redo(model domain.Model) (CommandResult, error) {
	if len(h.redo) == 0 {
		return CommandResult{}, domain.HistoryEmptyError{Message: MessageNothingToRedo}
	}
	top := h.redo[len(h.redo)-1]
	res, err := top.Redo(model)
	if err != nil {
		return CommandResult{}, err
	}
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, top)
	return res, nil
}

// Clear drops both stacks, e.g. after the store is replaced wholesale.
func (h *History) Clear() {
	h.undo = nil
	h.redo = nil
}

// UndoDepth and RedoDepth report stack sizes.
func (h *History) UndoDepth() int { return len(h.undo) }
func (h *History) RedoDepth() int { return len(h.redo) }

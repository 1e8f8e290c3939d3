package command

import (
	"fmt"

	"kanbo/internal/model"
)

// Applied describes one executed history step: the command that ran and the
// inverse it produced. Callers use the pair to update derived state (search
// index, status line) without re-walking the whole model.
type Applied struct {
	Cmd     Command
	Inverse Command
}

// History holds the bounded undo and redo stacks. It never touches the
// activity log; the dispatch path owns that.
type History struct {
	limit int
	undo  []Command
	redo  []Command
}

const DefaultHistoryLimit = 100

func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &History{limit: limit}
}

// Record pushes the inverse of a freshly applied command and clears the redo
// stack: a new mutation forks history, so the old future is gone.
func (h *History) Record(inverse Command) {
	h.undo = append(h.undo, inverse)
	if len(h.undo) > h.limit {
		h.undo = h.undo[len(h.undo)-h.limit:]
	}
	h.redo = nil
}

func (h *History) CanUndo() bool { return len(h.undo) > 0 }
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// Undo applies the most recent inverse and moves its own inverse to the redo
// stack. If the inverse no longer applies (possible only once history has
// been pruned), both stacks are cleared and ErrStaleUndo is reported instead
// of leaving a corrupt state.
func (h *History) Undo(st *model.AppState) (Applied, error) {
	if len(h.undo) == 0 {
		return Applied{}, ErrNothingToUndo
	}
	inv := h.undo[len(h.undo)-1]
	redo, err := inv.Apply(st)
	if err != nil {
		h.undo = nil
		h.redo = nil
		return Applied{}, fmt.Errorf("%w: %v", ErrStaleUndo, err)
	}
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, redo)
	return Applied{Cmd: inv, Inverse: redo}, nil
}

// Redo is symmetric to Undo.
func (h *History) Redo(st *model.AppState) (Applied, error) {
	if len(h.redo) == 0 {
		return Applied{}, ErrNothingToRedo
	}
	cmd := h.redo[len(h.redo)-1]
	undo, err := cmd.Apply(st)
	if err != nil {
		h.undo = nil
		h.redo = nil
		return Applied{}, fmt.Errorf("%w: %v", ErrStaleUndo, err)
	}
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, undo)
	return Applied{Cmd: cmd, Inverse: undo}, nil
}

package command

import (
	"errors"
	"fmt"
	"testing"

	"kanbo/internal/model"
)

// dispatch mirrors how the engine drives history: apply, then record.
func dispatch(t *testing.T, st *model.AppState, h *History, cmd Command) {
	t.Helper()
	inv, err := cmd.Apply(st)
	if err != nil {
		t.Fatalf("apply %T: %v", cmd, err)
	}
	h.Record(inv)
}

func TestHistoryUndoRedoCycle(t *testing.T) {
	st := model.NewAppState()
	h := NewHistory(10)

	dispatch(t, st, h, CreateBoard{Name: "Work", At: t0})
	board := st.BoardOrder[0]
	dispatch(t, st, h, RenameBoard{BoardID: board, Name: "Play", At: t0})

	if !h.CanUndo() || h.CanRedo() {
		t.Fatalf("expected undo available, redo empty")
	}

	if _, err := h.Undo(st); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if st.Boards[board].Name != "Work" {
		t.Fatalf("undo should restore the old name, got %q", st.Boards[board].Name)
	}

	if _, err := h.Redo(st); err != nil {
		t.Fatalf("redo: %v", err)
	}
	if st.Boards[board].Name != "Play" {
		t.Fatalf("redo should reapply the rename, got %q", st.Boards[board].Name)
	}
}

func TestHistoryNewCommandClearsRedo(t *testing.T) {
	st := model.NewAppState()
	h := NewHistory(10)

	dispatch(t, st, h, CreateBoard{Name: "One", At: t0})
	dispatch(t, st, h, CreateBoard{Name: "Two", At: t0})
	if _, err := h.Undo(st); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if !h.CanRedo() {
		t.Fatalf("expected redo after undo")
	}

	dispatch(t, st, h, CreateBoard{Name: "Three", At: t0})
	if h.CanRedo() {
		t.Fatalf("a new command must clear the redo stack")
	}
	if _, err := h.Redo(st); !errors.Is(err, ErrNothingToRedo) {
		t.Fatalf("expected ErrNothingToRedo, got %v", err)
	}
}

func TestHistoryBoundDropsOldest(t *testing.T) {
	st := model.NewAppState()
	h := NewHistory(3)

	for i := 0; i < 5; i++ {
		dispatch(t, st, h, CreateBoard{Name: fmt.Sprintf("b%d", i), At: t0})
	}

	undone := 0
	for h.CanUndo() {
		if _, err := h.Undo(st); err != nil {
			t.Fatalf("undo %d: %v", undone, err)
		}
		undone++
	}
	if undone != 3 {
		t.Fatalf("history limit 3 should allow exactly 3 undos, got %d", undone)
	}
	if len(st.BoardOrder) != 2 {
		t.Fatalf("the two oldest boards should survive, got %d", len(st.BoardOrder))
	}
}

func TestHistoryEmptyUndoRedo(t *testing.T) {
	st := model.NewAppState()
	h := NewHistory(10)
	if _, err := h.Undo(st); !errors.Is(err, ErrNothingToUndo) {
		t.Fatalf("expected ErrNothingToUndo, got %v", err)
	}
	if _, err := h.Redo(st); !errors.Is(err, ErrNothingToRedo) {
		t.Fatalf("expected ErrNothingToRedo, got %v", err)
	}
}

func TestHistoryStaleUndoClearsBothStacks(t *testing.T) {
	st := model.NewAppState()
	h := NewHistory(10)

	dispatch(t, st, h, CreateBoard{Name: "Work", At: t0})
	board := st.BoardOrder[0]

	// Wreck the state behind history's back so the recorded inverse
	// (DeleteBoard) no longer applies.
	delete(st.Boards, board)
	st.BoardOrder = nil

	if _, err := h.Undo(st); !errors.Is(err, ErrStaleUndo) {
		t.Fatalf("expected ErrStaleUndo, got %v", err)
	}
	if h.CanUndo() || h.CanRedo() {
		t.Fatalf("a stale undo must clear both stacks")
	}
}

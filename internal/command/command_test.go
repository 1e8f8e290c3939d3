package command

import (
	"errors"
	"testing"
	"time"

	"kanbo/internal/model"
)

var t0 = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func mustApply(t *testing.T, st *model.AppState, cmd Command) Command {
	t.Helper()
	inv, err := cmd.Apply(st)
	if err != nil {
		t.Fatalf("apply %T: %v", cmd, err)
	}
	if err := st.CheckIntegrity(); err != nil {
		t.Fatalf("state inconsistent after %T: %v", cmd, err)
	}
	return inv
}

// seedBoard builds a board with two lists and three cards and returns the
// relevant ids.
func seedBoard(t *testing.T, st *model.AppState) (board, todo, done model.ID, cards []model.ID) {
	t.Helper()
	mustApply(t, st, CreateBoard{Name: "Work", At: t0})
	board = st.BoardOrder[0]
	mustApply(t, st, CreateList{BoardID: board, Name: "Todo", At: t0})
	mustApply(t, st, CreateList{BoardID: board, Name: "Done", At: t0})
	b := st.Boards[board]
	todo, done = b.ListIDs[0], b.ListIDs[1]
	for _, title := range []string{"Write spec", "Review PR", "Ship it"} {
		mustApply(t, st, CreateCard{ListID: todo, Title: title, At: t0})
	}
	cards = append(cards, st.Lists[todo].CardIDs...)
	return board, todo, done, cards
}

func TestUndoRoundTripRestoresStructure(t *testing.T) {
	st := model.NewAppState()
	board, todo, done, cards := seedBoard(t, st)

	commands := []Command{
		RenameBoard{BoardID: board, Name: "Play", At: t0.Add(time.Minute)},
		RenameList{ListID: todo, Name: "Backlog"},
		MoveCard{CardID: cards[0], FromListID: todo, ToListID: done, Position: 0, At: t0.Add(time.Minute)},
		EditCardFields{CardID: cards[1], Title: "Review the PR", Description: "carefully", At: t0.Add(time.Minute)},
		MoveList{ListID: done, Position: 0, At: t0.Add(time.Minute)},
		DeleteCard{CardID: cards[2]},
		DeleteList{ListID: todo},
		DeleteBoard{BoardID: board},
	}

	for _, cmd := range commands {
		before := st.Clone()
		inv := mustApply(t, st, cmd)
		mustApply(t, st, inv)
		if !model.StructuralEqual(before, st) {
			t.Fatalf("%T undo did not restore the previous structure", cmd)
		}
	}
}

func TestRedoAfterUndoConverges(t *testing.T) {
	st := model.NewAppState()
	_, todo, done, cards := seedBoard(t, st)

	cmd := MoveCard{CardID: cards[0], FromListID: todo, ToListID: done, Position: 0, At: t0.Add(time.Hour)}
	inv := mustApply(t, st, cmd)
	after := st.Clone()

	redo := mustApply(t, st, inv)  // undo
	mustApply(t, st, redo)         // redo
	if !model.StructuralEqual(after, st) {
		t.Fatalf("redo did not reproduce the post-command structure")
	}
}

func TestDeleteBoardCascadesAndRestores(t *testing.T) {
	st := model.NewAppState()
	board, todo, _, cards := seedBoard(t, st)
	before := st.Clone()

	inv := mustApply(t, st, DeleteBoard{BoardID: board})
	if len(st.Boards) != 0 || len(st.Lists) != 0 || len(st.Cards) != 0 {
		t.Fatalf("deleting the board must cascade to lists and cards, got %d/%d/%d",
			len(st.Boards), len(st.Lists), len(st.Cards))
	}

	mustApply(t, st, inv)
	if !model.StructuralEqual(before, st) {
		t.Fatalf("restore did not bring back the full subtree")
	}
	if got := st.Lists[todo].CardIDs; len(got) != 3 || got[0] != cards[0] {
		t.Fatalf("card ordering lost across delete/restore: %v", got)
	}
}

func TestMoveCardClampsPosition(t *testing.T) {
	st := model.NewAppState()
	_, todo, done, cards := seedBoard(t, st)

	mustApply(t, st, MoveCard{CardID: cards[0], FromListID: todo, ToListID: done, Position: 99, At: t0})
	if got := st.Lists[done].CardIDs; len(got) != 1 || got[0] != cards[0] {
		t.Fatalf("out-of-range position should clamp to append, got %v", got)
	}

	mustApply(t, st, MoveCard{CardID: cards[1], FromListID: todo, ToListID: done, Position: -5, At: t0})
	if got := st.Lists[done].CardIDs; got[0] != cards[1] {
		t.Fatalf("negative position should clamp to the front, got %v", got)
	}
}

func TestMoveCardToleratesStaleSourceList(t *testing.T) {
	st := model.NewAppState()
	_, todo, done, cards := seedBoard(t, st)

	// FromListID lies about where the card is; the card's actual list wins.
	mustApply(t, st, MoveCard{CardID: cards[0], FromListID: done, ToListID: done, Position: 0, At: t0})
	if st.Cards[cards[0]].ListID != done {
		t.Fatalf("card should end up in the destination list")
	}
	if idx := len(st.Lists[todo].CardIDs); idx != 2 {
		t.Fatalf("card should have left its real source list, %d remain", idx)
	}
}

func TestCreateListRejectsDuplicateName(t *testing.T) {
	st := model.NewAppState()
	board, _, _, _ := seedBoard(t, st)

	_, err := CreateList{BoardID: board, Name: "todo", At: t0}.Apply(st)
	if err == nil {
		t.Fatalf("expected case-insensitive duplicate list name to be rejected")
	}
	var dup DuplicateNameError
	if !errors.As(err, &dup) || dup.Kind != "list" {
		t.Fatalf("expected a list DuplicateNameError, got %v", err)
	}
}

func TestDeleteTagStripsAndRestoresCardOrder(t *testing.T) {
	st := model.NewAppState()
	_, _, _, cards := seedBoard(t, st)

	mustApply(t, st, CreateTag{Name: "urgent"})
	mustApply(t, st, CreateTag{Name: "later"})
	var urgent, later model.ID
	for id, tag := range st.Tags {
		if tag.Name == "urgent" {
			urgent = id
		} else {
			later = id
		}
	}
	mustApply(t, st, AddTagToCard{CardID: cards[0], TagID: urgent, Index: -1, At: t0})
	mustApply(t, st, AddTagToCard{CardID: cards[0], TagID: later, Index: -1, At: t0})
	before := st.Clone()

	inv := mustApply(t, st, DeleteTag{TagID: urgent})
	if got := st.Cards[cards[0]].TagIDs; len(got) != 1 || got[0] != later {
		t.Fatalf("tag deletion should cascade off cards, got %v", got)
	}

	mustApply(t, st, inv)
	if !model.StructuralEqual(before, st) {
		t.Fatalf("restoring a tag should reinsert it at its old position on every card")
	}
}

func TestAddTagToCardRejectsDuplicate(t *testing.T) {
	st := model.NewAppState()
	_, _, _, cards := seedBoard(t, st)
	mustApply(t, st, CreateTag{Name: "urgent"})
	var tag model.ID
	for id := range st.Tags {
		tag = id
	}
	mustApply(t, st, AddTagToCard{CardID: cards[0], TagID: tag, Index: -1, At: t0})
	_, err := (AddTagToCard{CardID: cards[0], TagID: tag, Index: -1, At: t0}).Apply(st)
	if err == nil {
		t.Fatalf("tagging a card twice with the same tag should fail")
	}
	var dup DuplicateNameError
	if !errors.As(err, &dup) || dup.Name != "urgent" {
		t.Fatalf("the error should name the tag, got %v", err)
	}
}

func TestFailedCommandLeavesStateUntouched(t *testing.T) {
	st := model.NewAppState()
	seedBoard(t, st)
	before := st.Clone()

	if _, err := (DeleteCard{CardID: 9999}).Apply(st); err == nil {
		t.Fatalf("expected missing card to fail")
	}
	if !model.StructuralEqual(before, st) {
		t.Fatalf("a failed command must not mutate the state")
	}
	if before.NextID != st.NextID {
		t.Fatalf("a failed command must not consume ids")
	}
}

package engine

import (
	"kanbo/internal/command"
)

// Board view: every key resolves through the keymap; unbound keys are
// ignored by design so the transition table stays total.
func (e *Engine) handleBoardKey(k KeyEvent) {
	action, ok := e.keymap.Lookup(k)
	if !ok {
		return
	}
	switch action {
	case ActionQuit:
		e.RequestQuit()
	case ActionHelp:
		e.mode = ModeHelp
	case ActionUndo:
		e.undo()
	case ActionRedo:
		e.redo()
	case ActionSave:
		e.RequestSave()
	case ActionSearch:
		e.openSearch()
	case ActionToggleLog:
		e.showLog = !e.showLog

	case ActionUp:
		if e.curCard > 0 {
			e.curCard--
		}
	case ActionDown:
		if l := e.currentList(); l != nil && e.curCard < len(l.CardIDs)-1 {
			e.curCard++
		}
	case ActionLeft:
		if e.curList > 0 {
			e.curList--
			e.curCard = 0
		}
	case ActionRight:
		if b := e.currentBoard(); b != nil && e.curList < len(b.ListIDs)-1 {
			e.curList++
			e.curCard = 0
		}
	case ActionNextBoard:
		if len(e.st.BoardOrder) > 0 {
			e.curBoard = (e.curBoard + 1) % len(e.st.BoardOrder)
			e.curList, e.curCard = 0, 0
		}
	case ActionPrevBoard:
		if n := len(e.st.BoardOrder); n > 0 {
			e.curBoard = (e.curBoard + n - 1) % n
			e.curList, e.curCard = 0, 0
		}

	case ActionOpenCard:
		if c := e.currentCard(); c != nil {
			e.openCardEditor(c)
		}
	case ActionNewCard:
		if l := e.currentList(); l != nil {
			e.openNewCardEditor(l.ID)
		} else {
			e.setStatus(StatusWarn, "create a list first")
		}
	case ActionNewList:
		if b := e.currentBoard(); b != nil {
			e.openPrompt(promptNewList, "New list", "", b.ID)
		} else {
			e.setStatus(StatusWarn, "create a board first")
		}
	case ActionNewBoard:
		e.openPrompt(promptNewBoard, "New board", "", 0)
	case ActionRenameList:
		if l := e.currentList(); l != nil {
			e.openPrompt(promptRenameList, "Rename list", l.Name, l.ID)
		}
	case ActionRenameBoard:
		if b := e.currentBoard(); b != nil {
			e.openPrompt(promptRenameBoard, "Rename board", b.Name, b.ID)
		}

	case ActionDeleteCard:
		if c := e.currentCard(); c != nil {
			e.openConfirm("Delete card", "Delete card \""+c.Title+"\"?", command.DeleteCard{CardID: c.ID})
		}
	case ActionDeleteList:
		if l := e.currentList(); l != nil {
			e.openConfirm("Delete list", "Delete list \""+l.Name+"\" and all its cards?", command.DeleteList{ListID: l.ID})
		}
	case ActionDeleteBoard:
		if b := e.currentBoard(); b != nil {
			e.openConfirm("Delete board", "Delete board \""+b.Name+"\" and everything on it?", command.DeleteBoard{BoardID: b.ID})
		}

	case ActionMoveCardUp:
		e.moveCardWithin(-1)
	case ActionMoveCardDown:
		e.moveCardWithin(+1)
	case ActionMoveCardLeft:
		e.moveCardAcross(-1)
	case ActionMoveCardRight:
		e.moveCardAcross(+1)
	case ActionMoveListLeft:
		e.moveList(-1)
	case ActionMoveListRight:
		e.moveList(+1)

	case ActionAddTag:
		if c := e.currentCard(); c != nil {
			e.openPrompt(promptAddTag, "Add tag", "", c.ID)
		}
	case ActionRemoveTag:
		if c := e.currentCard(); c != nil {
			if len(c.TagIDs) == 0 {
				e.setStatus(StatusInfo, "card has no tags")
				return
			}
			e.openPrompt(promptRemoveTag, "Remove tag", "", c.ID)
		}
	}
}

func (e *Engine) moveCardWithin(delta int) {
	c := e.currentCard()
	l := e.currentList()
	if c == nil || l == nil {
		return
	}
	pos := e.curCard + delta
	if pos < 0 || pos >= len(l.CardIDs) {
		return
	}
	if e.dispatch(command.MoveCard{
		CardID:     c.ID,
		FromListID: l.ID,
		ToListID:   l.ID,
		Position:   pos,
		At:         e.clock(),
	}) {
		e.curCard = pos
	}
}

func (e *Engine) moveCardAcross(delta int) {
	c := e.currentCard()
	b := e.currentBoard()
	if c == nil || b == nil {
		return
	}
	target := e.curList + delta
	if target < 0 || target >= len(b.ListIDs) {
		return
	}
	dst := e.st.Lists[b.ListIDs[target]]
	// Keep the card at the same visual height; the command clamps.
	if e.dispatch(command.MoveCard{
		CardID:     c.ID,
		FromListID: c.ListID,
		ToListID:   dst.ID,
		Position:   e.curCard,
		At:         e.clock(),
	}) {
		e.curList = target
		e.curCard = min(e.curCard, len(dst.CardIDs)-1)
	}
}

func (e *Engine) moveList(delta int) {
	l := e.currentList()
	if l == nil {
		return
	}
	pos := e.curList + delta
	b := e.currentBoard()
	if b == nil || pos < 0 || pos >= len(b.ListIDs) {
		return
	}
	if e.dispatch(command.MoveList{ListID: l.ID, Position: pos, At: e.clock()}) {
		e.curList = pos
	}
}

// Help: any of the closing keys returns to the board; everything else is
// ignored (scrolling is the renderer's business).
func (e *Engine) handleHelpKey(k KeyEvent) {
	switch k.Chord() {
	case "esc", "q", "?", "enter":
		e.mode = ModeBoard
	}
}

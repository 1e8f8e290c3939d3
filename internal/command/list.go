package command

import (
	"fmt"
	"strings"
	"time"

	"kanbo/internal/model"
)

type CreateList struct {
	BoardID model.ID
	Name    string
	At      time.Time
}

func (c CreateList) Apply(st *model.AppState) (Command, error) {
	b, err := st.Board(c.BoardID)
	if err != nil {
		return nil, err
	}
	if err := checkListName(st, b, c.Name, model.NoID); err != nil {
		return nil, err
	}
	id := st.AllocID()
	st.Lists[id] = &model.List{ID: id, Name: c.Name, BoardID: c.BoardID}
	b.ListIDs = append(b.ListIDs, id)
	b.UpdatedAt = c.At
	return DeleteList{ListID: id}, nil
}

func (c CreateList) Describe() string {
	return fmt.Sprintf("created list %q", c.Name)
}

type RenameList struct {
	ListID model.ID
	Name   string
}

func (c RenameList) Apply(st *model.AppState) (Command, error) {
	l, err := st.List(c.ListID)
	if err != nil {
		return nil, err
	}
	b, err := st.Board(l.BoardID)
	if err != nil {
		return nil, err
	}
	if err := checkListName(st, b, c.Name, c.ListID); err != nil {
		return nil, err
	}
	inv := RenameList{ListID: c.ListID, Name: l.Name}
	l.Name = c.Name
	return inv, nil
}

func (c RenameList) Describe() string {
	return fmt.Sprintf("renamed list to %q", c.Name)
}

// MoveList reorders a list within its board. Out-of-range positions clamp.
type MoveList struct {
	ListID   model.ID
	Position int
	At       time.Time
}

func (c MoveList) Apply(st *model.AppState) (Command, error) {
	l, err := st.List(c.ListID)
	if err != nil {
		return nil, err
	}
	b, err := st.Board(l.BoardID)
	if err != nil {
		return nil, err
	}
	inv := MoveList{ListID: c.ListID, Position: indexOfID(b.ListIDs, c.ListID), At: b.UpdatedAt}
	ids, _ := removeID(b.ListIDs, c.ListID)
	b.ListIDs = insertID(ids, c.ListID, clampIndex(c.Position, len(ids)))
	b.UpdatedAt = c.At
	return inv, nil
}

func (c MoveList) Describe() string {
	return fmt.Sprintf("moved list %d to position %d", c.ListID, c.Position)
}

type DeleteList struct {
	ListID model.ID
}

func (c DeleteList) Apply(st *model.AppState) (Command, error) {
	l, err := st.List(c.ListID)
	if err != nil {
		return nil, err
	}
	b, err := st.Board(l.BoardID)
	if err != nil {
		return nil, err
	}

	inv := restoreList{boardIdx: indexOfID(b.ListIDs, c.ListID)}
	lcp := *l
	lcp.CardIDs = append([]model.ID(nil), l.CardIDs...)
	inv.list = &lcp
	for _, cid := range l.CardIDs {
		inv.cards = append(inv.cards, cloneCard(st.Cards[cid]))
	}

	for _, cid := range l.CardIDs {
		delete(st.Cards, cid)
	}
	delete(st.Lists, c.ListID)
	b.ListIDs, _ = removeID(b.ListIDs, c.ListID)
	return inv, nil
}

func (c DeleteList) Describe() string {
	return fmt.Sprintf("deleted list %d", c.ListID)
}

type restoreList struct {
	list     *model.List
	cards    []*model.Card
	boardIdx int
}

func (c restoreList) Apply(st *model.AppState) (Command, error) {
	b, err := st.Board(c.list.BoardID)
	if err != nil {
		return nil, err
	}
	lcp := *c.list
	lcp.CardIDs = append([]model.ID(nil), c.list.CardIDs...)
	st.Lists[lcp.ID] = &lcp
	b.ListIDs = insertID(b.ListIDs, lcp.ID, c.boardIdx)
	for _, card := range c.cards {
		st.Cards[card.ID] = cloneCard(card)
	}
	return DeleteList{ListID: c.list.ID}, nil
}

func (c restoreList) Describe() string {
	return fmt.Sprintf("restored list %q", c.list.Name)
}

// List names must be unique within their board (case-insensitive), so the
// board view never shows two indistinguishable columns.
func checkListName(st *model.AppState, b *model.Board, name string, self model.ID) error {
	for _, lid := range b.ListIDs {
		if lid == self {
			continue
		}
		if l, ok := st.Lists[lid]; ok && strings.EqualFold(l.Name, name) {
			return DuplicateNameError{Kind: "list", Name: name}
		}
	}
	return nil
}

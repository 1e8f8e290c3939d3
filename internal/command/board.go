package command

import (
	"fmt"
	"time"

	"kanbo/internal/model"
)

type CreateBoard struct {
	Name string
	At   time.Time
}

func (c CreateBoard) Apply(st *model.AppState) (Command, error) {
	id := st.AllocID()
	st.Boards[id] = &model.Board{
		ID:        id,
		Name:      c.Name,
		CreatedAt: c.At,
		UpdatedAt: c.At,
	}
	st.BoardOrder = append(st.BoardOrder, id)
	return DeleteBoard{BoardID: id}, nil
}

func (c CreateBoard) Describe() string {
	return fmt.Sprintf("created board %q", c.Name)
}

type RenameBoard struct {
	BoardID model.ID
	Name    string
	At      time.Time
}

func (c RenameBoard) Apply(st *model.AppState) (Command, error) {
	b, err := st.Board(c.BoardID)
	if err != nil {
		return nil, err
	}
	inv := RenameBoard{BoardID: c.BoardID, Name: b.Name, At: b.UpdatedAt}
	b.Name = c.Name
	b.UpdatedAt = c.At
	return inv, nil
}

func (c RenameBoard) Describe() string {
	return fmt.Sprintf("renamed board to %q", c.Name)
}

type DeleteBoard struct {
	BoardID model.ID
}

func (c DeleteBoard) Apply(st *model.AppState) (Command, error) {
	b, err := st.Board(c.BoardID)
	if err != nil {
		return nil, err
	}

	// Snapshot the whole subtree so the inverse can restore it byte for byte.
	inv := restoreBoard{orderIdx: indexOfID(st.BoardOrder, c.BoardID)}
	cp := *b
	cp.ListIDs = append([]model.ID(nil), b.ListIDs...)
	inv.board = &cp
	for _, lid := range b.ListIDs {
		l := st.Lists[lid]
		lcp := *l
		lcp.CardIDs = append([]model.ID(nil), l.CardIDs...)
		inv.lists = append(inv.lists, &lcp)
		for _, cid := range l.CardIDs {
			inv.cards = append(inv.cards, cloneCard(st.Cards[cid]))
		}
	}

	for _, l := range inv.lists {
		for _, cid := range l.CardIDs {
			delete(st.Cards, cid)
		}
		delete(st.Lists, l.ID)
	}
	delete(st.Boards, c.BoardID)
	st.BoardOrder, _ = removeID(st.BoardOrder, c.BoardID)
	return inv, nil
}

func (c DeleteBoard) Describe() string {
	return fmt.Sprintf("deleted board %d", c.BoardID)
}

// restoreBoard is the inverse of DeleteBoard. Never constructed by callers.
type restoreBoard struct {
	board    *model.Board
	lists    []*model.List
	cards    []*model.Card
	orderIdx int
}

func (c restoreBoard) Apply(st *model.AppState) (Command, error) {
	cp := *c.board
	cp.ListIDs = append([]model.ID(nil), c.board.ListIDs...)
	st.Boards[cp.ID] = &cp
	st.BoardOrder = insertID(st.BoardOrder, cp.ID, c.orderIdx)
	for _, l := range c.lists {
		lcp := *l
		lcp.CardIDs = append([]model.ID(nil), l.CardIDs...)
		st.Lists[lcp.ID] = &lcp
	}
	for _, card := range c.cards {
		st.Cards[card.ID] = cloneCard(card)
	}
	return DeleteBoard{BoardID: c.board.ID}, nil
}

func (c restoreBoard) Describe() string {
	return fmt.Sprintf("restored board %q", c.board.Name)
}

func cloneCard(c *model.Card) *model.Card {
	cp := *c
	cp.TagIDs = append([]model.ID(nil), c.TagIDs...)
	if c.Due != nil {
		due := *c.Due
		cp.Due = &due
	}
	if c.Meta != nil {
		cp.Meta = make(map[string]string, len(c.Meta))
		for k, v := range c.Meta {
			cp.Meta[k] = v
		}
	}
	return &cp
}

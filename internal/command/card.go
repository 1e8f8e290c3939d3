package command

import (
	"fmt"
	"time"

	"kanbo/internal/model"
)

type CreateCard struct {
	ListID      model.ID
	Title       string
	Description string
	Due         *time.Time
	At          time.Time
}

func (c CreateCard) Apply(st *model.AppState) (Command, error) {
	l, err := st.List(c.ListID)
	if err != nil {
		return nil, err
	}
	id := st.AllocID()
	card := &model.Card{
		ID:          id,
		Title:       c.Title,
		Description: c.Description,
		ListID:      c.ListID,
		CreatedAt:   c.At,
		UpdatedAt:   c.At,
	}
	if c.Due != nil {
		due := *c.Due
		card.Due = &due
	}
	st.Cards[id] = card
	l.CardIDs = append(l.CardIDs, id)
	return DeleteCard{CardID: id}, nil
}

func (c CreateCard) Describe() string {
	return fmt.Sprintf("created card %q", c.Title)
}

type DeleteCard struct {
	CardID model.ID
}

func (c DeleteCard) Apply(st *model.AppState) (Command, error) {
	card, err := st.Card(c.CardID)
	if err != nil {
		return nil, err
	}
	l, err := st.List(card.ListID)
	if err != nil {
		return nil, err
	}
	inv := restoreCard{card: cloneCard(card), listIdx: indexOfID(l.CardIDs, c.CardID)}
	delete(st.Cards, c.CardID)
	l.CardIDs, _ = removeID(l.CardIDs, c.CardID)
	return inv, nil
}

func (c DeleteCard) Describe() string {
	return fmt.Sprintf("deleted card %d", c.CardID)
}

type restoreCard struct {
	card    *model.Card
	listIdx int
}

func (c restoreCard) Apply(st *model.AppState) (Command, error) {
	l, err := st.List(c.card.ListID)
	if err != nil {
		return nil, err
	}
	st.Cards[c.card.ID] = cloneCard(c.card)
	l.CardIDs = insertID(l.CardIDs, c.card.ID, c.listIdx)
	return DeleteCard{CardID: c.card.ID}, nil
}

func (c restoreCard) Describe() string {
	return fmt.Sprintf("restored card %q", c.card.Title)
}

// MoveCard moves a card to Position within the destination list.
// FromListID documents where the UI believed the card was; when it is stale
// the card's actual list wins, and an out-of-range position clamps.
type MoveCard struct {
	CardID     model.ID
	FromListID model.ID
	ToListID   model.ID
	Position   int
	At         time.Time
}

func (c MoveCard) Apply(st *model.AppState) (Command, error) {
	card, err := st.Card(c.CardID)
	if err != nil {
		return nil, err
	}
	src, err := st.List(card.ListID)
	if err != nil {
		return nil, err
	}
	dst, err := st.List(c.ToListID)
	if err != nil {
		return nil, err
	}

	inv := MoveCard{
		CardID:     c.CardID,
		FromListID: c.ToListID,
		ToListID:   src.ID,
		Position:   indexOfID(src.CardIDs, c.CardID),
		At:         card.UpdatedAt,
	}

	src.CardIDs, _ = removeID(src.CardIDs, c.CardID)
	dst.CardIDs = insertID(dst.CardIDs, c.CardID, clampIndex(c.Position, len(dst.CardIDs)))
	card.ListID = dst.ID
	card.UpdatedAt = c.At
	return inv, nil
}

func (c MoveCard) Describe() string {
	return fmt.Sprintf("moved card %d to list %d", c.CardID, c.ToListID)
}

// EditCardFields replaces title, description, and due date wholesale.
// The inverse carries the previous values, so it is its own command kind.
type EditCardFields struct {
	CardID      model.ID
	Title       string
	Description string
	Due         *time.Time
	At          time.Time
}

func (c EditCardFields) Apply(st *model.AppState) (Command, error) {
	card, err := st.Card(c.CardID)
	if err != nil {
		return nil, err
	}
	inv := EditCardFields{
		CardID:      c.CardID,
		Title:       card.Title,
		Description: card.Description,
		At:          card.UpdatedAt,
	}
	if card.Due != nil {
		due := *card.Due
		inv.Due = &due
	}
	card.Title = c.Title
	card.Description = c.Description
	if c.Due != nil {
		due := *c.Due
		card.Due = &due
	} else {
		card.Due = nil
	}
	card.UpdatedAt = c.At
	return inv, nil
}

func (c EditCardFields) Describe() string {
	return fmt.Sprintf("edited card %q", c.Title)
}

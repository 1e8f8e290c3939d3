package command

import (
	"fmt"
	"time"

	"kanbo/internal/model"
)

type CreateTag struct {
	Name  string
	Color string
}

func (c CreateTag) Apply(st *model.AppState) (Command, error) {
	id := st.AllocID()
	st.Tags[id] = &model.Tag{ID: id, Name: c.Name, Color: c.Color}
	return DeleteTag{TagID: id}, nil
}

func (c CreateTag) Describe() string {
	return fmt.Sprintf("created tag %q", c.Name)
}

// AddTagToCard appends the tag to the card's tag sequence, or re-inserts at
// Index when undoing a removal. Index < 0 means append.
type AddTagToCard struct {
	CardID model.ID
	TagID  model.ID
	Index  int
	At     time.Time
}

func (c AddTagToCard) Apply(st *model.AppState) (Command, error) {
	card, err := st.Card(c.CardID)
	if err != nil {
		return nil, err
	}
	tag, err := st.Tag(c.TagID)
	if err != nil {
		return nil, err
	}
	if indexOfID(card.TagIDs, c.TagID) >= 0 {
		return nil, DuplicateNameError{Kind: "tag", Name: tag.Name}
	}
	inv := RemoveTagFromCard{CardID: c.CardID, TagID: c.TagID, At: card.UpdatedAt}
	at := c.Index
	if at < 0 {
		at = len(card.TagIDs)
	}
	card.TagIDs = insertID(card.TagIDs, c.TagID, at)
	card.UpdatedAt = c.At
	return inv, nil
}

func (c AddTagToCard) Describe() string {
	return fmt.Sprintf("tagged card %d with tag %d", c.CardID, c.TagID)
}

type RemoveTagFromCard struct {
	CardID model.ID
	TagID  model.ID
	At     time.Time
}

func (c RemoveTagFromCard) Apply(st *model.AppState) (Command, error) {
	card, err := st.Card(c.CardID)
	if err != nil {
		return nil, err
	}
	idx := indexOfID(card.TagIDs, c.TagID)
	if idx < 0 {
		return nil, model.NotFoundError{Kind: "tag on card", ID: c.TagID}
	}
	inv := AddTagToCard{CardID: c.CardID, TagID: c.TagID, Index: idx, At: card.UpdatedAt}
	card.TagIDs, _ = removeID(card.TagIDs, c.TagID)
	card.UpdatedAt = c.At
	return inv, nil
}

func (c RemoveTagFromCard) Describe() string {
	return fmt.Sprintf("untagged card %d from tag %d", c.CardID, c.TagID)
}

type DeleteTag struct {
	TagID model.ID
}

func (c DeleteTag) Apply(st *model.AppState) (Command, error) {
	t, err := st.Tag(c.TagID)
	if err != nil {
		return nil, err
	}

	// Cascade: strip the tag from every card in the same command, recording
	// each card's index so undo restores the exact ordering.
	inv := restoreTag{tag: *t, cardIdx: map[model.ID]int{}}
	for id, card := range st.Cards {
		if idx := indexOfID(card.TagIDs, c.TagID); idx >= 0 {
			inv.cardIdx[id] = idx
			card.TagIDs, _ = removeID(card.TagIDs, c.TagID)
		}
	}
	delete(st.Tags, c.TagID)
	return inv, nil
}

func (c DeleteTag) Describe() string {
	return fmt.Sprintf("deleted tag %d", c.TagID)
}

type restoreTag struct {
	tag     model.Tag
	cardIdx map[model.ID]int
}

func (c restoreTag) Apply(st *model.AppState) (Command, error) {
	tag := c.tag
	st.Tags[tag.ID] = &tag
	for cid, idx := range c.cardIdx {
		if card, ok := st.Cards[cid]; ok {
			card.TagIDs = insertID(card.TagIDs, tag.ID, idx)
		}
	}
	return DeleteTag{TagID: tag.ID}, nil
}

func (c restoreTag) Describe() string {
	return fmt.Sprintf("restored tag %q", c.tag.Name)
}

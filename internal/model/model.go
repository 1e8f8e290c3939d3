package model

import "time"

// ID identifies one entity. IDs are allocated from AppState.NextID and are
// never reused within a process lifetime, so a stale ID can only ever miss,
// not silently point at a different entity.
type ID uint64

const NoID ID = 0

type Board struct {
	ID        ID        `json:"id" msgpack:"id"`
	Name      string    `json:"name" msgpack:"name"`
	ListIDs   []ID      `json:"listIds" msgpack:"listIds"`
	CreatedAt time.Time `json:"createdAt" msgpack:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" msgpack:"updatedAt"`
}

type List struct {
	ID      ID     `json:"id" msgpack:"id"`
	Name    string `json:"name" msgpack:"name"`
	BoardID ID     `json:"boardId" msgpack:"boardId"`
	CardIDs []ID   `json:"cardIds" msgpack:"cardIds"`
}

type Card struct {
	ID          ID         `json:"id" msgpack:"id"`
	Title       string     `json:"title" msgpack:"title"`
	Description string     `json:"description,omitempty" msgpack:"description"`
	TagIDs      []ID       `json:"tagIds,omitempty" msgpack:"tagIds"`
	Due         *time.Time `json:"due,omitempty" msgpack:"due"`
	ListID      ID         `json:"listId" msgpack:"listId"`

	// Free-form extension point; persisted as-is.
	Meta map[string]string `json:"meta,omitempty" msgpack:"meta"`

	CreatedAt time.Time `json:"createdAt" msgpack:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" msgpack:"updatedAt"`
}

type Tag struct {
	ID    ID     `json:"id" msgpack:"id"`
	Name  string `json:"name" msgpack:"name"`
	Color string `json:"color,omitempty" msgpack:"color"`
}

// ActivityEntry is display-only history; undo never replays it.
type ActivityEntry struct {
	At     time.Time `json:"at" msgpack:"at"`
	ByUser bool      `json:"byUser" msgpack:"byUser"`
	Text   string    `json:"text" msgpack:"text"`
}

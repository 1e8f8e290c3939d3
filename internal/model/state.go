package model

import (
	"fmt"
	"sort"
	"time"
)

// CurrentSchemaVersion is bumped whenever the persisted shape changes.
// Loading older versions goes through store migrations; newer versions are
// refused rather than guessed at.
const CurrentSchemaVersion uint32 = 2

// AppState is the aggregate root. It is owned exclusively by the engine
// facade; every mutation goes through the command layer so that it can be
// undone. Nothing outside that path may write to it.
type AppState struct {
	SchemaVersion uint32 `json:"schemaVersion" msgpack:"schemaVersion"`
	NextID        ID     `json:"nextId" msgpack:"nextId"`

	Boards map[ID]*Board `json:"boards" msgpack:"boards"`
	Lists  map[ID]*List  `json:"lists" msgpack:"lists"`
	Cards  map[ID]*Card  `json:"cards" msgpack:"cards"`
	Tags   map[ID]*Tag   `json:"tags" msgpack:"tags"`

	// Boards have no owning parent, so their display order lives here.
	BoardOrder []ID `json:"boardOrder" msgpack:"boardOrder"`

	Activity []ActivityEntry `json:"activity" msgpack:"activity"`
}

func NewAppState() *AppState {
	return &AppState{
		SchemaVersion: CurrentSchemaVersion,
		NextID:        1,
		Boards:        map[ID]*Board{},
		Lists:         map[ID]*List{},
		Cards:         map[ID]*Card{},
		Tags:          map[ID]*Tag{},
	}
}

// AllocID hands out the next monotonic id. Command layer only.
func (s *AppState) AllocID() ID {
	id := s.NextID
	s.NextID++
	return id
}

func (s *AppState) Board(id ID) (*Board, error) {
	if b, ok := s.Boards[id]; ok {
		return b, nil
	}
	return nil, NotFoundError{Kind: "board", ID: id}
}

func (s *AppState) List(id ID) (*List, error) {
	if l, ok := s.Lists[id]; ok {
		return l, nil
	}
	return nil, NotFoundError{Kind: "list", ID: id}
}

func (s *AppState) Card(id ID) (*Card, error) {
	if c, ok := s.Cards[id]; ok {
		return c, nil
	}
	return nil, NotFoundError{Kind: "card", ID: id}
}

func (s *AppState) Tag(id ID) (*Tag, error) {
	if t, ok := s.Tags[id]; ok {
		return t, nil
	}
	return nil, NotFoundError{Kind: "tag", ID: id}
}

// AppendActivity records one display-only history line.
func (s *AppState) AppendActivity(at time.Time, byUser bool, text string) {
	s.Activity = append(s.Activity, ActivityEntry{At: at, ByUser: byUser, Text: text})
}

// Clone returns a deep copy. Background saves serialize a clone so they never
// hold a live reference into the facade's state.
func (s *AppState) Clone() *AppState {
	out := &AppState{
		SchemaVersion: s.SchemaVersion,
		NextID:        s.NextID,
		Boards:        make(map[ID]*Board, len(s.Boards)),
		Lists:         make(map[ID]*List, len(s.Lists)),
		Cards:         make(map[ID]*Card, len(s.Cards)),
		Tags:          make(map[ID]*Tag, len(s.Tags)),
		BoardOrder:    append([]ID(nil), s.BoardOrder...),
		Activity:      append([]ActivityEntry(nil), s.Activity...),
	}
	for id, b := range s.Boards {
		cp := *b
		cp.ListIDs = append([]ID(nil), b.ListIDs...)
		out.Boards[id] = &cp
	}
	for id, l := range s.Lists {
		cp := *l
		cp.CardIDs = append([]ID(nil), l.CardIDs...)
		out.Lists[id] = &cp
	}
	for id, c := range s.Cards {
		cp := *c
		cp.TagIDs = append([]ID(nil), c.TagIDs...)
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
		out.Cards[id] = &cp
	}
	for id, t := range s.Tags {
		cp := *t
		out.Tags[id] = &cp
	}
	return out
}

// CheckIntegrity verifies the cross-reference invariants the command layer
// is required to maintain. A non-nil error is a programming error, not a
// recoverable runtime state.
func (s *AppState) CheckIntegrity() error {
	if len(s.BoardOrder) != len(s.Boards) {
		return fmt.Errorf("board order has %d entries for %d boards", len(s.BoardOrder), len(s.Boards))
	}
	seenBoards := map[ID]bool{}
	for _, id := range s.BoardOrder {
		if seenBoards[id] {
			return fmt.Errorf("board %d appears twice in board order", id)
		}
		seenBoards[id] = true
		if _, ok := s.Boards[id]; !ok {
			return fmt.Errorf("board order references missing board %d", id)
		}
	}

	for id, b := range s.Boards {
		if b.ID != id {
			return fmt.Errorf("board map key %d != board id %d", id, b.ID)
		}
		seen := map[ID]bool{}
		for _, lid := range b.ListIDs {
			if seen[lid] {
				return fmt.Errorf("board %d lists list %d twice", id, lid)
			}
			seen[lid] = true
			l, ok := s.Lists[lid]
			if !ok {
				return fmt.Errorf("board %d references missing list %d", id, lid)
			}
			if l.BoardID != id {
				return fmt.Errorf("list %d is in board %d's sequence but claims board %d", lid, id, l.BoardID)
			}
		}
	}

	for id, l := range s.Lists {
		if l.ID != id {
			return fmt.Errorf("list map key %d != list id %d", id, l.ID)
		}
		b, ok := s.Boards[l.BoardID]
		if !ok {
			return fmt.Errorf("list %d references missing board %d", id, l.BoardID)
		}
		if !containsID(b.ListIDs, id) {
			return fmt.Errorf("list %d missing from board %d's sequence", id, l.BoardID)
		}
		seen := map[ID]bool{}
		for _, cid := range l.CardIDs {
			if seen[cid] {
				return fmt.Errorf("list %d lists card %d twice", id, cid)
			}
			seen[cid] = true
			c, ok := s.Cards[cid]
			if !ok {
				return fmt.Errorf("list %d references missing card %d", id, cid)
			}
			if c.ListID != id {
				return fmt.Errorf("card %d is in list %d's sequence but claims list %d", cid, id, c.ListID)
			}
		}
	}

	for id, c := range s.Cards {
		if c.ID != id {
			return fmt.Errorf("card map key %d != card id %d", id, c.ID)
		}
		l, ok := s.Lists[c.ListID]
		if !ok {
			return fmt.Errorf("card %d references missing list %d", id, c.ListID)
		}
		if !containsID(l.CardIDs, id) {
			return fmt.Errorf("card %d missing from list %d's sequence", id, c.ListID)
		}
		seen := map[ID]bool{}
		for _, tid := range c.TagIDs {
			if seen[tid] {
				return fmt.Errorf("card %d has tag %d twice", id, tid)
			}
			seen[tid] = true
			if _, ok := s.Tags[tid]; !ok {
				return fmt.Errorf("card %d references missing tag %d", id, tid)
			}
		}
	}

	for _, id := range s.allIDs() {
		if id >= s.NextID {
			return fmt.Errorf("entity id %d is not below next id %d", id, s.NextID)
		}
	}
	return nil
}

func (s *AppState) allIDs() []ID {
	var ids []ID
	for id := range s.Boards {
		ids = append(ids, id)
	}
	for id := range s.Lists {
		ids = append(ids, id)
	}
	for id := range s.Cards {
		ids = append(ids, id)
	}
	for id := range s.Tags {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func containsID(ids []ID, id ID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

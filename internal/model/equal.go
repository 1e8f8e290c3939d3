package model

import "reflect"

// StructuralEqual compares the document content of two states: entities,
// ordering, and cross-references. It deliberately ignores NextID (ids are
// never reused, so undo does not rewind the counter) and the activity log
// (display-only history keeps growing through undo/redo).
func StructuralEqual(a, b *AppState) bool {
	if a == nil || b == nil {
		return a == b
	}
	return reflect.DeepEqual(normalize(a), normalize(b))
}

type comparableState struct {
	Boards     map[ID]Board
	Lists      map[ID]List
	Cards      map[ID]Card
	Tags       map[ID]Tag
	BoardOrder []ID
}

func normalize(s *AppState) comparableState {
	out := comparableState{
		Boards:     map[ID]Board{},
		Lists:      map[ID]List{},
		Cards:      map[ID]Card{},
		Tags:       map[ID]Tag{},
		BoardOrder: s.BoardOrder,
	}
	if len(out.BoardOrder) == 0 {
		out.BoardOrder = nil
	}
	for id, b := range s.Boards {
		cp := *b
		if len(cp.ListIDs) == 0 {
			cp.ListIDs = nil
		}
		cp.CreatedAt = cp.CreatedAt.UTC()
		cp.UpdatedAt = cp.UpdatedAt.UTC()
		out.Boards[id] = cp
	}
	for id, l := range s.Lists {
		cp := *l
		if len(cp.CardIDs) == 0 {
			cp.CardIDs = nil
		}
		out.Lists[id] = cp
	}
	for id, c := range s.Cards {
		cp := *c
		if len(cp.TagIDs) == 0 {
			cp.TagIDs = nil
		}
		if len(cp.Meta) == 0 {
			cp.Meta = nil
		}
		// Same instant in a different location (or with a monotonic
		// reading) still compares equal.
		cp.CreatedAt = cp.CreatedAt.UTC()
		cp.UpdatedAt = cp.UpdatedAt.UTC()
		if cp.Due != nil {
			due := cp.Due.UTC()
			cp.Due = &due
		}
		out.Cards[id] = cp
	}
	for id, t := range s.Tags {
		out.Tags[id] = *t
	}
	return out
}

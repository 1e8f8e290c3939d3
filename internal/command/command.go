// Package command represents every user-visible mutation of the app state as
// a reversible value. Apply either fully succeeds and returns the inverse
// command, or fails with no partial mutation visible: each implementation
// validates everything it needs before touching the state.
package command

import "kanbo/internal/model"

type Command interface {
	// Apply performs the mutation and returns a command that undoes it.
	Apply(st *model.AppState) (Command, error)
	// Describe is a short human-readable summary used for the activity log
	// and status messages.
	Describe() string
}

// clampIndex tolerates stale UI positions: out-of-range targets land on the
// nearest valid slot instead of failing.
func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}

func removeID(ids []model.ID, id model.ID) ([]model.ID, int) {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...), i
		}
	}
	return ids, -1
}

func insertID(ids []model.ID, id model.ID, at int) []model.ID {
	at = clampIndex(at, len(ids))
	ids = append(ids, 0)
	copy(ids[at+1:], ids[at:])
	ids[at] = id
	return ids
}

func indexOfID(ids []model.ID, id model.ID) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}

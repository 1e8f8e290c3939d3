package store

import (
	"fmt"

	"kanbo/internal/model"
)

type migration struct {
	from  uint32
	apply func(*model.AppState) error
}

// Steps run in order until the state reaches the current schema version.
// Each step upgrades exactly one version.
var migrations = []migration{
	{from: 1, apply: migrateV1toV2},
}

// Migrate upgrades an already-decoded state in place.
func Migrate(st *model.AppState) error {
	for st.SchemaVersion < model.CurrentSchemaVersion {
		step, ok := findMigration(st.SchemaVersion)
		if !ok {
			return fmt.Errorf("no migration registered from schema v%d", st.SchemaVersion)
		}
		if err := step.apply(st); err != nil {
			return fmt.Errorf("migrate schema v%d: %w", st.SchemaVersion, err)
		}
		st.SchemaVersion++
	}
	return nil
}

func findMigration(from uint32) (migration, bool) {
	for _, m := range migrations {
		if m.from == from {
			return m, true
		}
	}
	return migration{}, false
}

// v1 predates card metadata and the actor flag on activity entries. Old
// files carry zero values for both, so backfill: every v1 activity line was
// user-initiated, and nil entity maps become empty ones.
func migrateV1toV2(st *model.AppState) error {
	if st.Boards == nil {
		st.Boards = map[model.ID]*model.Board{}
	}
	if st.Lists == nil {
		st.Lists = map[model.ID]*model.List{}
	}
	if st.Cards == nil {
		st.Cards = map[model.ID]*model.Card{}
	}
	if st.Tags == nil {
		st.Tags = map[model.ID]*model.Tag{}
	}
	for i := range st.Activity {
		st.Activity[i].ByUser = true
	}
	return nil
}

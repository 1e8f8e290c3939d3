package store

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"kanbo/internal/model"
)

func sampleState(t *testing.T) *model.AppState {
	t.Helper()
	st := model.NewAppState()
	bid := st.AllocID()
	lid := st.AllocID()
	cid := st.AllocID()
	due := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	st.Boards[bid] = &model.Board{ID: bid, Name: "Work", ListIDs: []model.ID{lid}}
	st.BoardOrder = []model.ID{bid}
	st.Lists[lid] = &model.List{ID: lid, Name: "Todo", BoardID: bid, CardIDs: []model.ID{cid}}
	st.Cards[cid] = &model.Card{ID: cid, Title: "Write spec", Due: &due, ListID: lid}
	st.AppendActivity(due, true, "created card \"Write spec\"")
	require.NoError(t, st.CheckIntegrity())
	return st
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "boards", "kanbo.save")
	s := Store{Path: path}
	st := sampleState(t)

	require.NoError(t, s.Save(st))

	got, err := s.Load()
	require.NoError(t, err)
	require.True(t, model.StructuralEqual(st, got), "loaded state differs from saved state")
	require.Equal(t, st.NextID, got.NextID)
	require.Len(t, got.Activity, 1)
	require.True(t, got.Activity[0].ByUser)
}

func TestLoadMissingFileYieldsFreshState(t *testing.T) {
	s := Store{Path: filepath.Join(t.TempDir(), "nope.save")}
	st, err := s.Load()
	require.NoError(t, err)
	require.Empty(t, st.Boards)
	require.Equal(t, uint32(model.CurrentSchemaVersion), st.SchemaVersion)
}

func TestLoadRejectsBadMagicAndLeavesFileAlone(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kanbo.save")
	junk := []byte("GIFO\x00\x00\x00\x02 definitely not msgpack")
	require.NoError(t, os.WriteFile(path, junk, 0o644))

	_, err := Store{Path: path}.Load()
	require.ErrorIs(t, err, ErrCorruptFile)

	after, rerr := os.ReadFile(path)
	require.NoError(t, rerr)
	require.Equal(t, junk, after, "a failed load must not modify the file")
}

func TestLoadRejectsTruncatedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kanbo.save")
	require.NoError(t, os.WriteFile(path, []byte("KNB"), 0o644))
	_, err := Store{Path: path}.Load()
	require.ErrorIs(t, err, ErrCorruptFile)
}

func TestDecodeRejectsNewerSchema(t *testing.T) {
	st := sampleState(t)
	data, err := Encode(st)
	require.NoError(t, err)
	binary.BigEndian.PutUint32(data[4:8], model.CurrentSchemaVersion+1)

	_, err = Decode(data)
	var unsupported UnsupportedSchemaError
	require.ErrorAs(t, err, &unsupported)
	require.Equal(t, uint32(model.CurrentSchemaVersion+1), unsupported.Version)
}

func TestDecodeMigratesV1(t *testing.T) {
	st := sampleState(t)
	st.SchemaVersion = 1
	for i := range st.Activity {
		st.Activity[i].ByUser = false // v1 files have no actor flag
	}
	payload, err := msgpack.Marshal(st)
	require.NoError(t, err)

	data := make([]byte, 8, 8+len(payload))
	copy(data[:4], magic[:])
	binary.BigEndian.PutUint32(data[4:8], 1)
	data = append(data, payload...)

	got, err := Decode(data)
	require.NoError(t, err)
	require.Equal(t, uint32(model.CurrentSchemaVersion), got.SchemaVersion)
	require.True(t, got.Activity[0].ByUser, "v1 activity entries backfill as user actions")
	require.NotNil(t, got.Tags)
}

func TestSaveIsAtomicOverExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kanbo.save")
	s := Store{Path: path}
	require.NoError(t, s.Save(sampleState(t)))

	// Second save replaces the file in one rename; no temp files remain.
	st2 := sampleState(t)
	st2.Boards[st2.BoardOrder[0]].Name = "Play"
	require.NoError(t, s.Save(st2))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files must not survive a successful save")

	got, err := s.Load()
	require.NoError(t, err)
	require.Equal(t, "Play", got.Boards[got.BoardOrder[0]].Name)
}

func TestFallbackSavePath(t *testing.T) {
	require.Equal(t, "/x/kanbo.save.new", FallbackSavePath("/x/kanbo.save"))
}

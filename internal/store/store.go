// Package store serializes the app state to a single self-describing binary
// file: 4 magic bytes, a big-endian uint32 schema version, then a msgpack
// payload. Saves write a temp file and rename it into place, so a crash
// mid-write never clobbers the last good save.
package store

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"

	"kanbo/internal/model"
)

var magic = [4]byte{'K', 'N', 'B', 'O'}

const headerSize = 8

type Store struct {
	// Path of the save file. The parent directory is created on demand.
	Path string
}

// Encode renders the full file image (header + payload) for a state.
func Encode(st *model.AppState) ([]byte, error) {
	payload, err := msgpack.Marshal(st)
	if err != nil {
		return nil, fmt.Errorf("encode state: %w", err)
	}
	buf := make([]byte, headerSize, headerSize+len(payload))
	copy(buf[:4], magic[:])
	binary.BigEndian.PutUint32(buf[4:8], st.SchemaVersion)
	return append(buf, payload...), nil
}

// Decode parses a file image produced by Encode, running migrations when the
// schema version is older than the current one.
func Decode(data []byte) (*model.AppState, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("%w: %d bytes is shorter than the header", ErrCorruptFile, len(data))
	}
	if !bytes.Equal(data[:4], magic[:]) {
		return nil, fmt.Errorf("%w: bad magic %q", ErrCorruptFile, data[:4])
	}
	version := binary.BigEndian.Uint32(data[4:8])
	if version > model.CurrentSchemaVersion {
		return nil, UnsupportedSchemaError{Version: version, Current: model.CurrentSchemaVersion}
	}

	st := model.NewAppState()
	if err := msgpack.Unmarshal(data[headerSize:], st); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptFile, err)
	}
	st.SchemaVersion = version
	if err := Migrate(st); err != nil {
		return nil, err
	}
	return st, nil
}

// Save atomically writes the state to s.Path. Callers pass a snapshot
// (model.AppState.Clone) when saving from a background task.
func (s Store) Save(st *model.AppState) error {
	data, err := Encode(st)
	if err != nil {
		return err
	}
	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	// Temp file in the same directory keeps the rename atomic.
	tmp, err := os.CreateTemp(dir, ".kanbo-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, s.Path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

// Load reads the save file. A missing file is not an error: it yields a
// fresh default state, the same as first launch.
func (s Store) Load() (*model.AppState, error) {
	data, err := os.ReadFile(s.Path)
	if os.IsNotExist(err) {
		return model.NewAppState(), nil
	}
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

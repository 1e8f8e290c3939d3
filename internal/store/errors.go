package store

import (
	"errors"
	"fmt"
)

// ErrCorruptFile means the file exists but its magic bytes are wrong.
// The file is left untouched so the user can inspect or recover it.
var ErrCorruptFile = errors.New("corrupt save file")

// UnsupportedSchemaError means the file was written by a newer program
// version. Refusing to load beats guessing at fields we do not understand.
type UnsupportedSchemaError struct {
	Version uint32
	Current uint32
}

func (e UnsupportedSchemaError) Error() string {
	return fmt.Sprintf("save file schema v%d is newer than supported v%d", e.Version, e.Current)
}

package command

import (
	"errors"
	"fmt"
)

// ErrStaleUndo is reported when an undo or redo no longer applies cleanly.
// Impossible under strict linear history, but defended against anyway: the
// history clears both stacks rather than risking a half-applied state.
var ErrStaleUndo = errors.New("history no longer applies")

var ErrNothingToUndo = errors.New("nothing to undo")
var ErrNothingToRedo = errors.New("nothing to redo")

type DuplicateNameError struct {
	Kind string
	Name string
}

func (e DuplicateNameError) Error() string {
	return fmt.Sprintf("%s name already in use: %q", e.Kind, e.Name)
}

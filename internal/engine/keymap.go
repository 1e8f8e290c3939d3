package engine

import "strings"

// Action names double as config keys, so renames here are user-visible.
type Action string

const (
	ActionQuit          Action = "quit"
	ActionHelp          Action = "help"
	ActionUndo          Action = "undo"
	ActionRedo          Action = "redo"
	ActionSave          Action = "save"
	ActionSearch        Action = "search"
	ActionUp            Action = "up"
	ActionDown          Action = "down"
	ActionLeft          Action = "left"
	ActionRight         Action = "right"
	ActionNextBoard     Action = "next_board"
	ActionPrevBoard     Action = "prev_board"
	ActionOpenCard      Action = "open_card"
	ActionNewCard       Action = "new_card"
	ActionNewList       Action = "new_list"
	ActionNewBoard      Action = "new_board"
	ActionDeleteCard    Action = "delete_card"
	ActionDeleteList    Action = "delete_list"
	ActionDeleteBoard   Action = "delete_board"
	ActionRenameList    Action = "rename_list"
	ActionRenameBoard   Action = "rename_board"
	ActionMoveCardUp    Action = "move_card_up"
	ActionMoveCardDown  Action = "move_card_down"
	ActionMoveCardLeft  Action = "move_card_left"
	ActionMoveCardRight Action = "move_card_right"
	ActionMoveListLeft  Action = "move_list_left"
	ActionMoveListRight Action = "move_list_right"
	ActionAddTag        Action = "add_tag"
	ActionRemoveTag     Action = "remove_tag"
	ActionToggleLog     Action = "toggle_log"
)

// Keymap maps a key chord to the board-view action it triggers. Text-entry
// modes bypass it except for a handful of fixed keys (esc, enter, tab).
type Keymap map[string]Action

func DefaultKeymap() Keymap {
	return Keymap{
		"q":          ActionQuit,
		"ctrl+c":     ActionQuit,
		"?":          ActionHelp,
		"ctrl+z":     ActionUndo,
		"u":          ActionUndo,
		"ctrl+y":     ActionRedo,
		"ctrl+s":     ActionSave,
		"ctrl+p":     ActionSearch,
		"/":          ActionSearch,
		"up":         ActionUp,
		"k":          ActionUp,
		"down":       ActionDown,
		"j":          ActionDown,
		"left":       ActionLeft,
		"h":          ActionLeft,
		"right":      ActionRight,
		"l":          ActionRight,
		"tab":        ActionNextBoard,
		"shift+tab":  ActionPrevBoard,
		"enter":      ActionOpenCard,
		"e":          ActionOpenCard,
		"n":          ActionNewCard,
		"N":          ActionNewList,
		"b":          ActionNewBoard,
		"d":          ActionDeleteCard,
		"X":          ActionDeleteList,
		"D":          ActionDeleteBoard,
		"r":          ActionRenameList,
		"R":          ActionRenameBoard,
		"K":          ActionMoveCardUp,
		"J":          ActionMoveCardDown,
		"H":          ActionMoveCardLeft,
		"L":          ActionMoveCardRight,
		"<":          ActionMoveListLeft,
		">":          ActionMoveListRight,
		"t":          ActionAddTag,
		"T":          ActionRemoveTag,
		"a":          ActionToggleLog,
	}
}

// ApplyOverrides rebinds actions from config. An override replaces the
// action's default chords entirely.
func (m Keymap) ApplyOverrides(overrides map[string]string) {
	for action, chord := range overrides {
		chord = normalizeChord(chord)
		if chord == "" {
			continue
		}
		for existing, a := range m {
			if string(a) == action {
				delete(m, existing)
			}
		}
		m[chord] = Action(action)
	}
}

func (m Keymap) Lookup(k KeyEvent) (Action, bool) {
	a, ok := m[normalizeChord(k.Chord())]
	return a, ok
}

func normalizeChord(chord string) string {
	chord = strings.TrimSpace(chord)
	if len(chord) == 1 {
		// Single-rune chords stay case-sensitive: "d" and "D" differ.
		return chord
	}
	return strings.ToLower(chord)
}

package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"kanbo/internal/engine"
)

// decodeKey translates a terminal key message into the abstract event stream
// the engine consumes. Returns nil for keys the engine has no notion of.
func decodeKey(msg tea.KeyMsg) engine.InputEvent {
	if msg.Paste {
		return engine.PasteEvent{Text: string(msg.Runes)}
	}

	switch msg.Type {
	case tea.KeyEnter:
		return engine.KeyEvent{Code: engine.KeyEnter, Alt: msg.Alt}
	case tea.KeyEsc:
		return engine.KeyEvent{Code: engine.KeyEsc, Alt: msg.Alt}
	case tea.KeyBackspace:
		return engine.KeyEvent{Code: engine.KeyBackspace, Alt: msg.Alt}
	case tea.KeyDelete:
		return engine.KeyEvent{Code: engine.KeyDelete, Alt: msg.Alt}
	case tea.KeyTab:
		return engine.KeyEvent{Code: engine.KeyTab}
	case tea.KeyShiftTab:
		return engine.KeyEvent{Code: engine.KeyBackTab}
	case tea.KeyUp:
		return engine.KeyEvent{Code: engine.KeyUp, Alt: msg.Alt}
	case tea.KeyDown:
		return engine.KeyEvent{Code: engine.KeyDown, Alt: msg.Alt}
	case tea.KeyLeft:
		return engine.KeyEvent{Code: engine.KeyLeft, Alt: msg.Alt}
	case tea.KeyRight:
		return engine.KeyEvent{Code: engine.KeyRight, Alt: msg.Alt}
	case tea.KeyHome:
		return engine.KeyEvent{Code: engine.KeyHome}
	case tea.KeyEnd:
		return engine.KeyEvent{Code: engine.KeyEnd}
	case tea.KeyPgUp:
		return engine.KeyEvent{Code: engine.KeyPageUp}
	case tea.KeyPgDown:
		return engine.KeyEvent{Code: engine.KeyPageDown}
	case tea.KeySpace:
		return engine.KeyEvent{Code: engine.KeySpace, Alt: msg.Alt}
	case tea.KeyRunes:
		if len(msg.Runes) == 1 {
			return engine.KeyEvent{Code: engine.KeyRune, Rune: msg.Runes[0], Alt: msg.Alt}
		}
		// Multi-rune messages are bracketed paste on terminals that do not
		// flag it explicitly.
		return engine.PasteEvent{Text: string(msg.Runes)}
	}

	// Ctrl combinations arrive as dedicated key types; recover the letter
	// from the canonical name ("ctrl+s").
	if s := msg.String(); strings.HasPrefix(s, "ctrl+") && len(s) == len("ctrl+")+1 {
		return engine.KeyEvent{Code: engine.KeyRune, Rune: rune(s[len(s)-1]), Ctrl: true, Alt: msg.Alt}
	}
	return nil
}

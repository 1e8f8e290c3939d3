package engine

// The engine consumes an abstract input stream. The terminal layer decodes
// raw bytes into these values; the engine never sees the terminal library.

type InputEvent interface{ isInputEvent() }

type KeyCode int

const (
	KeyRune KeyCode = iota
	KeyEnter
	KeyEsc
	KeyBackspace
	KeyDelete
	KeyTab
	KeyBackTab
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeySpace
)

type KeyEvent struct {
	Code KeyCode
	Rune rune // meaningful only for KeyRune
	Ctrl bool
	Alt  bool
}

type ResizeEvent struct {
	Width  int
	Height int
}

type PasteEvent struct {
	Text string
}

func (KeyEvent) isInputEvent()    {}
func (ResizeEvent) isInputEvent() {}
func (PasteEvent) isInputEvent()  {}

// Chord renders the event in keymap notation ("ctrl+z", "shift+tab", "Q").
func (k KeyEvent) Chord() string {
	var prefix string
	if k.Ctrl {
		prefix += "ctrl+"
	}
	if k.Alt {
		prefix += "alt+"
	}
	switch k.Code {
	case KeyRune:
		return prefix + string(k.Rune)
	case KeyEnter:
		return prefix + "enter"
	case KeyEsc:
		return prefix + "esc"
	case KeyBackspace:
		return prefix + "backspace"
	case KeyDelete:
		return prefix + "delete"
	case KeyTab:
		return prefix + "tab"
	case KeyBackTab:
		return "shift+tab"
	case KeyUp:
		return prefix + "up"
	case KeyDown:
		return prefix + "down"
	case KeyLeft:
		return prefix + "left"
	case KeyRight:
		return prefix + "right"
	case KeyHome:
		return prefix + "home"
	case KeyEnd:
		return prefix + "end"
	case KeyPageUp:
		return prefix + "pgup"
	case KeyPageDown:
		return prefix + "pgdown"
	case KeySpace:
		return prefix + "space"
	}
	return prefix + "?"
}

package engine

// textField is a minimal editable line buffer with a cursor. Overlay modes
// (card editor, prompts, search) share it so editing behaves the same
// everywhere.
type textField struct {
	runes  []rune
	cursor int
}

func newTextField(initial string) textField {
	r := []rune(initial)
	return textField{runes: r, cursor: len(r)}
}

func (f textField) String() string { return string(f.runes) }
func (f textField) Cursor() int    { return f.cursor }
func (f textField) Empty() bool    { return len(f.runes) == 0 }

func (f *textField) InsertRune(r rune) {
	f.runes = append(f.runes, 0)
	copy(f.runes[f.cursor+1:], f.runes[f.cursor:])
	f.runes[f.cursor] = r
	f.cursor++
}

func (f *textField) InsertString(s string) {
	for _, r := range s {
		f.InsertRune(r)
	}
}

func (f *textField) Backspace() {
	if f.cursor == 0 {
		return
	}
	f.runes = append(f.runes[:f.cursor-1], f.runes[f.cursor:]...)
	f.cursor--
}

func (f *textField) DeleteForward() {
	if f.cursor >= len(f.runes) {
		return
	}
	f.runes = append(f.runes[:f.cursor], f.runes[f.cursor+1:]...)
}

func (f *textField) Left() {
	if f.cursor > 0 {
		f.cursor--
	}
}

func (f *textField) Right() {
	if f.cursor < len(f.runes) {
		f.cursor++
	}
}

func (f *textField) Home() { f.cursor = 0 }
func (f *textField) End()  { f.cursor = len(f.runes) }

// HandleKey applies a key to the buffer and reports whether it consumed it.
func (f *textField) HandleKey(k KeyEvent) bool {
	switch k.Code {
	case KeyRune:
		if k.Ctrl || k.Alt {
			return false
		}
		f.InsertRune(k.Rune)
	case KeySpace:
		f.InsertRune(' ')
	case KeyBackspace:
		f.Backspace()
	case KeyDelete:
		f.DeleteForward()
	case KeyLeft:
		f.Left()
	case KeyRight:
		f.Right()
	case KeyHome:
		f.Home()
	case KeyEnd:
		f.End()
	default:
		return false
	}
	return true
}

package engine

import (
	"strings"
	"time"

	"kanbo/internal/command"
	"kanbo/internal/model"
	"kanbo/internal/search"
)

// --- card editor -----------------------------------------------------------

const (
	fieldTitle = iota
	fieldDescription
	fieldDue
	editorFieldCount
)

const dueDateLayout = "2006-01-02"
const dueDateTimeLayout = "2006-01-02 15:04"

type cardEditor struct {
	cardID model.ID // NoID while creating
	listID model.ID
	fields [editorFieldCount]textField
	focus  int
}

func (e *Engine) openCardEditor(c *model.Card) {
	ed := &cardEditor{cardID: c.ID, listID: c.ListID}
	ed.fields[fieldTitle] = newTextField(c.Title)
	ed.fields[fieldDescription] = newTextField(c.Description)
	if c.Due != nil {
		ed.fields[fieldDue] = newTextField(c.Due.Format(dueDateLayout))
	} else {
		ed.fields[fieldDue] = newTextField("")
	}
	e.editor = ed
	e.mode = ModeEditor
}

func (e *Engine) openNewCardEditor(listID model.ID) {
	e.editor = &cardEditor{cardID: model.NoID, listID: listID}
	e.mode = ModeEditor
}

func (e *Engine) handleEditorKey(k KeyEvent) {
	ed := e.editor
	switch k.Code {
	case KeyEsc:
		e.closeOverlays()
		return
	case KeyTab:
		ed.focus = (ed.focus + 1) % editorFieldCount
		return
	case KeyBackTab:
		ed.focus = (ed.focus + editorFieldCount - 1) % editorFieldCount
		return
	case KeyEnter:
		// The description is multiline; enter inserts a newline there and
		// submits everywhere else.
		if ed.focus == fieldDescription && !k.Ctrl {
			ed.fields[fieldDescription].InsertRune('\n')
			return
		}
		e.submitEditor()
		return
	case KeyUp:
		if ed.focus > 0 {
			ed.focus--
		}
		return
	case KeyDown:
		if ed.focus < editorFieldCount-1 {
			ed.focus++
		}
		return
	}
	ed.fields[ed.focus].HandleKey(k)
}

func (e *Engine) submitEditor() {
	ed := e.editor
	title := strings.TrimSpace(ed.fields[fieldTitle].String())
	if title == "" {
		e.setStatus(StatusWarn, "card title is required")
		return
	}
	due, ok := parseDue(ed.fields[fieldDue].String())
	if !ok {
		e.setStatus(StatusWarn, "due date must be YYYY-MM-DD or YYYY-MM-DD HH:MM")
		return
	}
	desc := ed.fields[fieldDescription].String()

	if ed.cardID == model.NoID {
		e.dispatch(command.CreateCard{
			ListID:      ed.listID,
			Title:       title,
			Description: desc,
			Due:         due,
			At:          e.clock(),
		})
	} else {
		e.dispatch(command.EditCardFields{
			CardID:      ed.cardID,
			Title:       title,
			Description: desc,
			Due:         due,
			At:          e.clock(),
		})
	}
	e.closeOverlays()
}

func parseDue(s string) (*time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, true
	}
	if t, err := time.ParseInLocation(dueDateTimeLayout, s, time.Local); err == nil {
		return &t, true
	}
	if t, err := time.ParseInLocation(dueDateLayout, s, time.Local); err == nil {
		return &t, true
	}
	return nil, false
}

// --- prompts ---------------------------------------------------------------

type promptKind int

const (
	promptNewBoard promptKind = iota
	promptRenameBoard
	promptNewList
	promptRenameList
	promptAddTag
	promptRemoveTag
)

type promptItem struct {
	id    model.ID
	label string
}

type promptState struct {
	kind     promptKind
	title    string
	field    textField
	targetID model.ID
	items    []promptItem
	sel      int
}

func (e *Engine) openPrompt(kind promptKind, title, initial string, target model.ID) {
	e.prompt = &promptState{
		kind:     kind,
		title:    title,
		field:    newTextField(initial),
		targetID: target,
	}
	e.refreshPromptItems()
	e.mode = ModePrompt
}

func (e *Engine) handlePromptKey(k KeyEvent) {
	p := e.prompt
	switch k.Code {
	case KeyEsc:
		e.closeOverlays()
		return
	case KeyEnter:
		e.submitPrompt()
		return
	case KeyUp:
		if p.sel > 0 {
			p.sel--
		}
		return
	case KeyDown:
		if p.sel < len(p.items)-1 {
			p.sel++
		}
		return
	case KeyTab:
		// Complete with the selected suggestion.
		if p.sel < len(p.items) {
			p.field = newTextField(p.items[p.sel].label)
			e.refreshPromptItems()
		}
		return
	}
	if p.field.HandleKey(k) {
		e.afterFieldEdit()
	}
}

// afterFieldEdit refreshes whatever derives from the focused text buffer.
func (e *Engine) afterFieldEdit() {
	switch e.mode {
	case ModePrompt:
		e.refreshPromptItems()
	case ModeSearch:
		e.refreshSearchResults()
	}
}

func (e *Engine) refreshPromptItems() {
	p := e.prompt
	if p == nil {
		return
	}
	p.items = p.items[:0]
	switch p.kind {
	case promptAddTag:
		// Autocomplete against existing tags through the fuzzy index.
		for _, m := range e.idx.Search(p.field.String(), 5) {
			if m.Kind != search.KindTag {
				continue
			}
			if t, err := e.st.Tag(m.ID); err == nil {
				p.items = append(p.items, promptItem{id: t.ID, label: t.Name})
			}
		}
	case promptRemoveTag:
		if c, err := e.st.Card(p.targetID); err == nil {
			for _, tid := range c.TagIDs {
				if t, err := e.st.Tag(tid); err == nil {
					p.items = append(p.items, promptItem{id: t.ID, label: t.Name})
				}
			}
		}
	}
	if p.sel >= len(p.items) {
		p.sel = 0
	}
}

func (e *Engine) submitPrompt() {
	p := e.prompt
	name := strings.TrimSpace(p.field.String())
	switch p.kind {
	case promptNewBoard:
		if name == "" {
			e.setStatus(StatusWarn, "board name is required")
			return
		}
		if e.dispatch(command.CreateBoard{Name: name, At: e.clock()}) {
			e.curBoard = len(e.st.BoardOrder) - 1
			e.curList, e.curCard = 0, 0
		}
	case promptRenameBoard:
		if name == "" {
			e.setStatus(StatusWarn, "board name is required")
			return
		}
		e.dispatch(command.RenameBoard{BoardID: p.targetID, Name: name, At: e.clock()})
	case promptNewList:
		if name == "" {
			e.setStatus(StatusWarn, "list name is required")
			return
		}
		if !e.dispatch(command.CreateList{BoardID: p.targetID, Name: name, At: e.clock()}) {
			return // keep the prompt open so the name can be fixed
		}
		if b := e.currentBoard(); b != nil {
			e.curList = len(b.ListIDs) - 1
			e.curCard = 0
		}
	case promptRenameList:
		if name == "" {
			e.setStatus(StatusWarn, "list name is required")
			return
		}
		if !e.dispatch(command.RenameList{ListID: p.targetID, Name: name}) {
			return
		}
	case promptAddTag:
		e.submitAddTag(p, name)
		return
	case promptRemoveTag:
		if p.sel < len(p.items) {
			e.dispatch(command.RemoveTagFromCard{
				CardID: p.targetID,
				TagID:  p.items[p.sel].id,
				At:     e.clock(),
			})
		}
	}
	e.closeOverlays()
}

func (e *Engine) submitAddTag(p *promptState, name string) {
	// Prefer the highlighted suggestion, then an exact name match, then a
	// brand new tag.
	var tagID model.ID
	if p.sel < len(p.items) && (name == "" || strings.EqualFold(p.items[p.sel].label, name)) {
		tagID = p.items[p.sel].id
	} else if name == "" {
		e.setStatus(StatusWarn, "tag name is required")
		return
	} else if t := e.findTagByName(name); t != nil {
		tagID = t.ID
	} else {
		if !e.dispatch(command.CreateTag{Name: name}) {
			return
		}
		if t := e.findTagByName(name); t != nil {
			tagID = t.ID
		}
	}
	if tagID != model.NoID {
		e.dispatch(command.AddTagToCard{CardID: p.targetID, TagID: tagID, Index: -1, At: e.clock()})
	}
	e.closeOverlays()
}

func (e *Engine) findTagByName(name string) *model.Tag {
	for _, t := range e.st.Tags {
		if strings.EqualFold(t.Name, name) {
			return t
		}
	}
	return nil
}

// --- search overlay --------------------------------------------------------

type searchOverlay struct {
	field   textField
	results []search.Match
	sel     int
}

func (e *Engine) openSearch() {
	e.searchOv = &searchOverlay{field: newTextField("")}
	e.mode = ModeSearch
}

func (e *Engine) handleSearchKey(k KeyEvent) {
	s := e.searchOv
	switch k.Code {
	case KeyEsc:
		e.closeOverlays()
		return
	case KeyEnter:
		e.jumpToSearchResult()
		return
	case KeyUp:
		if s.sel > 0 {
			s.sel--
		}
		return
	case KeyDown:
		if s.sel < len(s.results)-1 {
			s.sel++
		}
		return
	}
	if s.field.HandleKey(k) {
		e.refreshSearchResults()
	}
}

func (e *Engine) refreshSearchResults() {
	s := e.searchOv
	if s == nil {
		return
	}
	s.results = e.idx.Search(s.field.String(), 10)
	if s.sel >= len(s.results) {
		s.sel = 0
	}
}

func (e *Engine) jumpToSearchResult() {
	s := e.searchOv
	if s.sel >= len(s.results) {
		e.closeOverlays()
		return
	}
	m := s.results[s.sel]
	switch m.Kind {
	case search.KindCard:
		e.jumpToCard(m.ID)
	case search.KindTag:
		// Jump to the first card carrying the tag.
		if cid, ok := e.firstCardWithTag(m.ID); ok {
			e.jumpToCard(cid)
		} else {
			e.setStatus(StatusInfo, "no cards carry that tag")
		}
	}
	e.closeOverlays()
}

func (e *Engine) jumpToCard(id model.ID) {
	c, err := e.st.Card(id)
	if err != nil {
		e.setStatus(StatusWarn, err.Error())
		return
	}
	l, err := e.st.List(c.ListID)
	if err != nil {
		return
	}
	b, err := e.st.Board(l.BoardID)
	if err != nil {
		return
	}
	for i, bid := range e.st.BoardOrder {
		if bid == b.ID {
			e.curBoard = i
		}
	}
	for i, lid := range b.ListIDs {
		if lid == l.ID {
			e.curList = i
		}
	}
	for i, cid := range l.CardIDs {
		if cid == c.ID {
			e.curCard = i
		}
	}
}

func (e *Engine) firstCardWithTag(tagID model.ID) (model.ID, bool) {
	// Walk in display order so the jump is deterministic.
	for _, bid := range e.st.BoardOrder {
		b := e.st.Boards[bid]
		for _, lid := range b.ListIDs {
			l := e.st.Lists[lid]
			for _, cid := range l.CardIDs {
				for _, tid := range e.st.Cards[cid].TagIDs {
					if tid == tagID {
						return cid, true
					}
				}
			}
		}
	}
	return 0, false
}

// --- confirm dialog --------------------------------------------------------

type confirmState struct {
	title         string
	body          string
	cmd           command.Command
	confirmActive bool
}

func (e *Engine) openConfirm(title, body string, cmd command.Command) {
	e.confirm = &confirmState{title: title, body: body, cmd: cmd}
	e.mode = ModeConfirm
}

func (e *Engine) handleConfirmKey(k KeyEvent) {
	c := e.confirm
	switch k.Chord() {
	case "esc", "n":
		e.closeOverlays()
	case "y":
		e.dispatch(c.cmd)
		e.closeOverlays()
	case "tab", "left", "right", "h", "l":
		c.confirmActive = !c.confirmActive
	case "enter":
		if c.confirmActive {
			e.dispatch(c.cmd)
		}
		e.closeOverlays()
	}
}

func (e *Engine) closeOverlays() {
	e.editor = nil
	e.searchOv = nil
	e.prompt = nil
	e.confirm = nil
	e.mode = ModeBoard
}

func (e *Engine) focusedField() *textField {
	switch e.mode {
	case ModeEditor:
		if e.editor != nil {
			return &e.editor.fields[e.editor.focus]
		}
	case ModePrompt:
		if e.prompt != nil {
			return &e.prompt.field
		}
	case ModeSearch:
		if e.searchOv != nil {
			return &e.searchOv.field
		}
	}
	return nil
}

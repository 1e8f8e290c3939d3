package engine

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"kanbo/internal/model"
	"kanbo/internal/search"
)

// dueSoonWindow is how far ahead a due date starts getting flagged.
const dueSoonWindow = 72 * time.Hour

// Snapshot renders the engine state into a ViewModel. It is called after
// every event and completion, and never mutates anything.
func (e *Engine) Snapshot() ViewModel {
	vm := ViewModel{
		Title:   "kanbo",
		Status:  e.status,
		ShowLog: e.showLog,
		Busy:    e.saving || e.loading,
		Unsaved: e.dirty,
	}
	if e.latestVersion != "" {
		vm.Title = fmt.Sprintf("kanbo (update %s available)", e.latestVersion)
	}

	now := e.clock()
	for i, bid := range e.st.BoardOrder {
		b := e.st.Boards[bid]
		vm.Tabs = append(vm.Tabs, TabVM{ID: b.ID, Name: b.Name, Selected: i == e.curBoard})
	}
	if b := e.currentBoard(); b != nil {
		for li, lid := range b.ListIDs {
			l := e.st.Lists[lid]
			col := ColumnVM{ID: l.ID, Title: l.Name, Selected: li == e.curList}
			for ci, cid := range l.CardIDs {
				c := e.st.Cards[cid]
				col.Cards = append(col.Cards, e.cardVM(c, now, col.Selected && ci == e.curCard))
			}
			vm.Columns = append(vm.Columns, col)
		}
	} else {
		vm.EmptyNotice = "No boards yet. Press 'b' to create one."
	}

	for _, a := range e.st.Activity {
		vm.Activity = append(vm.Activity, ActivityVM{
			When:   a.At.Format("15:04:05"),
			ByUser: a.ByUser,
			Text:   a.Text,
		})
	}

	vm.Overlay = e.overlayVM()
	return vm
}

func (e *Engine) cardVM(c *model.Card, now time.Time, selected bool) CardVM {
	cv := CardVM{ID: c.ID, Title: c.Title, Selected: selected}
	if c.Due != nil {
		cv.DueLabel = c.Due.Format(dueDateLayout)
		switch {
		case c.Due.Before(now):
			cv.Overdue = true
		case c.Due.Before(now.Add(dueSoonWindow)):
			cv.DueSoon = true
		}
	}
	for _, tid := range c.TagIDs {
		if t, ok := e.st.Tags[tid]; ok {
			cv.Tags = append(cv.Tags, t.Name)
		}
	}
	return cv
}

func (e *Engine) overlayVM() *OverlayVM {
	switch e.mode {
	case ModeEditor:
		return e.editorVM()
	case ModeSearch:
		return e.searchVM()
	case ModePrompt:
		return e.promptVM()
	case ModeConfirm:
		return e.confirmVM()
	case ModeHelp:
		return e.helpVM()
	}
	return nil
}

func (e *Engine) editorVM() *OverlayVM {
	ed := e.editor
	title := "Edit card"
	if ed.cardID == model.NoID {
		title = "New card"
	}
	labels := [editorFieldCount]string{"Title", "Description", "Due"}
	ov := &OverlayVM{Kind: OverlayEditor, Title: title, FieldFocus: ed.focus}
	for i := range ed.fields {
		ov.Fields = append(ov.Fields, FieldVM{
			Label:  labels[i],
			Value:  ed.fields[i].String(),
			Cursor: ed.fields[i].Cursor(),
			Focus:  i == ed.focus,
		})
	}
	// The renderer shows the description as markdown next to the form.
	ov.Body = ed.fields[fieldDescription].String()
	return ov
}

func (e *Engine) searchVM() *OverlayVM {
	s := e.searchOv
	ov := &OverlayVM{
		Kind:         OverlaySearch,
		Title:        "Jump to",
		Fields:       []FieldVM{{Value: s.field.String(), Cursor: s.field.Cursor(), Focus: true}},
		ItemSelected: s.sel,
	}
	for i, m := range s.results {
		ov.Items = append(ov.Items, e.searchItemVM(m, i == s.sel))
	}
	return ov
}

func (e *Engine) searchItemVM(m search.Match, selected bool) OverlayItemVM {
	it := OverlayItemVM{ID: m.ID, Selected: selected}
	switch m.Kind {
	case search.KindCard:
		if c, err := e.st.Card(m.ID); err == nil {
			it.Label = c.Title
			if l, err := e.st.List(c.ListID); err == nil {
				it.Detail = l.Name
				if b, err := e.st.Board(l.BoardID); err == nil {
					it.Detail = b.Name + " / " + l.Name
				}
			}
		}
	case search.KindTag:
		if t, err := e.st.Tag(m.ID); err == nil {
			it.Label = t.Name
			it.Detail = "tag"
		}
	}
	return it
}

func (e *Engine) promptVM() *OverlayVM {
	p := e.prompt
	ov := &OverlayVM{
		Kind:         OverlayPrompt,
		Title:        p.title,
		Fields:       []FieldVM{{Value: p.field.String(), Cursor: p.field.Cursor(), Focus: true}},
		ItemSelected: p.sel,
	}
	for i, it := range p.items {
		ov.Items = append(ov.Items, OverlayItemVM{ID: it.id, Label: it.label, Selected: i == p.sel})
	}
	return ov
}

func (e *Engine) confirmVM() *OverlayVM {
	c := e.confirm
	return &OverlayVM{
		Kind:          OverlayConfirm,
		Title:         c.title,
		Body:          c.body,
		ConfirmLabel:  "Delete",
		CancelLabel:   "Cancel",
		ConfirmActive: c.confirmActive,
	}
}

func (e *Engine) helpVM() *OverlayVM {
	return &OverlayVM{Kind: OverlayHelp, Title: "Help", Body: e.helpBody()}
}

// helpBody lists the live bindings, grouped per action, so overrides from
// config show up instead of the defaults.
func (e *Engine) helpBody() string {
	byAction := map[Action][]string{}
	for chord, a := range e.keymap {
		byAction[a] = append(byAction[a], chord)
	}
	order := []struct {
		action Action
		label  string
	}{
		{ActionUp, "Move selection up"},
		{ActionDown, "Move selection down"},
		{ActionLeft, "Previous list"},
		{ActionRight, "Next list"},
		{ActionNextBoard, "Next board"},
		{ActionPrevBoard, "Previous board"},
		{ActionOpenCard, "Open card"},
		{ActionNewCard, "New card"},
		{ActionNewList, "New list"},
		{ActionNewBoard, "New board"},
		{ActionRenameList, "Rename list"},
		{ActionRenameBoard, "Rename board"},
		{ActionDeleteCard, "Delete card"},
		{ActionDeleteList, "Delete list"},
		{ActionDeleteBoard, "Delete board"},
		{ActionMoveCardUp, "Move card up"},
		{ActionMoveCardDown, "Move card down"},
		{ActionMoveCardLeft, "Move card left"},
		{ActionMoveCardRight, "Move card right"},
		{ActionMoveListLeft, "Move list left"},
		{ActionMoveListRight, "Move list right"},
		{ActionAddTag, "Add tag"},
		{ActionRemoveTag, "Remove tag"},
		{ActionSearch, "Search / jump"},
		{ActionUndo, "Undo"},
		{ActionRedo, "Redo"},
		{ActionSave, "Save"},
		{ActionToggleLog, "Toggle activity log"},
		{ActionHelp, "Help"},
		{ActionQuit, "Quit"},
	}
	var b strings.Builder
	b.WriteString("# Keys\n\n")
	for _, row := range order {
		chords := byAction[row.action]
		if len(chords) == 0 {
			continue
		}
		sort.Strings(chords)
		fmt.Fprintf(&b, "- **%s**: %s\n", strings.Join(chords, ", "), row.label)
	}
	return b.String()
}

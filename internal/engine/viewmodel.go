package engine

import "kanbo/internal/model"

// ViewModel is the abstract render tree handed to the terminal layer after
// every processed event or completion. It carries structure and emphasis
// hints, never terminal styling.

type ViewModel struct {
	Title   string
	Tabs    []TabVM
	Columns []ColumnVM
	Overlay *OverlayVM
	Status  StatusVM
	// Activity is newest-last; the renderer decides how much fits.
	Activity    []ActivityVM
	ShowLog     bool
	Busy        bool // a background save or load is in flight
	Unsaved     bool
	EmptyNotice string // shown when there are no boards yet
}

type TabVM struct {
	ID       model.ID
	Name     string
	Selected bool
}

type ColumnVM struct {
	ID       model.ID
	Title    string
	Cards    []CardVM
	Selected bool
}

type CardVM struct {
	ID       model.ID
	Title    string
	DueLabel string
	DueSoon  bool
	Overdue  bool
	Tags     []string
	Selected bool
}

type StatusLevel int

const (
	StatusInfo StatusLevel = iota
	StatusWarn
	StatusError
)

type StatusVM struct {
	Text  string
	Level StatusLevel
}

type ActivityVM struct {
	When   string
	ByUser bool
	Text   string
}

type OverlayKind int

const (
	OverlayEditor OverlayKind = iota
	OverlaySearch
	OverlayPrompt
	OverlayConfirm
	OverlayHelp
)

type OverlayVM struct {
	Kind  OverlayKind
	Title string

	// Editor fields / single prompt field.
	Fields     []FieldVM
	FieldFocus int

	// Markdown body for the editor's description preview, or help text.
	Body string

	// Search / picker results.
	Items        []OverlayItemVM
	ItemSelected int

	// Confirm dialog.
	ConfirmLabel  string
	CancelLabel   string
	ConfirmActive bool
}

type FieldVM struct {
	Label  string
	Value  string
	Cursor int
	Focus  bool
}

type OverlayItemVM struct {
	ID       model.ID
	Label    string
	Detail   string
	Selected bool
}

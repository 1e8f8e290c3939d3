// Package engine is the single-threaded control loop over the app state.
// It consumes abstract input events and background-task completions, turns
// them into commands, and emits a ViewModel snapshot after each one. Nothing
// else mutates the state.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"kanbo/internal/command"
	"kanbo/internal/model"
	"kanbo/internal/search"
	"kanbo/internal/store"
	"kanbo/internal/task"
	"kanbo/internal/update"
)

type Mode int

const (
	ModeBoard Mode = iota
	ModeEditor
	ModeSearch
	ModePrompt
	ModeConfirm
	ModeHelp
)

const statusTTL = 4 * time.Second

type Options struct {
	Store          store.Store
	UndoDepth      int
	GramSize       int
	Keymap         Keymap
	Logger         *slog.Logger
	UpdateEndpoint string
	// Clock is overridable for tests; nil means time.Now.
	Clock func() time.Time
}

type Engine struct {
	st    *model.AppState
	hist  *command.History
	idx   *search.Index
	sup   *task.Supervisor
	store store.Store
	log   *slog.Logger

	keymap         Keymap
	clock          func() time.Time
	undoDepth      int
	updateEndpoint string

	mode          Mode
	width, height int

	curBoard int
	curList  int
	curCard  int

	editor   *cardEditor
	searchOv *searchOverlay
	prompt   *promptState
	confirm  *confirmState

	status       StatusVM
	statusExpiry time.Time

	// mutCount lets a save completion tell whether its snapshot is still
	// current: commands applied after dispatch keep the state dirty.
	mutCount      uint64
	saveMark      uint64
	dirty         bool
	saving        bool
	loading       bool
	quitAfterSave bool
	quitting      bool
	showLog       bool

	latestVersion string
}

func New(opts Options) *Engine {
	if opts.Keymap == nil {
		opts.Keymap = DefaultKeymap()
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.UpdateEndpoint == "" {
		opts.UpdateEndpoint = update.DefaultEndpoint
	}
	e := &Engine{
		st:             model.NewAppState(),
		hist:           command.NewHistory(opts.UndoDepth),
		idx:            search.New(opts.GramSize, nil),
		sup:            task.NewSupervisor(0),
		store:          opts.Store,
		log:            opts.Logger,
		keymap:         opts.Keymap,
		clock:          opts.Clock,
		undoDepth:      opts.UndoDepth,
		updateEndpoint: opts.UpdateEndpoint,
	}
	return e
}

// State exposes the aggregate root read-only (tests, export).
func (e *Engine) State() *model.AppState { return e.st }

// AdoptState replaces the state wholesale (initial synchronous load, tests).
// History and index restart from scratch.
func (e *Engine) AdoptState(st *model.AppState) {
	e.st = st
	e.hist = command.NewHistory(e.undoDepth)
	e.rebuildIndex()
	e.curBoard, e.curList, e.curCard = 0, 0, 0
	e.dirty = false
}

func (e *Engine) Completions() <-chan task.Completion { return e.sup.Completions() }
func (e *Engine) Quitting() bool                      { return e.quitting }
func (e *Engine) Busy() bool                          { return e.saving || e.loading }
func (e *Engine) Dirty() bool                         { return e.dirty }
func (e *Engine) Mode() Mode                          { return e.mode }

// HandleEvent processes one input event to completion. It runs on the single
// control thread; no locking is needed anywhere in the engine.
func (e *Engine) HandleEvent(ev InputEvent) {
	switch ev := ev.(type) {
	case ResizeEvent:
		e.width, e.height = ev.Width, ev.Height
	case PasteEvent:
		e.handlePaste(ev)
	case KeyEvent:
		e.handleKey(ev)
	}
	e.expireStatus()
}

func (e *Engine) handleKey(k KeyEvent) {
	switch e.mode {
	case ModeBoard:
		e.handleBoardKey(k)
	case ModeEditor:
		e.handleEditorKey(k)
	case ModeSearch:
		e.handleSearchKey(k)
	case ModePrompt:
		e.handlePromptKey(k)
	case ModeConfirm:
		e.handleConfirmKey(k)
	case ModeHelp:
		e.handleHelpKey(k)
	}
}

func (e *Engine) handlePaste(p PasteEvent) {
	if f := e.focusedField(); f != nil {
		f.InsertString(p.Text)
		e.afterFieldEdit()
	}
	// Board mode has no text target; paste is ignored there.
}

// dispatch runs one command atomically: on success it records the inverse,
// appends an activity line, and reindexes only the affected entities. On
// failure the state is untouched and the error becomes a status banner.
func (e *Engine) dispatch(cmd command.Command) bool {
	inv, err := cmd.Apply(e.st)
	if err != nil {
		e.reportCommandError(err)
		return false
	}
	e.hist.Record(inv)
	e.st.AppendActivity(e.clock(), true, cmd.Describe())
	e.reindex(cmd, inv)
	e.markMutated()
	e.clampCursors()
	e.setStatus(StatusInfo, cmd.Describe())
	return true
}

func (e *Engine) undo() {
	applied, err := e.hist.Undo(e.st)
	if err != nil {
		e.reportHistoryError(err)
		return
	}
	e.st.AppendActivity(e.clock(), true, "undo: "+applied.Cmd.Describe())
	e.reindex(applied.Cmd, applied.Inverse)
	e.markMutated()
	e.clampCursors()
	e.setStatus(StatusInfo, "undid: "+applied.Cmd.Describe())
}

func (e *Engine) redo() {
	applied, err := e.hist.Redo(e.st)
	if err != nil {
		e.reportHistoryError(err)
		return
	}
	e.st.AppendActivity(e.clock(), true, "redo: "+applied.Cmd.Describe())
	e.reindex(applied.Cmd, applied.Inverse)
	e.markMutated()
	e.clampCursors()
	e.setStatus(StatusInfo, "redid: "+applied.Cmd.Describe())
}

func (e *Engine) markMutated() {
	e.mutCount++
	e.dirty = true
}

func (e *Engine) reportCommandError(err error) {
	var nf model.NotFoundError
	var dup command.DuplicateNameError
	switch {
	case errors.As(err, &nf):
		e.setStatus(StatusWarn, err.Error())
	case errors.As(err, &dup):
		e.setStatus(StatusWarn, err.Error())
	default:
		e.setStatus(StatusError, err.Error())
	}
	e.log.Warn("command rejected", "err", err)
}

func (e *Engine) reportHistoryError(err error) {
	switch {
	case errors.Is(err, command.ErrNothingToUndo), errors.Is(err, command.ErrNothingToRedo):
		e.setStatus(StatusInfo, err.Error())
	case errors.Is(err, command.ErrStaleUndo):
		// Both stacks were cleared; the state itself is intact.
		e.setStatus(StatusError, "history diverged and was cleared")
		e.log.Error("stale undo", "err", err)
	default:
		e.setStatus(StatusError, err.Error())
	}
}

// RequestSave snapshots the state on the control thread and hands the copy
// to a background task. A save already in flight absorbs the request.
func (e *Engine) RequestSave() {
	snap := e.st.Clone()
	st := e.store
	mark := e.mutCount
	started := e.sup.Dispatch(task.KindSave, func() (any, error) {
		return nil, st.Save(snap)
	})
	if started {
		e.saving = true
		e.saveMark = mark
	} else {
		e.setStatus(StatusInfo, "save already in progress")
	}
}

// StartLoad dispatches the initial (or a manual) load.
func (e *Engine) StartLoad() {
	st := e.store
	if e.sup.Dispatch(task.KindLoad, func() (any, error) { return st.Load() }) {
		e.loading = true
	}
}

// StartUpdateCheck fires the optional remote version check. Bounded by a
// timeout; offline means a Failure completion which is merely logged.
func (e *Engine) StartUpdateCheck() {
	endpoint := e.updateEndpoint
	e.sup.Dispatch(task.KindUpdateCheck, func() (any, error) {
		ctx, cancel := context.WithTimeout(context.Background(), update.DefaultTimeout)
		defer cancel()
		return update.Check(ctx, endpoint)
	})
}

// Autosave is driven by the outer loop's timer.
func (e *Engine) Autosave() {
	if e.dirty && !e.saving {
		e.RequestSave()
	}
}

// RequestQuit saves unsaved work first, then quits when the save lands.
func (e *Engine) RequestQuit() {
	if !e.dirty {
		e.quitting = true
		return
	}
	e.quitAfterSave = true
	e.RequestSave()
	e.setStatus(StatusInfo, "saving before exit...")
}

// HandleCompletion consumes one terminal message from a background task.
// Like HandleEvent it runs only on the control thread.
func (e *Engine) HandleCompletion(c task.Completion) {
	switch c.Kind {
	case task.KindSave:
		e.handleSaveDone(c)
	case task.KindLoad:
		e.handleLoadDone(c)
	case task.KindUpdateCheck:
		e.handleUpdateDone(c)
	}
	e.expireStatus()
}

func (e *Engine) handleSaveDone(c task.Completion) {
	if e.sup.InFlight(task.KindSave) {
		// A newer save was dispatched before this completion was consumed.
		// Only the newest one may settle the dirty flag or a pending quit.
		if c.Err != nil {
			e.log.Error("save failed", "err", c.Err)
		}
		return
	}
	e.saving = false
	if c.Err != nil {
		// The in-memory state stays authoritative; the user decides what
		// to do. Never terminate over an I/O failure.
		e.quitAfterSave = false
		e.setStatus(StatusError, "save failed: "+c.Err.Error())
		e.log.Error("save failed", "err", c.Err)
		return
	}
	if e.mutCount == e.saveMark {
		e.dirty = false
	}
	if e.quitAfterSave && e.dirty {
		// The snapshot that just landed predates the latest edits. The
		// supervisor is free again, so save once more and quit only when
		// a current snapshot is on disk.
		e.RequestSave()
		return
	}
	e.setStatus(StatusInfo, "saved")
	if e.quitAfterSave {
		e.quitting = true
	}
}

func (e *Engine) handleLoadDone(c task.Completion) {
	e.loading = false
	if c.Err != nil {
		var unsupported store.UnsupportedSchemaError
		switch {
		case errors.As(c.Err, &unsupported):
			// Fresh default, and never overwrite the newer file: future
			// saves land next to it instead.
			e.store.Path = store.FallbackSavePath(e.store.Path)
			e.setStatus(StatusError, fmt.Sprintf("%v; starting fresh, saving to %s", c.Err, e.store.Path))
		case errors.Is(c.Err, store.ErrCorruptFile):
			e.setStatus(StatusError, "could not read save file: "+c.Err.Error())
		default:
			e.setStatus(StatusError, "load failed: "+c.Err.Error())
		}
		e.log.Error("load failed", "err", c.Err)
		return
	}
	st, ok := c.Payload.(*model.AppState)
	if !ok || st == nil {
		e.setStatus(StatusError, "load returned no state")
		return
	}
	if e.dirty {
		// The user started working before the load landed. Their edits
		// win; the stale result is simply ignored.
		e.setStatus(StatusWarn, "load finished after local changes; keeping changes")
		return
	}
	e.AdoptState(st)
	e.setStatus(StatusInfo, "loaded")
}

func (e *Engine) handleUpdateDone(c task.Completion) {
	if c.Err != nil {
		e.log.Debug("update check skipped", "err", c.Err)
		return
	}
	latest, _ := c.Payload.(string)
	if latest != "" && update.IsNewer(latest, update.Version) {
		e.latestVersion = latest
		e.setStatus(StatusInfo, "new version available: "+latest)
	}
}

func (e *Engine) setStatus(level StatusLevel, text string) {
	e.status = StatusVM{Text: text, Level: level}
	e.statusExpiry = e.clock().Add(statusTTL)
}

func (e *Engine) expireStatus() {
	if e.status.Text != "" && e.clock().After(e.statusExpiry) {
		e.status = StatusVM{}
	}
}

// Tick lets the outer loop expire transient status banners.
func (e *Engine) Tick() { e.expireStatus() }

func (e *Engine) reindex(cmds ...command.Command) {
	cards, tags := command.Affected(cmds...)
	for _, id := range cards {
		if c, err := e.st.Card(id); err == nil {
			e.indexCard(c)
		} else {
			e.idx.Remove(id)
		}
	}
	for _, id := range tags {
		if t, err := e.st.Tag(id); err == nil {
			e.indexTag(t)
		} else {
			e.idx.Remove(id)
		}
	}
}

func (e *Engine) rebuildIndex() {
	e.idx = search.New(e.idx.GramSize(), nil)
	for _, c := range e.st.Cards {
		e.indexCard(c)
	}
	for _, t := range e.st.Tags {
		e.indexTag(t)
	}
}

func (e *Engine) indexCard(c *model.Card) {
	e.idx.Upsert(c.ID, search.KindCard, c.Title+"\n"+c.Description, c.UpdatedAt)
}

func (e *Engine) indexTag(t *model.Tag) {
	// Tags carry no timestamp; recency ties resolve by id.
	e.idx.Upsert(t.ID, search.KindTag, t.Name, time.Time{})
}

// Search is the synchronous query surface used by overlays and tests.
func (e *Engine) Search(text string, limit int) []search.Match {
	return e.idx.Search(text, limit)
}

func (e *Engine) currentBoard() *model.Board {
	if e.curBoard >= len(e.st.BoardOrder) {
		return nil
	}
	return e.st.Boards[e.st.BoardOrder[e.curBoard]]
}

func (e *Engine) currentList() *model.List {
	b := e.currentBoard()
	if b == nil || e.curList >= len(b.ListIDs) {
		return nil
	}
	return e.st.Lists[b.ListIDs[e.curList]]
}

func (e *Engine) currentCard() *model.Card {
	l := e.currentList()
	if l == nil || e.curCard >= len(l.CardIDs) {
		return nil
	}
	return e.st.Cards[l.CardIDs[e.curCard]]
}

// clampCursors keeps the selection valid after any mutation. Commands may
// remove the entity under the cursor; the cursor slides rather than dangles.
func (e *Engine) clampCursors() {
	if e.curBoard >= len(e.st.BoardOrder) {
		e.curBoard = max(0, len(e.st.BoardOrder)-1)
	}
	b := e.currentBoard()
	if b == nil {
		e.curList, e.curCard = 0, 0
		return
	}
	if e.curList >= len(b.ListIDs) {
		e.curList = max(0, len(b.ListIDs)-1)
	}
	l := e.currentList()
	if l == nil {
		e.curCard = 0
		return
	}
	if e.curCard >= len(l.CardIDs) {
		e.curCard = max(0, len(l.CardIDs)-1)
	}
}

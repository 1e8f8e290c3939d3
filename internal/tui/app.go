package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"kanbo/internal/engine"
	"kanbo/internal/task"
)

type completionMsg task.Completion

type autosaveTickMsg struct{}
type statusTickMsg struct{}

type appModel struct {
	eng *engine.Engine

	spin    spinner.Model
	logView viewport.Model

	autosaveEvery time.Duration

	width  int
	height int
}

func newAppModel(eng *engine.Engine, autosaveEvery time.Duration) appModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(colorAccent)
	return appModel{
		eng:           eng,
		spin:          sp,
		logView:       viewport.New(0, 0),
		autosaveEvery: autosaveEvery,
	}
}

func (m appModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.waitForCompletion(), statusTick(), m.spin.Tick}
	if m.autosaveEvery > 0 {
		cmds = append(cmds, autosaveTick(m.autosaveEvery))
	}
	return tea.Batch(cmds...)
}

// waitForCompletion bridges the supervisor's channel into the message loop;
// each received completion re-arms the wait.
func (m appModel) waitForCompletion() tea.Cmd {
	ch := m.eng.Completions()
	return func() tea.Msg {
		return completionMsg(<-ch)
	}
}

func autosaveTick(every time.Duration) tea.Cmd {
	return tea.Tick(every, func(time.Time) tea.Msg { return autosaveTickMsg{} })
}

func statusTick() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return statusTickMsg{} })
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.eng.HandleEvent(engine.ResizeEvent{Width: msg.Width, Height: msg.Height})
		m.logView.Width = msg.Width - 4
		m.logView.Height = logPanelHeight
		return m, nil

	case tea.KeyMsg:
		if ev := decodeKey(msg); ev != nil {
			m.eng.HandleEvent(ev)
		}
		if m.eng.Quitting() {
			return m, tea.Quit
		}
		return m, nil

	case completionMsg:
		m.eng.HandleCompletion(task.Completion(msg))
		if m.eng.Quitting() {
			return m, tea.Quit
		}
		return m, m.waitForCompletion()

	case autosaveTickMsg:
		m.eng.Autosave()
		return m, autosaveTick(m.autosaveEvery)

	case statusTickMsg:
		m.eng.Tick()
		return m, statusTick()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m appModel) View() string {
	return m.render(m.eng.Snapshot())
}

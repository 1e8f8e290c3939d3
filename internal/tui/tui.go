// Package tui is the terminal front end. It owns the program loop and all
// rendering; every state change goes through the engine.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"kanbo/internal/engine"
)

// Run blocks until the user quits (or the program errors out). The engine
// must already have its initial load and update check dispatched.
func Run(eng *engine.Engine, autosaveEvery time.Duration) error {
	m := newAppModel(eng, autosaveEvery)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

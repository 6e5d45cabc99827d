package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/DaanHessen/daybreak/internal/engine"
	"github.com/DaanHessen/daybreak/internal/text"
)

// Options configures the TUI.
type Options struct {
	Narrator text.Narrator
	Theme    string
	Seed     string
	Archive  ArchiveFunc
}

// Run starts the first game and blocks until the program exits. ctl must
// have been built with panel as its presenter.
func Run(ctx context.Context, ctl *engine.Controller, panel *Panel, opts Options) error {
	m := newModel(ctx, ctl, panel, opts)
	m.startGame()
	program := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen())
	_, err := program.Run()
	return err
}

package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"fit4/internal/model"
)

// Run launches the directory browser rooted at dir and blocks until the user
// quits or ctx is canceled.
func Run(ctx context.Context, dir string, opts model.Options) error {
	m := NewModel(ctx, dir, opts)
	prog := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen())
	final, err := prog.Run()
	if fm, ok := final.(Model); ok {
		fm.cancel()
	}
	if err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

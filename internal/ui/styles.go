package ui

import "github.com/charmbracelet/lipgloss"

type Styles struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Cursor   lipgloss.Style
	Selected lipgloss.Style
	Size     lipgloss.Style
	Dir      lipgloss.Style
	File     lipgloss.Style
	Error    lipgloss.Style
	Faint    lipgloss.Style
	Spinner  lipgloss.Style
}

func defaultStyles() Styles {
	base := lipgloss.NewStyle()
	return Styles{
		Title:    base.Bold(true).Foreground(lipgloss.Color("#7D56F4")),
		Subtitle: base.Faint(true),
		Cursor:   base.Bold(true).Foreground(lipgloss.Color("#7D56F4")),
		Selected: base.Bold(true),
		Size:     base.Foreground(lipgloss.Color("#22D3EE")),
		Dir:      base.Foreground(lipgloss.Color("#60A5FA")),
		File:     base.Foreground(lipgloss.Color("#D1D5DB")),
		Error:    base.Foreground(lipgloss.Color("#EF4444")),
		Faint:    base.Faint(true),
		Spinner:  base.Foreground(lipgloss.Color("#22D3EE")),
	}
}

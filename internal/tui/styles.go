// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tui

import "github.com/charmbracelet/lipgloss"

var (
	accent      = lipgloss.Color("#8BC34A")
	muted       = lipgloss.Color("#7a8699")
	destructive = lipgloss.Color("#e53935")
)

// Styles holds the lipgloss styles of every surface.
type Styles struct {
	Header   lipgloss.Style
	Title    lipgloss.Style
	Muted    lipgloss.Style
	Error    lipgloss.Style
	Selected lipgloss.Style
	Field    lipgloss.Style
	Plot     lipgloss.Style
	Help     lipgloss.Style
}

// DefaultStyles returns the explorer palette.
func DefaultStyles() Styles {
	return Styles{
		Header:   lipgloss.NewStyle().Bold(true).Foreground(accent),
		Title:    lipgloss.NewStyle().Bold(true),
		Muted:    lipgloss.NewStyle().Foreground(muted),
		Error:    lipgloss.NewStyle().Foreground(destructive),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(accent),
		Field:    lipgloss.NewStyle().Bold(true).Underline(true).Foreground(accent),
		Plot:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(muted),
		Help:     lipgloss.NewStyle().Foreground(muted),
	}
}

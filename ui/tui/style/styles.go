package style

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles holds all the lipgloss styles for the preview.
type Styles struct {
	// Bars
	TitleBar  lipgloss.Style
	StatusBar lipgloss.Style

	// Title bar content
	Title  lipgloss.Style
	Script lipgloss.Style
	Meta   lipgloss.Style

	// Status bar content
	Help    lipgloss.Style
	Percent lipgloss.Style
	Error   lipgloss.Style
}

// DefaultStyles returns the default style configuration.
func DefaultStyles() Styles {
	return Styles{
		TitleBar: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")),
		StatusBar: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("71")), // Muted green
		Script: lipgloss.NewStyle().
			Foreground(lipgloss.Color("250")),
		Meta: lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")), // Gray

		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")),
		Percent: lipgloss.NewStyle().
			Foreground(lipgloss.Color("179")), // Muted yellow
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("167")), // Muted red
	}
}

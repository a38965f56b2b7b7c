package prefs

import "github.com/charmbracelet/lipgloss"

// Styles defines the look of the preferences screen.
type Styles struct {
	Title    lipgloss.Style
	Item     lipgloss.Style
	Selected lipgloss.Style
	ID       lipgloss.Style
	Empty    lipgloss.Style
	Input    lipgloss.Style
	Status   lipgloss.Style
	Error    lipgloss.Style
	Help     lipgloss.Style
}

// DefaultStyles returns the default preferences styles.
func DefaultStyles() Styles {
	purple := lipgloss.Color("#7C3AED")
	cyan := lipgloss.Color("#06B6D4")
	red := lipgloss.Color("#F38BA8")
	text := lipgloss.Color("#CDD6F4")
	textMuted := lipgloss.Color("#6C7086")

	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(cyan).
			MarginBottom(1),
		Item: lipgloss.NewStyle().
			Foreground(text).
			PaddingLeft(2),
		Selected: lipgloss.NewStyle().
			Foreground(purple).
			Bold(true),
		ID: lipgloss.NewStyle().
			Foreground(textMuted),
		Empty: lipgloss.NewStyle().
			Foreground(textMuted).
			Italic(true).
			PaddingLeft(2),
		Input: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(purple).
			Padding(0, 1),
		Status: lipgloss.NewStyle().
			Foreground(cyan),
		Error: lipgloss.NewStyle().
			Foreground(red).
			Bold(true),
		Help: lipgloss.NewStyle().
			Foreground(textMuted).
			MarginTop(1),
	}
}

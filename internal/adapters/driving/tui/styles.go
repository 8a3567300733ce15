package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles used by the chat UI.
type Styles struct {
	Title      lipgloss.Style
	UserLabel  lipgloss.Style
	BotLabel   lipgloss.Style
	Rejection  lipgloss.Style
	Error      lipgloss.Style
	Help       lipgloss.Style
	Sidebar    lipgloss.Style
	Selected   lipgloss.Style
	Unselected lipgloss.Style
	InputBox   lipgloss.Style
}

// DefaultStyles returns the default chat styling.
func DefaultStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			Padding(0, 1),
		UserLabel: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")),
		BotLabel: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("42")),
		Rejection: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		Sidebar: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, true, false, false).
			BorderForeground(lipgloss.Color("238")).
			Padding(0, 1),
		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")),
		Unselected: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")),
		InputBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")).
			Padding(0, 1),
	}
}

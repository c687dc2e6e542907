package tui

import "github.com/charmbracelet/lipgloss"

// Colors
var (
	ColorPrimary = lipgloss.Color("62")
	ColorSuccess = lipgloss.Color("35")
	ColorDanger  = lipgloss.Color("196")
	ColorMuted   = lipgloss.Color("241")
	ColorAccent  = lipgloss.Color("220")
)

// Base styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	StatusKeyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorMuted).
			Padding(1, 2)

	SelectedRowStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorPrimary)

	DerivedRowStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true)

	SuggestionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSuccess)

	InfoStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorDanger)

	LoadingStyle = lipgloss.NewStyle().
			Foreground(ColorAccent)
)

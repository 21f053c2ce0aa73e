package tui

import "github.com/charmbracelet/lipgloss"

var (
	ColorPrimary = lipgloss.Color("86")
	ColorAccent  = lipgloss.Color("212")
	ColorMuted   = lipgloss.Color("241")
	ColorDanger  = lipgloss.Color("196")
	ColorBorder  = lipgloss.Color("238")

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1)

	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	DetailLabelStyle = lipgloss.NewStyle().
				Foreground(ColorMuted).
				Width(22)

	DetailValueStyle = lipgloss.NewStyle().
				Foreground(ColorAccent)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorDanger).
			Bold(true).
			Padding(1, 2)
)

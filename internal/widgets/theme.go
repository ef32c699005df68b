package widgets

import "github.com/charmbracelet/lipgloss"

var (
	colorText   lipgloss.Color = "#cdd6f4"
	colorMuted  lipgloss.Color = "#a6adc8"
	colorBorder lipgloss.Color = "#6c7086"
	colorAccent lipgloss.Color = "#89b4fa"
	colorFocus  lipgloss.Color = "#a6e3a1"
	colorMantle lipgloss.Color = "#181825"
)

// Styles shared by widgets and menus.
var (
	HeaderStyle   = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	TextStyle     = lipgloss.NewStyle().Foreground(colorText)
	MutedStyle    = lipgloss.NewStyle().Foreground(colorMuted)
	SelectedStyle = lipgloss.NewStyle().Foreground(colorAccent).Underline(true)
	FocusStyle    = lipgloss.NewStyle().Foreground(colorFocus).Bold(true)
	footerStyle   = lipgloss.NewStyle().Background(colorMantle)
)

package tui

import "github.com/charmbracelet/lipgloss"

// Styles
var (
	baseFg    = lipgloss.Color("#E6E6E6")
	baseDimFg = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#6B7280"}
	accentFg  = lipgloss.Color("#7C3AED")
	okFg      = lipgloss.Color("#22C55E")
	warnFg    = lipgloss.Color("#F59E0B")
	errFg     = lipgloss.Color("#EF4444")
	borderCol = lipgloss.Color("#243141")

	appStyle    = lipgloss.NewStyle().Foreground(baseFg)
	boxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(borderCol).Padding(0, 1)
	titleStyle  = lipgloss.NewStyle().Foreground(accentFg).Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(baseDimFg)
	accentStyle = lipgloss.NewStyle().Foreground(accentFg)

	modePlayStyle  = lipgloss.NewStyle().Foreground(okFg).Bold(true)
	modeSetupStyle = lipgloss.NewStyle().Foreground(warnFg).Bold(true)

	connectedStyle  = lipgloss.NewStyle().Foreground(okFg)
	connectingStyle = lipgloss.NewStyle().Foreground(warnFg)
	failedStyle     = lipgloss.NewStyle().Foreground(errFg).Bold(true)

	handleStyle = lipgloss.NewStyle().Foreground(warnFg).Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(baseDimFg).Width(8)
)

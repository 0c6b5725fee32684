package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"touchbridge/internal/bridge"
	"touchbridge/internal/editor"
	"touchbridge/internal/stream"
)

const retryHint = "Check PC server & USB connection."

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	w, h := m.surfaceSize()

	header := lipgloss.JoinVertical(lipgloss.Left, m.renderTitle(), m.renderBanner())

	// overlays replace the surface drawing but keep its size
	var surface string
	switch {
	case m.help.ShowAll:
		box := boxStyle.Render(m.help.View(m.keys))
		surface = lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, box)
	case m.showDetails:
		box := boxStyle.Render(m.tbl.View())
		surface = lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, box)
	default:
		surface = lipgloss.NewStyle().Width(w).Height(h).Render(m.renderSurface(w, h))
	}

	footer := lipgloss.JoinVertical(lipgloss.Left, m.renderFields(), m.renderHelp())

	ui := lipgloss.JoinVertical(lipgloss.Left, header, surface, footer)
	return appStyle.Width(m.width).Height(m.height).MaxHeight(m.height).Render(ui)
}

func (m Model) renderTitle() string {
	title := titleStyle.Render(" touchbridge ")
	mode := m.coord.Mode()
	modeStyle := modePlayStyle
	if mode == bridge.ModeSetup {
		modeStyle = modeSetupStyle
	}
	left := lipgloss.JoinHorizontal(lipgloss.Top, title, " ", modeStyle.Render(mode.String()))
	clock := dimStyle.Render(m.clock.Format("3:04 PM") + " ")
	gap := max(0, m.width-lipgloss.Width(left)-lipgloss.Width(clock))
	return left + strings.Repeat(" ", gap) + clock
}

// renderBanner shows the connection state. While disconnected it carries
// the failure reason and how to retry.
func (m Model) renderBanner() string {
	var s string
	switch m.conn.Status {
	case stream.StatusConnected:
		s = connectedStyle.Render(" ● " + m.conn.String())
	case stream.StatusConnecting:
		s = " " + m.spin.View() + connectingStyle.Render(" Connecting to "+m.addr)
	default:
		s = failedStyle.Render(" "+m.conn.String()) +
			dimStyle.Render("  "+retryHint+"  r retry")
	}
	return lipgloss.NewStyle().Width(m.width).MaxWidth(m.width).Render(s)
}

// renderFields shows the millimeter inputs in setup mode and the status
// line otherwise.
func (m Model) renderFields() string {
	if m.coord.Mode() != bridge.ModeSetup {
		return dimStyle.Render(" " + m.status)
	}
	parts := []string{
		" " + labelStyle.Render("width"), m.inputs[fieldWidth].View(), "mm  ",
		labelStyle.Render("height"), m.inputs[fieldHeight].View(), "mm  ",
	}
	if mode := m.coord.EditMode(); mode != editor.ModeNone {
		parts = append(parts, accentStyle.Render(mode.String()), " ")
	}
	parts = append(parts, dimStyle.Render(m.status))
	return lipgloss.NewStyle().MaxWidth(m.width).Render(strings.Join(parts, " "))
}

func (m Model) renderHelp() string {
	if m.help.ShowAll {
		return dimStyle.Render(" ? close help")
	}
	return " " + m.help.ShortHelpView(m.keys.ShortHelp())
}

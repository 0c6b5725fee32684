package tui

import (
	"log"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"touchbridge/internal/bridge"
	"touchbridge/internal/editor"
	"touchbridge/internal/stream"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		w, h := m.surfaceSize()
		m.coord.Resize(float64(w), float64(h))
	case tea.KeyMsg:
		var cmd tea.Cmd
		m, cmd = m.handleKey(msg)
		cmds = append(cmds, cmd)
	case tea.MouseMsg:
		m.handleMouse(msg)
	case stateMsg:
		m.conn = stream.State(msg)
		log.Printf("Connection: %v", m.conn)
		cmds = append(cmds, waitForState(m.client.Updates()))
	case tickMsg:
		m.clock = time.Time(msg)
		cmds = append(cmds, tick())
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		cmds = append(cmds, cmd)
	case copiedMsg:
		if msg.err != nil {
			m.status = "copy failed: " + msg.err.Error()
		} else {
			m.status = "copied " + msg.text
		}
	}

	m.syncInputs()
	if m.showDetails {
		m.refreshDetails()
	}
	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	setup := m.coord.Mode() == bridge.ModeSetup

	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}
	if setup && isNumericKey(msg.String()) {
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		return m, cmd
	}
	if !setup && msg.Type == tea.KeyEsc {
		m.showDetails = false
		m.help.ShowAll = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Details):
		m.showDetails = !m.showDetails
		if m.showDetails {
			m.refreshDetails()
		}
	case key.Matches(msg, m.keys.Copy):
		return m, copyToClipboard(m.coord.Summary())
	case key.Matches(msg, m.keys.Reconnect):
		m.status = "reconnecting to " + m.addr
		return m, connect(m.client)
	case key.Matches(msg, m.keys.Setup):
		m.coord.EnterSetup()
		m.pressed = false
		m.keys.forMode(m.coord.Mode())
		m.status = "drag the area or its corners, or type a size"
		m.syncInputs()
		return m, m.focusField(fieldWidth)
	case key.Matches(msg, m.keys.Save):
		if err := m.coord.Save(); err != nil {
			log.Printf("Couldn't save area: %v", err)
			m.status = err.Error()
			return m, nil
		}
		m.leaveSetup("area saved")
	case key.Matches(msg, m.keys.Cancel):
		m.coord.Cancel()
		m.leaveSetup("setup cancelled")
	case key.Matches(msg, m.keys.NextField):
		return m, m.focusField(1 - m.focus)
	case key.Matches(msg, m.keys.Apply):
		if !m.coord.ApplySize(m.inputs[fieldWidth].Value(), m.inputs[fieldHeight].Value()) {
			m.status = "enter both width and height"
			return m, nil
		}
		m.status = "size applied"
	}
	return m, nil
}

func (m *Model) leaveSetup(status string) {
	m.pressed = false
	m.keys.forMode(m.coord.Mode())
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	m.status = status
}

func (m *Model) focusField(i int) tea.Cmd {
	m.focus = i
	for j := range m.inputs {
		if j != i {
			m.inputs[j].Blur()
		}
	}
	return m.inputs[i].Focus()
}

// syncInputs copies the coordinator's field text into the inputs when it
// changed.
func (m *Model) syncInputs() {
	f := m.coord.Fields()
	if f.Rev == m.fieldsRev {
		return
	}
	m.inputs[fieldWidth].SetValue(f.Width)
	m.inputs[fieldHeight].SetValue(f.Height)
	m.fieldsRev = f.Rev
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	p, pressed, ok := pointerFromMouse(msg, m.pressed, m.surfaceContains)
	m.pressed = pressed
	if !ok {
		return
	}
	m.coord.HandlePointer(p)
}

// pointerFromMouse turns a terminal mouse event into a pointer event in
// surface coordinates. A left press on the surface starts a gesture; motion
// and release only count while one is in progress. Positions are cell
// centers.
func pointerFromMouse(msg tea.MouseMsg, pressed bool, onSurface func(x, y int) bool) (editor.Pointer, bool, bool) {
	p := editor.Pointer{
		X: float64(msg.X) + 0.5,
		Y: float64(msg.Y-headerHeight) + 0.5,
	}
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !onSurface(msg.X, msg.Y) {
			return p, pressed, false
		}
		p.Kind = editor.PointerDown
		return p, true, true
	case tea.MouseActionMotion:
		if !pressed {
			return p, false, false
		}
		p.Kind = editor.PointerMove
		return p, true, true
	case tea.MouseActionRelease:
		if !pressed {
			return p, false, false
		}
		p.Kind = editor.PointerUp
		return p, false, true
	}
	return p, pressed, false
}

// surfaceSize is the touch surface in cells.
func (m Model) surfaceSize() (int, int) {
	return max(0, m.width), max(0, m.height-headerHeight-footerHeight)
}

func (m Model) surfaceContains(x, y int) bool {
	w, h := m.surfaceSize()
	return x >= 0 && x < w && y >= headerHeight && y < headerHeight+h
}

// Package tui is the terminal front end: the region between the header and
// the footer is the touch surface, measured in cells.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	table "github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"touchbridge/internal/bridge"
	"touchbridge/internal/stream"
)

// Layout rows around the surface.
const (
	headerHeight = 2 // title, connection banner
	footerHeight = 2 // fields or status, help
)

// Client is the part of stream.Client the UI drives.
type Client interface {
	Connect()
	State() stream.State
	Updates() <-chan stream.State
}

const (
	fieldWidth = iota
	fieldHeight
)

type Model struct {
	width  int
	height int

	coord  *bridge.Coordinator
	client Client
	addr   string
	conn   stream.State

	// pointer state, tracked so Move and Up only follow a Down on the surface
	pressed bool

	spin  spinner.Model
	help  help.Model
	keys  keyMap
	clock time.Time

	inputs    [2]textinput.Model
	focus     int
	fieldsRev int

	showDetails bool
	tbl         table.Model

	status string
}

// New builds the model. addr is only shown to the user.
func New(coord *bridge.Coordinator, client Client, addr string) Model {
	m := Model{
		coord:  coord,
		client: client,
		addr:   addr,
		conn:   client.State(),
		spin:   spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(connectingStyle)),
		help:   help.New(),
		keys:   newKeyMap(),
		clock:  time.Now(),
		tbl:    newDetailsTable(),
		status: "touchbridge ready",
	}
	for i := range m.inputs {
		ti := textinput.New()
		ti.CharLimit = 7
		ti.Width = 8
		ti.Prompt = ""
		ti.Placeholder = "mm"
		m.inputs[i] = ti
	}
	m.keys.forMode(coord.Mode())
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		connect(m.client),
		waitForState(m.client.Updates()),
		tick(),
		m.spin.Tick,
	)
}

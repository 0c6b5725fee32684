package tui

import (
	"strconv"

	table "github.com/charmbracelet/bubbles/table"

	"touchbridge/internal/stream"
)

func newDetailsTable() table.Model {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "", Width: 10},
			{Title: "units", Width: 9},
			{Title: "mm", Width: 9},
		}),
		table.WithFocused(false),
	)
	t.SetHeight(10)
	return t
}

// refreshDetails rebuilds the details rows from the current area and
// connection.
func (m *Model) refreshDetails() {
	r := m.coord.Rect()
	conv := m.coord.Converter()
	bw, bh := m.coord.Bounds()

	row := func(name string, v float64) table.Row {
		return table.Row{name, strconv.FormatFloat(v, 'f', 1, 64), conv.FormatMillimeters(v)}
	}
	rows := []table.Row{
		row("left", r.Left),
		row("top", r.Top),
		row("right", r.Right),
		row("bottom", r.Bottom),
		row("width", r.Width()),
		row("height", r.Height()),
		row("surface w", bw),
		row("surface h", bh),
		{"density", strconv.FormatFloat(conv.Density(), 'f', 2, 64), "per mm"},
	}
	peer := "-"
	if m.conn.Status == stream.StatusConnected {
		peer = m.conn.Peer
	}
	rows = append(rows, table.Row{"peer", peer, ""})
	m.tbl.SetRows(rows)
	m.tbl.SetHeight(len(rows) + 1)
}

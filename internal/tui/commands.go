package tui

import (
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"touchbridge/internal/stream"
)

type stateMsg stream.State

type tickMsg time.Time

type copiedMsg struct {
	text string
	err  error
}

func connect(c Client) tea.Cmd {
	return func() tea.Msg {
		c.Connect()
		return nil
	}
}

// waitForState delivers the next connection state. It returns nil once the
// client has been closed.
func waitForState(ch <-chan stream.State) tea.Cmd {
	return func() tea.Msg {
		s, ok := <-ch
		if !ok {
			return nil
		}
		return stateMsg(s)
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func copyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{text: text, err: clipboard.WriteAll(text)}
	}
}

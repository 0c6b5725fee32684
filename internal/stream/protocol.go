package stream

import (
	"fmt"
	"strconv"
	"strings"
)

// HandshakePrefix starts the single line the peer sends after accepting.
const HandshakePrefix = "HOSTNAME:"

// Action tags an event line.
type Action int

const (
	ActionDown Action = iota
	ActionMove
	ActionUp
)

func (a Action) String() string {
	switch a {
	case ActionDown:
		return "DOWN"
	case ActionMove:
		return "MOVE"
	case ActionUp:
		return "UP"
	default:
		return "UNKNOWN"
	}
}

// FormatEvent renders an event line without its terminator, e.g.
// "DOWN:0.5000,0.2500". Coordinates always use four fractional digits and a
// '.' decimal point.
func FormatEvent(a Action, nx, ny float64) string {
	var b strings.Builder
	b.WriteString(a.String())
	b.WriteByte(':')
	b.WriteString(strconv.FormatFloat(nx, 'f', 4, 64))
	b.WriteByte(',')
	b.WriteString(strconv.FormatFloat(ny, 'f', 4, 64))
	return b.String()
}

// ParseHandshake extracts the peer name from a handshake line.
func ParseHandshake(line string) (string, error) {
	line = strings.TrimRight(line, "\r\n")
	if !strings.HasPrefix(line, HandshakePrefix) {
		return "", fmt.Errorf("%w: unexpected line %q", ErrHandshake, line)
	}
	name := strings.TrimSpace(strings.TrimPrefix(line, HandshakePrefix))
	if name == "" {
		return "", fmt.Errorf("%w: empty peer name", ErrHandshake)
	}
	return name, nil
}

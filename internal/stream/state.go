package stream

// Status is the coarse connection status.
type Status int

const (
	StatusDisconnected Status = iota
	StatusConnecting
	StatusConnected
)

func (s Status) String() string {
	switch s {
	case StatusConnecting:
		return "connecting"
	case StatusConnected:
		return "connected"
	default:
		return "disconnected"
	}
}

// Reasons reported with StatusDisconnected.
const (
	ReasonConnectFailed = "Connection Failed"
	ReasonDisconnected  = "Disconnected"
)

// State is the observable connection state. Peer is set only when
// connected, Reason only when disconnected.
type State struct {
	Status Status
	Peer   string
	Reason string
}

func Disconnected(reason string) State { return State{Status: StatusDisconnected, Reason: reason} }
func Connecting() State                { return State{Status: StatusConnecting} }
func Connected(peer string) State      { return State{Status: StatusConnected, Peer: peer} }

func (s State) String() string {
	switch s.Status {
	case StatusConnecting:
		return "Connecting"
	case StatusConnected:
		return "Connected to " + s.Peer
	default:
		if s.Reason == "" {
			return ReasonDisconnected
		}
		return s.Reason
	}
}

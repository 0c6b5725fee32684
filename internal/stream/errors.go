package stream

import "errors"

// Errors recorded while talking to the peer. They never reach callers of
// Client directly; they are logged and folded into State.Reason.
var (
	// ErrHandshake is returned when the first line is missing or malformed.
	ErrHandshake = errors.New("handshake failed")

	// ErrNotConnected is returned when a write is attempted without a connection.
	ErrNotConnected = errors.New("not connected")

	// ErrClosed is returned for work submitted after Close.
	ErrClosed = errors.New("client closed")
)

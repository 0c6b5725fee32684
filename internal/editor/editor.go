// Package editor interprets pointer gestures against an area.Area: a press
// on a corner handle resizes from that corner, a press inside the rectangle
// moves it, anything else is ignored.
//
// The mode chosen on Down is latched until Up. Moves are applied as deltas
// from the previous pointer position, so clamping inside the Area never makes
// the rectangle jump back to the pointer.
//
// When a gesture ends the final rectangle is published on the Finished
// channel.
package editor

import "touchbridge/internal/area"

// Mode is the drag mode latched for the current gesture.
type Mode int

const (
	ModeNone Mode = iota
	ModeMove
	ModeResizeTopLeft
	ModeResizeTopRight
	ModeResizeBottomLeft
	ModeResizeBottomRight
)

func (m Mode) String() string {
	switch m {
	case ModeMove:
		return "move"
	case ModeResizeTopLeft:
		return "resize-top-left"
	case ModeResizeTopRight:
		return "resize-top-right"
	case ModeResizeBottomLeft:
		return "resize-bottom-left"
	case ModeResizeBottomRight:
		return "resize-bottom-right"
	default:
		return "none"
	}
}

// resizeMode maps a corner to its resize mode.
func resizeMode(c area.Corner) Mode {
	switch c {
	case area.TopRight:
		return ModeResizeTopRight
	case area.BottomLeft:
		return ModeResizeBottomLeft
	case area.BottomRight:
		return ModeResizeBottomRight
	default:
		return ModeResizeTopLeft
	}
}

// corner returns the corner a resize mode drags.
func (m Mode) corner() (area.Corner, bool) {
	switch m {
	case ModeResizeTopLeft:
		return area.TopLeft, true
	case ModeResizeTopRight:
		return area.TopRight, true
	case ModeResizeBottomLeft:
		return area.BottomLeft, true
	case ModeResizeBottomRight:
		return area.BottomRight, true
	default:
		return 0, false
	}
}

// PointerKind is the phase of a pointer event.
type PointerKind int

const (
	PointerDown PointerKind = iota
	PointerMove
	PointerUp
)

func (k PointerKind) String() string {
	switch k {
	case PointerDown:
		return "down"
	case PointerMove:
		return "move"
	case PointerUp:
		return "up"
	default:
		return "unknown"
	}
}

// Pointer is a single pointer event in device units.
type Pointer struct {
	Kind PointerKind
	X    float64
	Y    float64
}

// Editor is the pointer editing state machine. It is driven from the UI
// goroutine only.
type Editor struct {
	area   *area.Area
	radius float64
	active bool

	mode  Mode
	lastX float64
	lastY float64

	finished chan area.Rect
}

// New returns an inactive Editor for a with handles of the given radius.
func New(a *area.Area, handleRadius float64) *Editor {
	return &Editor{
		area:     a,
		radius:   handleRadius,
		finished: make(chan area.Rect, 1),
	}
}

func (e *Editor) Mode() Mode            { return e.mode }
func (e *Editor) Active() bool          { return e.active }
func (e *Editor) HandleRadius() float64 { return e.radius }

// Finished delivers the rectangle at the end of each gesture. Only the most
// recent unread value is kept.
func (e *Editor) Finished() <-chan area.Rect { return e.finished }

// SetActive turns editing on or off. Turning it off abandons any gesture.
func (e *Editor) SetActive(active bool) {
	e.active = active
	if !active {
		e.mode = ModeNone
	}
}

// HitTest classifies a press at (x, y). Handles are tested in the order of
// area.Corners and win over the interior.
func (e *Editor) HitTest(x, y float64) Mode {
	r := e.area.Rect()
	for _, c := range area.Corners {
		cx, cy := r.Corner(c)
		if insideCircle(x, y, cx, cy, e.radius) {
			return resizeMode(c)
		}
	}
	if r.Contains(x, y) {
		return ModeMove
	}
	return ModeNone
}

func insideCircle(x, y, cx, cy, radius float64) bool {
	dx, dy := x-cx, y-cy
	return dx*dx+dy*dy < radius*radius
}

// Handle feeds one pointer event through the state machine and reports
// whether it was consumed. Events are never consumed while inactive.
func (e *Editor) Handle(p Pointer) bool {
	if !e.active {
		return false
	}
	switch p.Kind {
	case PointerDown:
		e.lastX, e.lastY = p.X, p.Y
		e.mode = e.HitTest(p.X, p.Y)
		return e.mode != ModeNone
	case PointerMove:
		if e.mode == ModeNone {
			return false
		}
		dx, dy := p.X-e.lastX, p.Y-e.lastY
		e.lastX, e.lastY = p.X, p.Y
		if c, ok := e.mode.corner(); ok {
			e.area.AdjustCorner(c, dx, dy)
		} else {
			e.area.Offset(dx, dy)
		}
		return true
	case PointerUp:
		if e.mode == ModeNone {
			return false
		}
		e.mode = ModeNone
		e.publish(e.area.Rect())
		return true
	}
	return false
}

func (e *Editor) publish(r area.Rect) {
	select {
	case <-e.finished:
	default:
	}
	e.finished <- r
}

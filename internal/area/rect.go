package area

import "fmt"

// Rect is an axis-aligned rectangle in device units.
type Rect struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

func (r Rect) Width() float64   { return r.Right - r.Left }
func (r Rect) Height() float64  { return r.Bottom - r.Top }
func (r Rect) CenterX() float64 { return (r.Left + r.Right) / 2 }
func (r Rect) CenterY() float64 { return (r.Top + r.Bottom) / 2 }

// Empty reports whether the rectangle has no interior.
func (r Rect) Empty() bool { return r.Left >= r.Right || r.Top >= r.Bottom }

// Contains reports whether (x, y) lies in the half-open interior
// [Left,Right) x [Top,Bottom).
func (r Rect) Contains(x, y float64) bool {
	if r.Empty() {
		return false
	}
	return x >= r.Left && x < r.Right && y >= r.Top && y < r.Bottom
}

// Offset returns r translated by (dx, dy).
func (r Rect) Offset(dx, dy float64) Rect {
	return Rect{Left: r.Left + dx, Top: r.Top + dy, Right: r.Right + dx, Bottom: r.Bottom + dy}
}

// Normalize maps (x, y) to the unit square spanned by r.
func (r Rect) Normalize(x, y float64) (nx, ny float64) {
	if r.Empty() {
		return 0, 0
	}
	return (x - r.Left) / r.Width(), (y - r.Top) / r.Height()
}

// Corner returns the position of corner c.
func (r Rect) Corner(c Corner) (x, y float64) {
	switch c {
	case TopRight:
		return r.Right, r.Top
	case BottomLeft:
		return r.Left, r.Bottom
	case BottomRight:
		return r.Right, r.Bottom
	default:
		return r.Left, r.Top
	}
}

func (r Rect) String() string {
	return fmt.Sprintf("(%.1f,%.1f)-(%.1f,%.1f)", r.Left, r.Top, r.Right, r.Bottom)
}

// Corner names one of the four rectangle corners.
type Corner int

const (
	TopLeft Corner = iota
	TopRight
	BottomLeft
	BottomRight
)

// Corners lists the corners in hit-test priority order.
var Corners = [...]Corner{TopLeft, TopRight, BottomLeft, BottomRight}

func (c Corner) String() string {
	switch c {
	case TopLeft:
		return "top-left"
	case TopRight:
		return "top-right"
	case BottomLeft:
		return "bottom-left"
	case BottomRight:
		return "bottom-right"
	default:
		return "unknown"
	}
}

// DefaultFraction is the share of each surface dimension covered by the
// default area.
const DefaultFraction = 0.8

// Default returns the area used when nothing has been saved: 80% of the
// surface in each dimension, centered.
func Default(width, height float64) Rect {
	w := width * DefaultFraction
	h := height * DefaultFraction
	left := (width - w) / 2
	top := (height - h) / 2
	return Rect{Left: left, Top: top, Right: left + w, Bottom: top + h}
}

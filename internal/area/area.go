// Package area holds the active-area rectangle and the rules that keep it
// valid: a minimum size in each dimension and containment within the
// surface bounds.
//
// Every mutating operation except Set runs EnforceConstraints afterwards.
// The size rule is applied first and rejects the offending dimension's edit
// (the previous edges for that dimension are restored); the bounds rule then
// translates the rectangle back onto the surface.
package area

import "math"

// Area owns the active rectangle. It is not safe for concurrent use; the
// single UI goroutine owns it.
type Area struct {
	rect    Rect
	last    Rect // last rectangle that satisfied the size rule
	width   float64
	height  float64
	minSize float64
}

// New returns an Area on a surface of the given size. A zero surface size
// means the bounds are not known yet and the bounds rule is skipped.
func New(width, height, minSize float64) *Area {
	return &Area{width: width, height: height, minSize: minSize}
}

func (a *Area) Rect() Rect                      { return a.rect }
func (a *Area) MinSize() float64                { return a.minSize }
func (a *Area) Bounds() (width, height float64) { return a.width, a.height }

// SetBounds changes the surface size and moves the rectangle back inside it.
func (a *Area) SetBounds(width, height float64) {
	a.width, a.height = width, height
	a.clampToBounds()
	if a.fitsSize(a.rect) {
		a.last = a.rect
	}
}

// Set replaces the rectangle wholesale without clamping. Used for restoring
// saved or cancelled values.
func (a *Area) Set(r Rect) {
	a.rect = r
	a.last = r
}

// ResizeAroundCenter applies a new width and height while keeping the
// center fixed.
func (a *Area) ResizeAroundCenter(width, height float64) {
	cx, cy := a.rect.CenterX(), a.rect.CenterY()
	a.rect = Rect{
		Left:   cx - width/2,
		Top:    cy - height/2,
		Right:  cx + width/2,
		Bottom: cy + height/2,
	}
	a.EnforceConstraints()
}

// Offset moves the whole rectangle.
func (a *Area) Offset(dx, dy float64) {
	a.rect = a.rect.Offset(dx, dy)
	a.EnforceConstraints()
}

// AdjustCorner moves the two edges that meet at corner c.
func (a *Area) AdjustCorner(c Corner, dx, dy float64) {
	switch c {
	case TopLeft:
		a.rect.Left += dx
		a.rect.Top += dy
	case TopRight:
		a.rect.Right += dx
		a.rect.Top += dy
	case BottomLeft:
		a.rect.Left += dx
		a.rect.Bottom += dy
	case BottomRight:
		a.rect.Right += dx
		a.rect.Bottom += dy
	}
	a.EnforceConstraints()
}

// EnforceConstraints applies the size rule and then the bounds rule.
func (a *Area) EnforceConstraints() {
	if a.rect.Width() < a.minSize {
		a.rect.Left, a.rect.Right = a.last.Left, a.last.Right
		if a.rect.Width() < a.minSize {
			// nothing valid to fall back to, e.g. after Set with a degenerate rectangle
			cx := a.rect.CenterX()
			a.rect.Left, a.rect.Right = cx-a.minSize/2, cx+a.minSize/2
		}
	}
	if a.rect.Height() < a.minSize {
		a.rect.Top, a.rect.Bottom = a.last.Top, a.last.Bottom
		if a.rect.Height() < a.minSize {
			cy := a.rect.CenterY()
			a.rect.Top, a.rect.Bottom = cy-a.minSize/2, cy+a.minSize/2
		}
	}
	a.clampToBounds()
	a.last = a.rect
}

func (a *Area) fitsSize(r Rect) bool {
	return r.Width() >= a.minSize && r.Height() >= a.minSize
}

func (a *Area) clampToBounds() {
	if a.width <= 0 || a.height <= 0 {
		return
	}
	r := &a.rect
	r.Left, r.Right = clampSpan(r.Left, r.Right, a.width)
	r.Top, r.Bottom = clampSpan(r.Top, r.Bottom, a.height)
}

// clampSpan moves [lo,hi] inside [0,bound] by snapping the crossed edge onto
// the bound and rebuilding the other edge from the span's size.
func clampSpan(lo, hi, bound float64) (float64, float64) {
	size := hi - lo
	if size >= bound {
		return 0, bound
	}
	if lo < 0 {
		return 0, size
	}
	if hi > bound {
		lo = bound - size
		// keep the span from rounding below its size
		if bound-lo < size && lo > 0 {
			lo = math.Nextafter(lo, math.Inf(-1))
		}
		return math.Max(lo, 0), bound
	}
	return lo, hi
}

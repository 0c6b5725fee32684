package area

import (
	"math"
	"math/rand"
	"testing"
)

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func rectApprox(a, b Rect) bool {
	return approx(a.Left, b.Left) && approx(a.Top, b.Top) && approx(a.Right, b.Right) && approx(a.Bottom, b.Bottom)
}

func TestDefault(t *testing.T) {
	got := Default(800, 600)
	want := Rect{Left: 80, Top: 60, Right: 720, Bottom: 540}
	if !rectApprox(got, want) {
		t.Errorf("Default(800, 600) = %v, want %v", got, want)
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{Left: 0, Top: 0, Right: 100, Bottom: 200}
	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"inside", 50, 50, true},
		{"top-left corner", 0, 0, true},
		{"right edge", 100, 50, false},
		{"bottom edge", 50, 200, false},
		{"outside right", 150, 50, false},
		{"outside above", 50, -1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.x, tt.y); got != tt.want {
				t.Errorf("Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestRectNormalize(t *testing.T) {
	r := Rect{Left: 0, Top: 0, Right: 100, Bottom: 200}
	nx, ny := r.Normalize(50, 50)
	if !approx(nx, 0.5) || !approx(ny, 0.25) {
		t.Errorf("Normalize(50, 50) = (%v, %v), want (0.5, 0.25)", nx, ny)
	}
}

func TestAdjustCornerTopLeft(t *testing.T) {
	a := New(800, 600, 100)
	a.Set(Rect{Left: 100, Top: 100, Right: 600, Bottom: 500})
	a.AdjustCorner(TopLeft, 20, 10)
	want := Rect{Left: 120, Top: 110, Right: 600, Bottom: 500}
	if got := a.Rect(); !rectApprox(got, want) {
		t.Errorf("Rect() = %v, want %v", got, want)
	}
}

func TestAdjustCornerEdges(t *testing.T) {
	start := Rect{Left: 100, Top: 100, Right: 600, Bottom: 500}
	tests := []struct {
		corner Corner
		want   Rect
	}{
		{TopLeft, Rect{Left: 110, Top: 105, Right: 600, Bottom: 500}},
		{TopRight, Rect{Left: 100, Top: 105, Right: 610, Bottom: 500}},
		{BottomLeft, Rect{Left: 110, Top: 100, Right: 600, Bottom: 505}},
		{BottomRight, Rect{Left: 100, Top: 100, Right: 610, Bottom: 505}},
	}
	for _, tt := range tests {
		t.Run(tt.corner.String(), func(t *testing.T) {
			a := New(800, 600, 100)
			a.Set(start)
			a.AdjustCorner(tt.corner, 10, 5)
			if got := a.Rect(); !rectApprox(got, tt.want) {
				t.Errorf("AdjustCorner(%v) = %v, want %v", tt.corner, got, tt.want)
			}
		})
	}
}

func TestShrinkBelowMinimumIsRejected(t *testing.T) {
	a := New(800, 600, 100)
	a.Set(Rect{Left: 100, Top: 100, Right: 250, Bottom: 500})

	// width would become 90: rejected, height edit still applies
	a.AdjustCorner(TopLeft, 60, 10)
	want := Rect{Left: 100, Top: 110, Right: 250, Bottom: 500}
	if got := a.Rect(); !rectApprox(got, want) {
		t.Errorf("Rect() = %v, want %v", got, want)
	}
}

func TestOffsetClampsToBounds(t *testing.T) {
	a := New(800, 600, 100)
	a.Set(Rect{Left: 100, Top: 100, Right: 300, Bottom: 300})

	a.Offset(-500, 0)
	if got := a.Rect(); !rectApprox(got, Rect{Left: 0, Top: 100, Right: 200, Bottom: 300}) {
		t.Errorf("after left overflow Rect() = %v", got)
	}
	a.Offset(1000, 1000)
	if got := a.Rect(); !rectApprox(got, Rect{Left: 600, Top: 400, Right: 800, Bottom: 600}) {
		t.Errorf("after bottom-right overflow Rect() = %v", got)
	}
}

func TestClampLandsExactlyOnBounds(t *testing.T) {
	tests := []struct {
		name   string
		start  Rect
		dx, dy float64
		want   Rect
	}{
		{"full surface pushed right", Rect{0, 0, 800, 600}, 0.3, 0.7, Rect{0, 0, 800, 600}},
		{"full surface pushed left", Rect{0, 0, 800, 600}, -0.3, -0.7, Rect{0, 0, 800, 600}},
		{"full width pushed right", Rect{0, 100, 800, 300}, 33.3, 0, Rect{0, 100, 800, 300}},
		{"narrow pushed past right", Rect{600, 100, 723.4, 300}, 100.1, 0, Rect{800 - 123.4, 100, 800, 300}},
		{"narrow pushed past bottom", Rect{100, 400, 300, 577.7}, 0, 50.9, Rect{100, 600 - 177.7, 300, 600}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := New(800, 600, 100)
			a.Set(tt.start)
			a.Offset(tt.dx, tt.dy)
			r := a.Rect()
			if r.Left < 0 || r.Top < 0 || r.Right > 800 || r.Bottom > 600 {
				t.Fatalf("Rect() = %#v, outside bounds", r)
			}
			if !rectApprox(r, tt.want) {
				t.Errorf("Rect() = %v, want %v", r, tt.want)
			}
			if r.Width() < 100 || r.Height() < 100 {
				t.Errorf("Rect() = %v, smaller than minimum", r)
			}
		})
	}
}

func TestResizeAroundCenter(t *testing.T) {
	a := New(800, 600, 100)
	a.Set(Rect{Left: 200, Top: 200, Right: 400, Bottom: 400})
	a.ResizeAroundCenter(300, 150)
	want := Rect{Left: 150, Top: 225, Right: 450, Bottom: 375}
	if got := a.Rect(); !rectApprox(got, want) {
		t.Errorf("ResizeAroundCenter(300, 150) = %v, want %v", got, want)
	}
}

func TestResizeAroundCenterRejectsTooSmall(t *testing.T) {
	a := New(800, 600, 100)
	a.Set(Rect{Left: 200, Top: 200, Right: 400, Bottom: 400})
	a.ResizeAroundCenter(0, 300)
	want := Rect{Left: 200, Top: 150, Right: 400, Bottom: 450}
	if got := a.Rect(); !rectApprox(got, want) {
		t.Errorf("ResizeAroundCenter(0, 300) = %v, want %v", got, want)
	}
}

func TestResizeLargerThanSurfaceFitsBounds(t *testing.T) {
	a := New(800, 600, 100)
	a.Set(Rect{Left: 200, Top: 200, Right: 400, Bottom: 400})
	a.ResizeAroundCenter(1000, 100)
	got := a.Rect()
	if got.Left < 0 || got.Right > 800 || !approx(got.Width(), 800) {
		t.Errorf("ResizeAroundCenter(1000, 100) = %v, want full surface width", got)
	}
}

func TestSetDoesNotClamp(t *testing.T) {
	a := New(800, 600, 100)
	r := Rect{Left: -10, Top: -10, Right: 20, Bottom: 20}
	a.Set(r)
	if got := a.Rect(); got != r {
		t.Errorf("Set() stored %v, want %v", got, r)
	}
}

func TestSetBoundsMovesRectInside(t *testing.T) {
	a := New(800, 600, 100)
	a.Set(Rect{Left: 500, Top: 300, Right: 700, Bottom: 500})
	a.SetBounds(600, 400)
	want := Rect{Left: 400, Top: 200, Right: 600, Bottom: 400}
	if got := a.Rect(); !rectApprox(got, want) {
		t.Errorf("SetBounds(600, 400) = %v, want %v", got, want)
	}
}

func TestRandomEditsKeepConstraints(t *testing.T) {
	const minSize = 100.0
	rng := rand.New(rand.NewSource(7))
	a := New(800, 600, minSize)
	a.Set(Default(800, 600))

	for i := 0; i < 5000; i++ {
		dx := rng.Float64()*400 - 200
		dy := rng.Float64()*400 - 200
		switch rng.Intn(3) {
		case 0:
			a.Offset(dx, dy)
		case 1:
			a.AdjustCorner(Corners[rng.Intn(len(Corners))], dx, dy)
		case 2:
			a.ResizeAroundCenter(rng.Float64()*1000, rng.Float64()*800)
		}
		r := a.Rect()
		if r.Width() < minSize || r.Height() < minSize {
			t.Fatalf("step %d: %v smaller than minimum", i, r)
		}
		if r.Left < 0 || r.Top < 0 || r.Right > 800 || r.Bottom > 600 {
			t.Fatalf("step %d: %v outside bounds", i, r)
		}
	}
}

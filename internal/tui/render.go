package tui

import (
	"strings"

	"touchbridge/internal/area"
	"touchbridge/internal/bridge"
)

const handleGlyph = "●"

// renderSurface draws the area onto a w x h cell canvas. Setup mode shows
// the outline bright with a handle at each corner; play mode only a dim
// outline.
func (m Model) renderSurface(w, h int) string {
	if w <= 0 || h <= 0 {
		return ""
	}
	r := m.coord.Rect()
	br := newBrailleBuf(w, h)

	// the right and bottom edges are exclusive
	x0, y0 := toMicro(r.Left, r.Top)
	x1, y1 := toMicro(r.Right, r.Bottom)
	br.strokeRect(x0, y0, max(x0, x1-1), max(y0, y1-1))

	lines := br.toLines()
	setup := m.coord.Mode() == bridge.ModeSetup
	style := dimStyle
	if setup {
		style = accentStyle
	}

	// handle cells per row, so each row is styled in one pass
	handles := map[int][]int{}
	if setup {
		for _, c := range area.Corners {
			hx, hy := r.Corner(c)
			cx, cy := cellOf(hx, hy)
			cx = clampInt(cx, 0, w-1)
			cy = clampInt(cy, 0, h-1)
			handles[cy] = append(handles[cy], cx)
		}
	}

	var sb strings.Builder
	for y, line := range lines {
		if y > 0 {
			sb.WriteByte('\n')
		}
		row := []rune(line)
		marks := handles[y]
		if len(marks) == 0 {
			sb.WriteString(style.Render(line))
			continue
		}
		start := 0
		for x := 0; x < len(row); x++ {
			if !containsInt(marks, x) {
				continue
			}
			sb.WriteString(style.Render(string(row[start:x])))
			sb.WriteString(handleStyle.Render(handleGlyph))
			start = x + 1
		}
		sb.WriteString(style.Render(string(row[start:])))
	}
	return sb.String()
}

func containsInt(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}

package tui

import "math"

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// toMicro maps a position in cells onto the braille micro-grid (2x4 per
// cell).
func toMicro(x, y float64) (int, int) {
	return int(math.Round(x * 2)), int(math.Round(y * 4))
}

// cellOf returns the cell containing a position in cells.
func cellOf(x, y float64) (int, int) {
	return int(math.Floor(x)), int(math.Floor(y))
}

// isNumericKey reports whether a key belongs in a millimeter field.
func isNumericKey(s string) bool {
	switch s {
	case "backspace", "delete", "left", "right", "home", "end":
		return true
	}
	if len(s) != 1 {
		return false
	}
	return (s[0] >= '0' && s[0] <= '9') || s[0] == '.'
}

package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// pad right-fills s with spaces to w cells, cutting it when wider.
func pad(s string, w int) string {
	sw := ansi.StringWidth(s)
	if sw > w {
		return ansi.Truncate(s, w, "")
	}
	return s + strings.Repeat(" ", w-sw)
}

// overlay draws box over base with its top-left corner at column x, line
// y. Styled text on either side of the box is kept.
func overlay(base, box string, x, y int) string {
	x, y = max(0, x), max(0, y)
	lines := strings.Split(base, "\n")
	for i, bl := range strings.Split(box, "\n") {
		row := y + i
		for row >= len(lines) {
			lines = append(lines, "")
		}
		line := lines[row]
		left := ansi.Truncate(line, x, "")
		if lw := ansi.StringWidth(left); lw < x {
			left += strings.Repeat(" ", x-lw)
		}
		right := ansi.TruncateLeft(line, x+ansi.StringWidth(bl), "")
		lines[row] = left + bl + right
	}
	return strings.Join(lines, "\n")
}

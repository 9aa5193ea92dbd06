package format

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// PadRight pads s with spaces up to width display cells, truncating with "..."
// when it is wider.
func PadRight(s string, width int) string {
	w := runewidth.StringWidth(s)
	if w > width {
		return runewidth.Truncate(s, width, "...")
	}
	return s + strings.Repeat(" ", width-w)
}

// PadLeft right-aligns s within width display cells. Wider strings are
// returned unchanged.
func PadLeft(s string, width int) string {
	w := runewidth.StringWidth(s)
	if w >= width {
		return s
	}
	return strings.Repeat(" ", width-w) + s
}

package format

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// The exact column is always grouped the same way regardless of the user's locale.
var exactPrinter = message.NewPrinter(language.English)

// Exact renders a byte count with thousands separators (e.g., "7,155,456,789,012").
func Exact(size uint64) string {
	return exactPrinter.Sprintf("%d", size)
}

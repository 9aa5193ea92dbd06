package ui

import (
	"fmt"
	"os"
	"strings"

	"fit4/internal/util/format"
	"fit4/pkg/filesize"
)

// Lines taken by header, blank separator and help footer.
const chromeLines = 5

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.viewHeader())
	b.WriteString("\n\n")
	b.WriteString(m.viewEntries())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) viewHeader() string {
	title := m.styles.Title.Render("fit4") + " " + m.dir
	status := "done"
	if m.scanning {
		status = "scanning…"
	}
	sub := m.styles.Subtitle.Render(fmt.Sprintf("Total: %s • %d entries • %s",
		filesize.Fit4(m.total), len(m.entries), status))
	return title + "\n" + sub
}

func (m Model) viewEntries() string {
	if m.listErr != nil {
		return m.styles.Error.Render("✗ "+m.listErr.Error()) + "\n"
	}
	if len(m.entries) == 0 {
		return m.styles.Faint.Render("(empty)") + "\n"
	}

	from, to := m.visibleRange()
	mx := m.maxSize()
	var b strings.Builder
	for i := from; i < to; i++ {
		b.WriteString(m.viewEntry(m.entries[i], i == m.selected, mx))
		b.WriteString("\n")
	}
	return b.String()
}

// visibleRange returns the window of entries that fits the terminal while
// keeping the cursor in view.
func (m Model) visibleRange() (int, int) {
	n := len(m.entries)
	rows := m.height - chromeLines
	if m.height == 0 || rows >= n {
		return 0, n
	}
	rows = max(rows, 1)
	from := max(m.selected-rows/2, 0)
	from = min(from, n-rows)
	return from, from + rows
}

func (m Model) viewEntry(e *entryState, selected bool, mx uint64) string {
	cursor := "  "
	if selected {
		cursor = m.styles.Cursor.Render("> ")
	}

	var size, bar string
	switch {
	case !e.done():
		size = m.styles.Spinner.Render(format.PadLeft(e.spinner.View(), filesize.Width))
		bar = m.styles.Faint.Render(strings.Repeat("·", m.bar.Width))
	default:
		size = m.styles.Size.Render(format.PadLeft(filesize.Fit4(e.size), filesize.Width))
		share := 0.0
		if mx > 0 {
			share = float64(e.size) / float64(mx)
		}
		bar = m.bar.ViewAs(share)
	}

	name := e.name
	style := m.styles.File
	if e.isDir {
		name += string(os.PathSeparator)
		style = m.styles.Dir
	}
	if selected {
		style = style.Inherit(m.styles.Selected)
	}
	line := cursor + size + "  " + bar + "  " + style.Render(name)
	if e.err != nil {
		line += "  " + m.styles.Error.Render("✗ "+e.err.Error())
	}
	return line
}

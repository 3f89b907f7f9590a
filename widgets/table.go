package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Table renders headers over one row of values per column, every column the
// same width. Used for short fact sheets, not scrolling data.
type Table struct {
	Headers []string
	Rows    [][]string
}

func (t Table) Render(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	if len(t.Headers) == 0 {
		return "No data"
	}
	widths := SplitWidths(width, len(t.Headers), nil)
	head := lipgloss.NewStyle().Faint(true)
	cells := make([]string, len(t.Headers))
	for i, h := range t.Headers {
		cells[i] = PadRight(head.Render(h), widths[i])
	}
	lines := []string{strings.Join(cells, "")}
	for _, row := range t.Rows {
		cells = make([]string, len(t.Headers))
		for i := range t.Headers {
			v := ""
			if i < len(row) {
				v = row[i]
			}
			cells[i] = PadRight(lipgloss.NewStyle().Bold(true).Render(v), widths[i])
		}
		lines = append(lines, strings.Join(cells, ""))
		if len(lines) >= height {
			break
		}
	}
	return strings.Join(lines, "\n")
}

package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type ChartPoint struct {
	Label string
	Value float64
	Color lipgloss.Color
}

// Bars draws one horizontal bar per point, scaled to the largest value, with
// the share of the total printed after each bar.
type Bars struct {
	Title string
	Data  []ChartPoint
}

func (c Bars) Render(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	if len(c.Data) == 0 {
		return c.Title + "\n(no data)"
	}
	maxV, total := 0.0, 0.0
	labelW := 0
	for _, p := range c.Data {
		if p.Value > maxV {
			maxV = p.Value
		}
		total += p.Value
		labelW = max(labelW, lipgloss.Width(p.Label))
	}
	if maxV <= 0 {
		maxV = 1
	}
	if total <= 0 {
		total = 1
	}
	lines := []string{c.Title}
	barSpace := max(1, width-labelW-8)
	for _, p := range c.Data {
		w := max(1, int((p.Value/maxV)*float64(barSpace)))
		bar := lipgloss.NewStyle().Foreground(p.Color).Render(strings.Repeat("█", w))
		label := p.Label + strings.Repeat(" ", labelW-lipgloss.Width(p.Label))
		lines = append(lines, fmt.Sprintf("%s %s %3.0f%%", label, bar, 100*p.Value/total))
		if len(lines) >= height {
			break
		}
	}
	return strings.Join(lines, "\n")
}

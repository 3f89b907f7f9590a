package widgets

import (
	"sort"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Layer is a block painted on top of the base frame at absolute screen
// coordinates. Higher Z paints later.
type Layer struct {
	X, Y    int
	Z       int
	Content string
}

// Compose paints layers over base in ascending Z order. Layers with equal Z
// keep their input order. Anything outside width x height is clipped.
func Compose(base string, layers []Layer, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	canvas := fitCanvas(base, width, height)
	ordered := append([]Layer(nil), layers...)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Z < ordered[j].Z })
	for _, l := range ordered {
		if l.Content == "" {
			continue
		}
		canvas = overlayAt(canvas, l.Content, l.X, l.Y, width, height)
	}
	return canvas
}

func overlayAt(base, overlay string, x, y, width, height int) string {
	baseLines := splitToLines(base, height)
	overlayLines := strings.Split(overlay, "\n")
	overlayWidth := maxLineWidth(overlayLines)
	for i, line := range overlayLines {
		row := y + i
		if row < 0 || row >= len(baseLines) || row >= height {
			continue
		}
		target := PadRight(baseLines[row], width)
		left := ""
		overlayLine := PadRight(line, overlayWidth)
		if x >= 0 {
			left = ansi.Truncate(target, x, "")
			if lw := ansi.StringWidth(left); lw < x {
				left += strings.Repeat(" ", x-lw)
			}
		} else {
			overlayLine = dropColumns(overlayLine, -x)
		}
		pos := max(x, 0) + ansi.StringWidth(overlayLine)
		right := dropColumns(target, pos)
		baseLines[row] = PadRight(left+overlayLine+right, width)
	}
	return strings.Join(baseLines, "\n")
}

func fitCanvas(s string, width, height int) string {
	lines := splitToLines(s, height)
	for i := range lines {
		lines[i] = PadRight(lines[i], width)
	}
	return strings.Join(lines, "\n")
}

func splitToLines(s string, height int) []string {
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return lines
}

func maxLineWidth(lines []string) int {
	maxWidth := 0
	for _, line := range lines {
		if w := ansi.StringWidth(line); w > maxWidth {
			maxWidth = w
		}
	}
	return maxWidth
}

func dropColumns(s string, cols int) string {
	if cols <= 0 {
		return s
	}
	return ansi.TruncateLeft(s, cols, "")
}

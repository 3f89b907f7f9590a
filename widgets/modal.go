package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var popupStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	Padding(1, 2)

// Popup wraps content in a bordered card and centres it on a width x height
// screen. The returned layer carries the given Z.
func Popup(content string, width, height, z int) Layer {
	card := popupStyle.Render(content)
	return Centered(card, width, height, z)
}

// Centered places an already styled block in the middle of the screen.
func Centered(block string, width, height, z int) Layer {
	lines := strings.Split(block, "\n")
	x := max(0, (width-maxLineWidth(lines))/2)
	y := max(0, (height-len(lines))/2)
	return Layer{X: x, Y: y, Z: z, Content: block}
}

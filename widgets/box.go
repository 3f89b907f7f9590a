package widgets

import "github.com/charmbracelet/lipgloss"

// Box is a rounded card with an optional title row.
type Box struct {
	Title    string
	Content  string
	Border   lipgloss.Color
	Selected lipgloss.Color
	Active   bool
}

func (b Box) Render(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	border := b.Border
	if b.Active && b.Selected != "" {
		border = b.Selected
	}
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(max(1, width-2)).
		Height(max(1, height-2))
	body := b.Content
	if b.Title != "" {
		body = lipgloss.NewStyle().Bold(true).Render(b.Title) + "\n" + body
	}
	return style.Render(Text(body).Render(max(1, width-4), max(1, height-2)))
}

package dropdown

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jask/eliterealty/widgets"
)

// Styles colours the trigger and the panel.
type Styles struct {
	Border      lipgloss.Color
	Focus       lipgloss.Color
	Active      lipgloss.Color
	Text        lipgloss.Color
	Placeholder lipgloss.Color
	Cursor      lipgloss.Color
	Check       lipgloss.Color
}

func DefaultStyles() Styles {
	return Styles{
		Border:      lipgloss.Color("#45475a"),
		Focus:       lipgloss.Color("#b4befe"),
		Active:      lipgloss.Color("#fab387"),
		Text:        lipgloss.Color("#cdd6f4"),
		Placeholder: lipgloss.Color("#6c7086"),
		Cursor:      lipgloss.Color("#313244"),
		Check:       lipgloss.Color("#a6e3a1"),
	}
}

// TriggerView renders the closed control as a three-row box. With a value
// the title floats in the top border; without one it sits inside as a
// placeholder.
func (m *Model) TriggerView(width int) string {
	if width < 6 {
		width = 6
	}
	inner := width - 2
	border := m.styles.Border
	switch {
	case m.open:
		border = m.styles.Active
	case m.focused:
		border = m.styles.Focus
	}
	edge := lipgloss.NewStyle().Foreground(border)

	top := edge.Render("╭" + strings.Repeat("─", inner) + "╮")
	if m.selected != "" {
		label := " " + ansi.Truncate(m.title, max(0, inner-3), "…") + " "
		fill := max(0, inner-1-ansi.StringWidth(label))
		top = edge.Render("╭─") +
			lipgloss.NewStyle().Foreground(m.styles.Placeholder).Render(label) +
			edge.Render(strings.Repeat("─", fill)+"╮")
	}

	chevron := "▾"
	if m.open {
		chevron = "▴"
	}
	var text string
	if m.selected != "" {
		text = lipgloss.NewStyle().Foreground(m.styles.Text).Render(m.selected)
	} else {
		text = lipgloss.NewStyle().Foreground(m.styles.Placeholder).Faint(true).Render(m.title)
	}
	body := widgets.PadRight(" "+text, inner-2) + chevron + " "
	mid := edge.Render("│") + body + edge.Render("│")
	bottom := edge.Render("╰" + strings.Repeat("─", inner) + "╯")
	return top + "\n" + mid + "\n" + bottom
}

// panelView renders the option list at the panel's width.
func (m *Model) panelView(faint bool) string {
	inner := max(1, m.panel.W-2)
	rows := make([]string, 0, len(m.options))
	for i, opt := range m.options {
		mark := "  "
		if opt == m.selected {
			mark = lipgloss.NewStyle().Foreground(m.styles.Check).Render("✓ ")
		}
		row := widgets.PadRight(mark+opt, inner)
		style := lipgloss.NewStyle().Foreground(m.styles.Text)
		if i == m.cursor {
			style = style.Background(m.styles.Cursor).Bold(true)
		}
		rows = append(rows, style.Render(row))
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.styles.Active).
		Faint(faint).
		Render(strings.Join(rows, "\n"))
}

// Layer is the panel as an overlay layer in screen coordinates. It reports
// false when nothing should be painted: closed with no exit transition, or
// no successful measurement yet.
func (m *Model) Layer() (widgets.Layer, bool) {
	if !m.measured {
		return widgets.Layer{}, false
	}
	if !m.open && !m.anim.running() {
		return widgets.Layer{}, false
	}
	faint := m.anim.running() && m.anim.visibility() < 1
	return widgets.Layer{
		X:       m.panel.X,
		Y:       m.panel.Y + m.anim.offset(m.placement),
		Z:       m.z,
		Content: m.panelView(faint),
	}, true
}

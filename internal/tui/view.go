package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/jask/eliterealty/internal/dropdown"
	"github.com/jask/eliterealty/widgets"
)

func (a *App) View() string {
	if !a.ready {
		return "Loading Elite Realty..."
	}
	base := lipgloss.JoinVertical(lipgloss.Left, a.headerView(), a.viewport.View(), a.footerView())
	return widgets.Compose(base, a.layers(), a.width, a.height)
}

// layers lists everything painted above the page, lowest first.
func (a *App) layers() []widgets.Layer {
	var out []widgets.Layer
	if !a.modalOpen() {
		for _, dd := range []*dropdown.Model{a.location, a.beds} {
			if l, ok := dd.Layer(); ok {
				out = append(out, l)
			}
		}
	}
	if a.selected != nil {
		out = append(out, widgets.Centered(a.detailView(), a.width, a.height, zModal))
	}
	if a.leadOpen {
		out = append(out, widgets.Centered(a.leadView(), a.width, a.height, zModal))
	}
	if a.showHelp {
		out = append(out, widgets.Popup(a.helpView(), a.width, a.height, zHelp))
	}
	if a.toast != "" {
		out = append(out, a.toastLayer())
	}
	return out
}

func (a *App) headerView() string {
	left := brandStyle.Render(a.brand.Name) + " " + mutedStyle.Render(a.brand.Tagline)
	right := keyStyle.Render("e") + mutedStyle.Render(" explore  ") +
		keyStyle.Render("s") + mutedStyle.Render(" schedule viewing  ") +
		keyStyle.Render("?") + mutedStyle.Render(" help ")
	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right)
	line := left
	if gap > 0 {
		line = left + widgets.PadRight("", gap) + right
	}
	return headerStyle.Render(widgets.PadRight(line, a.width))
}

func (a *App) footerView() string {
	var left string
	switch {
	case a.status != "" && !a.leadOpen:
		left = statusStyle.Render(a.status)
	default:
		left = a.help.ShortHelpView(a.keys.ShortHelp())
	}
	pct := mutedStyle.Render(fmt.Sprintf("%3.0f%%", a.viewport.ScrollPercent()*100))
	gap := a.width - lipgloss.Width(left) - lipgloss.Width(pct)
	if gap <= 0 {
		return widgets.PadRight(left, a.width)
	}
	return left + widgets.PadRight("", gap) + pct
}

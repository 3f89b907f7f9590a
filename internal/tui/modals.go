package tui

import (
	"fmt"
	"path"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jask/eliterealty/internal/format"
	"github.com/jask/eliterealty/widgets"
)

func modalWidth(screen, want int) int {
	return max(24, min(want, screen-4))
}

func (a *App) detailView() string {
	l := *a.selected
	mw := modalWidth(a.width, 76)
	inner := mw - 6

	heart := mutedStyle.Render("♡")
	if a.favorites[l.ID] {
		heart = favoriteStyle.Render("♥")
	}
	lines := []string{
		titleStyle.Render(l.Title) + "  " + heart,
		mutedStyle.Render(l.Location + " · " + l.Type),
		priceStyle.Render(a.money.Currency(l.Price)),
		"",
	}

	photos := l.Photos()
	switch {
	case len(photos) == 0:
		lines = append(lines, mutedStyle.Render("No photos available."))
	default:
		idx := a.gallery % len(photos)
		lines = append(lines, textStyle.Render(fmt.Sprintf("Photo %d/%d  ", idx+1, len(photos)))+mutedStyle.Render(photoName(photos[idx])))
		if len(photos) > 1 {
			dots := make([]string, len(photos))
			for i := range photos {
				dots[i] = mutedStyle.Render("○")
				if i == idx {
					dots[i] = cursorStyle.Render("●")
				}
			}
			lines = append(lines, keyStyle.Render("‹ ")+strings.Join(dots, " ")+keyStyle.Render(" ›"))
		}
	}
	lines = append(lines, "",
		widgets.Table{
			Headers: []string{"Beds", "Baths", "Area"},
			Rows:    [][]string{{fmt.Sprint(l.Beds), fmt.Sprint(l.Baths), fmt.Sprintf("%d m²", l.AreaM2)}},
		}.Render(inner, 2),
		"",
		textStyle.Width(inner).Render(a.brand.Description),
	)

	var social []string
	if l.Rating != nil {
		social = append(social, format.Rating(*l.Rating))
	}
	if l.Views != nil {
		social = append(social, fmt.Sprintf("%d views", *l.Views))
	}
	if len(social) > 0 {
		lines = append(lines, "", mutedStyle.Render(strings.Join(social, "  ")))
	}
	if l.Agent != nil {
		lines = append(lines, "",
			textStyle.Render("Agent: ")+titleStyle.Render(l.Agent.Name),
			mutedStyle.Render(l.Agent.Phone+" · "+l.Agent.Email),
		)
	}
	lines = append(lines, "",
		keyStyle.Render("r")+" request viewing  "+
			keyStyle.Render("f")+" favorite  "+
			keyStyle.Render("←/→")+" photos  "+
			keyStyle.Render("esc")+" close")
	return modalStyle.Width(mw - 2).Render(strings.Join(lines, "\n"))
}

func (a *App) leadView() string {
	mw := modalWidth(a.width, 64)
	body := a.form.View(mw-6, formStyles())
	if a.sending {
		body += "\n" + mutedStyle.Render("Sending enquiry...")
	}
	if a.status != "" {
		body += "\n" + errorStyle.Render(a.status)
	}
	return modalStyle.Width(mw - 2).Render(body)
}

func (a *App) helpView() string {
	return a.help.FullHelpView(a.keys.FullHelp())
}

func (a *App) toastLayer() widgets.Layer {
	block := toastStyle.Width(max(10, min(lipgloss.Width(a.toast)+2, a.width-4))).Render(a.toast)
	w := widgets.Width(block)
	h := widgets.Height(block)
	return widgets.Layer{
		X:       max(0, a.width-w-1),
		Y:       max(0, a.height-footerHeight-h),
		Z:       zToast,
		Content: block,
	}
}

// photoName is the last path segment of a photo URL without its query.
func photoName(u string) string {
	if i := strings.IndexByte(u, '?'); i >= 0 {
		u = u[:i]
	}
	return path.Base(u)
}

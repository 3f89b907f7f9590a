package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jask/eliterealty/internal/catalog"
	"github.com/jask/eliterealty/internal/dropdown"
	"github.com/jask/eliterealty/internal/format"
	"github.com/jask/eliterealty/widgets"
)

func (a *App) heroSection(w int) string {
	stats := a.cat.Stats()
	lines := []string{
		lipgloss.NewStyle().Bold(true).Foreground(colorBrand).Render(a.brand.Headline),
		textStyle.Width(w).Render(a.brand.Blurb),
		"",
		keyStyle.Render("[e]") + " Explore Listings   " + keyStyle.Render("[s]") + " Schedule a Viewing",
		"",
		widgets.Table{
			Headers: []string{"Avg. Price", "Total Listings", "Avg. Beds", "Total Views"},
			Rows: [][]string{{
				a.money.Currency(stats.AvgPrice),
				strconv.Itoa(stats.Count),
				strconv.Itoa(stats.AvgBeds),
				format.CompactViews(stats.TotalViews),
			}},
		}.Render(w, 2),
	}
	return strings.Join(lines, "\n")
}

func (a *App) marketSection(w int, narrow bool) string {
	const chartBoxH = 12
	head := sectionStyle.Render("Market Overview") + "\n" +
		mutedStyle.Render("Average prices and buyer demand across key areas")

	shares := a.cat.TypeDistribution()
	points := make([]widgets.ChartPoint, 0, len(shares))
	for i, s := range shares {
		points = append(points, widgets.ChartPoint{Label: s.Name, Value: s.Value, Color: chartColors[i%len(chartColors)]})
	}
	typesH := len(points) + 3

	priceBox := func(bw int) string {
		return widgets.Box{
			Title:   "Price trend (millions)",
			Content: priceTrendChart(a.cat.PriceTrend(), bw-4, chartBoxH-3),
			Border:  colorSurface1,
		}.Render(bw, chartBoxH)
	}
	demandBox := func(bw int) string {
		return widgets.Box{
			Title:   "Demand by area",
			Content: demandChart(a.cat.Demand(), bw-4, chartBoxH-3),
			Border:  colorSurface1,
		}.Render(bw, chartBoxH)
	}
	typesBox := widgets.Box{
		Title:   "Property types",
		Content: widgets.Bars{Data: points}.Render(w-4, typesH-3),
		Border:  colorSurface1,
	}.Render(w, typesH)

	if narrow {
		return strings.Join([]string{head, "", priceBox(w), demandBox(w), typesBox}, "\n")
	}
	row := widgets.HStack{Ratios: []float64{1.3, 1}, Gap: 2}
	row.Widgets = make([]widgets.Widget, 2)
	widths := row.Widths(w)
	row.Widgets = []widgets.Widget{widgets.Text(priceBox(widths[0])), widgets.Text(demandBox(widths[1]))}
	return head + "\n\n" + row.Render(w, chartBoxH) + "\n" + typesBox
}

func (a *App) featuredSection(w int) string {
	featured := a.cat.Featured()
	head := sectionStyle.Render("Featured Properties")
	if len(featured) == 0 {
		return head + "\n" + mutedStyle.Render("No featured properties right now.")
	}
	cols := min(len(featured), gridColumns(w))
	rows := []string{head}
	for start := 0; start < len(featured); start += cols {
		row := make([]widgets.Widget, cols)
		for i := 0; i < cols; i++ {
			if start+i >= len(featured) {
				row[i] = widgets.Text("")
				continue
			}
			l := featured[start+i]
			row[i] = widgets.Box{
				Title:   l.Title,
				Content: mutedStyle.Render(l.Location+" · "+l.Type) + "\n" + priceStyle.Render(a.money.Currency(l.Price)),
				Border:  colorBrand,
			}
		}
		rows = append(rows, widgets.HStack{Widgets: row, Gap: 1}.Render(w, 5))
	}
	return strings.Join(rows, "\n")
}

// listingsSection draws the filter panel and the card grid. top is the
// document row the section starts on.
func (a *App) listingsSection(w, top int, an *anchors) string {
	lines := []string{
		sectionStyle.Render("All Listings") + mutedStyle.Render(fmt.Sprintf("  %d of %d", len(a.visible), a.cat.Stats().Count)),
		"",
	}
	lines = append(lines, a.filterPanel(w, top+len(lines), an))
	lines = append(lines, "")

	if len(a.visible) == 0 {
		lines = append(lines, textStyle.Render("No properties match your filters."))
		if a.suggestion != "" {
			lines = append(lines, mutedStyle.Render("Did you mean ")+keyStyle.Render(a.suggestion)+mutedStyle.Render("? Press enter in search to use it."))
		}
		lines = append(lines, mutedStyle.Render("ctrl+r clears all filters"))
		an.cols = 1
		return strings.Join(lines, "\n")
	}

	cols := gridColumns(w)
	an.cols = cols
	row := widgets.HStack{Widgets: make([]widgets.Widget, cols), Gap: 1}
	widths := row.Widths(w)
	gridTop := top + len(strings.Split(strings.Join(lines, "\n"), "\n"))
	for start := 0; start < len(a.visible); start += cols {
		cells := make([]widgets.Widget, cols)
		x := 0
		for i := 0; i < cols; i++ {
			idx := start + i
			if idx >= len(a.visible) {
				cells[i] = widgets.Text("")
				continue
			}
			l := a.visible[idx]
			cells[i] = a.card(l, idx == a.cursor && a.focus == focusGrid)
			an.cards = append(an.cards, cardAnchor{
				id:   l.ID,
				rect: dropdown.Rect{X: x, Y: gridTop + (start/cols)*cardHeight, W: widths[i], H: cardHeight},
			})
			x += widths[i] + 1
		}
		row.Widgets = cells
		lines = append(lines, row.Render(w, cardHeight))
	}
	return strings.Join(lines, "\n")
}

func (a *App) card(l catalog.Listing, active bool) widgets.Box {
	heart := mutedStyle.Render("♡")
	if a.favorites[l.ID] {
		heart = favoriteStyle.Render("♥")
	}
	meta := fmt.Sprintf("%d bd · %d ba · %d m²", l.Beds, l.Baths, l.AreaM2)
	var social []string
	if l.Rating != nil {
		social = append(social, format.Rating(*l.Rating))
	}
	if l.Views != nil {
		social = append(social, fmt.Sprintf("%d views", *l.Views))
	}
	social = append(social, heart)
	title := l.Title
	if l.Featured {
		title = "◆ " + title
	}
	return widgets.Box{
		Title: title,
		Content: strings.Join([]string{
			mutedStyle.Render(l.Location + " · " + l.Type),
			priceStyle.Render(a.money.Currency(l.Price)),
			textStyle.Render(meta),
			strings.Join(social, "  "),
		}, "\n"),
		Border:   colorSurface1,
		Selected: colorFocus,
		Active:   active,
	}
}

func (a *App) agentsSection(w int) string {
	lines := []string{sectionStyle.Render("Our Agents")}
	if len(a.agents) == 0 {
		return lines[0] + "\n" + mutedStyle.Render("No agents listed.")
	}
	widths := widgets.SplitWidths(max(3, w-2), 3, []float64{1, 1, 1.4})
	for i, ag := range a.agents {
		marker := "  "
		name := textStyle.Render(ag.Name)
		if a.focus == focusAgents && i == a.agentCursor {
			marker = cursorStyle.Render("› ")
			name = cursorStyle.Render(ag.Name)
		}
		lines = append(lines, marker+
			widgets.PadRight(name, widths[0])+
			widgets.PadRight(mutedStyle.Render(ag.Phone), widths[1])+
			widgets.PadRight(mutedStyle.Render(ag.Email), widths[2]))
	}
	if a.focus == focusAgents {
		lines = append(lines, mutedStyle.Render("  enter contact this agent"))
	}
	return strings.Join(lines, "\n")
}

func (a *App) testimonialsSection(w int) string {
	lines := []string{sectionStyle.Render("What Clients Say")}
	for _, t := range a.cat.Testimonials() {
		lines = append(lines,
			textStyle.Width(max(10, w-2)).Render("“"+t.Text+"”"),
			mutedStyle.Render("  - "+t.Author),
		)
	}
	return strings.Join(lines, "\n")
}

func (a *App) footerSection(w int) string {
	b := a.brand
	contact := widgets.List{
		Items:  []string{b.Email, b.Phone, b.Address, b.Hours},
		Bullet: "· ",
	}.Render(w, 4)
	return strings.Join([]string{
		lipgloss.NewStyle().Foreground(colorSurface2).Render(strings.Repeat("─", w)),
		brandStyle.Render(b.Name) + " " + mutedStyle.Render(b.Tagline),
		contact,
		mutedStyle.Render(b.Copyright),
	}, "\n")
}

package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jask/eliterealty/internal/dropdown"
	"github.com/jask/eliterealty/widgets"
)

const (
	pageMargin   = 1
	controlGap   = 1
	cardHeight   = 7
	cardMinWidth = 30
	maxCardCols  = 3
)

var filterRatios = []float64{1.2, 1, 1, 1, 1.8}

type cardAnchor struct {
	id   string
	rect dropdown.Rect
}

// anchors are the document positions of everything the page hit-tests or
// scrolls to. Document rows start below the header; columns exclude the
// page margin.
type anchors struct {
	laidOut bool
	narrow  bool
	cols    int

	location dropdown.Rect
	beds     dropdown.Rect
	minPrice dropdown.Rect
	maxPrice dropdown.Rect
	query    dropdown.Rect

	listings dropdown.Rect
	agents   dropdown.Rect
	cards    []cardAnchor
}

type docBuilder struct {
	lines []string
}

func (d *docBuilder) height() int { return len(d.lines) }

// add appends a block followed by one blank spacer row.
func (d *docBuilder) add(block string) {
	d.lines = append(d.lines, strings.Split(block, "\n")...)
	d.lines = append(d.lines, "")
}

func (d *docBuilder) String() string {
	margin := strings.Repeat(" ", pageMargin)
	out := make([]string, len(d.lines))
	for i, l := range d.lines {
		out[i] = margin + l
	}
	return strings.Join(out, "\n")
}

func (a *App) contentWidth() int {
	return max(20, a.width-2*pageMargin)
}

// relayout renders the scrolling document and records its anchors.
func (a *App) relayout() {
	if !a.ready || a.width <= 0 {
		return
	}
	w := a.contentWidth()
	an := anchors{narrow: a.width < a.ui.Breakpoint}

	var doc docBuilder
	doc.add(a.heroSection(w))
	doc.add(a.marketSection(w, an.narrow))
	doc.add(a.featuredSection(w))

	top := doc.height()
	doc.add(a.listingsSection(w, top, &an))
	an.listings = dropdown.Rect{Y: top, W: w, H: doc.height() - top}

	top = doc.height()
	doc.add(a.agentsSection(w))
	an.agents = dropdown.Rect{Y: top, W: w, H: doc.height() - top}

	doc.add(a.testimonialsSection(w))
	doc.add(a.footerSection(w))

	an.laidOut = true
	a.anchors = an
	a.viewport.SetContent(doc.String())
}

// filterPanel lays the five controls out in one row, or one per row under
// the breakpoint, and records where each landed.
func (a *App) filterPanel(w, top int, an *anchors) string {
	widths := make([]int, 5)
	if an.narrow {
		for i := range widths {
			widths[i] = w
		}
	} else {
		widths = widgets.HStack{Widgets: make([]widgets.Widget, 5), Ratios: filterRatios, Gap: controlGap}.Widths(w)
	}

	controls := []string{
		a.location.TriggerView(widths[0]),
		a.beds.TriggerView(widths[1]),
		inputBox("Min price", &a.minPrice, widths[2], a.focus == focusMinPrice, a.priceErr[0]),
		inputBox("Max price", &a.maxPrice, widths[3], a.focus == focusMaxPrice, a.priceErr[1]),
		inputBox("Search", &a.query, widths[4], a.focus == focusQuery, ""),
	}
	rects := make([]dropdown.Rect, len(controls))
	x, y := 0, top
	for i := range controls {
		rects[i] = dropdown.Rect{X: x, Y: y, W: widths[i], H: dropdown.TriggerHeight}
		if an.narrow {
			y += dropdown.TriggerHeight
		} else {
			x += widths[i] + controlGap
		}
	}
	an.location, an.beds, an.minPrice, an.maxPrice, an.query = rects[0], rects[1], rects[2], rects[3], rects[4]

	row := make([]widgets.Widget, len(controls))
	for i, c := range controls {
		row[i] = widgets.Text(c)
	}
	if an.narrow {
		return widgets.VStack{Widgets: row}.Render(w, len(row)*dropdown.TriggerHeight)
	}
	return widgets.HStack{Widgets: row, Ratios: filterRatios, Gap: controlGap}.Render(w, dropdown.TriggerHeight)
}

// inputBox draws a text input in the same three-row frame as the dropdown
// triggers.
func inputBox(title string, in *textinput.Model, width int, focused bool, errText string) string {
	width = max(8, width)
	inner := width - 2
	border := colorSurface1
	switch {
	case errText != "":
		border = colorError
	case focused:
		border = colorFocus
	}
	edge := lipgloss.NewStyle().Foreground(border)

	label := title
	if errText != "" {
		label = title + ": " + errText
	}
	label = " " + ansi.Truncate(label, max(0, inner-3), "…") + " "
	fill := max(0, inner-1-ansi.StringWidth(label))
	top := edge.Render("╭─") + mutedStyle.Render(label) + edge.Render(strings.Repeat("─", fill)+"╮")

	in.Width = max(1, inner-3)
	mid := edge.Render("│") + " " + widgets.PadRight(in.View(), inner-2) + " " + edge.Render("│")
	bottom := edge.Render("╰" + strings.Repeat("─", inner) + "╯")
	return top + "\n" + mid + "\n" + bottom
}

// gridColumns is how many listing cards fit side by side.
func gridColumns(w int) int {
	return min(maxCardCols, max(1, w/cardMinWidth))
}

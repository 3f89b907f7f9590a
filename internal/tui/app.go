// Package tui is the Elite Realty page: a scrolling document of sections
// with a sticky header, floating filter dropdowns and two modals.
package tui

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/eliterealty/internal/catalog"
	"github.com/jask/eliterealty/internal/config"
	"github.com/jask/eliterealty/internal/dropdown"
	"github.com/jask/eliterealty/internal/filter"
	"github.com/jask/eliterealty/internal/format"
	"github.com/jask/eliterealty/internal/leads"
)

const (
	headerHeight = 1
	footerHeight = 1
	toastTTL     = 4 * time.Second

	zLocation = 35
	zBeds     = 36
	zModal    = 50
	zHelp     = 55
	zToast    = 60
)

// Options wires the page to its data and collaborators.
type Options struct {
	Catalog *catalog.Catalog
	Leads   *leads.Service
	Log     *slog.Logger
	UI      config.UIConfig
}

type focusTarget int

const (
	focusLocation focusTarget = iota
	focusBeds
	focusMinPrice
	focusMaxPrice
	focusQuery
	focusGrid
	focusAgents
	focusCount
)

type (
	locationPickedMsg string
	bedsPickedMsg     string
	toastExpiredMsg   struct{ seq int }
)

// leadSubmittedMsg and leadFailedMsg carry the submit seq they answer.
type leadSubmittedMsg struct {
	seq     int
	receipt leads.Receipt
}

type leadFailedMsg struct {
	seq int
	err error
}

// App is the page model. It is used through a pointer so the dropdown
// measurers can read the current layout.
type App struct {
	ctx    context.Context
	cat    *catalog.Catalog
	leads  *leads.Service
	log    *slog.Logger
	ui     config.UIConfig
	money  format.Money
	keys   keyMap
	help   help.Model
	brand  catalog.Brand
	agents []catalog.Agent

	width, height int
	ready         bool
	viewport      viewport.Model
	anchors       anchors

	filter     filter.State
	visible    []catalog.Listing
	candidates []string
	suggestion string
	priceErr   [2]string

	registry *dropdown.Registry
	location *dropdown.Model
	beds     *dropdown.Model
	minPrice textinput.Model
	maxPrice textinput.Model
	query    textinput.Model

	focus       focusTarget
	cursor      int
	agentCursor int
	favorites   map[string]bool

	selected *catalog.Listing
	gallery  int
	leadOpen bool
	form     *leads.Form
	// submitSeq identifies the submission in flight; results carrying an
	// older seq belong to a form that is gone.
	submitSeq int
	sending   bool

	toast    string
	toastSeq int
	status   string
	showHelp bool
}

func New(opts Options) *App {
	log := opts.Log
	if log == nil {
		log = slog.Default()
	}
	a := &App{
		ctx:       context.Background(),
		cat:       opts.Catalog,
		leads:     opts.Leads,
		log:       log,
		ui:        opts.UI,
		money:     format.NewMoney(opts.UI.CurrencySymbol, opts.UI.Locale),
		keys:      defaultKeys(),
		help:      help.New(),
		brand:     opts.Catalog.Brand(),
		agents:    opts.Catalog.Agents(),
		registry:  dropdown.NewRegistry(),
		favorites: map[string]bool{},
		form:      leads.NewForm(),
		focus:     focusGrid,
		filter:    filter.State{Location: catalog.AllLocations},
	}
	if a.ui.Breakpoint <= 0 {
		a.ui.Breakpoint = 90
	}
	if a.leads == nil {
		a.leads = leads.NewService(nil, log)
	}

	cities := opts.Catalog.Locations()
	a.location = dropdown.New("location", "Location", cities, catalog.AllLocations,
		func(v string) tea.Msg { return locationPickedMsg(v) },
		dropdown.WithZ(zLocation), dropdown.WithAnimation(a.ui.Animations), dropdown.WithStyles(dropdownStyles()))
	a.location.Bind(a.registry, a.measure(func() dropdown.Rect { return a.anchors.location }))

	a.beds = dropdown.New("beds", "Beds", filter.BedOptions(), filter.AnyBeds,
		func(v string) tea.Msg { return bedsPickedMsg(v) },
		dropdown.WithZ(zBeds), dropdown.WithAnimation(a.ui.Animations), dropdown.WithStyles(dropdownStyles()))
	a.beds.Bind(a.registry, a.measure(func() dropdown.Rect { return a.anchors.beds }))

	a.minPrice = newInput("Min price", 14)
	a.maxPrice = newInput("Max price", 14)
	a.query = newInput("Search title, location or type", 60)

	a.candidates = filter.Candidates(opts.Catalog.Listings())
	a.applyFilter()
	return a
}

func newInput(placeholder string, limit int) textinput.Model {
	in := textinput.New()
	in.Prompt = ""
	in.Placeholder = placeholder
	in.CharLimit = limit
	in.Cursor.SetMode(cursor.CursorStatic)
	return in
}

func (a *App) Init() tea.Cmd {
	a.log.Info("page ready", "listings", len(a.visible), "sink", a.leads.SinkName())
	return nil
}

// measure reports a trigger's screen box. Before the first layout, or while
// the trigger is scrolled under the header or past the footer, there is
// nothing to measure.
func (a *App) measure(doc func() dropdown.Rect) dropdown.Measurer {
	return func() (dropdown.Measurement, bool) {
		if !a.anchors.laidOut {
			return dropdown.Measurement{}, false
		}
		r := doc()
		if r.Empty() {
			return dropdown.Measurement{}, false
		}
		screen := a.toScreen(r)
		if screen.Y < headerHeight || screen.Y >= a.height-footerHeight {
			return dropdown.Measurement{}, false
		}
		return dropdown.Measurement{
			Trigger:        screen,
			ViewportHeight: a.height - footerHeight,
		}, true
	}
}

func (a *App) toScreen(r dropdown.Rect) dropdown.Rect {
	r.X += pageMargin
	r.Y = r.Y + headerHeight - a.viewport.YOffset
	return r
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		return a, a.resize(m.Width, m.Height)
	case tea.MouseMsg:
		cmd := a.handleMouse(m)
		a.relayout()
		return a, cmd
	case tea.KeyMsg:
		cmd := a.handleKey(m)
		a.relayout()
		return a, cmd
	case dropdown.FrameMsg:
		return a, tea.Batch(a.location.Update(m), a.beds.Update(m))
	case locationPickedMsg:
		a.filter.Location = string(m)
		a.log.Debug("filter location", "value", a.filter.Location)
		return a, a.filterChanged()
	case bedsPickedMsg:
		a.filter.MinBeds = filter.ParseBeds(string(m))
		return a, a.filterChanged()
	case leadSubmittedMsg:
		if m.seq != a.submitSeq || !a.sending {
			a.log.Info("lead result for a closed form", "reference", m.receipt.Reference)
			return a, nil
		}
		a.sending = false
		return a, a.leadAccepted(m.receipt)
	case leadFailedMsg:
		if m.seq != a.submitSeq || !a.sending {
			a.log.Debug("dropping stale lead failure", "err", m.err)
			return a, nil
		}
		a.sending = false
		var ve *leads.ValidationError
		if errors.As(m.err, &ve) {
			a.form.ShowErrors(ve)
			a.status = "Please fix the highlighted fields."
			return a, nil
		}
		a.status = "Enquiry not sent: " + m.err.Error()
		return a, nil
	case toastExpiredMsg:
		if m.seq == a.toastSeq {
			a.toast = ""
		}
		return a, nil
	}
	return a, nil
}

func (a *App) resize(w, h int) tea.Cmd {
	a.width, a.height = w, h
	bodyH := max(1, h-headerHeight-footerHeight)
	if !a.ready {
		a.viewport = viewport.New(w, bodyH)
		a.ready = true
	} else {
		a.viewport.Width = w
		a.viewport.Height = bodyH
	}
	a.help.Width = w
	a.relayout()
	var follow tea.Cmd
	if dd := a.dropdownFor(a.focus); dd != nil && dd.IsOpen() {
		if r, ok := a.focusRect(); ok {
			follow = a.ensureVisible(r)
		}
	}
	_, cmd := a.registry.Dispatch(dropdown.ResizeEvent{Width: w, Height: h})
	return tea.Batch(follow, cmd)
}

// reflow rebuilds the document and lets open panels follow their triggers.
func (a *App) reflow() tea.Cmd {
	a.relayout()
	_, cmd := a.registry.Dispatch(dropdown.LayoutEvent{})
	return cmd
}

func (a *App) scrollTo(offset int) tea.Cmd {
	before := a.viewport.YOffset
	a.viewport.SetYOffset(offset)
	if a.viewport.YOffset == before {
		return nil
	}
	_, cmd := a.registry.Dispatch(dropdown.ScrollEvent{Offset: a.viewport.YOffset})
	return cmd
}

func (a *App) scrollBy(delta int) tea.Cmd {
	return a.scrollTo(a.viewport.YOffset + delta)
}

// ensureVisible scrolls the least amount that brings r into the viewport.
func (a *App) ensureVisible(r dropdown.Rect) tea.Cmd {
	top := a.viewport.YOffset
	bottom := top + a.viewport.Height
	switch {
	case r.Y < top:
		return a.scrollTo(r.Y)
	case r.Bottom() > bottom:
		return a.scrollTo(r.Bottom() - a.viewport.Height)
	}
	return nil
}

func (a *App) applyFilter() {
	a.visible = a.filter.Apply(a.cat.Listings())
	if a.cursor >= len(a.visible) {
		a.cursor = max(0, len(a.visible)-1)
	}
	a.suggestion = ""
	if len(a.visible) == 0 && strings.TrimSpace(a.filter.Query) != "" {
		if s, ok := filter.Suggest(a.filter.Query, a.candidates); ok {
			a.suggestion = s
		}
	}
}

func (a *App) filterChanged() tea.Cmd {
	a.applyFilter()
	return a.reflow()
}

func (a *App) modalOpen() bool { return a.selected != nil || a.leadOpen }

func (a *App) closeDropdowns() tea.Cmd {
	return tea.Batch(a.location.Close(), a.beds.Close())
}

func (a *App) dropdownFor(f focusTarget) *dropdown.Model {
	switch f {
	case focusLocation:
		return a.location
	case focusBeds:
		return a.beds
	}
	return nil
}

func (a *App) inputFor(f focusTarget) *textinput.Model {
	switch f {
	case focusMinPrice:
		return &a.minPrice
	case focusMaxPrice:
		return &a.maxPrice
	case focusQuery:
		return &a.query
	}
	return nil
}

// setFocus moves the focus ring and scrolls the new target into view.
func (a *App) setFocus(f focusTarget) tea.Cmd {
	cmds := []tea.Cmd{a.closeDropdowns()}
	if dd := a.dropdownFor(a.focus); dd != nil {
		dd.Blur()
	}
	if in := a.inputFor(a.focus); in != nil {
		in.Blur()
	}
	a.focus = f
	if dd := a.dropdownFor(f); dd != nil {
		dd.Focus()
	}
	if in := a.inputFor(f); in != nil {
		cmds = append(cmds, in.Focus())
	}
	a.relayout()
	if r, ok := a.focusRect(); ok {
		cmds = append(cmds, a.ensureVisible(r))
	}
	return tea.Batch(cmds...)
}

func (a *App) focusRect() (dropdown.Rect, bool) {
	switch a.focus {
	case focusLocation:
		return a.anchors.location, true
	case focusBeds:
		return a.anchors.beds, true
	case focusMinPrice:
		return a.anchors.minPrice, true
	case focusMaxPrice:
		return a.anchors.maxPrice, true
	case focusQuery:
		return a.anchors.query, true
	case focusGrid:
		if a.cursor < len(a.anchors.cards) {
			return a.anchors.cards[a.cursor].rect, true
		}
		return a.anchors.listings, true
	case focusAgents:
		return a.anchors.agents, true
	}
	return dropdown.Rect{}, false
}

func (a *App) showToast(text string) tea.Cmd {
	a.toastSeq++
	seq := a.toastSeq
	a.toast = text
	return tea.Tick(toastTTL, func(time.Time) tea.Msg { return toastExpiredMsg{seq: seq} })
}

// dismissToast clears the toast and voids its pending expiry.
func (a *App) dismissToast() {
	if a.toast == "" {
		return
	}
	a.toast = ""
	a.toastSeq++
}

func (a *App) toggleFavorite(id string) {
	a.favorites[id] = !a.favorites[id]
}

// openDetail shows the detail modal for l with the gallery at the start.
func (a *App) openDetail(l catalog.Listing) tea.Cmd {
	a.selected = &l
	a.gallery = 0
	return a.closeDropdowns()
}

func (a *App) closeDetail() {
	a.selected = nil
	a.gallery = 0
}

func (a *App) stepGallery(dir int) {
	if a.selected == nil {
		return
	}
	n := len(a.selected.Photos())
	if n == 0 {
		return
	}
	a.gallery = (a.gallery + dir + n) % n
}

// openLead opens the enquiry modal. A listing, when given, becomes the
// selected record the enquiry is about.
func (a *App) openLead(l *catalog.Listing) tea.Cmd {
	if l != nil {
		c := *l
		a.selected = &c
	}
	a.form.Reset()
	a.form.Associate(a.selected)
	a.leadOpen = true
	a.status = ""
	a.submitSeq++
	a.sending = false
	return a.closeDropdowns()
}

// cancelLead drops the form and the associated record.
func (a *App) cancelLead() {
	a.form.Reset()
	a.leadOpen = false
	a.submitSeq++
	a.sending = false
	a.closeDetail()
}

// submitLead sends the form once. Until its result arrives further submits
// are ignored.
func (a *App) submitLead() tea.Cmd {
	if a.sending {
		return nil
	}
	a.submitSeq++
	a.sending = true
	a.status = ""
	seq := a.submitSeq
	draft := a.form.Values()
	svc := a.leads
	ctx := a.ctx
	return func() tea.Msg {
		r, err := svc.Submit(ctx, draft)
		if err != nil {
			return leadFailedMsg{seq: seq, err: err}
		}
		return leadSubmittedMsg{seq: seq, receipt: r}
	}
}

func (a *App) leadAccepted(r leads.Receipt) tea.Cmd {
	a.log.Info("lead accepted", "reference", r.Reference, "listing", r.Listing, "sink", r.Sink)
	a.form.Reset()
	a.leadOpen = false
	a.status = ""
	return a.showToast(leads.Acknowledgment + " Ref " + shortRef(r.Reference))
}

func shortRef(id string) string {
	if len(id) > 8 {
		return strings.ToUpper(id[:8])
	}
	return strings.ToUpper(id)
}

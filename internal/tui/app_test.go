package tui

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/jask/eliterealty/internal/catalog"
	"github.com/jask/eliterealty/internal/config"
	"github.com/jask/eliterealty/internal/leads"
)

type recordingSink struct {
	leads []leads.Lead
}

func (s *recordingSink) Name() string { return "recording" }

func (s *recordingSink) Submit(_ context.Context, l leads.Lead) error {
	s.leads = append(s.leads, l)
	return nil
}

func newTestApp(t *testing.T, width, height int) (*App, *recordingSink) {
	t.Helper()
	cat, err := catalog.Load()
	require.NoError(t, err)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	sink := &recordingSink{}
	a := New(Options{
		Catalog: cat,
		Leads:   leads.NewService(sink, log),
		Log:     log,
		UI: config.UIConfig{
			CurrencySymbol: "₦",
			Locale:         "en",
			Mouse:          true,
			Animations:     false,
			Breakpoint:     90,
		},
	})
	a.Update(tea.WindowSizeMsg{Width: width, Height: height})
	return a, sink
}

var namedKeys = map[string]tea.KeyType{
	"tab":       tea.KeyTab,
	"shift+tab": tea.KeyShiftTab,
	"esc":       tea.KeyEsc,
	"enter":     tea.KeyEnter,
	"left":      tea.KeyLeft,
	"right":     tea.KeyRight,
	"up":        tea.KeyUp,
	"down":      tea.KeyDown,
	"ctrl+s":    tea.KeyCtrlS,
	"ctrl+r":    tea.KeyCtrlR,
}

func press(a *App, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		if kt, ok := namedKeys[k]; ok {
			msg = tea.KeyMsg{Type: kt}
		}
		_, cmd = a.Update(msg)
	}
	return cmd
}

func clickAt(a *App, x, y int) tea.Cmd {
	_, cmd := a.Update(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	return cmd
}

// deliver runs cmd and feeds every resulting message back into the app.
// Only use it where no timer commands are expected.
func deliver(a *App, cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			deliver(a, c)
		}
		return
	}
	if msg != nil {
		a.Update(msg)
	}
}

func visibleIDs(a *App) []string {
	ids := make([]string, 0, len(a.visible))
	for _, l := range a.visible {
		ids = append(ids, l.ID)
	}
	return ids
}

func TestStartsWithEveryListingAndNoListeners(t *testing.T) {
	a, _ := newTestApp(t, 120, 40)
	require.Len(t, a.visible, 6)
	require.Equal(t, 0, a.registry.Len())
	require.True(t, a.anchors.laidOut)
	require.Contains(t, a.View(), "Elite Realty")
}

func TestLocationDropdownByMouseFiltersGrid(t *testing.T) {
	a, _ := newTestApp(t, 120, 40)
	press(a, "e")
	trigger := a.toScreen(a.anchors.location)
	clickAt(a, trigger.X+2, trigger.Y+1)
	require.True(t, a.location.IsOpen())
	require.Equal(t, 1, a.registry.Len())

	panel, ok := a.location.PanelRect()
	require.True(t, ok)
	require.Equal(t, trigger.W, panel.W)
	options := a.location.Options()
	lekki := -1
	for i, o := range options {
		if o == "Lekki" {
			lekki = i
		}
	}
	require.GreaterOrEqual(t, lekki, 0)

	deliver(a, clickAt(a, panel.X+2, panel.Y+1+lekki))
	require.False(t, a.location.IsOpen())
	require.Equal(t, 0, a.registry.Len())
	require.Equal(t, "Lekki", a.location.Value())
	require.Equal(t, []string{"L-005"}, visibleIDs(a))
}

func TestOutsideClickClosesWithoutChangingFilter(t *testing.T) {
	a, _ := newTestApp(t, 120, 40)
	press(a, "tab", "tab")
	require.Equal(t, focusLocation, a.focus)
	press(a, "enter")
	require.True(t, a.location.IsOpen())

	clickAt(a, 0, a.height-1)
	require.False(t, a.location.IsOpen())
	require.Equal(t, 0, a.registry.Len())
	require.Equal(t, catalog.AllLocations, a.location.Value())
	require.Len(t, a.visible, 6)
}

func TestEscapeClosesOpenDropdown(t *testing.T) {
	a, _ := newTestApp(t, 120, 40)
	press(a, "tab", "tab", "enter")
	require.True(t, a.location.IsOpen())
	press(a, "esc")
	require.False(t, a.location.IsOpen())
	require.Equal(t, focusLocation, a.focus)
	require.Equal(t, 0, a.registry.Len())
}

func TestBedsDropdownByKeyboard(t *testing.T) {
	a, _ := newTestApp(t, 120, 40)
	press(a, "tab", "tab", "tab")
	require.Equal(t, focusBeds, a.focus)
	press(a, "enter", "down", "down", "down", "down")
	deliver(a, press(a, "enter"))
	require.False(t, a.beds.IsOpen())
	require.Equal(t, "+4", a.beds.Value())
	require.Equal(t, []string{"L-001", "L-003", "L-004", "L-005"}, visibleIDs(a))
}

func TestTabAwayClosesDropdown(t *testing.T) {
	a, _ := newTestApp(t, 120, 40)
	press(a, "tab", "tab", "enter")
	require.True(t, a.location.IsOpen())
	press(a, "tab")
	require.False(t, a.location.IsOpen())
	require.Equal(t, focusBeds, a.focus)
	require.Equal(t, 0, a.registry.Len())
}

func TestOpenPanelFollowsResize(t *testing.T) {
	a, _ := newTestApp(t, 120, 40)
	press(a, "tab", "tab", "enter")
	panel, ok := a.location.PanelRect()
	require.True(t, ok)
	require.Equal(t, a.anchors.location.W, panel.W)
	wide := panel.W

	a.Update(tea.WindowSizeMsg{Width: 70, Height: 40})
	require.True(t, a.location.IsOpen())
	panel, _ = a.location.PanelRect()
	require.Equal(t, a.contentWidth(), panel.W)
	require.NotEqual(t, wide, panel.W)
}

func TestFilterPanelStacksBelowBreakpoint(t *testing.T) {
	a, _ := newTestApp(t, 120, 40)
	require.False(t, a.anchors.narrow)
	require.Equal(t, a.anchors.location.Y, a.anchors.beds.Y)
	require.Greater(t, a.anchors.beds.X, a.anchors.location.X)

	a.Update(tea.WindowSizeMsg{Width: 70, Height: 40})
	require.True(t, a.anchors.narrow)
	require.Equal(t, a.contentWidth(), a.anchors.location.W)
	require.Equal(t, a.anchors.location.Bottom(), a.anchors.beds.Y)
	require.Equal(t, 0, a.anchors.beds.X)
}

func TestScheduleViewingSubmitClearsAndCloses(t *testing.T) {
	a, sink := newTestApp(t, 120, 40)
	press(a, "s")
	require.True(t, a.leadOpen)
	require.Equal(t, "Schedule a Viewing", a.form.Title())

	a.form.SetValue(leads.FieldName, "Ada Obi")
	a.form.SetValue(leads.FieldEmail, "ada@example.com")
	a.form.SetValue(leads.FieldPhone, "08012345678")
	a.form.SetValue(leads.FieldMessage, "Saturday")

	cmd := press(a, "ctrl+s")
	require.NotNil(t, cmd)
	a.Update(cmd())

	require.False(t, a.leadOpen)
	require.Equal(t, leads.Draft{}, a.form.Values())
	require.Len(t, sink.leads, 1)
	require.Nil(t, sink.leads[0].ListingID)
	require.Contains(t, a.toast, "Thanks")
}

func TestInvalidLeadKeepsModalOpen(t *testing.T) {
	a, sink := newTestApp(t, 120, 40)
	press(a, "s")
	a.form.SetValue(leads.FieldName, "Ada")
	a.Update(press(a, "ctrl+s")())

	require.True(t, a.leadOpen)
	require.Empty(t, sink.leads)
	require.NotEmpty(t, a.form.Error(leads.FieldEmail))
	require.Equal(t, "Ada", a.form.Value(leads.FieldName))
}

func TestEnquireFromCardThenCancelClearsRecord(t *testing.T) {
	a, _ := newTestApp(t, 120, 40)
	require.Equal(t, focusGrid, a.focus)
	press(a, "c")
	require.True(t, a.leadOpen)
	require.NotNil(t, a.selected)
	require.Equal(t, "L-001", a.selected.ID)
	require.Equal(t, "Enquire: "+a.selected.Title, a.form.Title())
	require.Equal(t, "Victoria Island - Villa", a.form.Context())

	press(a, "esc")
	require.False(t, a.leadOpen)
	require.Nil(t, a.selected)
	require.Equal(t, leads.Draft{}, a.form.Values())
}

func TestRequestViewingFromDetailAssociatesRecord(t *testing.T) {
	a, sink := newTestApp(t, 120, 40)
	press(a, "right", "enter")
	require.NotNil(t, a.selected)
	require.Equal(t, "L-002", a.selected.ID)

	press(a, "r")
	require.True(t, a.leadOpen)
	a.form.SetValue(leads.FieldName, "Ada Obi")
	a.form.SetValue(leads.FieldEmail, "ada@example.com")
	a.form.SetValue(leads.FieldPhone, "+2348012345678")
	a.Update(press(a, "ctrl+s")())

	require.Len(t, sink.leads, 1)
	require.Equal(t, "L-002", *sink.leads[0].ListingID)
	require.False(t, a.leadOpen)
	require.NotNil(t, a.selected)
}

func TestGalleryWrapsAndResetsOnClose(t *testing.T) {
	a, _ := newTestApp(t, 120, 40)
	press(a, "enter")
	require.Equal(t, "L-001", a.selected.ID)
	n := len(a.selected.Photos())
	require.Equal(t, 2, n)

	press(a, "left")
	require.Equal(t, n-1, a.gallery)
	press(a, "right")
	require.Equal(t, 0, a.gallery)
	press(a, "right")
	require.Equal(t, 1, a.gallery)
	require.Contains(t, a.View(), "Photo 2/2")

	press(a, "esc")
	require.Nil(t, a.selected)
	require.Equal(t, 0, a.gallery)
}

func TestFavoriteToggleIsIdempotentInPairs(t *testing.T) {
	a, _ := newTestApp(t, 120, 40)
	press(a, "f")
	require.True(t, a.favorites["L-001"])
	press(a, "f")
	require.False(t, a.favorites["L-001"])
}

func TestSearchSuggestsAndAppliesCorrection(t *testing.T) {
	a, _ := newTestApp(t, 120, 40)
	press(a, "/")
	require.Equal(t, focusQuery, a.focus)
	a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("lekkj")})
	require.Empty(t, a.visible)
	require.Equal(t, "Lekki", a.suggestion)

	press(a, "enter")
	require.Equal(t, "Lekki", a.query.Value())
	require.Equal(t, []string{"L-005"}, visibleIDs(a))
}

func TestPriceBoundsAndReset(t *testing.T) {
	a, _ := newTestApp(t, 120, 40)
	press(a, "tab", "tab", "tab", "tab")
	require.Equal(t, focusMinPrice, a.focus)
	a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("450000001")})
	require.Empty(t, a.visible)

	press(a, "ctrl+r")
	require.Len(t, a.visible, 6)
	require.Empty(t, a.minPrice.Value())

	press(a, "tab")
	require.Equal(t, focusMaxPrice, a.focus)
	a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("abc")})
	require.Equal(t, "numbers only", a.priceErr[1])
	require.Len(t, a.visible, 6)
}

func TestModalPaintsAboveOpenDropdownState(t *testing.T) {
	a, _ := newTestApp(t, 120, 40)
	press(a, "tab", "tab", "enter")
	require.True(t, a.location.IsOpen())
	_, ok := a.location.Layer()
	require.True(t, ok)

	press(a, "esc", "tab", "tab", "tab", "tab", "tab", "s")
	require.True(t, a.leadOpen)
	require.False(t, a.location.IsOpen())
	for _, l := range a.layers() {
		require.Equal(t, zModal, l.Z)
	}
	require.True(t, strings.Contains(a.View(), "Schedule a Viewing"))
}

func fillValidLead(a *App) {
	a.form.SetValue(leads.FieldName, "Ada Obi")
	a.form.SetValue(leads.FieldEmail, "ada@example.com")
	a.form.SetValue(leads.FieldPhone, "0803 123 4567 ext 2")
}

func TestRepeatedSubmitSendsOnceAndStaleReceiptIsDropped(t *testing.T) {
	a, sink := newTestApp(t, 120, 40)
	press(a, "s")
	fillValidLead(a)

	first := press(a, "ctrl+s")
	require.NotNil(t, first)
	require.True(t, a.sending)
	require.Nil(t, press(a, "ctrl+s"))
	press(a, "x")
	require.Equal(t, "Ada Obi", a.form.Value(leads.FieldName))

	press(a, "esc", "s")
	require.True(t, a.leadOpen)
	a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("Second Person")})

	a.Update(first())
	require.Len(t, sink.leads, 1)
	require.True(t, a.leadOpen)
	require.Equal(t, "Second Person", a.form.Value(leads.FieldName))
	require.Empty(t, a.toast)

	a.Update(leadFailedMsg{seq: 0, err: errors.New("late failure")})
	require.Empty(t, a.status)
	require.True(t, a.leadOpen)
}

func TestFreeFormPhoneIsAccepted(t *testing.T) {
	for _, phone := range []string{"12345", "+234 (0) 803-123-4567 / 0701"} {
		a, sink := newTestApp(t, 120, 40)
		press(a, "s")
		fillValidLead(a)
		a.form.SetValue(leads.FieldPhone, phone)
		a.Update(press(a, "ctrl+s")())

		require.False(t, a.leadOpen, phone)
		require.Len(t, sink.leads, 1, phone)
		require.Equal(t, phone, sink.leads[0].Phone)
	}
}

func TestKeyPressDismissesToast(t *testing.T) {
	a, _ := newTestApp(t, 120, 40)
	press(a, "s")
	fillValidLead(a)
	a.Update(press(a, "ctrl+s")())
	require.NotEmpty(t, a.toast)
	seq := a.toastSeq

	press(a, "down")
	require.Empty(t, a.toast)

	a.showToast("next")
	a.Update(toastExpiredMsg{seq: seq})
	require.Equal(t, "next", a.toast)
}

func TestPanelNotPositionedWhileTriggerIsOffScreen(t *testing.T) {
	a, _ := newTestApp(t, 120, 40)
	press(a, "tab", "tab", "enter")
	require.True(t, a.location.IsOpen())
	_, ok := a.location.Layer()
	require.True(t, ok)

	require.GreaterOrEqual(t, headerHeight+a.anchors.location.Y, a.height-footerHeight)
	a.scrollTo(0)
	require.True(t, a.location.IsOpen())
	_, ok = a.location.Layer()
	require.False(t, ok)
	_, ok = a.location.PanelRect()
	require.False(t, ok)

	a.scrollTo(a.anchors.location.Y)
	layer, ok := a.location.Layer()
	require.True(t, ok)
	require.GreaterOrEqual(t, layer.Y, headerHeight)
	require.Equal(t, 1, a.registry.Len())
}

package dropdown

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

type pickedMsg struct{ value string }

type harness struct {
	reg     *Registry
	dd      *Model
	trigger Rect
	viewH   int
	ok      bool
}

func newHarness(t *testing.T, options []string, initial string) *harness {
	t.Helper()
	h := &harness{
		reg:     NewRegistry(),
		trigger: Rect{X: 4, Y: 5, W: 20, H: TriggerHeight},
		viewH:   40,
		ok:      true,
	}
	h.dd = New("city", "City", options, initial, func(v string) tea.Msg { return pickedMsg{v} }, WithAnimation(false))
	h.dd.Bind(h.reg, func() (Measurement, bool) {
		return Measurement{Trigger: h.trigger, ViewportHeight: h.viewH}, h.ok
	})
	return h
}

// collect runs cmd and flattens batches into their messages.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

func picked(msgs []tea.Msg) []string {
	var out []string
	for _, m := range msgs {
		if p, ok := m.(pickedMsg); ok {
			out = append(out, p.value)
		}
	}
	return out
}

func TestPlaceChoosesSideByAvailableSpace(t *testing.T) {
	m := DefaultMetrics
	cases := []struct {
		name      string
		trigger   Rect
		viewportH int
		options   int
		want      Placement
		wantY     int
	}{
		{"room below", Rect{Y: 2, W: 10, H: 3}, 30, 6, Below, 5},
		{"exactly fits below", Rect{Y: 20, W: 10, H: 3}, 31, 6, Below, 23},
		{"cramped below, more above", Rect{Y: 20, W: 10, H: 3}, 26, 6, Above, 12},
		{"cramped both, less above", Rect{Y: 1, W: 10, H: 3}, 8, 6, Below, 4},
		{"equal space stays below", Rect{Y: 4, W: 10, H: 3}, 11, 6, Below, 7},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p, panel := Place(tc.trigger, tc.viewportH, tc.options, m)
			require.Equal(t, tc.want, p)
			require.Equal(t, tc.wantY, panel.Y)
			require.Equal(t, tc.trigger.W, panel.W)
			require.Equal(t, m.EstimatedHeight(tc.options), panel.H)
		})
	}
}

func TestPlacementPropertyOverGrid(t *testing.T) {
	m := DefaultMetrics
	for vh := 5; vh <= 40; vh++ {
		for y := 0; y < vh; y++ {
			for n := 0; n <= 8; n++ {
				trig := Rect{X: 1, Y: y, W: 12, H: 3}
				p, panel := Place(trig, vh, n, m)
				est := m.EstimatedHeight(n)
				below := vh - trig.Bottom()
				above := trig.Y
				wantAbove := below < est && above > below
				require.Equal(t, wantAbove, p == Above, "vh=%d y=%d n=%d", vh, y, n)
				if p == Above {
					require.Equal(t, trig.Y, panel.Bottom())
				} else {
					require.Equal(t, trig.Bottom()+m.Gap, panel.Y)
				}
			}
		}
	}
}

func TestOpenAttachesAndCloseDetaches(t *testing.T) {
	h := newHarness(t, []string{"All", "Lekki", "Ikoyi"}, "All")
	require.Equal(t, 0, h.reg.Len())

	h.dd.Open()
	require.True(t, h.dd.IsOpen())
	require.Equal(t, 1, h.reg.Len())
	require.True(t, h.reg.Attached("city"))

	h.dd.Close()
	require.False(t, h.dd.IsOpen())
	require.Equal(t, 0, h.reg.Len())

	h.dd.Open()
	h.dd.Unmount()
	h.dd.Unmount()
	require.Equal(t, 0, h.reg.Len())
}

func TestSelectReportsExactValueAndCloses(t *testing.T) {
	h := newHarness(t, []string{"All", "Lekki", "Ikoyi"}, "All")
	h.dd.Open()

	msgs := collect(h.dd.Select("Ikoyi"))
	require.Equal(t, []string{"Ikoyi"}, picked(msgs))
	require.Equal(t, "Ikoyi", h.dd.Value())
	require.False(t, h.dd.IsOpen())
	require.Equal(t, 0, h.reg.Len())
}

func TestSelectingCurrentValueStillCloses(t *testing.T) {
	h := newHarness(t, []string{"All", "Lekki"}, "Lekki")
	h.dd.Open()
	msgs := collect(h.dd.Select("Lekki"))
	require.Equal(t, []string{"Lekki"}, picked(msgs))
	require.False(t, h.dd.IsOpen())
}

func TestPointerOnOptionRowSelects(t *testing.T) {
	h := newHarness(t, []string{"All", "Lekki", "Ikoyi"}, "All")
	h.dd.Open()
	panel, ok := h.dd.PanelRect()
	require.True(t, ok)
	require.Equal(t, Below, h.dd.Placement())

	// Row 0 is the top border; option i sits at panel.Y+1+i.
	consumed, cmd := h.reg.Dispatch(PointerEvent{X: panel.X + 2, Y: panel.Y + 1 + 2})
	require.True(t, consumed)
	require.Equal(t, []string{"Ikoyi"}, picked(collect(cmd)))
	require.False(t, h.dd.IsOpen())
}

func TestPointerOnPanelBorderIsSwallowed(t *testing.T) {
	h := newHarness(t, []string{"All", "Lekki"}, "All")
	h.dd.Open()
	panel, _ := h.dd.PanelRect()
	consumed, cmd := h.reg.Dispatch(PointerEvent{X: panel.X + 1, Y: panel.Y})
	require.True(t, consumed)
	require.Nil(t, cmd)
	require.True(t, h.dd.IsOpen())
}

func TestOutsidePressClosesWithoutChangingSelection(t *testing.T) {
	h := newHarness(t, []string{"All", "Lekki"}, "Lekki")
	h.dd.Open()
	consumed, cmd := h.reg.Dispatch(PointerEvent{X: 70, Y: 30})
	require.False(t, consumed)
	require.Empty(t, picked(collect(cmd)))
	require.False(t, h.dd.IsOpen())
	require.Equal(t, "Lekki", h.dd.Value())
	require.Equal(t, 0, h.reg.Len())
}

func TestEscapeClosesWithoutCallback(t *testing.T) {
	h := newHarness(t, []string{"All", "Lekki"}, "All")
	h.dd.Open()
	consumed, cmd := h.reg.Dispatch(KeyEvent{Key: "esc"})
	require.True(t, consumed)
	require.Empty(t, picked(collect(cmd)))
	require.False(t, h.dd.IsOpen())
	require.Equal(t, "All", h.dd.Value())
}

func TestSecondTriggerPressCloses(t *testing.T) {
	h := newHarness(t, []string{"All", "Lekki"}, "All")
	h.dd.Open()
	consumed, _ := h.reg.Dispatch(PointerEvent{X: h.trigger.X + 1, Y: h.trigger.Y + 1})
	require.True(t, consumed)
	require.False(t, h.dd.IsOpen())
}

func TestResizeAndScrollRemeasure(t *testing.T) {
	h := newHarness(t, []string{"A", "B", "C", "D", "E", "F"}, "")
	h.dd.Open()
	require.Equal(t, Below, h.dd.Placement())

	h.trigger = Rect{X: 2, Y: 30, W: 34, H: TriggerHeight}
	consumed, _ := h.reg.Dispatch(ScrollEvent{Offset: 12})
	require.False(t, consumed)
	panel, ok := h.dd.PanelRect()
	require.True(t, ok)
	require.Equal(t, Above, h.dd.Placement())
	require.Equal(t, 34, panel.W)
	require.Equal(t, 30, panel.Bottom())

	h.trigger = Rect{X: 2, Y: 3, W: 18, H: TriggerHeight}
	h.viewH = 50
	h.reg.Dispatch(ResizeEvent{Width: 80, Height: 50})
	panel, _ = h.dd.PanelRect()
	require.Equal(t, Below, h.dd.Placement())
	require.Equal(t, 18, panel.W)
	require.Equal(t, 6, panel.Y)
}

func TestUnmeasuredPanelIsNotPainted(t *testing.T) {
	h := newHarness(t, []string{"All"}, "All")
	h.ok = false
	h.dd.Open()
	require.True(t, h.dd.IsOpen())
	_, ok := h.dd.Layer()
	require.False(t, ok)

	h.ok = true
	h.reg.Dispatch(LayoutEvent{})
	layer, ok := h.dd.Layer()
	require.True(t, ok)
	require.Equal(t, h.trigger.X, layer.X)
}

func TestKeyboardNavigationCommitsCursor(t *testing.T) {
	h := newHarness(t, []string{"Any", "+1", "+2", "+3"}, "Any")
	h.dd.Focus()
	h.dd.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, h.dd.IsOpen())
	h.dd.Update(tea.KeyMsg{Type: tea.KeyDown})
	h.dd.Update(tea.KeyMsg{Type: tea.KeyDown})
	require.Equal(t, 2, h.dd.Cursor())
	msgs := collect(h.dd.Update(tea.KeyMsg{Type: tea.KeyEnter}))
	require.Equal(t, []string{"+2"}, picked(msgs))
	require.False(t, h.dd.IsOpen())
}

func TestUnfocusedIgnoresKeys(t *testing.T) {
	h := newHarness(t, []string{"Any", "+1"}, "Any")
	require.Nil(t, h.dd.Update(tea.KeyMsg{Type: tea.KeyEnter}))
	require.False(t, h.dd.IsOpen())
}

func TestAnimationNeverGatesState(t *testing.T) {
	reg := NewRegistry()
	trig := Rect{X: 0, Y: 2, W: 16, H: TriggerHeight}
	dd := New("beds", "Beds", []string{"Any", "+1"}, "Any", nil, WithAnimation(true))
	dd.Bind(reg, func() (Measurement, bool) { return Measurement{Trigger: trig, ViewportHeight: 30}, true })

	cmd := dd.Open()
	require.NotNil(t, cmd)
	require.True(t, dd.IsOpen())
	require.Equal(t, 1, reg.Len())

	// Closing mid-transition takes effect at once; the exit frames only
	// keep the panel painted until they run out.
	dd.Close()
	require.False(t, dd.IsOpen())
	require.Equal(t, 0, reg.Len())
	_, painted := dd.Layer()
	require.True(t, painted)

	// A frame from the superseded open transition is ignored.
	require.Nil(t, dd.Update(FrameMsg{ID: "beds", Seq: 1}))

	seq := dd.anim.seq
	for i := 0; i < frameCount; i++ {
		dd.Update(FrameMsg{ID: "beds", Seq: seq})
	}
	_, painted = dd.Layer()
	require.False(t, painted)
}

func TestTriggerViewShowsValueOrPlaceholder(t *testing.T) {
	dd := New("city", "City", []string{"All", "Lekki"}, "", nil)
	view := dd.TriggerView(20)
	require.Contains(t, view, "City")
	require.Contains(t, view, "▾")
	require.Equal(t, TriggerHeight, len(splitLines(view)))

	dd.SetSelected("Lekki")
	view = dd.TriggerView(20)
	require.Contains(t, view, "Lekki")
	require.Contains(t, view, "City")
}

func TestRegistryDetachIsIdempotent(t *testing.T) {
	r := NewRegistry()
	d1 := r.Attach("a", func(Event) (bool, tea.Cmd) { return false, nil })
	d2 := r.Attach("b", func(Event) (bool, tea.Cmd) { return true, nil })
	require.Equal(t, 2, r.Len())
	d1()
	d1()
	require.Equal(t, 1, r.Len())
	consumed, _ := r.Dispatch(KeyEvent{Key: "x"})
	require.True(t, consumed)
	d2()
	require.Equal(t, 0, r.Len())
}

func splitLines(s string) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	return append(out, s[start:])
}

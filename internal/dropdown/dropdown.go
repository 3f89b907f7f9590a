// Package dropdown is a select control whose option panel floats above the
// page. The panel is anchored to the trigger's measured screen box, opens
// above or below it depending on the room available, and is painted as a
// top-level overlay layer so nothing in the page can clip it.
package dropdown

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// TriggerHeight is the number of rows TriggerView renders.
const TriggerHeight = 3

// Model is one dropdown instance. Instances share nothing; two panels may be
// open at once and their stacking is the Z each was created with.
type Model struct {
	id       string
	title    string
	options  []string
	selected string
	open     bool
	cursor   int
	focused  bool
	z        int
	metrics  Metrics
	keys     KeyMap
	onSelect func(string) tea.Msg

	registry *Registry
	measure  Measurer
	detach   func()

	measured  bool
	trigger   Rect
	viewportH int
	placement Placement
	panel     Rect

	anim   animation
	styles Styles
}

// Opt configures a Model at construction.
type Opt func(*Model)

// WithZ sets the overlay stacking order of the panel.
func WithZ(z int) Opt { return func(m *Model) { m.z = z } }

func WithMetrics(metrics Metrics) Opt { return func(m *Model) { m.metrics = metrics } }

// WithAnimation toggles the open/close transition.
func WithAnimation(on bool) Opt { return func(m *Model) { m.anim.enabled = on } }

func WithKeyMap(k KeyMap) Opt { return func(m *Model) { m.keys = k } }

func WithStyles(s Styles) Opt { return func(m *Model) { m.styles = s } }

// New builds a dropdown. initial is the externally owned selection ("" for
// none); onSelect turns a committed value into the message the owner wants.
func New(id, title string, options []string, initial string, onSelect func(string) tea.Msg, opts ...Opt) *Model {
	m := &Model{
		id:       id,
		title:    title,
		options:  append([]string(nil), options...),
		selected: initial,
		z:        30,
		metrics:  DefaultMetrics,
		keys:     DefaultKeyMap(),
		onSelect: onSelect,
		styles:   DefaultStyles(),
		anim:     animation{enabled: true},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Bind attaches the owner's listener registry and trigger measurer.
func (m *Model) Bind(r *Registry, measure Measurer) {
	m.registry = r
	m.measure = measure
}

func (m *Model) ID() string        { return m.id }
func (m *Model) Title() string     { return m.title }
func (m *Model) Value() string     { return m.selected }
func (m *Model) Options() []string { return append([]string(nil), m.options...) }
func (m *Model) IsOpen() bool      { return m.open }
func (m *Model) Focused() bool     { return m.focused }
func (m *Model) Cursor() int       { return m.cursor }
func (m *Model) Z() int            { return m.z }

// Placement is the side chosen by the last measurement.
func (m *Model) Placement() Placement { return m.placement }

// PanelRect is the settled panel box; false until a measurement succeeds.
func (m *Model) PanelRect() (Rect, bool) { return m.panel, m.measured }

// TriggerRect is the last measured trigger box.
func (m *Model) TriggerRect() (Rect, bool) { return m.trigger, m.measured }

func (m *Model) Focus() { m.focused = true }
func (m *Model) Blur()  { m.focused = false }

// SetSelected syncs the externally owned selection. It never calls onSelect.
func (m *Model) SetSelected(v string) {
	m.selected = v
	if m.open {
		m.cursor = m.selectedIndex()
	}
}

// Toggle closes an open panel and opens a closed one.
func (m *Model) Toggle() tea.Cmd {
	if m.open {
		return m.Close()
	}
	return m.Open()
}

// Open shows the panel, attaches the page listeners and measures at once.
func (m *Model) Open() tea.Cmd {
	if m.open {
		return nil
	}
	m.open = true
	m.cursor = m.selectedIndex()
	if m.registry != nil {
		m.detach = m.registry.Attach(m.id, m.handle)
	}
	m.remeasure()
	return m.anim.start(m.id, entering)
}

// Close hides the panel without touching the selection.
func (m *Model) Close() tea.Cmd {
	if !m.open {
		return nil
	}
	m.open = false
	m.release()
	return m.anim.start(m.id, exiting)
}

// Select commits v, closes the panel and reports v to the owner. Choosing
// the current value still closes.
func (m *Model) Select(v string) tea.Cmd {
	m.selected = v
	closeCmd := m.Close()
	var notify tea.Cmd
	if m.onSelect != nil {
		fn := m.onSelect
		notify = func() tea.Msg { return fn(v) }
	}
	return tea.Batch(notify, closeCmd)
}

// Unmount drops listeners and any transition. Safe to call repeatedly.
func (m *Model) Unmount() {
	m.open = false
	m.release()
	m.anim.stop()
}

func (m *Model) release() {
	if m.detach != nil {
		m.detach()
		m.detach = nil
	}
}

// Update handles animation frames and, while focused, keyboard input.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case FrameMsg:
		if msg.ID != m.id {
			return nil
		}
		return m.anim.advance(msg)
	case tea.KeyMsg:
		if !m.focused {
			return nil
		}
		return m.handleKey(msg)
	}
	return nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if !m.open {
		if key.Matches(msg, m.keys.Toggle) || key.Matches(msg, m.keys.Down) {
			return m.Open()
		}
		return nil
	}
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.options)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Choose):
		if m.cursor >= 0 && m.cursor < len(m.options) {
			return m.Select(m.options[m.cursor])
		}
		return m.Close()
	case key.Matches(msg, m.keys.Close):
		return m.Close()
	}
	return nil
}

// handle is the listener attached while the panel is open.
func (m *Model) handle(ev Event) (bool, tea.Cmd) {
	if !m.open {
		return false, nil
	}
	switch e := ev.(type) {
	case ResizeEvent, ScrollEvent, LayoutEvent:
		m.remeasure()
		return false, nil
	case PointerEvent:
		if m.measured && m.trigger.Contains(e.X, e.Y) {
			return true, m.Close()
		}
		if m.measured && m.panel.Contains(e.X, e.Y) {
			if idx, ok := m.optionAt(e.Y); ok {
				return true, m.Select(m.options[idx])
			}
			return true, nil
		}
		return false, m.Close()
	case KeyEvent:
		if e.Key == "esc" {
			return true, m.Close()
		}
	}
	return false, nil
}

// remeasure reruns the measurement and the placement decision. A failed
// measurement leaves the panel unpositioned until the next event.
func (m *Model) remeasure() {
	if m.measure == nil {
		m.measured = false
		return
	}
	ms, ok := m.measure()
	if !ok || ms.Trigger.Empty() {
		m.measured = false
		return
	}
	m.trigger = ms.Trigger
	m.viewportH = ms.ViewportHeight
	m.placement, m.panel = Place(ms.Trigger, ms.ViewportHeight, len(m.options), m.metrics)
	m.measured = true
}

func (m *Model) optionAt(y int) (int, bool) {
	rowH := max(1, m.metrics.RowHeight)
	top := m.panel.Y + m.metrics.Padding/2
	if y < top {
		return 0, false
	}
	idx := (y - top) / rowH
	if idx < 0 || idx >= len(m.options) {
		return 0, false
	}
	return idx, true
}

func (m *Model) selectedIndex() int {
	for i, o := range m.options {
		if o == m.selected {
			return i
		}
	}
	return 0
}

// KeyMap is the keyboard contract of a focused dropdown.
type KeyMap struct {
	Toggle key.Binding
	Up     key.Binding
	Down   key.Binding
	Choose key.Binding
	Close  key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Toggle: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "open")),
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "previous")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next")),
		Choose: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "choose")),
		Close:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Up, k.Down, k.Close}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

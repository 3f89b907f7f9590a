package dropdown

import tea "github.com/charmbracelet/bubbletea"

// Event is a page-level input that open panels listen for.
type Event interface{ event() }

// ResizeEvent is sent when the terminal changes size.
type ResizeEvent struct{ Width, Height int }

// ScrollEvent is sent when the page scroll offset changes.
type ScrollEvent struct{ Offset int }

// LayoutEvent is sent when the page reflows without a resize or scroll,
// e.g. a breakpoint switch or a section changing height.
type LayoutEvent struct{}

// PointerEvent is a left-button press at screen coordinates.
type PointerEvent struct{ X, Y int }

// KeyEvent is any key press, named as tea.KeyMsg.String names it.
type KeyEvent struct{ Key string }

func (ResizeEvent) event()  {}
func (ScrollEvent) event()  {}
func (LayoutEvent) event()  {}
func (PointerEvent) event() {}
func (KeyEvent) event()     {}

// Handler reacts to an event. consumed stops the page from handling the
// event itself after every listener has seen it.
type Handler func(Event) (consumed bool, cmd tea.Cmd)

type listener struct {
	token uint64
	owner string
	fn    Handler
}

// Registry holds the page-wide listeners of open panels. Panels attach on
// open and detach on close or unmount, so an idle page has no listeners.
type Registry struct {
	next      uint64
	listeners []listener
}

func NewRegistry() *Registry { return &Registry{} }

// Attach registers fn and returns its detach func. Detach is idempotent.
func (r *Registry) Attach(owner string, fn Handler) func() {
	r.next++
	token := r.next
	r.listeners = append(r.listeners, listener{token: token, owner: owner, fn: fn})
	done := false
	return func() {
		if done {
			return
		}
		done = true
		r.remove(token)
	}
}

func (r *Registry) remove(token uint64) {
	for i, l := range r.listeners {
		if l.token == token {
			r.listeners = append(r.listeners[:i], r.listeners[i+1:]...)
			return
		}
	}
}

// Dispatch delivers ev to every listener attached when the call starts, in
// attach order. Listeners may detach themselves while handling.
func (r *Registry) Dispatch(ev Event) (bool, tea.Cmd) {
	if len(r.listeners) == 0 {
		return false, nil
	}
	snapshot := append([]listener(nil), r.listeners...)
	consumed := false
	var cmds []tea.Cmd
	for _, l := range snapshot {
		c, cmd := l.fn(ev)
		consumed = consumed || c
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return consumed, tea.Batch(cmds...)
}

// Len is the number of attached listeners.
func (r *Registry) Len() int { return len(r.listeners) }

// Attached reports whether owner has a listener attached.
func (r *Registry) Attached(owner string) bool {
	for _, l := range r.listeners {
		if l.owner == owner {
			return true
		}
	}
	return false
}

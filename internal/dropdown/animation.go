package dropdown

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	frameInterval = 30 * time.Millisecond
	frameCount    = 10
	slideRows     = 2
)

// FrameMsg advances a running open/close transition.
type FrameMsg struct {
	ID  string
	Seq int
}

type phase int

const (
	idle phase = iota
	entering
	exiting
)

// animation is purely cosmetic: open, selected and placement never wait on
// it, and a stale frame from an earlier transition is dropped by Seq.
type animation struct {
	enabled bool
	phase   phase
	frame   int
	seq     int
}

func (a *animation) start(id string, p phase) tea.Cmd {
	a.seq++
	if !a.enabled {
		a.phase = idle
		return nil
	}
	a.phase = p
	a.frame = 0
	return frameTick(id, a.seq)
}

func (a *animation) advance(msg FrameMsg) tea.Cmd {
	if msg.Seq != a.seq || a.phase == idle {
		return nil
	}
	a.frame++
	if a.frame >= frameCount {
		a.phase = idle
		return nil
	}
	return frameTick(msg.ID, msg.Seq)
}

func (a *animation) stop() {
	a.seq++
	a.phase = idle
}

func (a *animation) running() bool { return a.phase != idle }

// visibility is 0 when the panel is fully hidden and 1 when settled.
func (a *animation) visibility() float64 {
	t := easeOutCubic(float64(a.frame) / frameCount)
	switch a.phase {
	case entering:
		return t
	case exiting:
		return 1 - t
	}
	return 1
}

// offset is how many rows the panel sits away from its settled position.
// Panels start away from the trigger and settle towards it.
func (a *animation) offset(p Placement) int {
	rows := int((1 - a.visibility()) * slideRows)
	if p == Above {
		return -rows
	}
	return rows
}

func easeOutCubic(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	u := 1 - t
	return 1 - u*u*u
}

func frameTick(id string, seq int) tea.Cmd {
	return tea.Tick(frameInterval, func(time.Time) tea.Msg {
		return FrameMsg{ID: id, Seq: seq}
	})
}

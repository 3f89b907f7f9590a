package dropdown

// Rect is a box in screen cells. X and Y are the top-left corner.
type Rect struct {
	X, Y int
	W, H int
}

// Bottom is the first row below the box.
func (r Rect) Bottom() int { return r.Y + r.H }

// Right is the first column right of the box.
func (r Rect) Right() int { return r.X + r.W }

func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Placement says on which side of the trigger the panel opens.
type Placement int

const (
	Below Placement = iota
	Above
)

func (p Placement) String() string {
	if p == Above {
		return "above"
	}
	return "below"
}

// Metrics fixes the per-row height and the chrome around the option rows.
type Metrics struct {
	RowHeight int
	Padding   int // rows of chrome around the options (border top + bottom)
	Gap       int // rows between trigger bottom and panel when placed below
}

// DefaultMetrics suits a bordered panel with one row per option.
var DefaultMetrics = Metrics{RowHeight: 1, Padding: 2, Gap: 0}

// EstimatedHeight is the panel height for n options.
func (m Metrics) EstimatedHeight(n int) int {
	return n*m.RowHeight + m.Padding
}

// Measurement is what the owner reports about the trigger: its on-screen box
// and the height of the visible screen.
type Measurement struct {
	Trigger        Rect
	ViewportHeight int
}

// Measurer measures the trigger. It reports false while the trigger is not
// laid out, in which case the panel is not drawn.
type Measurer func() (Measurement, bool)

// Place decides where the panel goes. It opens above only when the space
// below cannot fit the estimated height and there is more room above than
// below. The panel always takes the trigger's width.
func Place(trigger Rect, viewportHeight, optionCount int, m Metrics) (Placement, Rect) {
	est := m.EstimatedHeight(optionCount)
	spaceBelow := viewportHeight - trigger.Bottom()
	spaceAbove := trigger.Y
	if spaceBelow < est && spaceAbove > spaceBelow {
		return Above, Rect{X: trigger.X, Y: trigger.Y - est, W: trigger.W, H: est}
	}
	return Below, Rect{X: trigger.X, Y: trigger.Bottom() + m.Gap, W: trigger.W, H: est}
}

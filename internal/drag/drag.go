// Package drag turns raw pointer events into the begin/move/end drag
// protocol of a single floating window.
package drag

// State represents the current state of a drag operation
type State int

const (
	StateIdle State = iota
	StateDragging
)

// String returns the string representation of the state
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDragging:
		return "dragging"
	default:
		return "unknown"
	}
}

// Target receives the drag lifecycle. Floating window handles implement it.
// A target may refuse a drag or drop one midway; IsDragging reports whether
// it currently accepts movement.
type Target interface {
	DragBegin()
	DragMove(dx, dy float64)
	DragEnd()
	IsDragging() bool
}

// MoveFunc applies a pointer delta to the dragged view.
type MoveFunc func(dx, dy float64)

// Controller tracks one window's drag gesture. It is not safe for
// concurrent use; feed it from the UI thread.
type Controller struct {
	target Target
	move   MoveFunc

	state State
	lastX float64
	lastY float64
}

// NewController creates a controller driving target. move may be nil when
// something else repositions the view.
func NewController(target Target, move MoveFunc) *Controller {
	return &Controller{
		target: target,
		move:   move,
		state:  StateIdle,
	}
}

// State returns the current gesture state.
func (c *Controller) State() State { return c.state }

// IsDragging returns true if currently in a drag operation
func (c *Controller) IsDragging() bool { return c.state == StateDragging }

// Begin starts a drag at pointer position (x, y) and reports whether the
// target accepted it. A refused drag leaves the controller idle. Begin is
// ignored while a drag is already in progress.
func (c *Controller) Begin(x, y float64) bool {
	if c.state == StateDragging {
		return false
	}
	c.target.DragBegin()
	if !c.target.IsDragging() {
		return false
	}
	c.state = StateDragging
	c.lastX, c.lastY = x, y
	return true
}

// Move reports the pointer at (x, y). The delta since the previous event is
// applied to the view and forwarded to the target. If the target has
// dropped the drag, the controller goes idle and the view stays put.
func (c *Controller) Move(x, y float64) {
	if c.state != StateDragging {
		return
	}
	if !c.target.IsDragging() {
		c.reset()
		return
	}
	dx, dy := x-c.lastX, y-c.lastY
	c.lastX, c.lastY = x, y
	if dx == 0 && dy == 0 {
		return
	}
	if c.move != nil {
		c.move(dx, dy)
	}
	c.target.DragMove(dx, dy)
}

// End finishes the drag at (x, y), applying any final movement first.
func (c *Controller) End(x, y float64) {
	if c.state != StateDragging {
		return
	}
	c.Move(x, y)
	if c.state != StateDragging {
		return
	}
	c.reset()
	c.target.DragEnd()
}

// Cancel abandons the drag without a final move. The target still sees
// DragEnd so its protocol stays balanced.
func (c *Controller) Cancel() {
	if c.state != StateDragging {
		return
	}
	c.reset()
	c.target.DragEnd()
}

func (c *Controller) reset() {
	c.state = StateIdle
	c.lastX, c.lastY = 0, 0
}

package platform

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/1broseidon/floatkit/internal/drag"
	"github.com/1broseidon/floatkit/internal/floating"
	"github.com/1broseidon/floatkit/internal/uiloop"
)

// Scheduler runs fn after d. The headless host uses it to finish
// animations; fn must end up on the UI thread.
type Scheduler func(d time.Duration, fn func())

// Immediately is a Scheduler that runs fn at once, ignoring the delay.
func Immediately(_ time.Duration, fn func()) { fn() }

// LoopScheduler waits d on a timer, then posts fn to loop.
func LoopScheduler(loop *uiloop.Loop) Scheduler {
	return func(d time.Duration, fn func()) {
		time.AfterFunc(d, func() {
			// A stopped loop drops the completion along with everything else.
			_ = loop.Post(fn)
		})
	}
}

type headlessView struct {
	frame  floating.Rect
	hidden bool
	title  string
	active bool
	scale  float64
	alpha  float64
}

// Headless is an in-memory Host. It keeps geometry, stacking and visibility
// without drawing anything, which makes it usable for tests and for running
// the daemon where no display is available.
type Headless struct {
	mu       sync.Mutex
	bounds   floating.Rect
	views    map[floating.ID]*headlessView
	order    []floating.ID
	taps     []func(floating.Point)
	input    Input
	keys     map[string]func()
	schedule Scheduler
}

var _ Host = (*Headless)(nil)

// NewHeadless creates a host covering bounds. A nil schedule completes
// animations immediately.
func NewHeadless(bounds floating.Rect, schedule Scheduler) *Headless {
	if schedule == nil {
		schedule = Immediately
	}
	return &Headless{
		bounds:   bounds,
		views:    make(map[floating.ID]*headlessView),
		keys:     make(map[string]func()),
		schedule: schedule,
	}
}

func (h *Headless) Bounds() floating.Rect { return h.bounds }

func (h *Headless) Attach(id floating.ID, frame floating.Rect, tier int) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.views[id]; ok {
		return fmt.Errorf("view %s already attached", id.Short())
	}
	if frame.Width <= 0 || frame.Height <= 0 {
		return fmt.Errorf("view %s has empty frame %vx%v", id.Short(), frame.Width, frame.Height)
	}
	h.views[id] = &headlessView{frame: frame, scale: 1, alpha: 1}
	h.order = append(h.order, id)
	return nil
}

func (h *Headless) Detach(id floating.ID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.views, id)
	h.removeLocked(id)
}

func (h *Headless) Raise(id floating.ID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.views[id]; !ok {
		return
	}
	h.removeLocked(id)
	h.order = append(h.order, id)
}

func (h *Headless) SetHidden(id floating.ID, hidden bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if v, ok := h.views[id]; ok {
		v.hidden = hidden
	}
}

func (h *Headless) Frame(id floating.ID) (floating.Rect, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	v, ok := h.views[id]
	if !ok {
		return floating.Rect{}, false
	}
	return v.frame, true
}

func (h *Headless) HitTest(p floating.Point) (floating.ID, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i := len(h.order) - 1; i >= 0; i-- {
		id := h.order[i]
		v := h.views[id]
		if v.hidden {
			continue
		}
		if v.frame.Contains(p) {
			return id, true
		}
	}
	return "", false
}

func (h *Headless) OnTap(fn func(floating.Point)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.taps = append(h.taps, fn)
}

// Animate moves the view to the animation's end state once the scheduler
// fires, then calls done.
func (h *Headless) Animate(a floating.Animation, done func()) {
	h.schedule(a.Duration, func() {
		h.mu.Lock()
		if v, ok := h.views[a.Window]; ok {
			v.frame = v.frame.WithCenter(a.Center)
			v.scale = a.Scale
			v.alpha = a.Alpha
		}
		h.mu.Unlock()
		done()
	})
}

func (h *Headless) SetInput(in Input) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.input = in
}

func (h *Headless) SetTitle(id floating.ID, title string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if v, ok := h.views[id]; ok {
		v.title = title
	}
}

func (h *Headless) SetActive(id floating.ID, active bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if v, ok := h.views[id]; ok {
		v.active = active
	}
}

// Bind records the binding; PressKey triggers it.
func (h *Headless) Bind(keys string, fn func()) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.keys[keys]; ok {
		return fmt.Errorf("key sequence %q already bound", keys)
	}
	h.keys[keys] = fn
	return nil
}

// PressKey runs the callback bound to keys and reports whether there was
// one.
func (h *Headless) PressKey(keys string) bool {
	h.mu.Lock()
	fn, ok := h.keys[keys]
	h.mu.Unlock()
	if ok {
		fn()
	}
	return ok
}

func (h *Headless) Name() string { return "headless" }

// Run executes loop tasks; there are no window-system events to interleave.
func (h *Headless) Run(ctx context.Context, loop *uiloop.Loop) error {
	return loop.Run(ctx)
}

func (h *Headless) Close() {}

// Click simulates a pointer click at p: a visible window under p gets a
// tap, and the host's own tap recognizers see every click.
func (h *Headless) Click(p floating.Point) {
	id, hit := h.HitTest(p)
	h.mu.Lock()
	in := h.input
	taps := append([]func(floating.Point){}, h.taps...)
	h.mu.Unlock()

	if hit && in != nil {
		in.Tap(id)
	}
	for _, fn := range taps {
		fn(p)
	}
}

// Drag simulates dragging window id along path. The view follows the
// pointer and the window's drag target sees begin, moves and end. A target
// that refuses the drag leaves the view where it is.
func (h *Headless) Drag(id floating.ID, path ...floating.Point) {
	if len(path) == 0 {
		return
	}
	in := h.currentInput()
	if in == nil {
		return
	}
	target := in.DragTarget(id)
	if target == nil {
		return
	}
	c := drag.NewController(target, func(dx, dy float64) { h.move(id, dx, dy) })
	if !c.Begin(path[0].X, path[0].Y) {
		return
	}
	for i := 1; i < len(path)-1; i++ {
		c.Move(path[i].X, path[i].Y)
	}
	last := path[len(path)-1]
	c.End(last.X, last.Y)
}

// RequestClose simulates a press on the close button of id.
func (h *Headless) RequestClose(id floating.ID) {
	if in := h.currentInput(); in != nil {
		in.CloseRequested(id)
	}
}

// RequestMinimize simulates a press on the minimize button of id.
func (h *Headless) RequestMinimize(id floating.ID) {
	if in := h.currentInput(); in != nil {
		in.MinimizeRequested(id)
	}
}

func (h *Headless) currentInput() Input {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.input
}

// Title returns the caption set for id.
func (h *Headless) Title(id floating.ID) string {
	h.mu.Lock()
	defer h.mu.Unlock()
	if v, ok := h.views[id]; ok {
		return v.title
	}
	return ""
}

// IsHidden reports whether id is attached and hidden.
func (h *Headless) IsHidden(id floating.ID) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	v, ok := h.views[id]
	return ok && v.hidden
}

// IsActive reports whether id carries the active decoration.
func (h *Headless) IsActive(id floating.ID) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	v, ok := h.views[id]
	return ok && v.active
}

// Top returns the topmost attached view.
func (h *Headless) Top() (floating.ID, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.order) == 0 {
		return "", false
	}
	return h.order[len(h.order)-1], true
}

func (h *Headless) move(id floating.ID, dx, dy float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if v, ok := h.views[id]; ok {
		v.frame.X += dx
		v.frame.Y += dy
	}
}

func (h *Headless) removeLocked(id floating.ID) {
	for i, o := range h.order {
		if o == id {
			h.order = append(h.order[:i], h.order[i+1:]...)
			return
		}
	}
}

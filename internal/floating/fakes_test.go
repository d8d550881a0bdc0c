package floating

import (
	"fmt"
	"strings"
)

// fakeSurface is an in-memory host. Animations applied through
// deferredAnimator move its frames the way a renderer would.
type fakeSurface struct {
	bounds    Rect
	frames    map[ID]Rect
	hidden    map[ID]bool
	order     []ID
	attachErr error
	tapFns    []func(Point)
	detached  []ID
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{
		bounds: Rect{X: 0, Y: 0, Width: 400, Height: 800},
		frames: make(map[ID]Rect),
		hidden: make(map[ID]bool),
	}
}

func (s *fakeSurface) Bounds() Rect { return s.bounds }

func (s *fakeSurface) Attach(id ID, frame Rect, tier int) error {
	if s.attachErr != nil {
		return s.attachErr
	}
	if tier != ZOrderTier {
		return fmt.Errorf("unexpected tier %d", tier)
	}
	s.frames[id] = frame
	s.order = append(s.order, id)
	return nil
}

func (s *fakeSurface) Detach(id ID) {
	delete(s.frames, id)
	delete(s.hidden, id)
	s.removeFromOrder(id)
	s.detached = append(s.detached, id)
}

func (s *fakeSurface) Raise(id ID) {
	if _, ok := s.frames[id]; !ok {
		return
	}
	s.removeFromOrder(id)
	s.order = append(s.order, id)
}

func (s *fakeSurface) SetHidden(id ID, hidden bool) { s.hidden[id] = hidden }

func (s *fakeSurface) Frame(id ID) (Rect, bool) {
	f, ok := s.frames[id]
	return f, ok
}

func (s *fakeSurface) HitTest(p Point) (ID, bool) {
	for i := len(s.order) - 1; i >= 0; i-- {
		id := s.order[i]
		if s.hidden[id] {
			continue
		}
		if s.frames[id].Contains(p) {
			return id, true
		}
	}
	return "", false
}

func (s *fakeSurface) OnTap(fn func(Point)) { s.tapFns = append(s.tapFns, fn) }

func (s *fakeSurface) tap(p Point) {
	for _, fn := range s.tapFns {
		fn(p)
	}
}

func (s *fakeSurface) top() ID {
	if len(s.order) == 0 {
		return ""
	}
	return s.order[len(s.order)-1]
}

func (s *fakeSurface) move(id ID, dx, dy float64) {
	f := s.frames[id]
	f.X += dx
	f.Y += dy
	s.frames[id] = f
}

func (s *fakeSurface) removeFromOrder(id ID) {
	for i, o := range s.order {
		if o == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			return
		}
	}
}

// deferredAnimator holds completions until flush is called.
type deferredAnimator struct {
	surface *fakeSurface
	pending []pendingAnimation
	started []Animation
}

type pendingAnimation struct {
	anim Animation
	done func()
}

func (a *deferredAnimator) Animate(anim Animation, done func()) {
	a.started = append(a.started, anim)
	a.pending = append(a.pending, pendingAnimation{anim: anim, done: done})
}

// flush completes every outstanding animation, including ones started by
// earlier completions.
func (a *deferredAnimator) flush() {
	for len(a.pending) > 0 {
		p := a.pending[0]
		a.pending = a.pending[1:]
		if a.surface != nil {
			if f, ok := a.surface.frames[p.anim.Window]; ok {
				a.surface.frames[p.anim.Window] = f.WithCenter(p.anim.Center)
			}
		}
		p.done()
	}
}

// recorder captures observer callbacks as "event:label" strings.
type recorder struct {
	events []string
	labels map[ID]string
	closed int
}

func newRecorder() *recorder {
	return &recorder{labels: make(map[ID]string)}
}

func (r *recorder) name(w Window, label string) { r.labels[w.ID()] = label }

func (r *recorder) add(event string, w Window) {
	label, ok := r.labels[w.ID()]
	if !ok {
		label = w.ID().Short()
	}
	r.events = append(r.events, event+":"+label)
}

func (r *recorder) reset() { r.events = nil }

func (r *recorder) count(event string) int {
	n := 0
	for _, e := range r.events {
		if e == event || strings.HasPrefix(e, event+":") {
			n++
		}
	}
	return n
}

func (r *recorder) OnLoaded(w Window)        { r.add("loaded", w) }
func (r *recorder) OnWillAppear(w Window)    { r.add("willAppear", w) }
func (r *recorder) OnDidAppear(w Window)     { r.add("didAppear", w) }
func (r *recorder) OnWillDrag(w Window)      { r.add("willDrag", w) }
func (r *recorder) OnDragging(w Window)      { r.add("dragging", w) }
func (r *recorder) OnDidDrag(w Window)       { r.add("didDrag", w) }
func (r *recorder) OnSelected(w Window)      { r.add("selected", w) }
func (r *recorder) OnDeselected(w Window)    { r.add("deselected", w) }
func (r *recorder) OnWillMinimize(w Window)  { r.add("willMinimize", w) }
func (r *recorder) OnDidMinimize(w Window)   { r.add("didMinimize", w) }
func (r *recorder) OnWillRestore(w Window)   { r.add("willRestore", w) }
func (r *recorder) OnDidRestore(w Window)    { r.add("didRestore", w) }
func (r *recorder) OnWillDisappear(w Window) { r.add("willDisappear", w) }
func (r *recorder) OnDidDisappear(w Window)  { r.add("didDisappear", w) }
func (r *recorder) OnAllClosed() {
	r.closed++
	r.events = append(r.events, "allClosed")
}

// layoutRecorder additionally implements LayoutObserver.
type layoutRecorder struct {
	*recorder
}

func (r layoutRecorder) OnWillLayout(w Window) { r.add("willLayout", w) }
func (r layoutRecorder) OnDidLayout(w Window)  { r.add("didLayout", w) }

// activeInvariant fails when more than one window reports active, or when
// the registry and the handles disagree.
func activeInvariant(reg *Registry) error {
	var active []ID
	for _, w := range reg.Windows() {
		if w.IsActive() {
			active = append(active, w.ID())
		}
		if w.IsActive() && w.IsMinimized() {
			return fmt.Errorf("window %s is active and minimized", w.ID().Short())
		}
	}
	if len(active) > 1 {
		return fmt.Errorf("%d windows active", len(active))
	}
	a := reg.ActiveHandle()
	if len(active) == 0 && a != nil {
		return fmt.Errorf("registry reports %s active but no handle is", a.ID().Short())
	}
	if len(active) == 1 && (a == nil || a.ID() != active[0]) {
		return fmt.Errorf("registry active handle does not match %s", active[0].Short())
	}
	return nil
}

func equalEvents(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

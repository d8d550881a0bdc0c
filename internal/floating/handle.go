package floating

import "fmt"

// State is a handle's position on the presence axis.
type State int

const (
	// StateCreated means the handle has not been presented yet.
	StateCreated State = iota
	// StatePresented means the handle is on screen and in the registry.
	StatePresented
	// StateDismissed is terminal.
	StateDismissed
)

// String returns the string representation of the state
func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StatePresented:
		return "presented"
	case StateDismissed:
		return "dismissed"
	default:
		return "unknown"
	}
}

// Handle is one floating window. A carries a caller-owned payload that the
// core stores but never looks at.
//
// Mutators follow the UI convention of ignoring redundant or out-of-order
// requests: each one is a no-op when its precondition does not hold, and
// every mutator is a no-op while one of the handle's animations is in
// flight.
type Handle[A any] struct {
	id       ID
	reg      *Registry
	geometry Geometry
	attr     A

	surface Surface
	frame   Rect

	state          State
	active         bool
	minimized      bool
	busy           bool
	dismissing     bool
	dragging       bool
	originalCenter Point
}

var _ Window = (*Handle[struct{}])(nil)

// New creates a handle bound to reg. A nil reg uses Default().
func New[A any](reg *Registry, g Geometry, attr A) *Handle[A] {
	if reg == nil {
		reg = Default()
	}
	return &Handle[A]{
		id:       newID(),
		reg:      reg,
		geometry: g,
		attr:     attr,
	}
}

// AttributeOf returns the payload of w if w is a *Handle[A].
func AttributeOf[A any](w Window) (A, bool) {
	h, ok := w.(*Handle[A])
	if !ok {
		var zero A
		return zero, false
	}
	return h.attr, true
}

func (h *Handle[A]) handle() {}

// ID returns the handle's identifier.
func (h *Handle[A]) ID() ID { return h.id }

// Attribute returns the caller's payload.
func (h *Handle[A]) Attribute() A { return h.attr }

// SetAttribute replaces the caller's payload.
func (h *Handle[A]) SetAttribute(a A) { h.attr = a }

// Registry returns the registry the handle belongs to.
func (h *Handle[A]) Registry() *Registry { return h.reg }

func (h *Handle[A]) State() State          { return h.state }
func (h *Handle[A]) IsActive() bool        { return h.active }
func (h *Handle[A]) IsMinimized() bool     { return h.minimized }
func (h *Handle[A]) Busy() bool            { return h.busy }
func (h *Handle[A]) OriginalCenter() Point { return h.originalCenter }

// Frame returns the window's current frame as reported by its surface, or
// the last frame the handle knows about.
func (h *Handle[A]) Frame() Rect {
	if h.surface != nil && h.state == StatePresented {
		if f, ok := h.surface.Frame(h.id); ok {
			return f
		}
	}
	return h.frame
}

// Present attaches the window to s, registers it and makes it active.
//
// When s is nil or refuses the view, Present returns an error before any
// observer is notified and the handle stays in StateCreated.
func (h *Handle[A]) Present(s Surface) error {
	log := h.reg.logger
	switch h.state {
	case StatePresented:
		log.Warn("present ignored: window already presented", "id", h.id.Short())
		return ErrAlreadyPresented
	case StateDismissed:
		log.Warn("present ignored: window dismissed", "id", h.id.Short())
		return ErrDismissed
	}
	if s == nil {
		log.Warn("present aborted: no host surface", "id", h.id.Short())
		return ErrNoSurface
	}

	frame := h.geometry.Resolve(h.reg.placement)
	if _, ok := h.reg.IndexOf(h.id); ok {
		return &RegistrationError{ID: h.id}
	}
	if err := s.Attach(h.id, frame, ZOrderTier); err != nil {
		log.Warn("present aborted: attach failed", "id", h.id.Short(), "error", err)
		return fmt.Errorf("%w: attach %s: %v", ErrNoSurface, h.id.Short(), err)
	}
	if err := h.reg.Register(h); err != nil {
		s.Detach(h.id)
		return err
	}
	h.surface = s
	h.frame = frame
	h.state = StatePresented
	h.reg.WireOutsideTapDeactivate(s)

	obs := h.reg.observer
	obs.OnLoaded(h)
	obs.OnWillAppear(h)
	if lo, ok := obs.(LayoutObserver); ok {
		lo.OnWillLayout(h)
		lo.OnDidLayout(h)
	}
	obs.OnDidAppear(h)
	log.Debug("window presented", "id", h.id.Short(),
		"x", frame.X, "y", frame.Y, "width", frame.Width, "height", frame.Height)

	h.Select()
	return nil
}

// Select makes the window active. Whatever window was active before is
// deselected first, in the same call.
func (h *Handle[A]) Select() {
	if !h.ready() || h.active || h.minimized {
		return
	}
	if prev := h.reg.ActiveHandle(); prev != nil && prev.ID() != h.id {
		prev.Deselect()
	}
	h.surface.Raise(h.id)
	h.active = true
	h.reg.markActive(h.id)
	h.reg.observer.OnSelected(h)
}

// Deselect clears the active flag. Minimized state is left alone.
func (h *Handle[A]) Deselect() {
	if !h.ready() || !h.active {
		return
	}
	h.active = false
	h.reg.markInactive(h.id)
	h.reg.observer.OnDeselected(h)
}

// Tap handles a tap that landed on the window.
func (h *Handle[A]) Tap() {
	h.Select()
}

// Minimize deselects the window, animates it toward the bottom center of
// its host and hides it.
func (h *Handle[A]) Minimize() {
	if !h.ready() || h.minimized {
		return
	}
	h.endDrag()
	h.Deselect()

	from := h.Frame()
	h.frame = from
	h.originalCenter = from.Center()
	h.reg.observer.OnWillMinimize(h)

	bounds := h.surface.Bounds()
	h.animate(Animation{
		Kind:     AnimateMinimize,
		Duration: h.reg.timings.Minimize,
		From:     from,
		Center:   Point{X: bounds.Center().X, Y: bounds.MaxY()},
		Scale:    h.reg.timings.MinimizeScale,
		Alpha:    0,
	}, func() {
		h.minimized = true
		h.surface.SetHidden(h.id, true)
		h.reg.observer.OnDidMinimize(h)
		h.reg.logger.Debug("window minimized", "id", h.id.Short())
	})
}

// Restore shows a minimized window, animates it back to where it was and
// makes it active.
func (h *Handle[A]) Restore() {
	if !h.ready() || !h.minimized {
		return
	}
	h.surface.SetHidden(h.id, false)
	h.surface.Raise(h.id)
	h.reg.observer.OnWillRestore(h)

	h.animate(Animation{
		Kind:     AnimateRestore,
		Duration: h.reg.timings.Restore,
		From:     h.Frame(),
		Center:   h.originalCenter,
		Scale:    1,
		Alpha:    1,
	}, func() {
		h.minimized = false
		h.frame = h.frame.WithCenter(h.originalCenter)
		h.reg.observer.OnDidRestore(h)
		h.reg.logger.Debug("window restored", "id", h.id.Short())
		h.Select()
	})
}

// Dismiss fades the window out, detaches it and removes it from the
// registry. Calling it again is a no-op.
func (h *Handle[A]) Dismiss() {
	if !h.ready() {
		return
	}
	h.endDrag()
	h.Deselect()
	h.dismissing = true
	h.reg.observer.OnWillDisappear(h)

	from := h.Frame()
	scale := 1.0
	if h.minimized {
		scale = h.reg.timings.MinimizeScale
	}
	h.animate(Animation{
		Kind:     AnimateDismiss,
		Duration: h.reg.timings.Dismiss,
		From:     from,
		Center:   from.Center(),
		Scale:    scale,
		Alpha:    0,
	}, func() {
		h.surface.Detach(h.id)
		h.reg.Deregister(h)
		h.reg.observer.OnDidDisappear(h)
		h.state = StateDismissed
		h.active = false
		h.dragging = false
		h.reg.logger.Debug("window dismissed", "id", h.id.Short())
		h.reg.CheckAllClosed()
	})
}

// DragBegin starts a drag: the window is selected, then OnWillDrag fires.
func (h *Handle[A]) DragBegin() {
	if !h.ready() || h.minimized || h.dragging {
		return
	}
	h.Select()
	h.dragging = true
	h.reg.observer.OnWillDrag(h)
}

// DragMove reports pointer movement during a drag. Moving the view is the
// surface's job.
func (h *Handle[A]) DragMove(dx, dy float64) {
	if !h.dragging || h.state != StatePresented || h.minimized {
		return
	}
	h.reg.observer.OnDragging(h)
}

// DragEnd finishes a drag.
func (h *Handle[A]) DragEnd() {
	h.endDrag()
}

func (h *Handle[A]) endDrag() {
	if !h.dragging {
		return
	}
	h.dragging = false
	if h.state != StatePresented {
		return
	}
	h.reg.observer.OnDidDrag(h)
}

// IsDragging reports whether a drag is in progress.
func (h *Handle[A]) IsDragging() bool { return h.dragging }

func (h *Handle[A]) ready() bool {
	return h.state == StatePresented && !h.busy && !h.dismissing
}

// animate marks the handle busy, submits a to the registry's animator and
// runs did once the animator completes. A repeated completion is reported
// as a fault and otherwise ignored.
func (h *Handle[A]) animate(a Animation, did func()) {
	a.Window = h.id
	h.busy = true
	completed := false
	h.reg.animator.Animate(a, func() {
		if completed {
			h.reg.fault(fmt.Errorf("%s %s: %w", a.Kind, h.id.Short(), ErrDuplicateCompletion))
			return
		}
		completed = true
		h.busy = false
		did()
	})
}

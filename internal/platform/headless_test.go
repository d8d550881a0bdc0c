package platform

import (
	"testing"
	"time"

	"github.com/1broseidon/floatkit/internal/drag"
	"github.com/1broseidon/floatkit/internal/floating"
)

type recordingInput struct {
	taps      []floating.ID
	closes    []floating.ID
	minimizes []floating.ID
	target    drag.Target
}

func (r *recordingInput) Tap(id floating.ID)                 { r.taps = append(r.taps, id) }
func (r *recordingInput) DragTarget(floating.ID) drag.Target { return r.target }
func (r *recordingInput) CloseRequested(id floating.ID)      { r.closes = append(r.closes, id) }
func (r *recordingInput) MinimizeRequested(id floating.ID)   { r.minimizes = append(r.minimizes, id) }

type countingTarget struct {
	begins, moves, ends int
	dragging            bool
}

func (c *countingTarget) DragBegin()              { c.begins++; c.dragging = true }
func (c *countingTarget) DragMove(dx, dy float64) { c.moves++ }
func (c *countingTarget) DragEnd()                { c.ends++; c.dragging = false }
func (c *countingTarget) IsDragging() bool        { return c.dragging }

func newHost() *Headless {
	return NewHeadless(floating.Rect{Width: 400, Height: 800}, nil)
}

func TestHeadless_AttachAndStacking(t *testing.T) {
	h := newHost()
	if err := h.Attach("a", floating.Rect{X: 0, Y: 0, Width: 100, Height: 100}, floating.ZOrderTier); err != nil {
		t.Fatal(err)
	}
	if err := h.Attach("b", floating.Rect{X: 50, Y: 50, Width: 100, Height: 100}, floating.ZOrderTier); err != nil {
		t.Fatal(err)
	}
	if err := h.Attach("a", floating.Rect{Width: 1, Height: 1}, floating.ZOrderTier); err == nil {
		t.Errorf("duplicate attach accepted")
	}
	if err := h.Attach("c", floating.Rect{}, floating.ZOrderTier); err == nil {
		t.Errorf("empty frame accepted")
	}

	overlap := floating.Point{X: 75, Y: 75}
	if id, _ := h.HitTest(overlap); id != "b" {
		t.Errorf("HitTest = %q, want b on top", id)
	}
	h.Raise("a")
	if id, _ := h.HitTest(overlap); id != "a" {
		t.Errorf("HitTest after raise = %q, want a", id)
	}
	h.SetHidden("a", true)
	if id, _ := h.HitTest(overlap); id != "b" {
		t.Errorf("HitTest with a hidden = %q, want b", id)
	}
	h.Detach("b")
	if _, ok := h.HitTest(overlap); ok {
		t.Errorf("HitTest hit a detached or hidden view")
	}
	if _, ok := h.Frame("b"); ok {
		t.Errorf("Frame reported a detached view")
	}
}

func TestHeadless_AnimateAppliesEndState(t *testing.T) {
	var delays []time.Duration
	var pending []func()
	h := NewHeadless(floating.Rect{Width: 400, Height: 800}, func(d time.Duration, fn func()) {
		delays = append(delays, d)
		pending = append(pending, fn)
	})
	if err := h.Attach("a", floating.Rect{X: 0, Y: 0, Width: 100, Height: 100}, floating.ZOrderTier); err != nil {
		t.Fatal(err)
	}

	done := 0
	h.Animate(floating.Animation{Window: "a", Duration: 300 * time.Millisecond, Center: floating.Point{X: 200, Y: 800}, Scale: 0.01}, func() { done++ })
	if done != 0 {
		t.Fatalf("animation completed before the scheduler fired")
	}
	pending[0]()
	if done != 1 || delays[0] != 300*time.Millisecond {
		t.Errorf("done = %d, delay = %v", done, delays[0])
	}
	if f, _ := h.Frame("a"); f.Center() != (floating.Point{X: 200, Y: 800}) {
		t.Errorf("frame center = %+v", f.Center())
	}
}

func TestHeadless_ClickRoutesTapsAndRecognizers(t *testing.T) {
	h := newHost()
	in := &recordingInput{}
	h.SetInput(in)
	if err := h.Attach("a", floating.Rect{Width: 100, Height: 100}, floating.ZOrderTier); err != nil {
		t.Fatal(err)
	}
	var seen []floating.Point
	h.OnTap(func(p floating.Point) { seen = append(seen, p) })

	h.Click(floating.Point{X: 10, Y: 10})
	h.Click(floating.Point{X: 300, Y: 300})

	if len(in.taps) != 1 || in.taps[0] != "a" {
		t.Errorf("window taps = %v, want [a]", in.taps)
	}
	if len(seen) != 2 {
		t.Errorf("recognizer saw %d clicks, want 2", len(seen))
	}
}

func TestHeadless_DragMovesView(t *testing.T) {
	h := newHost()
	target := &countingTarget{}
	h.SetInput(&recordingInput{target: target})
	if err := h.Attach("a", floating.Rect{X: 10, Y: 10, Width: 100, Height: 100}, floating.ZOrderTier); err != nil {
		t.Fatal(err)
	}

	h.Drag("a", floating.Point{X: 20, Y: 20}, floating.Point{X: 30, Y: 25}, floating.Point{X: 60, Y: 40})

	if f, _ := h.Frame("a"); f.X != 50 || f.Y != 30 {
		t.Errorf("frame after drag = %+v, want origin (50,30)", f)
	}
	if target.begins != 1 || target.moves != 2 || target.ends != 1 {
		t.Errorf("target = %+v", target)
	}

	// A single point is a press and release without movement.
	h.Drag("a", floating.Point{X: 60, Y: 40})
	if target.begins != 2 || target.moves != 2 || target.ends != 2 {
		t.Errorf("target after click-drag = %+v", target)
	}
}

func TestHeadless_DragRefusedWhileAnimating(t *testing.T) {
	var pending []func()
	h := NewHeadless(floating.Rect{Width: 400, Height: 800}, func(_ time.Duration, fn func()) {
		pending = append(pending, fn)
	})
	reg := floating.NewRegistry(floating.WithAnimator(h))
	w := floating.New(reg, floating.AutoGeometry(), struct{}{})
	h.SetInput(&recordingInput{target: w})
	if err := w.Present(h); err != nil {
		t.Fatal(err)
	}
	before, _ := h.Frame(w.ID())

	w.Dismiss()
	h.Drag(w.ID(), floating.Point{X: 60, Y: 110}, floating.Point{X: 360, Y: 410})

	if after, _ := h.Frame(w.ID()); after != before {
		t.Errorf("frame moved from %+v to %+v during a refused drag", before, after)
	}
	if w.IsDragging() {
		t.Errorf("dismissing window accepted a drag")
	}
	for _, fn := range pending {
		fn()
	}
	if w.State() != floating.StateDismissed {
		t.Errorf("state = %v, want dismissed", w.State())
	}
}

func TestHeadless_Decorations(t *testing.T) {
	h := newHost()
	in := &recordingInput{}
	h.SetInput(in)
	if err := h.Attach("a", floating.Rect{Width: 10, Height: 10}, floating.ZOrderTier); err != nil {
		t.Fatal(err)
	}
	h.SetTitle("a", "Notes")
	h.SetActive("a", true)
	h.RequestClose("a")
	h.RequestMinimize("a")

	if h.Title("a") != "Notes" || !h.IsActive("a") {
		t.Errorf("decorations not recorded")
	}
	if len(in.closes) != 1 || len(in.minimizes) != 1 {
		t.Errorf("close requests = %v, minimize requests = %v", in.closes, in.minimizes)
	}
	if top, _ := h.Top(); top != "a" {
		t.Errorf("Top() = %q", top)
	}
}

func TestHeadless_BindAndPressKey(t *testing.T) {
	h := newHost()
	pressed := 0
	if err := h.Bind("Mod4-m", func() { pressed++ }); err != nil {
		t.Fatal(err)
	}
	if err := h.Bind("Mod4-m", func() {}); err == nil {
		t.Error("duplicate binding accepted")
	}
	if !h.PressKey("Mod4-m") || pressed != 1 {
		t.Errorf("PressKey bound: pressed = %d", pressed)
	}
	if h.PressKey("Mod4-q") {
		t.Error("PressKey reported an unbound sequence")
	}
}

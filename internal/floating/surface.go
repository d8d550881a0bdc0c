package floating

import "time"

// ZOrderTier is the layer every floating window is attached at. It keeps
// windows above ordinary host content.
const ZOrderTier = 1000

// Surface is the host a window is presented into. Implementations render
// and lay out views; the core only tells them what to show.
type Surface interface {
	// Bounds returns the host's own frame.
	Bounds() Rect
	// Attach adds a view for id at frame on the given layer.
	Attach(id ID, frame Rect, tier int) error
	// Detach removes the view for id.
	Detach(id ID)
	// Raise brings the view for id above its siblings.
	Raise(id ID)
	// SetHidden hides or shows the view for id without detaching it.
	SetHidden(id ID, hidden bool)
	// Frame reports the view's current frame, which may have moved since
	// Attach because of drags.
	Frame(id ID) (Rect, bool)
	// HitTest returns the topmost visible window under p.
	HitTest(p Point) (ID, bool)
	// OnTap installs fn as a tap recognizer on the host itself.
	OnTap(fn func(p Point))
}

// AnimationKind names an animated transition.
type AnimationKind int

const (
	AnimateMinimize AnimationKind = iota
	AnimateRestore
	AnimateDismiss
)

func (k AnimationKind) String() string {
	switch k {
	case AnimateMinimize:
		return "minimize"
	case AnimateRestore:
		return "restore"
	case AnimateDismiss:
		return "dismiss"
	default:
		return "unknown"
	}
}

// Animation is a bounded-duration property change for one window.
type Animation struct {
	Window   ID
	Kind     AnimationKind
	Duration time.Duration
	// From is the frame the view starts at.
	From Rect
	// Center, Scale and Alpha are the target values.
	Center Point
	Scale  float64
	Alpha  float64
}

// Animator runs animations on behalf of the core. Animate must call done
// exactly once, on the UI thread, after the animation finishes. It may
// call done before returning.
type Animator interface {
	Animate(a Animation, done func())
}

// AnimatorFunc adapts a function to Animator.
type AnimatorFunc func(a Animation, done func())

func (f AnimatorFunc) Animate(a Animation, done func()) { f(a, done) }

// Immediate is an Animator that completes every animation synchronously.
var Immediate Animator = AnimatorFunc(func(_ Animation, done func()) { done() })

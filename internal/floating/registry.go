package floating

import (
	"io"
	"log/slog"
	"sync"
	"time"
)

// Window is the registry's view of a handle. Only this package implements
// it; use New to create one.
type Window interface {
	ID() ID
	State() State
	IsActive() bool
	IsMinimized() bool
	Busy() bool
	OriginalCenter() Point
	Frame() Rect

	Select()
	Deselect()
	Minimize()
	Restore()
	Dismiss()
	Tap()

	handle()
}

// Timings controls the animations requested by handles.
type Timings struct {
	Minimize      time.Duration
	Restore       time.Duration
	Dismiss       time.Duration
	MinimizeScale float64
}

// DefaultTimings returns the stock 300ms transitions with a 0.01 minimize scale.
func DefaultTimings() Timings {
	return Timings{
		Minimize:      300 * time.Millisecond,
		Restore:       300 * time.Millisecond,
		Dismiss:       300 * time.Millisecond,
		MinimizeScale: 0.01,
	}
}

// Registry owns the set of live windows and the active-window invariant.
//
// A Registry is not safe for concurrent use. Every call, including the
// observer callbacks it triggers, must happen on the single UI thread.
type Registry struct {
	windows      []Window
	activeID     ID
	lastActiveID ID
	tapWired     bool
	hadWindows   bool

	observer  Observer
	animator  Animator
	timings   Timings
	placement Placement
	logger    *slog.Logger
	onFault   func(error)
}

// Option configures a Registry.
type Option func(*Registry)

// WithObserver sets the lifecycle observer.
func WithObserver(o Observer) Option {
	return func(r *Registry) { r.SetObserver(o) }
}

// WithAnimator sets the animation runner. The default completes instantly.
func WithAnimator(a Animator) Option {
	return func(r *Registry) {
		if a != nil {
			r.animator = a
		}
	}
}

// WithTimings overrides animation durations and the minimize scale.
func WithTimings(t Timings) Option {
	return func(r *Registry) { r.timings = t }
}

// WithPlacement overrides the defaults used to resolve geometry.
func WithPlacement(p Placement) Option {
	return func(r *Registry) { r.placement = p }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithFaultHandler installs a hook for programming errors detected at
// runtime, such as an animation runner completing twice.
func WithFaultHandler(fn func(error)) Option {
	return func(r *Registry) { r.onFault = fn }
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		observer:  NopObserver{},
		animator:  Immediate,
		timings:   DefaultTimings(),
		placement: DefaultPlacement(),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the process-wide registry, creating it on first use. It
// lives for the rest of the process.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// Configure applies opts to r. It is meant for setting up Default before
// the first window is presented.
func (r *Registry) Configure(opts ...Option) {
	for _, opt := range opts {
		opt(r)
	}
}

// SetObserver replaces the lifecycle observer. A nil observer disables
// notifications.
func (r *Registry) SetObserver(o Observer) {
	if o == nil {
		o = NopObserver{}
	}
	r.observer = o
}

// Logger returns the registry's logger.
func (r *Registry) Logger() *slog.Logger { return r.logger }

// Register appends w to the live set.
func (r *Registry) Register(w Window) error {
	if _, ok := r.IndexOf(w.ID()); ok {
		return &RegistrationError{ID: w.ID()}
	}
	r.windows = append(r.windows, w)
	r.hadWindows = true
	r.logger.Debug("window registered", "id", w.ID().Short(), "count", len(r.windows))
	return nil
}

// Deregister removes w from the live set. It is a no-op if w is absent.
func (r *Registry) Deregister(w Window) {
	idx, ok := r.IndexOf(w.ID())
	if !ok {
		return
	}
	r.windows = append(r.windows[:idx], r.windows[idx+1:]...)
	if r.activeID == w.ID() {
		r.activeID = ""
	}
	if r.lastActiveID == w.ID() {
		r.lastActiveID = ""
	}
	r.logger.Debug("window deregistered", "id", w.ID().Short(), "count", len(r.windows))
}

// ActiveHandle returns the active window, or nil.
func (r *Registry) ActiveHandle() Window {
	return r.Lookup(r.activeID)
}

// LastActive returns the most recently deactivated live window, or nil.
func (r *Registry) LastActive() Window {
	return r.Lookup(r.lastActiveID)
}

// Lookup returns the live window with the given ID, or nil.
func (r *Registry) Lookup(id ID) Window {
	if id == "" {
		return nil
	}
	if idx, ok := r.IndexOf(id); ok {
		return r.windows[idx]
	}
	return nil
}

// IndexOf returns the position of id in creation order.
func (r *Registry) IndexOf(id ID) (int, bool) {
	for i, w := range r.windows {
		if w.ID() == id {
			return i, true
		}
	}
	return -1, false
}

// Windows returns a copy of the live set in creation order.
func (r *Registry) Windows() []Window {
	out := make([]Window, len(r.windows))
	copy(out, r.windows)
	return out
}

// Len returns the number of live windows.
func (r *Registry) Len() int { return len(r.windows) }

// MinimizeAll minimizes every live window in order.
func (r *Registry) MinimizeAll() {
	for _, w := range r.Windows() {
		w.Minimize()
	}
}

// RestoreAll restores every live window in order.
func (r *Registry) RestoreAll() {
	for _, w := range r.Windows() {
		w.Restore()
	}
}

// CheckAllClosed notifies OnAllClosed if the live set has just become
// empty. It does not fire again until a window is registered.
func (r *Registry) CheckAllClosed() {
	if len(r.windows) != 0 || !r.hadWindows {
		return
	}
	r.hadWindows = false
	r.logger.Debug("all windows closed")
	r.observer.OnAllClosed()
}

// WireOutsideTapDeactivate installs, once per registry, a tap recognizer on
// s that deselects both the active and the last active window when a tap
// lands outside every window.
func (r *Registry) WireOutsideTapDeactivate(s Surface) {
	if r.tapWired || s == nil {
		return
	}
	s.OnTap(func(p Point) {
		if id, ok := s.HitTest(p); ok && r.Lookup(id) != nil {
			return
		}
		if w := r.ActiveHandle(); w != nil {
			w.Deselect()
		}
		if w := r.LastActive(); w != nil {
			w.Deselect()
		}
	})
	r.tapWired = true
}

func (r *Registry) markActive(id ID) {
	r.activeID = id
}

func (r *Registry) markInactive(id ID) {
	if r.activeID == id {
		r.activeID = ""
	}
	r.lastActiveID = id
}

func (r *Registry) fault(err error) {
	r.logger.Error("core fault", "error", err)
	if r.onFault != nil {
		r.onFault(err)
	}
}

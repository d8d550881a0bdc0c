// Package dock maps the registry's windows onto dock slots.
//
// Slot i is the window at Registry.IndexOf position i, so the dock always
// follows registration order. The dock is shown when there are two or more
// windows, or when the only window is minimized.
package dock

import (
	"errors"
	"fmt"

	"github.com/1broseidon/floatkit/internal/floating"
)

// ErrNoSuchSlot is returned by Activate for an index outside the dock.
var ErrNoSuchSlot = errors.New("no such dock slot")

// Label is the text a slot shows for its window.
type Label struct {
	Title string
	Kind  string
}

// Labeler extracts a slot label from a window's attribute.
type Labeler func(w floating.Window) Label

// Slot is one dock entry.
type Slot struct {
	Index       int
	ID          floating.ID
	Label       Label
	State       floating.State
	Minimized   bool
	Highlighted bool
	Busy        bool
	Frame       floating.Rect
}

// Snapshot is the dock at one instant.
type Snapshot struct {
	Slots   []Slot
	Visible bool
}

// Highlighted returns the highlighted slot index, or -1.
func (s Snapshot) Highlighted() int {
	for _, slot := range s.Slots {
		if slot.Highlighted {
			return slot.Index
		}
	}
	return -1
}

// Model observes a registry and keeps the dock state. Use it as (part of) the
// registry's observer. Like the registry, it must only be used on the UI
// thread.
type Model struct {
	floating.NopObserver

	reg                 *floating.Registry
	labeler             Labeler
	showSingleMinimized bool

	highlighted floating.ID
	visible     bool
	onChange    func(Snapshot)
}

// Option configures a Model.
type Option func(*Model)

// WithLabeler sets how slot labels are derived.
func WithLabeler(l Labeler) Option {
	return func(m *Model) {
		if l != nil {
			m.labeler = l
		}
	}
}

// WithShowSingleMinimized controls whether a lone minimized window shows the
// dock. It defaults to true.
func WithShowSingleMinimized(show bool) Option {
	return func(m *Model) { m.showSingleMinimized = show }
}

// WithOnChange registers a callback invoked with a fresh snapshot after
// every transition that can change the dock.
func WithOnChange(fn func(Snapshot)) Option {
	return func(m *Model) { m.onChange = fn }
}

// New creates a dock model for reg.
func New(reg *floating.Registry, opts ...Option) *Model {
	m := &Model{
		reg:                 reg,
		showSingleMinimized: true,
		labeler: func(w floating.Window) Label {
			return Label{Title: w.ID().Short()}
		},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SetShowSingleMinimized updates the lone-minimized-window rule, e.g. after a
// config reload.
func (m *Model) SetShowSingleMinimized(show bool) {
	m.showSingleMinimized = show
	m.changed()
}

// Visible reports whether the dock is currently shown.
func (m *Model) Visible() bool { return m.visible }

// Snapshot builds the current slot list from the registry.
func (m *Model) Snapshot() Snapshot {
	windows := m.reg.Windows()
	slots := make([]Slot, len(windows))
	for i, w := range windows {
		slots[i] = Slot{
			Index:       i,
			ID:          w.ID(),
			Label:       m.labeler(w),
			State:       w.State(),
			Minimized:   w.IsMinimized(),
			Highlighted: w.ID() == m.highlighted,
			Busy:        w.Busy(),
			Frame:       w.Frame(),
		}
	}
	return Snapshot{Slots: slots, Visible: m.shouldShow(windows)}
}

func (m *Model) shouldShow(windows []floating.Window) bool {
	switch len(windows) {
	case 0:
		return false
	case 1:
		return m.showSingleMinimized && windows[0].IsMinimized()
	default:
		return true
	}
}

// Activate handles a tap on dock slot index: a minimized window is restored
// (and becomes active when the animation ends), any other window is selected.
func (m *Model) Activate(index int) error {
	windows := m.reg.Windows()
	if index < 0 || index >= len(windows) {
		return fmt.Errorf("%w: %d (dock has %d)", ErrNoSuchSlot, index, len(windows))
	}
	w := windows[index]
	if w.IsMinimized() {
		w.Restore()
	} else {
		w.Select()
	}
	return nil
}

// SlotOf returns the dock slot for id.
func (m *Model) SlotOf(id floating.ID) (int, bool) {
	return m.reg.IndexOf(id)
}

func (m *Model) changed() {
	snap := m.Snapshot()
	m.visible = snap.Visible
	if m.onChange != nil {
		m.onChange(snap)
	}
}

func (m *Model) OnDidAppear(floating.Window) { m.changed() }

func (m *Model) OnSelected(w floating.Window) {
	m.highlighted = w.ID()
	m.changed()
}

func (m *Model) OnDeselected(w floating.Window) {
	if m.highlighted == w.ID() {
		m.highlighted = ""
	}
	m.changed()
}

func (m *Model) OnDidMinimize(floating.Window) { m.changed() }
func (m *Model) OnDidRestore(floating.Window)  { m.changed() }

func (m *Model) OnDidDisappear(w floating.Window) {
	if m.highlighted == w.ID() {
		m.highlighted = ""
	}
	m.changed()
}

func (m *Model) OnAllClosed() {
	m.highlighted = ""
	m.changed()
}

var _ floating.Observer = (*Model)(nil)

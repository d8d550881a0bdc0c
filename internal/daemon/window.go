package daemon

import (
	"errors"
	"fmt"
	"strings"

	"github.com/1broseidon/floatkit/internal/dock"
	"github.com/1broseidon/floatkit/internal/drag"
	"github.com/1broseidon/floatkit/internal/floating"
	"github.com/1broseidon/floatkit/internal/ipc"
)

// DefaultKind is used for windows opened without a kind.
const DefaultKind = "note"

// ErrNoSuchWindow is returned when a selector matches no live window.
var ErrNoSuchWindow = errors.New("no such window")

// WindowSpec is the payload the daemon attaches to every floating window.
type WindowSpec struct {
	Title string
	Kind  string
}

// Window is a daemon-owned floating window.
type Window = floating.Handle[WindowSpec]

func specOf(w floating.Window) WindowSpec {
	spec, _ := floating.AttributeOf[WindowSpec](w)
	return spec
}

func labelOf(w floating.Window) dock.Label {
	spec := specOf(w)
	return dock.Label{Title: spec.Title, Kind: spec.Kind}
}

// geometryFor turns the optional OPEN_WINDOW geometry into a placement request.
func geometryFor(p ipc.OpenWindowPayload) floating.Geometry {
	switch {
	case p.X != nil && p.Width != nil:
		return floating.Frame(floating.Rect{X: *p.X, Y: *p.Y, Width: *p.Width, Height: *p.Height})
	case p.Width != nil:
		return floating.SizeOnly(floating.Size{Width: *p.Width, Height: *p.Height})
	default:
		return floating.AutoGeometry()
	}
}

// resolve finds the window a selector names. IDs match in full or by a
// unique prefix, slots by dock position.
func resolve(reg *floating.Registry, sel ipc.WindowSelector) (floating.Window, error) {
	if err := sel.Validate(); err != nil {
		return nil, err
	}
	windows := reg.Windows()
	if sel.Slot != nil {
		slot := *sel.Slot
		if slot >= len(windows) {
			return nil, fmt.Errorf("%w: slot %d (dock has %d)", dock.ErrNoSuchSlot, slot, len(windows))
		}
		return windows[slot], nil
	}

	id := strings.TrimSpace(sel.ID)
	if w := reg.Lookup(floating.ID(id)); w != nil {
		return w, nil
	}
	var match floating.Window
	for _, w := range windows {
		if !strings.HasPrefix(w.ID().String(), id) {
			continue
		}
		if match != nil {
			return nil, fmt.Errorf("window id %q is ambiguous", id)
		}
		match = w
	}
	if match == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoSuchWindow, id)
	}
	return match, nil
}

// inputRouter forwards host input to the registry's windows.
type inputRouter struct {
	reg *floating.Registry
}

func (r inputRouter) Tap(id floating.ID) {
	if w := r.reg.Lookup(id); w != nil {
		w.Tap()
	}
}

func (r inputRouter) DragTarget(id floating.ID) drag.Target {
	if h, ok := r.reg.Lookup(id).(*Window); ok {
		return h
	}
	return nil
}

func (r inputRouter) CloseRequested(id floating.ID) {
	if w := r.reg.Lookup(id); w != nil {
		w.Dismiss()
	}
}

func (r inputRouter) MinimizeRequested(id floating.ID) {
	if w := r.reg.Lookup(id); w != nil {
		w.Minimize()
	}
}

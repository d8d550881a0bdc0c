package x11

import (
	"fmt"

	"github.com/1broseidon/floatkit/internal/floating"
	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
)

// Monitor represents a physical display
type Monitor struct {
	ID     int
	Name   string
	Bounds floating.Rect
}

// GetMonitors retrieves all active monitors using XRandR
func (c *Connection) GetMonitors() ([]Monitor, error) {
	if err := randr.Init(c.XUtil.Conn()); err != nil {
		return nil, fmt.Errorf("randr init failed: %w", err)
	}

	resources, err := randr.GetScreenResources(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	var monitors []Monitor
	for i, crtc := range resources.Crtcs {
		info, err := randr.GetCrtcInfo(c.XUtil.Conn(), crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}
		// Disabled CRTC.
		if info.Width == 0 || info.Height == 0 || len(info.Outputs) == 0 {
			continue
		}

		name := fmt.Sprintf("Monitor%d", i)
		if out, err := randr.GetOutputInfo(c.XUtil.Conn(), info.Outputs[0], resources.ConfigTimestamp).Reply(); err == nil {
			name = string(out.Name)
		}
		monitors = append(monitors, Monitor{
			ID:   i,
			Name: name,
			Bounds: floating.Rect{
				X:      float64(info.X),
				Y:      float64(info.Y),
				Width:  float64(info.Width),
				Height: float64(info.Height),
			},
		})
	}
	return monitors, nil
}

// DeskArea returns the rectangle the desk window should cover: the monitor
// under the pointer, trimmed to the EWMH work area so panels stay visible.
func (c *Connection) DeskArea() (floating.Rect, error) {
	monitors, err := c.GetMonitors()
	if err != nil || len(monitors) == 0 {
		geom, gerr := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(c.Root)).Reply()
		if gerr != nil {
			return floating.Rect{}, fmt.Errorf("query root geometry: %w", gerr)
		}
		monitors = []Monitor{{Name: "root", Bounds: floating.Rect{Width: float64(geom.Width), Height: float64(geom.Height)}}}
	}

	mon := monitors[0]
	if pointer, err := xproto.QueryPointer(c.XUtil.Conn(), c.Root).Reply(); err == nil {
		mon = monitorAt(monitors, floating.Point{X: float64(pointer.RootX), Y: float64(pointer.RootY)})
	}

	areas, err := ewmh.WorkareaGet(c.XUtil)
	if err != nil || len(areas) == 0 {
		return mon.Bounds, nil
	}
	desktop := 0
	if cur, err := ewmh.CurrentDesktopGet(c.XUtil); err == nil && int(cur) < len(areas) {
		desktop = int(cur)
	}
	wa := areas[desktop]
	work := floating.Rect{X: float64(wa.X), Y: float64(wa.Y), Width: float64(wa.Width), Height: float64(wa.Height)}
	return intersect(mon.Bounds, work), nil
}

// monitorAt returns the monitor containing p, or the first one.
func monitorAt(monitors []Monitor, p floating.Point) Monitor {
	for _, m := range monitors {
		if m.Bounds.Contains(p) {
			return m
		}
	}
	return monitors[0]
}

// intersect returns the overlap of a and b, or a when they do not overlap.
func intersect(a, b floating.Rect) floating.Rect {
	x1 := max(a.X, b.X)
	y1 := max(a.Y, b.Y)
	x2 := min(a.X+a.Width, b.X+b.Width)
	y2 := min(a.Y+a.Height, b.Y+b.Height)
	if x2 <= x1 || y2 <= y1 {
		return a
	}
	return floating.Rect{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}

package daemon

import (
	"context"
	"fmt"
	"time"

	"github.com/1broseidon/floatkit/internal/floating"
	"github.com/1broseidon/floatkit/internal/ipc"
	"github.com/1broseidon/floatkit/internal/uiloop"
)

var _ ipc.Controller = (*Daemon)(nil)

// Status reports window counts and the active window.
func (d *Daemon) Status(ctx context.Context) (ipc.StatusData, error) {
	return uiloop.Call(ctx, d.loop, func() (ipc.StatusData, error) {
		status := ipc.StatusData{
			WindowCount:   d.reg.Len(),
			DockVisible:   d.dock.Snapshot().Visible,
			Display:       d.host.Name(),
			UptimeSeconds: int64(time.Since(d.started).Seconds()),
			DaemonRunning: true,
		}
		for _, w := range d.reg.Windows() {
			if w.IsMinimized() {
				status.MinimizedCount++
			}
		}
		if w := d.reg.ActiveHandle(); w != nil {
			status.ActiveID = w.ID().String()
		}
		return status, nil
	})
}

// ListWindows returns the dock slots in order.
func (d *Daemon) ListWindows(ctx context.Context) (ipc.WindowsData, error) {
	return uiloop.Call(ctx, d.loop, func() (ipc.WindowsData, error) {
		snap := d.dock.Snapshot()
		out := ipc.WindowsData{
			Windows:     make([]ipc.WindowInfo, 0, len(snap.Slots)),
			DockVisible: snap.Visible,
		}
		for _, slot := range snap.Slots {
			out.Windows = append(out.Windows, ipc.WindowInfo{
				ID:        slot.ID.String(),
				Slot:      slot.Index,
				Title:     slot.Label.Title,
				Kind:      slot.Label.Kind,
				State:     slot.State.String(),
				Active:    slot.Highlighted,
				Minimized: slot.Minimized,
				Busy:      slot.Busy,
				X:         slot.Frame.X,
				Y:         slot.Frame.Y,
				Width:     slot.Frame.Width,
				Height:    slot.Frame.Height,
			})
		}
		return out, nil
	})
}

// OpenWindow presents a new window and returns its ID and dock slot.
func (d *Daemon) OpenWindow(ctx context.Context, req ipc.OpenWindowPayload) (ipc.OpenWindowData, error) {
	if err := req.Validate(); err != nil {
		return ipc.OpenWindowData{}, err
	}
	return uiloop.Call(ctx, d.loop, func() (ipc.OpenWindowData, error) {
		d.opened++
		spec := WindowSpec{Title: req.Title, Kind: req.Kind}
		if spec.Title == "" {
			spec.Title = fmt.Sprintf("Window %d", d.opened)
		}
		if spec.Kind == "" {
			spec.Kind = DefaultKind
		}

		h := floating.New(d.reg, geometryFor(req), spec)
		if err := h.Present(d.host); err != nil {
			return ipc.OpenWindowData{}, err
		}
		slot, _ := d.reg.IndexOf(h.ID())
		return ipc.OpenWindowData{ID: h.ID().String(), Slot: slot}, nil
	})
}

// SelectWindow behaves like a dock tap: a minimized window is restored,
// any other window is selected.
func (d *Daemon) SelectWindow(ctx context.Context, sel ipc.WindowSelector) error {
	return d.withWindow(ctx, sel, func(w floating.Window) error {
		idx, ok := d.reg.IndexOf(w.ID())
		if !ok {
			return fmt.Errorf("%w: %s", ErrNoSuchWindow, w.ID().Short())
		}
		return d.dock.Activate(idx)
	})
}

func (d *Daemon) MinimizeWindow(ctx context.Context, sel ipc.WindowSelector) error {
	return d.withWindow(ctx, sel, func(w floating.Window) error {
		w.Minimize()
		return nil
	})
}

func (d *Daemon) RestoreWindow(ctx context.Context, sel ipc.WindowSelector) error {
	return d.withWindow(ctx, sel, func(w floating.Window) error {
		w.Restore()
		return nil
	})
}

func (d *Daemon) CloseWindow(ctx context.Context, sel ipc.WindowSelector) error {
	return d.withWindow(ctx, sel, func(w floating.Window) error {
		w.Dismiss()
		return nil
	})
}

func (d *Daemon) MinimizeAll(ctx context.Context) error {
	return d.loop.Do(ctx, func() error {
		d.reg.MinimizeAll()
		return nil
	})
}

func (d *Daemon) RestoreAll(ctx context.Context) error {
	return d.loop.Do(ctx, func() error {
		d.reg.RestoreAll()
		return nil
	})
}

// Reload re-reads the config file and applies timings, placement, the dock
// rule and the log level. Surface colours take effect on restart.
func (d *Daemon) Reload(ctx context.Context) error {
	cfg, err := loadConfig(d.opts.ConfigPath)
	if err != nil {
		return err
	}
	if err := d.loop.Do(ctx, func() error {
		d.reg.Configure(
			floating.WithTimings(cfg.Timings()),
			floating.WithPlacement(cfg.Placement()),
		)
		d.dock.SetShowSingleMinimized(cfg.Dock.GetShowSingleMinimized())
		return nil
	}); err != nil {
		return err
	}
	d.level.Set(ParseLevel(cfg.LogLevel))

	d.cfgMu.Lock()
	d.cfg = cfg
	d.cfgMu.Unlock()
	d.logger.Info("config reloaded")
	return nil
}

func (d *Daemon) withWindow(ctx context.Context, sel ipc.WindowSelector, fn func(floating.Window) error) error {
	return d.loop.Do(ctx, func() error {
		w, err := resolve(d.reg, sel)
		if err != nil {
			return err
		}
		return fn(w)
	})
}

package daemon

import (
	"log/slog"

	"github.com/1broseidon/floatkit/internal/floating"
	"github.com/1broseidon/floatkit/internal/platform"
)

// decorator keeps host decorations in step with the lifecycle and logs
// each transition.
type decorator struct {
	floating.NopObserver
	host   platform.Host
	logger *slog.Logger
}

func (d *decorator) attrs(w floating.Window) []any {
	spec := specOf(w)
	return []any{"id", w.ID().Short(), "title", spec.Title}
}

func (d *decorator) OnLoaded(w floating.Window) {
	d.host.SetTitle(w.ID(), specOf(w).Title)
}

func (d *decorator) OnDidAppear(w floating.Window) {
	d.logger.Info("window opened", d.attrs(w)...)
}

func (d *decorator) OnSelected(w floating.Window) {
	d.host.SetActive(w.ID(), true)
	d.logger.Debug("window selected", d.attrs(w)...)
}

func (d *decorator) OnDeselected(w floating.Window) {
	d.host.SetActive(w.ID(), false)
	d.logger.Debug("window deselected", d.attrs(w)...)
}

func (d *decorator) OnDidDrag(w floating.Window) {
	f := w.Frame()
	d.logger.Debug("window moved", append(d.attrs(w), "x", f.X, "y", f.Y)...)
}

func (d *decorator) OnDidMinimize(w floating.Window) {
	d.logger.Info("window minimized", d.attrs(w)...)
}

func (d *decorator) OnDidRestore(w floating.Window) {
	d.logger.Info("window restored", d.attrs(w)...)
}

func (d *decorator) OnDidDisappear(w floating.Window) {
	d.logger.Info("window closed", d.attrs(w)...)
}

func (d *decorator) OnAllClosed() {
	d.logger.Info("all windows closed")
}

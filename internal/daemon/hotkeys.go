package daemon

import (
	"os"
	"os/exec"

	"github.com/1broseidon/floatkit/internal/runtimepath"
)

// hotkeyActions maps config.HotkeyActions to their effect. Every callback
// runs on the UI thread.
func (d *Daemon) hotkeyActions() map[string]func() {
	return map[string]func(){
		"minimize_all": d.reg.MinimizeAll,
		"restore_all":  d.reg.RestoreAll,
		"cycle":        d.cycle,
		"minimize_active": func() {
			if w := d.reg.ActiveHandle(); w != nil {
				w.Minimize()
			}
		},
		"close_active": func() {
			if w := d.reg.ActiveHandle(); w != nil {
				w.Dismiss()
			}
		},
		"palette": d.launchPalette,
	}
}

// cycle activates the window after the active one in dock order, falling
// back to the last active window, then the first.
func (d *Daemon) cycle() {
	n := d.reg.Len()
	if n == 0 {
		return
	}
	cur := -1
	if w := d.reg.ActiveHandle(); w != nil {
		cur, _ = d.reg.IndexOf(w.ID())
	} else if w := d.reg.LastActive(); w != nil {
		cur, _ = d.reg.IndexOf(w.ID())
	}
	next := (cur + 1) % n
	if next == cur && !d.reg.Windows()[cur].IsMinimized() {
		// The only window is already up.
		return
	}
	if err := d.dock.Activate(next); err != nil {
		d.logger.Debug("cycle failed", "slot", next, "error", err)
	}
}

// launchPalette starts "floatkit palette" against this daemon's socket.
func (d *Daemon) launchPalette() {
	exe, err := os.Executable()
	if err != nil {
		d.logger.Warn("palette hotkey: failed to find executable", "error", err)
		return
	}
	cmd := exec.Command(exe, "palette")
	cmd.Env = append(os.Environ(), runtimepath.SocketEnv+"="+d.server.SocketPath())
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		d.logger.Warn("palette hotkey: failed to launch palette", "error", err)
		return
	}
	go func() {
		if err := cmd.Wait(); err != nil {
			d.logger.Debug("palette exited", "error", err)
		}
	}()
}

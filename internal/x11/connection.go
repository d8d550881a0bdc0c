// Package x11 presents floating windows on an X server. Every window is a
// child of one top-level "desk" window, so the window manager only ever
// manages the desk.
package x11

import (
	"context"
	"fmt"
	"os"

	"github.com/1broseidon/floatkit/internal/uiloop"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/mousebind"
	"github.com/BurntSushi/xgbutil/xevent"
)

// Connection manages the X11 connection and core X resources
type Connection struct {
	XUtil   *xgbutil.XUtil
	Root    xproto.Window
	Display string
}

// NewConnection connects to display, or to $DISPLAY when display is empty.
func NewConnection(display string) (*Connection, error) {
	if display == "" {
		display = os.Getenv("DISPLAY")
	}
	xu, err := xgbutil.NewConnDisplay(display)
	if err != nil {
		return nil, fmt.Errorf("connect to X display %q: %w", display, err)
	}

	// Required for title bar drags.
	mousebind.Initialize(xu)

	return &Connection{
		XUtil:   xu,
		Root:    xu.RootWin(),
		Display: display,
	}, nil
}

// Run interleaves X event dispatch with loop's tasks on the calling
// goroutine, so X callbacks and loop tasks never run at the same time. It
// returns when ctx ends, loop stops or the X connection goes away.
func (c *Connection) Run(ctx context.Context, loop *uiloop.Loop) error {
	before, after, quit := xevent.MainPing(c.XUtil)
	for {
		select {
		case <-before:
			<-after
		case fn := <-loop.Tasks():
			loop.Execute(fn)
		case <-quit:
			return nil
		case <-loop.Done():
			xevent.Quit(c.XUtil)
			return nil
		case <-ctx.Done():
			loop.Stop()
			xevent.Quit(c.XUtil)
			return ctx.Err()
		}
	}
}

// Close cleanly disconnects from the X11 server
func (c *Connection) Close() {
	c.XUtil.Conn().Close()
}

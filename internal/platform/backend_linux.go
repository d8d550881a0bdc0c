//go:build linux

package platform

import (
	"fmt"

	"github.com/1broseidon/floatkit/internal/uiloop"
	"github.com/1broseidon/floatkit/internal/x11"
)

// X11 wraps an x11.Host behind the platform Host interface.
type X11 struct {
	*x11.Host
}

var _ Host = (*X11)(nil)

// NewX11 opens display (or $DISPLAY) and maps the desk window that floating
// windows are drawn into.
func NewX11(display string, loop *uiloop.Loop, opts x11.Options) (*X11, error) {
	conn, err := x11.NewConnection(display)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X11: %w", err)
	}
	h, err := x11.NewHost(conn, loop, opts)
	if err != nil {
		conn.Close()
		return nil, err
	}
	return &X11{Host: h}, nil
}

// SetInput installs the receiver for window input.
func (b *X11) SetInput(in Input) { b.Host.SetInput(in) }

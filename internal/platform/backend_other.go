//go:build !linux

package platform

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/1broseidon/floatkit/internal/uiloop"
	"github.com/1broseidon/floatkit/internal/x11"
)

// ErrUnsupported is returned by NewX11 on platforms without an X11 host.
var ErrUnsupported = errors.New("x11 host not supported on this platform")

// X11 is unavailable outside linux.
type X11 struct {
	*x11.Host
}

// NewX11 always fails here; run the daemon with --headless instead.
func NewX11(string, *uiloop.Loop, x11.Options) (*X11, error) {
	return nil, fmt.Errorf("%w: %s", ErrUnsupported, runtime.GOOS)
}

// SetInput installs the receiver for window input.
func (b *X11) SetInput(in Input) { b.Host.SetInput(in) }

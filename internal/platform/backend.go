package platform

import (
	"context"

	"github.com/1broseidon/floatkit/internal/drag"
	"github.com/1broseidon/floatkit/internal/floating"
	"github.com/1broseidon/floatkit/internal/uiloop"
)

// Input receives pointer input that lands on floating windows. The daemon
// implements it; hosts call it on the UI thread.
type Input interface {
	// Tap reports a click on the window's body.
	Tap(id floating.ID)
	// DragTarget returns the handle to drag for id, or nil.
	DragTarget(id floating.ID) drag.Target
	// CloseRequested reports that the user asked to close the window.
	CloseRequested(id floating.ID)
	// MinimizeRequested reports that the user asked to minimize the window.
	MinimizeRequested(id floating.ID)
}

// Host is a window system that floating windows are presented into. It is
// both the Surface and the Animator the registry is configured with.
type Host interface {
	floating.Surface
	floating.Animator

	// SetInput installs the receiver for window input.
	SetInput(in Input)
	// SetTitle updates the caption shown for a window.
	SetTitle(id floating.ID, title string)
	// SetActive toggles the active decoration of a window.
	SetActive(id floating.ID, active bool)
	// Bind attaches a global key sequence to fn, which runs on the UI
	// thread.
	Bind(keys string, fn func()) error
	// Name describes the host for status output, e.g. the X display.
	Name() string
	// Run drives the host's events and loop's tasks on the calling
	// goroutine until ctx ends or loop stops.
	Run(ctx context.Context, loop *uiloop.Loop) error
	// Close releases window-system resources.
	Close()
}

package mcp

import (
	"fmt"

	"github.com/1broseidon/floatkit/internal/ipc"
)

// WindowActionInput is the input for tools acting on one window. Exactly
// one of ID or Slot is set.
type WindowActionInput struct {
	ID   string `json:"id,omitempty" jsonschema:"Window ID or a unique prefix of it"`
	Slot *int   `json:"slot,omitempty" jsonschema:"Dock slot of the window, starting at 0"`
}

func (t WindowActionInput) selector() (ipc.WindowSelector, error) {
	sel := ipc.WindowSelector{ID: t.ID, Slot: t.Slot}
	if err := sel.Validate(); err != nil {
		return ipc.WindowSelector{}, fmt.Errorf("invalid target: %w", err)
	}
	return sel, nil
}

// EmptyInput is the input for tools without arguments.
type EmptyInput struct{}

// StatusOutput is the output for the get_status tool.
type StatusOutput struct {
	Running        bool   `json:"running"`
	WindowCount    int    `json:"window_count"`
	MinimizedCount int    `json:"minimized_count"`
	ActiveID       string `json:"active_id,omitempty"`
	Display        string `json:"display,omitempty"`
	UptimeSeconds  int64  `json:"uptime_seconds"`
}

// WindowInfo describes one window for list_windows.
type WindowInfo struct {
	ID        string  `json:"id"`
	Slot      int     `json:"slot"`
	Title     string  `json:"title"`
	Kind      string  `json:"kind,omitempty"`
	State     string  `json:"state"`
	Active    bool    `json:"active"`
	Minimized bool    `json:"minimized"`
	Busy      bool    `json:"busy"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
}

// ListWindowsOutput is the output for the list_windows tool.
type ListWindowsOutput struct {
	Windows     []WindowInfo `json:"windows"`
	DockVisible bool         `json:"dock_visible"`
}

// OpenWindowInput is the input for the open_window tool.
type OpenWindowInput struct {
	Title  string   `json:"title,omitempty" jsonschema:"Window title (default: Window N)"`
	Kind   string   `json:"kind,omitempty" jsonschema:"Content kind such as note, browser, terminal or media (default: note)"`
	X      *float64 `json:"x,omitempty" jsonschema:"Left edge; requires y, width and height"`
	Y      *float64 `json:"y,omitempty" jsonschema:"Top edge; requires x, width and height"`
	Width  *float64 `json:"width,omitempty" jsonschema:"Width in pixels; requires height"`
	Height *float64 `json:"height,omitempty" jsonschema:"Height in pixels; requires width"`
}

// OpenWindowOutput is the output for the open_window tool.
type OpenWindowOutput struct {
	ID   string `json:"id"`
	Slot int    `json:"slot"`
}

// ActionOutput is the output for tools that change window state.
type ActionOutput struct {
	OK bool `json:"ok"`
}

package ipc

import (
	"encoding/json"
	"fmt"
	"strings"
)

// CommandType represents different IPC command types
type CommandType string

const (
	CommandReload         CommandType = "RELOAD"
	CommandGetStatus      CommandType = "GET_STATUS"
	CommandListWindows    CommandType = "LIST_WINDOWS"
	CommandOpenWindow     CommandType = "OPEN_WINDOW"
	CommandSelectWindow   CommandType = "SELECT_WINDOW"
	CommandMinimizeWindow CommandType = "MINIMIZE_WINDOW"
	CommandRestoreWindow  CommandType = "RESTORE_WINDOW"
	CommandCloseWindow    CommandType = "CLOSE_WINDOW"
	CommandMinimizeAll    CommandType = "MINIMIZE_ALL"
	CommandRestoreAll     CommandType = "RESTORE_ALL"
)

const (
	StatusOK    = "OK"
	StatusError = "ERROR"
)

// Request represents an IPC request from client to server
type Request struct {
	Command CommandType     `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response represents an IPC response from server to client
type Response struct {
	Status string          `json:"status"` // "OK" or "ERROR"
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// StatusData represents the data returned by GET_STATUS
type StatusData struct {
	WindowCount    int    `json:"window_count"`
	MinimizedCount int    `json:"minimized_count"`
	ActiveID       string `json:"active_id,omitempty"`
	DockVisible    bool   `json:"dock_visible"`
	Display        string `json:"display,omitempty"`
	UptimeSeconds  int64  `json:"uptime_seconds"`
	DaemonRunning  bool   `json:"daemon_running"`
}

// WindowInfo describes one live window in dock order.
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

// WindowsData represents the data returned by LIST_WINDOWS
type WindowsData struct {
	Windows     []WindowInfo `json:"windows"`
	DockVisible bool         `json:"dock_visible"`
}

// OpenWindowPayload represents the payload for OPEN_WINDOW. Leave both
// dimensions unset for the default size, and set X/Y as well for an exact
// frame.
type OpenWindowPayload struct {
	Title  string   `json:"title"`
	Kind   string   `json:"kind,omitempty"`
	X      *float64 `json:"x,omitempty"`
	Y      *float64 `json:"y,omitempty"`
	Width  *float64 `json:"width,omitempty"`
	Height *float64 `json:"height,omitempty"`
}

// Validate checks that the geometry fields form a usable combination.
func (p OpenWindowPayload) Validate() error {
	if (p.Width == nil) != (p.Height == nil) {
		return fmt.Errorf("width and height must be given together")
	}
	if (p.X == nil) != (p.Y == nil) {
		return fmt.Errorf("x and y must be given together")
	}
	if p.X != nil && p.Width == nil {
		return fmt.Errorf("x and y require width and height")
	}
	if p.Width != nil && (*p.Width <= 0 || *p.Height <= 0) {
		return fmt.Errorf("width and height must be positive")
	}
	return nil
}

// OpenWindowData is returned by OPEN_WINDOW.
type OpenWindowData struct {
	ID   string `json:"id"`
	Slot int    `json:"slot"`
}

// WindowSelector names a window by ID (full or short prefix) or dock slot.
type WindowSelector struct {
	ID   string `json:"id,omitempty"`
	Slot *int   `json:"slot,omitempty"`
}

// Validate requires exactly one of ID or Slot.
func (s WindowSelector) Validate() error {
	hasID := strings.TrimSpace(s.ID) != ""
	if hasID == (s.Slot != nil) {
		return fmt.Errorf("exactly one of id or slot is required")
	}
	if s.Slot != nil && *s.Slot < 0 {
		return fmt.Errorf("slot must be >= 0")
	}
	return nil
}

// SelectID builds a selector for a window ID.
func SelectID(id string) WindowSelector { return WindowSelector{ID: id} }

// SelectSlot builds a selector for a dock slot.
func SelectSlot(slot int) WindowSelector { return WindowSelector{Slot: &slot} }

// NewOKResponse creates a successful response with optional data
func NewOKResponse(data interface{}) (*Response, error) {
	var dataBytes json.RawMessage
	if data != nil {
		bytes, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response data: %w", err)
		}
		dataBytes = bytes
	}

	return &Response{
		Status: StatusOK,
		Data:   dataBytes,
	}, nil
}

// NewErrorResponse creates an error response with a message
func NewErrorResponse(errMsg string) *Response {
	return &Response{
		Status: StatusError,
		Error:  errMsg,
	}
}

// ParseRequest parses a request from JSON bytes
func ParseRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}
	if req.Command == "" {
		return nil, fmt.Errorf("failed to parse request: missing command")
	}
	return &req, nil
}

// Marshal converts a response to JSON bytes
func (r *Response) Marshal() ([]byte, error) {
	return json.Marshal(r)
}

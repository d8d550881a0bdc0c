// Package mcp exposes the floatkit daemon to MCP clients over stdio. Each
// tool is a thin wrapper over one IPC command.
package mcp

import (
	"context"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/floatkit/internal/ipc"
)

const (
	ServerName    = "floatkit"
	ServerVersion = "0.1.0"
)

// Client is the part of ipc.Client the tools call.
type Client interface {
	GetStatus() (*ipc.StatusData, error)
	ListWindows() (*ipc.WindowsData, error)
	OpenWindow(req ipc.OpenWindowPayload) (*ipc.OpenWindowData, error)
	SelectWindow(sel ipc.WindowSelector) error
	MinimizeWindow(sel ipc.WindowSelector) error
	RestoreWindow(sel ipc.WindowSelector) error
	CloseWindow(sel ipc.WindowSelector) error
	MinimizeAll() error
	RestoreAll() error
}

var _ Client = (*ipc.Client)(nil)

// Server is the MCP server for floatkit window control.
type Server struct {
	mcpServer *mcpsdk.Server
	client    Client
}

// NewServer creates an MCP server that forwards tool calls to client.
func NewServer(client Client) *Server {
	s := &Server{client: client}
	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)
	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "get_status",
		Description: "Report whether the floatkit daemon is running, how many windows are open and minimized, and which window is active.",
	}, s.handleGetStatus)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_windows",
		Description: "List live floating windows in dock order with their slot, title, kind, state and frame.",
	}, s.handleListWindows)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "open_window",
		Description: "Open and present a new floating window. Omit width/height for the configured default size; give x/y as well for an exact frame. Returns the window ID and its dock slot.",
	}, s.handleOpenWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "select_window",
		Description: "Make a window active, as if its dock slot was clicked. A minimized window is restored and then becomes active.",
	}, s.handleSelectWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "minimize_window",
		Description: "Minimize a window into the dock. No-op if it is already minimized or animating.",
	}, s.handleMinimizeWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "restore_window",
		Description: "Restore a minimized window to where it was before it was minimized.",
	}, s.handleRestoreWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "close_window",
		Description: "Dismiss a window. It fades out and leaves the registry once the animation ends.",
	}, s.handleCloseWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "minimize_all",
		Description: "Minimize every presented window.",
	}, s.handleMinimizeAll)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "restore_all",
		Description: "Restore every minimized window.",
	}, s.handleRestoreAll)
}

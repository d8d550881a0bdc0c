package mcp

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/floatkit/internal/ipc"
)

func (s *Server) handleGetStatus(_ context.Context, _ *mcpsdk.CallToolRequest, _ EmptyInput) (*mcpsdk.CallToolResult, StatusOutput, error) {
	st, err := s.client.GetStatus()
	if err != nil {
		return nil, StatusOutput{}, fmt.Errorf("daemon unreachable: %w", err)
	}
	return nil, StatusOutput{
		Running:        st.DaemonRunning,
		WindowCount:    st.WindowCount,
		MinimizedCount: st.MinimizedCount,
		ActiveID:       st.ActiveID,
		Display:        st.Display,
		UptimeSeconds:  st.UptimeSeconds,
	}, nil
}

func (s *Server) handleListWindows(_ context.Context, _ *mcpsdk.CallToolRequest, _ EmptyInput) (*mcpsdk.CallToolResult, ListWindowsOutput, error) {
	data, err := s.client.ListWindows()
	if err != nil {
		return nil, ListWindowsOutput{}, err
	}
	out := ListWindowsOutput{
		Windows:     make([]WindowInfo, 0, len(data.Windows)),
		DockVisible: data.DockVisible,
	}
	for _, w := range data.Windows {
		out.Windows = append(out.Windows, WindowInfo(w))
	}
	return nil, out, nil
}

func (s *Server) handleOpenWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args OpenWindowInput) (*mcpsdk.CallToolResult, OpenWindowOutput, error) {
	req := ipc.OpenWindowPayload{
		Title:  args.Title,
		Kind:   args.Kind,
		X:      args.X,
		Y:      args.Y,
		Width:  args.Width,
		Height: args.Height,
	}
	if err := req.Validate(); err != nil {
		return nil, OpenWindowOutput{}, err
	}
	data, err := s.client.OpenWindow(req)
	if err != nil {
		return nil, OpenWindowOutput{}, err
	}
	return nil, OpenWindowOutput{ID: data.ID, Slot: data.Slot}, nil
}

func (s *Server) handleSelectWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args WindowActionInput) (*mcpsdk.CallToolResult, ActionOutput, error) {
	return s.onWindow(args, s.client.SelectWindow)
}

func (s *Server) handleMinimizeWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args WindowActionInput) (*mcpsdk.CallToolResult, ActionOutput, error) {
	return s.onWindow(args, s.client.MinimizeWindow)
}

func (s *Server) handleRestoreWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args WindowActionInput) (*mcpsdk.CallToolResult, ActionOutput, error) {
	return s.onWindow(args, s.client.RestoreWindow)
}

func (s *Server) handleCloseWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args WindowActionInput) (*mcpsdk.CallToolResult, ActionOutput, error) {
	return s.onWindow(args, s.client.CloseWindow)
}

func (s *Server) handleMinimizeAll(_ context.Context, _ *mcpsdk.CallToolRequest, _ EmptyInput) (*mcpsdk.CallToolResult, ActionOutput, error) {
	if err := s.client.MinimizeAll(); err != nil {
		return nil, ActionOutput{}, err
	}
	return nil, ActionOutput{OK: true}, nil
}

func (s *Server) handleRestoreAll(_ context.Context, _ *mcpsdk.CallToolRequest, _ EmptyInput) (*mcpsdk.CallToolResult, ActionOutput, error) {
	if err := s.client.RestoreAll(); err != nil {
		return nil, ActionOutput{}, err
	}
	return nil, ActionOutput{OK: true}, nil
}

func (s *Server) onWindow(t WindowActionInput, fn func(ipc.WindowSelector) error) (*mcpsdk.CallToolResult, ActionOutput, error) {
	sel, err := t.selector()
	if err != nil {
		return nil, ActionOutput{}, err
	}
	if err := fn(sel); err != nil {
		return nil, ActionOutput{}, err
	}
	return nil, ActionOutput{OK: true}, nil
}

package ipc

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"sync"
	"time"
)

// Controller performs window operations on behalf of IPC clients. The daemon
// implements it by marshalling each call onto the UI loop.
type Controller interface {
	Status(ctx context.Context) (StatusData, error)
	ListWindows(ctx context.Context) (WindowsData, error)
	OpenWindow(ctx context.Context, req OpenWindowPayload) (OpenWindowData, error)
	SelectWindow(ctx context.Context, sel WindowSelector) error
	MinimizeWindow(ctx context.Context, sel WindowSelector) error
	RestoreWindow(ctx context.Context, sel WindowSelector) error
	CloseWindow(ctx context.Context, sel WindowSelector) error
	MinimizeAll(ctx context.Context) error
	RestoreAll(ctx context.Context) error
	Reload(ctx context.Context) error
}

// Server handles IPC requests from clients
type Server struct {
	socketPath   string
	listener     net.Listener
	ctrl         Controller
	logger       *slog.Logger
	timeout      time.Duration
	startTime    time.Time
	shuttingDown bool
	shutdownMu   sync.Mutex
	wg           sync.WaitGroup
}

// NewServer creates a new IPC server on socketPath.
func NewServer(socketPath string, ctrl Controller, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Server{
		socketPath: socketPath,
		ctrl:       ctrl,
		logger:     logger,
		timeout:    5 * time.Second,
		startTime:  time.Now(),
	}
}

// Start begins listening for IPC connections
func (s *Server) Start() error {
	// Remove a stale socket from a previous run.
	os.Remove(s.socketPath)

	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create IPC socket: %w", err)
	}
	s.listener = listener

	if err := os.Chmod(s.socketPath, 0600); err != nil {
		listener.Close()
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	s.logger.Info("IPC server listening", "socket", s.socketPath)

	s.wg.Add(1)
	go s.acceptLoop()
	return nil
}

// acceptLoop accepts incoming connections
func (s *Server) acceptLoop() {
	defer s.wg.Done()
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			s.shutdownMu.Lock()
			if s.shuttingDown {
				s.shutdownMu.Unlock()
				return
			}
			s.shutdownMu.Unlock()
			s.logger.Warn("IPC accept error", "error", err)
			continue
		}

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.handleConnection(conn)
		}()
	}
}

// handleConnection handles a single IPC connection
func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()
	conn.SetDeadline(time.Now().Add(s.timeout))

	reader := bufio.NewReader(conn)

	// Read the request (expect JSON on a single line)
	data, err := reader.ReadBytes('\n')
	if err != nil && err != io.EOF {
		s.logger.Warn("IPC read error", "error", err)
		return
	}

	req, err := ParseRequest(data)
	if err != nil {
		s.writeResponse(conn, NewErrorResponse(fmt.Sprintf("Invalid request: %v", err)))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	s.logger.Debug("IPC request", "command", req.Command)
	s.writeResponse(conn, s.handleCommand(ctx, req))
}

// handleCommand processes an IPC command and returns a response
func (s *Server) handleCommand(ctx context.Context, req *Request) *Response {
	switch req.Command {
	case CommandReload:
		return s.ok(nil, s.ctrl.Reload(ctx), "reload config")
	case CommandGetStatus:
		return s.handleGetStatus(ctx)
	case CommandListWindows:
		data, err := s.ctrl.ListWindows(ctx)
		return s.ok(data, err, "list windows")
	case CommandOpenWindow:
		return s.handleOpenWindow(ctx, req.Payload)
	case CommandSelectWindow:
		return s.withSelector(ctx, req.Payload, "select window", s.ctrl.SelectWindow)
	case CommandMinimizeWindow:
		return s.withSelector(ctx, req.Payload, "minimize window", s.ctrl.MinimizeWindow)
	case CommandRestoreWindow:
		return s.withSelector(ctx, req.Payload, "restore window", s.ctrl.RestoreWindow)
	case CommandCloseWindow:
		return s.withSelector(ctx, req.Payload, "close window", s.ctrl.CloseWindow)
	case CommandMinimizeAll:
		return s.ok(nil, s.ctrl.MinimizeAll(ctx), "minimize all")
	case CommandRestoreAll:
		return s.ok(nil, s.ctrl.RestoreAll(ctx), "restore all")
	default:
		return NewErrorResponse(fmt.Sprintf("Unknown command: %s", req.Command))
	}
}

func (s *Server) handleGetStatus(ctx context.Context) *Response {
	status, err := s.ctrl.Status(ctx)
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to get status: %v", err))
	}
	status.UptimeSeconds = int64(time.Since(s.startTime).Seconds())
	status.DaemonRunning = true
	return s.ok(status, nil, "get status")
}

func (s *Server) handleOpenWindow(ctx context.Context, payload json.RawMessage) *Response {
	var req OpenWindowPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid open payload: %v", err))
	}
	if err := req.Validate(); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid open payload: %v", err))
	}
	data, err := s.ctrl.OpenWindow(ctx, req)
	return s.ok(data, err, "open window")
}

func (s *Server) withSelector(ctx context.Context, payload json.RawMessage, action string, fn func(context.Context, WindowSelector) error) *Response {
	var sel WindowSelector
	if err := json.Unmarshal(payload, &sel); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid selector: %v", err))
	}
	if err := sel.Validate(); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid selector: %v", err))
	}
	return s.ok(nil, fn(ctx, sel), action)
}

func (s *Server) ok(data interface{}, err error, action string) *Response {
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to %s: %v", action, err))
	}
	resp, err := NewOKResponse(data)
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	return resp
}

func (s *Server) writeResponse(conn net.Conn, resp *Response) {
	data, err := resp.Marshal()
	if err != nil {
		s.logger.Error("Failed to marshal response", "error", err)
		return
	}
	data = append(data, '\n')
	if _, err := conn.Write(data); err != nil {
		s.logger.Warn("Failed to send response", "error", err)
	}
}

// SocketPath returns the path the server listens on.
func (s *Server) SocketPath() string { return s.socketPath }

// Stop gracefully shuts down the IPC server and waits for in-flight
// connections.
func (s *Server) Stop() {
	s.shutdownMu.Lock()
	s.shuttingDown = true
	s.shutdownMu.Unlock()

	if s.listener != nil {
		s.listener.Close()
	}
	s.wg.Wait()
	os.Remove(s.socketPath)
}

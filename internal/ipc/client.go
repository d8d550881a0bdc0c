package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/1broseidon/floatkit/internal/runtimepath"
)

// Client handles IPC communication with the daemon
type Client struct {
	socketPath string
	timeout    time.Duration
}

// NewClient creates a client for the default socket.
func NewClient() *Client {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		// Keep constructor non-failing; sendRequest surfaces connection errors.
		socketPath = ""
	}
	return NewClientWithSocket(socketPath)
}

// NewClientWithSocket creates a client for an explicit socket path.
func NewClientWithSocket(socketPath string) *Client {
	return &Client{
		socketPath: socketPath,
		timeout:    5 * time.Second,
	}
}

// sendRequest sends a request and waits for a response
func (c *Client) sendRequest(command CommandType, payload interface{}) (*Response, error) {
	req := &Request{Command: command}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal %s payload: %w", command, err)
		}
		req.Payload = raw
	}

	conn, err := net.DialTimeout("unix", c.socketPath, c.timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to daemon: %w (is the daemon running?)", err)
	}
	defer conn.Close()

	conn.SetDeadline(time.Now().Add(c.timeout))

	reqData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	reqData = append(reqData, '\n')
	if _, err := conn.Write(reqData); err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	reader := bufio.NewReader(conn)
	respData, err := reader.ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var resp Response
	if err := json.Unmarshal(respData, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if resp.Status == StatusError {
		return nil, fmt.Errorf("daemon error: %s", resp.Error)
	}

	return &resp, nil
}

func call[T any](c *Client, command CommandType, payload interface{}) (*T, error) {
	resp, err := c.sendRequest(command, payload)
	if err != nil {
		return nil, err
	}
	var out T
	if err := json.Unmarshal(resp.Data, &out); err != nil {
		return nil, fmt.Errorf("failed to parse %s data: %w", command, err)
	}
	return &out, nil
}

// Reload sends a RELOAD command to the daemon
func (c *Client) Reload() error {
	_, err := c.sendRequest(CommandReload, nil)
	return err
}

// GetStatus retrieves daemon status
func (c *Client) GetStatus() (*StatusData, error) {
	return call[StatusData](c, CommandGetStatus, nil)
}

// ListWindows returns the live windows in dock order.
func (c *Client) ListWindows() (*WindowsData, error) {
	return call[WindowsData](c, CommandListWindows, nil)
}

// OpenWindow asks the daemon to create and present a window.
func (c *Client) OpenWindow(req OpenWindowPayload) (*OpenWindowData, error) {
	return call[OpenWindowData](c, CommandOpenWindow, req)
}

// SelectWindow activates a window, restoring it first if it is minimized.
func (c *Client) SelectWindow(sel WindowSelector) error {
	_, err := c.sendRequest(CommandSelectWindow, sel)
	return err
}

func (c *Client) MinimizeWindow(sel WindowSelector) error {
	_, err := c.sendRequest(CommandMinimizeWindow, sel)
	return err
}

func (c *Client) RestoreWindow(sel WindowSelector) error {
	_, err := c.sendRequest(CommandRestoreWindow, sel)
	return err
}

func (c *Client) CloseWindow(sel WindowSelector) error {
	_, err := c.sendRequest(CommandCloseWindow, sel)
	return err
}

func (c *Client) MinimizeAll() error {
	_, err := c.sendRequest(CommandMinimizeAll, nil)
	return err
}

func (c *Client) RestoreAll() error {
	_, err := c.sendRequest(CommandRestoreAll, nil)
	return err
}

// Ping checks if the daemon is responding
func (c *Client) Ping() error {
	_, err := c.GetStatus()
	return err
}

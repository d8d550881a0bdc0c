// Package tui is a terminal dock for the floatkit daemon: one slot per
// window in registration order, with keys to select, minimize, restore
// and close.
package tui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/1broseidon/floatkit/internal/ipc"
)

// Client is the part of ipc.Client the dock uses.
type Client interface {
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

// Run starts the dock and blocks until the user quits.
func Run(client Client) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("dock requires an interactive terminal (stdin/stdout must be TTYs)")
	}
	p := tea.NewProgram(newModel(client), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Package palette shows a dmenu-style picker (rofi, fuzzel, wofi or dmenu)
// for switching between floating windows.
package palette

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrCancelled is returned when the user closes the palette without selecting an item.
var ErrCancelled = errors.New("palette cancelled")

// Exit codes for rofi kb-custom keybindings.
const (
	ExitNormal  = 0
	ExitCustom1 = 10 // Alt+Return
	ExitCustom2 = 11 // Alt+d
)

// Item is a single selectable entry in a palette.
type Item struct {
	Label    string
	Action   string // returned on selection
	Icon     string // rofi -show-icons
	Meta     string // hidden search keywords
	IsHeader bool   // non-selectable section header
	IsActive bool   // highlighted as current
	IsUrgent bool   // highlighted as needing attention
}

// SelectResult is the picked item and how it was picked.
type SelectResult struct {
	Item     Item
	ExitCode int
}

// Backend shows a palette to the user and returns the selected item.
type Backend interface {
	Show(prompt string, items []Item, message string) (SelectResult, error)
	// CustomKeys reports whether Alt+Return and Alt+d are reported through
	// SelectResult.ExitCode.
	CustomKeys() bool
}

// Backends lists the supported launchers in detection order.
var Backends = []string{"rofi", "fuzzel", "wofi", "dmenu"}

var lookPath = exec.LookPath

// DetectBackend returns the first launcher from Backends found in PATH.
func DetectBackend() (string, error) {
	for _, name := range Backends {
		if _, err := lookPath(name); err == nil {
			return name, nil
		}
	}
	return "", fmt.Errorf("no palette backend found in PATH (looked for: %s)", strings.Join(Backends, ", "))
}

// NewBackend creates a backend by name; "" and "auto" detect one.
func NewBackend(name string) (Backend, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || name == "auto" {
		detected, err := DetectBackend()
		if err != nil {
			return nil, err
		}
		name = detected
	}
	kind, ok := launcherKinds[name]
	if !ok {
		return nil, fmt.Errorf("unknown palette backend: %q (expected: auto, %s)", name, strings.Join(Backends, ", "))
	}
	if _, err := lookPath(name); err != nil {
		return nil, fmt.Errorf("palette backend %q not found in PATH", name)
	}
	return newLauncher(kind), nil
}

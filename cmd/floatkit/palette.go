package main

import (
	"fmt"
	"os"

	"github.com/1broseidon/floatkit/internal/config"
	"github.com/1broseidon/floatkit/internal/ipc"
	"github.com/1broseidon/floatkit/internal/palette"
)

func runPalette(args []string) int {
	fs := newFlagSet("palette", "palette [--backend NAME]",
		"Pick a window from a rofi, fuzzel, wofi or dmenu palette. Enter selects;\nwith rofi, Alt+Return closes and Alt+d minimizes.")
	backendName := fs.String("backend", "", "Launcher to use (default: palette.backend from config)")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}

	name := *backendName
	if name == "" {
		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		name = cfg.Palette.Backend
	}
	backend, err := palette.NewBackend(name)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if err := palette.NewSwitcher(ipc.NewClient(), backend).Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

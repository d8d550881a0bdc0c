package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/1broseidon/floatkit/internal/floating"
)

// Point is an integer screen position.
type Point struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// Size is an integer width/height pair.
type Size struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// AnimationConfig controls window transitions.
type AnimationConfig struct {
	MinimizeMS    int     `yaml:"minimize_ms"`
	RestoreMS     int     `yaml:"restore_ms"`
	DismissMS     int     `yaml:"dismiss_ms"`
	MinimizeScale float64 `yaml:"minimize_scale"`
	// FrameIntervalMS is the step between animation frames on the X11 host.
	FrameIntervalMS int `yaml:"frame_interval_ms"`
}

// WindowConfig holds placement defaults for windows opened without an
// explicit frame.
type WindowConfig struct {
	DefaultOrigin Point `yaml:"default_origin"`
	DefaultSize   Size  `yaml:"default_size"`
	TitleHeight   int   `yaml:"title_height"`
}

// DockConfig configures dock visibility.
type DockConfig struct {
	// ShowSingleMinimized shows the dock when the only open window is
	// minimized.
	// Default: true
	ShowSingleMinimized *bool `yaml:"show_single_minimized"`
}

// GetShowSingleMinimized returns the effective value, defaulting to true.
func (d *DockConfig) GetShowSingleMinimized() bool {
	if d == nil || d.ShowSingleMinimized == nil {
		return true
	}
	return *d.ShowSingleMinimized
}

// SurfaceConfig holds colours used by the X11 host.
type SurfaceConfig struct {
	DeskBackground string `yaml:"desk_background"`
	Background     string `yaml:"background"`
	ActiveBorder   string `yaml:"active_border"`
	InactiveBorder string `yaml:"inactive_border"`
	BorderWidth    int    `yaml:"border_width"`
}

// PaletteConfig selects the launcher used by "floatkit palette".
type PaletteConfig struct {
	// Backend is auto, rofi, fuzzel, wofi or dmenu.
	Backend string `yaml:"backend"`
}

// HotkeyActions lists the actions that can be bound in the hotkeys map.
var HotkeyActions = []string{"minimize_all", "restore_all", "cycle", "minimize_active", "close_active", "palette"}

// Config is the effective floatkit configuration.
type Config struct {
	Animation AnimationConfig `yaml:"animation"`
	Window    WindowConfig    `yaml:"window"`
	Dock      DockConfig      `yaml:"dock"`
	Surface   SurfaceConfig   `yaml:"surface"`
	Palette   PaletteConfig   `yaml:"palette"`
	// Hotkeys maps an action to an X11 key sequence such as "Mod4-Shift-m".
	// An empty sequence leaves the action unbound.
	Hotkeys  map[string]string `yaml:"hotkeys"`
	LogLevel string            `yaml:"log_level"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	showSingle := true
	return &Config{
		Animation: AnimationConfig{
			MinimizeMS:      300,
			RestoreMS:       300,
			DismissMS:       300,
			MinimizeScale:   0.01,
			FrameIntervalMS: 16,
		},
		Window: WindowConfig{
			DefaultOrigin: Point{X: 50, Y: 100},
			DefaultSize:   Size{Width: 200, Height: 350},
			TitleHeight:   30,
		},
		Dock: DockConfig{ShowSingleMinimized: &showSingle},
		Surface: SurfaceConfig{
			DeskBackground: "#0b1015",
			Background:     "#1f2933",
			ActiveBorder:   "#3498db",
			InactiveBorder: "#95a5a6",
			BorderWidth:    2,
		},
		Palette: PaletteConfig{Backend: "auto"},
		Hotkeys: map[string]string{
			"minimize_all": "Mod4-Shift-m",
			"restore_all":  "Mod4-Shift-r",
			"cycle":        "Mod4-grave",
		},
		LogLevel: "info",
	}
}

// Timings converts the animation settings for the window registry.
func (c *Config) Timings() floating.Timings {
	return floating.Timings{
		Minimize:      time.Duration(c.Animation.MinimizeMS) * time.Millisecond,
		Restore:       time.Duration(c.Animation.RestoreMS) * time.Millisecond,
		Dismiss:       time.Duration(c.Animation.DismissMS) * time.Millisecond,
		MinimizeScale: c.Animation.MinimizeScale,
	}
}

// Placement converts the window defaults for the window registry.
func (c *Config) Placement() floating.Placement {
	return floating.Placement{
		Origin: floating.Point{X: float64(c.Window.DefaultOrigin.X), Y: float64(c.Window.DefaultOrigin.Y)},
		Size:   floating.Size{Width: float64(c.Window.DefaultSize.Width), Height: float64(c.Window.DefaultSize.Height)},
	}
}

// FrameInterval returns the X11 animation step.
func (c *Config) FrameInterval() time.Duration {
	return time.Duration(c.Animation.FrameIntervalMS) * time.Millisecond
}

// Save writes the configuration to the standard location.
func (c *Config) Save() error {
	path, err := DefaultConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the configuration to path.
//
// Note: this marshals the effective config and will not preserve comments
// from the original YAML.
func (c *Config) SaveTo(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate performs strict validation of the effective configuration.
func (c *Config) Validate() error {
	a := c.Animation
	if a.MinimizeMS < 0 || a.RestoreMS < 0 || a.DismissMS < 0 {
		return &ValidationError{Path: "animation", Err: fmt.Errorf("durations must be >= 0")}
	}
	if a.MinimizeScale <= 0 || a.MinimizeScale > 1 {
		return &ValidationError{Path: "animation.minimize_scale", Err: fmt.Errorf("minimize_scale must be in (0, 1]")}
	}
	if a.FrameIntervalMS < 1 {
		return &ValidationError{Path: "animation.frame_interval_ms", Err: fmt.Errorf("frame_interval_ms must be >= 1")}
	}
	if c.Window.DefaultSize.Width < 1 || c.Window.DefaultSize.Height < 1 {
		return &ValidationError{Path: "window.default_size", Err: fmt.Errorf("default_size must be at least 1x1")}
	}
	if c.Window.TitleHeight < 0 {
		return &ValidationError{Path: "window.title_height", Err: fmt.Errorf("title_height must be >= 0")}
	}
	for path, value := range map[string]string{
		"surface.desk_background": c.Surface.DeskBackground,
		"surface.background":      c.Surface.Background,
		"surface.active_border":   c.Surface.ActiveBorder,
		"surface.inactive_border": c.Surface.InactiveBorder,
	} {
		if _, err := ParseColor(value); err != nil {
			return &ValidationError{Path: path, Err: err}
		}
	}
	if c.Surface.BorderWidth < 0 {
		return &ValidationError{Path: "surface.border_width", Err: fmt.Errorf("border_width must be >= 0")}
	}
	switch strings.ToLower(strings.TrimSpace(c.Palette.Backend)) {
	case "", "auto", "rofi", "fuzzel", "wofi", "dmenu":
	default:
		return &ValidationError{Path: "palette.backend", Err: fmt.Errorf("backend must be one of: auto, rofi, fuzzel, wofi, dmenu")}
	}
	for action := range c.Hotkeys {
		if !slices.Contains(HotkeyActions, action) {
			return &ValidationError{Path: "hotkeys." + action, Err: fmt.Errorf("unknown action (expected one of: %s)", strings.Join(HotkeyActions, ", "))}
		}
	}
	switch c.LogLevel {
	case "debug", "info", "warning", "error":
	default:
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warning, error")}
	}
	return nil
}

// ParseColor parses a "#rrggbb" colour into a 24-bit pixel value.
func ParseColor(s string) (uint32, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return 0, fmt.Errorf("color %q must be #rrggbb", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("color %q must be #rrggbb", s)
	}
	return uint32(v), nil
}

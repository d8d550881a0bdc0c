package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// IncludeList supports either:
//
//	include: "/path/to/file.yaml"
//
// or:
//
//	include:
//	  - "/path/to/file.yaml"
//	  - "/path/to/dir"
type IncludeList []string

func (l *IncludeList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case 0:
		*l = nil
		return nil
	case yaml.ScalarNode:
		if value.Tag != "!!str" {
			return fmt.Errorf("include must be a string or list of strings")
		}
		*l = []string{value.Value}
		return nil
	case yaml.SequenceNode:
		out := make([]string, 0, len(value.Content))
		for _, item := range value.Content {
			if item.Kind != yaml.ScalarNode || item.Tag != "!!str" {
				return fmt.Errorf("include entries must be strings")
			}
			out = append(out, item.Value)
		}
		*l = out
		return nil
	default:
		return fmt.Errorf("include must be a string or list of strings")
	}
}

type RawPoint struct {
	X *int `yaml:"x"`
	Y *int `yaml:"y"`
}

type RawSize struct {
	Width  *int `yaml:"width"`
	Height *int `yaml:"height"`
}

type RawAnimation struct {
	MinimizeMS      *int     `yaml:"minimize_ms"`
	RestoreMS       *int     `yaml:"restore_ms"`
	DismissMS       *int     `yaml:"dismiss_ms"`
	MinimizeScale   *float64 `yaml:"minimize_scale"`
	FrameIntervalMS *int     `yaml:"frame_interval_ms"`
}

type RawWindow struct {
	DefaultOrigin *RawPoint `yaml:"default_origin"`
	DefaultSize   *RawSize  `yaml:"default_size"`
	TitleHeight   *int      `yaml:"title_height"`
}

type RawDock struct {
	ShowSingleMinimized *bool `yaml:"show_single_minimized"`
}

type RawSurface struct {
	DeskBackground *string `yaml:"desk_background"`
	Background     *string `yaml:"background"`
	ActiveBorder   *string `yaml:"active_border"`
	InactiveBorder *string `yaml:"inactive_border"`
	BorderWidth    *int    `yaml:"border_width"`
}

type RawPalette struct {
	Backend *string `yaml:"backend"`
}

// RawConfig mirrors the YAML file. Unset fields stay nil so that included
// files and the main file can be layered over the defaults.
type RawConfig struct {
	Include IncludeList `yaml:"include"`

	Animation *RawAnimation `yaml:"animation"`
	Window    *RawWindow    `yaml:"window"`
	Dock      *RawDock      `yaml:"dock"`
	Surface   *RawSurface   `yaml:"surface"`
	Palette   *RawPalette   `yaml:"palette"`
	// Hotkeys merge per action; a later file's "" unbinds an action.
	Hotkeys  map[string]string `yaml:"hotkeys"`
	LogLevel *string           `yaml:"log_level"`
}

// merge overlays other onto r; fields set in other win.
func (r RawConfig) merge(other RawConfig) RawConfig {
	out := r
	out.Include = nil

	if other.Animation != nil {
		out.Animation = mergeAnimation(out.Animation, other.Animation)
	}
	if other.Window != nil {
		out.Window = mergeWindow(out.Window, other.Window)
	}
	if other.Dock != nil {
		d := RawDock{}
		if out.Dock != nil {
			d = *out.Dock
		}
		setIfNotNil(&d.ShowSingleMinimized, other.Dock.ShowSingleMinimized)
		out.Dock = &d
	}
	if other.Surface != nil {
		s := RawSurface{}
		if out.Surface != nil {
			s = *out.Surface
		}
		setIfNotNil(&s.DeskBackground, other.Surface.DeskBackground)
		setIfNotNil(&s.Background, other.Surface.Background)
		setIfNotNil(&s.ActiveBorder, other.Surface.ActiveBorder)
		setIfNotNil(&s.InactiveBorder, other.Surface.InactiveBorder)
		setIfNotNil(&s.BorderWidth, other.Surface.BorderWidth)
		out.Surface = &s
	}
	if other.Palette != nil {
		p := RawPalette{}
		if out.Palette != nil {
			p = *out.Palette
		}
		setIfNotNil(&p.Backend, other.Palette.Backend)
		out.Palette = &p
	}
	if other.Hotkeys != nil {
		keys := make(map[string]string, len(out.Hotkeys)+len(other.Hotkeys))
		for k, v := range out.Hotkeys {
			keys[k] = v
		}
		for k, v := range other.Hotkeys {
			keys[k] = v
		}
		out.Hotkeys = keys
	}
	setIfNotNil(&out.LogLevel, other.LogLevel)
	return out
}

func mergeAnimation(base, over *RawAnimation) *RawAnimation {
	a := RawAnimation{}
	if base != nil {
		a = *base
	}
	setIfNotNil(&a.MinimizeMS, over.MinimizeMS)
	setIfNotNil(&a.RestoreMS, over.RestoreMS)
	setIfNotNil(&a.DismissMS, over.DismissMS)
	setIfNotNil(&a.MinimizeScale, over.MinimizeScale)
	setIfNotNil(&a.FrameIntervalMS, over.FrameIntervalMS)
	return &a
}

func mergeWindow(base, over *RawWindow) *RawWindow {
	w := RawWindow{}
	if base != nil {
		w = *base
	}
	if over.DefaultOrigin != nil {
		p := RawPoint{}
		if w.DefaultOrigin != nil {
			p = *w.DefaultOrigin
		}
		setIfNotNil(&p.X, over.DefaultOrigin.X)
		setIfNotNil(&p.Y, over.DefaultOrigin.Y)
		w.DefaultOrigin = &p
	}
	if over.DefaultSize != nil {
		s := RawSize{}
		if w.DefaultSize != nil {
			s = *w.DefaultSize
		}
		setIfNotNil(&s.Width, over.DefaultSize.Width)
		setIfNotNil(&s.Height, over.DefaultSize.Height)
		w.DefaultSize = &s
	}
	setIfNotNil(&w.TitleHeight, over.TitleHeight)
	return &w
}

func setIfNotNil[T any](dst **T, src *T) {
	if src != nil {
		v := *src
		*dst = &v
	}
}

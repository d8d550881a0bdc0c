package config

import "fmt"

type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.Kind == SourceFile && e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error { return e.Err }

// BuildEffectiveConfig layers raw over DefaultConfig.
func BuildEffectiveConfig(raw RawConfig) (*Config, error) {
	cfg := DefaultConfig()

	if a := raw.Animation; a != nil {
		applyInt(&cfg.Animation.MinimizeMS, a.MinimizeMS)
		applyInt(&cfg.Animation.RestoreMS, a.RestoreMS)
		applyInt(&cfg.Animation.DismissMS, a.DismissMS)
		if a.MinimizeScale != nil {
			cfg.Animation.MinimizeScale = *a.MinimizeScale
		}
		applyInt(&cfg.Animation.FrameIntervalMS, a.FrameIntervalMS)
	}

	if w := raw.Window; w != nil {
		if w.DefaultOrigin != nil {
			applyInt(&cfg.Window.DefaultOrigin.X, w.DefaultOrigin.X)
			applyInt(&cfg.Window.DefaultOrigin.Y, w.DefaultOrigin.Y)
		}
		if w.DefaultSize != nil {
			applyInt(&cfg.Window.DefaultSize.Width, w.DefaultSize.Width)
			applyInt(&cfg.Window.DefaultSize.Height, w.DefaultSize.Height)
		}
		applyInt(&cfg.Window.TitleHeight, w.TitleHeight)
	}

	if raw.Dock != nil && raw.Dock.ShowSingleMinimized != nil {
		v := *raw.Dock.ShowSingleMinimized
		cfg.Dock.ShowSingleMinimized = &v
	}

	if s := raw.Surface; s != nil {
		applyString(&cfg.Surface.DeskBackground, s.DeskBackground)
		applyString(&cfg.Surface.Background, s.Background)
		applyString(&cfg.Surface.ActiveBorder, s.ActiveBorder)
		applyString(&cfg.Surface.InactiveBorder, s.InactiveBorder)
		applyInt(&cfg.Surface.BorderWidth, s.BorderWidth)
	}

	if raw.Palette != nil {
		applyString(&cfg.Palette.Backend, raw.Palette.Backend)
	}
	for action, keys := range raw.Hotkeys {
		if keys == "" {
			delete(cfg.Hotkeys, action)
			continue
		}
		cfg.Hotkeys[action] = keys
	}

	if raw.LogLevel != nil {
		cfg.LogLevel = *raw.LogLevel
	}

	return cfg, nil
}

func applyInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

func applyString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

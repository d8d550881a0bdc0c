// Package daemon owns the floating-window registry and serves it over IPC.
//
// Every registry call runs on the UI loop. IPC connections and signal
// handlers submit work with uiloop.Do and wait for the result.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/1broseidon/floatkit/internal/config"
	"github.com/1broseidon/floatkit/internal/dock"
	"github.com/1broseidon/floatkit/internal/floating"
	"github.com/1broseidon/floatkit/internal/hotkeys"
	"github.com/1broseidon/floatkit/internal/ipc"
	"github.com/1broseidon/floatkit/internal/platform"
	"github.com/1broseidon/floatkit/internal/runtimepath"
	"github.com/1broseidon/floatkit/internal/uiloop"
	"github.com/1broseidon/floatkit/internal/x11"
)

// HeadlessBounds is the surface size used when no display is attached.
var HeadlessBounds = floating.Rect{Width: 1280, Height: 800}

// Options configures a Daemon.
type Options struct {
	// ConfigPath overrides the default config location.
	ConfigPath string
	// SocketPath overrides the runtime socket location.
	SocketPath string
	// Display is the X display; empty uses $DISPLAY.
	Display string
	// Headless runs without a window system.
	Headless bool
	// Host replaces the window system entirely. Used by tests.
	Host func(cfg *config.Config, loop *uiloop.Loop, logger *slog.Logger) (platform.Host, error)
	// Logger receives daemon logs. Nil logs to LogOutput at the configured
	// level.
	Logger *slog.Logger
	// LogOutput is where the default logger writes. Nil means stderr.
	LogOutput io.Writer
}

// Daemon wires config, host, registry, dock and IPC together.
type Daemon struct {
	opts    Options
	logger  *slog.Logger
	level   *slog.LevelVar
	started time.Time

	cfgMu sync.Mutex
	cfg   *config.Config

	loop   *uiloop.Loop
	host   platform.Host
	reg    *floating.Registry
	dock   *dock.Model
	server *ipc.Server

	// UI thread only.
	opened int
}

// New loads configuration and builds every component. Nothing is listening
// until Run is called.
func New(opts Options) (*Daemon, error) {
	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	level := new(slog.LevelVar)
	level.Set(ParseLevel(cfg.LogLevel))
	logger := opts.Logger
	if logger == nil {
		out := opts.LogOutput
		if out == nil {
			out = os.Stderr
		}
		logger = NewLogger(out, level)
	}

	d := &Daemon{
		opts:    opts,
		logger:  logger,
		level:   level,
		started: time.Now(),
		cfg:     cfg,
		loop:    uiloop.New(64, logger),
	}

	d.host, err = d.newHost(cfg)
	if err != nil {
		return nil, err
	}

	d.reg = floating.NewRegistry(
		floating.WithAnimator(d.host),
		floating.WithTimings(cfg.Timings()),
		floating.WithPlacement(cfg.Placement()),
		floating.WithLogger(logger.With("component", "registry")),
		floating.WithFaultHandler(func(err error) {
			logger.Error("window lifecycle fault", "error", err)
		}),
	)
	d.dock = dock.New(d.reg,
		dock.WithLabeler(labelOf),
		dock.WithShowSingleMinimized(cfg.Dock.GetShowSingleMinimized()),
		dock.WithOnChange(func(s dock.Snapshot) {
			logger.Debug("dock changed", "slots", len(s.Slots), "visible", s.Visible, "highlighted", s.Highlighted())
		}),
	)
	d.reg.SetObserver(floating.Observers(d.dock, &decorator{host: d.host, logger: logger}))
	d.host.SetInput(inputRouter{reg: d.reg})
	if err := hotkeys.BindAll(d.host, cfg.Hotkeys, d.hotkeyActions()); err != nil {
		logger.Warn("some hotkeys were not bound", "error", err)
	}

	socket := opts.SocketPath
	if socket == "" {
		socket, err = runtimepath.SocketPath()
		if err != nil {
			d.host.Close()
			return nil, err
		}
	}
	d.server = ipc.NewServer(socket, d, logger.With("component", "ipc"))
	return d, nil
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromPath(path)
	}
	return config.Load()
}

func (d *Daemon) newHost(cfg *config.Config) (platform.Host, error) {
	switch {
	case d.opts.Host != nil:
		return d.opts.Host(cfg, d.loop, d.logger)
	case d.opts.Headless:
		return platform.NewHeadless(HeadlessBounds, platform.LoopScheduler(d.loop)), nil
	}

	opts, err := x11Options(cfg)
	if err != nil {
		return nil, err
	}
	opts.Logger = d.logger.With("component", "x11")
	host, err := platform.NewX11(d.opts.Display, d.loop, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to display (use --headless to run without one): %w", err)
	}
	return host, nil
}

func x11Options(cfg *config.Config) (x11.Options, error) {
	colors := make([]uint32, 4)
	for i, s := range []string{cfg.Surface.DeskBackground, cfg.Surface.Background, cfg.Surface.ActiveBorder, cfg.Surface.InactiveBorder} {
		c, err := config.ParseColor(s)
		if err != nil {
			return x11.Options{}, err
		}
		colors[i] = c
	}
	return x11.Options{
		DeskBackground: colors[0],
		Background:     colors[1],
		ActiveBorder:   colors[2],
		InactiveBorder: colors[3],
		BorderWidth:    cfg.Surface.BorderWidth,
		TitleHeight:    cfg.Window.TitleHeight,
		FrameInterval:  cfg.FrameInterval(),
	}, nil
}

// Run serves IPC and drives the host until ctx ends or the host quits.
// SIGHUP reloads the configuration.
func (d *Daemon) Run(ctx context.Context) error {
	if err := d.server.Start(); err != nil {
		d.host.Close()
		return fmt.Errorf("failed to start IPC server: %w", err)
	}
	defer d.server.Stop()

	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)
	go func() {
		for {
			select {
			case <-hup:
				d.logger.Info("received SIGHUP, reloading config")
				if err := d.Reload(ctx); err != nil {
					d.logger.Error("config reload failed", "error", err)
				}
			case <-ctx.Done():
				return
			case <-d.loop.Done():
				return
			}
		}
	}()

	d.logger.Info("floatkit daemon started", "socket", d.server.SocketPath(), "host", d.host.Name())
	err := d.host.Run(ctx, d.loop)
	d.loop.Stop()
	d.host.Close()
	d.logger.Info("floatkit daemon stopped")
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Config returns the configuration currently in effect.
func (d *Daemon) Config() *config.Config {
	d.cfgMu.Lock()
	defer d.cfgMu.Unlock()
	return d.cfg
}

// Registry exposes the registry for code that already runs on the loop.
func (d *Daemon) Registry() *floating.Registry { return d.reg }

// Loop returns the UI loop.
func (d *Daemon) Loop() *uiloop.Loop { return d.loop }

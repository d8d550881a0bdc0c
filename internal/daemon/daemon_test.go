package daemon

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/1broseidon/floatkit/internal/config"
	"github.com/1broseidon/floatkit/internal/dock"
	"github.com/1broseidon/floatkit/internal/floating"
	"github.com/1broseidon/floatkit/internal/ipc"
	"github.com/1broseidon/floatkit/internal/platform"
	"github.com/1broseidon/floatkit/internal/uiloop"
)

type harness struct {
	d          *Daemon
	host       *platform.Headless
	client     *ipc.Client
	configPath string
}

func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func startDaemon(t *testing.T, configYAML string) *harness {
	t.Helper()
	// Unix socket paths are length limited, so keep them out of t.TempDir().
	sockDir, err := os.MkdirTemp("", "fkd")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.RemoveAll(sockDir) })

	h := &harness{configPath: filepath.Join(t.TempDir(), "config.yaml")}
	writeConfig(t, h.configPath, configYAML)

	h.host = platform.NewHeadless(floating.Rect{Width: 400, Height: 800}, nil)
	d, err := New(Options{
		ConfigPath: h.configPath,
		SocketPath: filepath.Join(sockDir, "fk.sock"),
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		Host: func(*config.Config, *uiloop.Loop, *slog.Logger) (platform.Host, error) {
			return h.host, nil
		},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	h.d = d
	h.client = ipc.NewClientWithSocket(filepath.Join(sockDir, "fk.sock"))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			if err != nil {
				t.Errorf("Run: %v", err)
			}
		case <-time.After(5 * time.Second):
			t.Errorf("daemon did not stop")
		}
	})

	deadline := time.Now().Add(5 * time.Second)
	for {
		if err := h.client.Ping(); err == nil {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("daemon never answered")
		}
		time.Sleep(10 * time.Millisecond)
	}
	return h
}

// onLoop runs fn on the daemon's UI thread.
func (h *harness) onLoop(t *testing.T, fn func()) {
	t.Helper()
	err := h.d.Loop().Do(context.Background(), func() error {
		fn()
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
}

func (h *harness) open(t *testing.T, title string) ipc.OpenWindowData {
	t.Helper()
	res, err := h.client.OpenWindow(ipc.OpenWindowPayload{Title: title})
	if err != nil {
		t.Fatalf("OpenWindow(%s): %v", title, err)
	}
	return *res
}

func (h *harness) list(t *testing.T) ipc.WindowsData {
	t.Helper()
	res, err := h.client.ListWindows()
	if err != nil {
		t.Fatalf("ListWindows: %v", err)
	}
	return *res
}

func ptr(v float64) *float64 { return &v }

func TestDaemon_OpenListStatus(t *testing.T) {
	h := startDaemon(t, "")

	a := h.open(t, "Notes")
	if a.Slot != 0 {
		t.Errorf("first slot = %d", a.Slot)
	}
	b, err := h.client.OpenWindow(ipc.OpenWindowPayload{
		Kind: "browser",
		X:    ptr(10), Y: ptr(20), Width: ptr(100), Height: ptr(150),
	})
	if err != nil {
		t.Fatal(err)
	}

	list := h.list(t)
	if len(list.Windows) != 2 || !list.DockVisible {
		t.Fatalf("list = %+v", list)
	}
	first, second := list.Windows[0], list.Windows[1]
	if first.Title != "Notes" || first.Kind != DefaultKind || first.Active {
		t.Errorf("first window = %+v", first)
	}
	if first.X != 50 || first.Y != 100 || first.Width != 200 || first.Height != 350 {
		t.Errorf("default frame = %+v", first)
	}
	if second.ID != b.ID || second.Title != "Window 2" || second.Kind != "browser" || !second.Active {
		t.Errorf("second window = %+v", second)
	}
	if second.X != 10 || second.Width != 100 || second.State != "presented" {
		t.Errorf("explicit frame = %+v", second)
	}

	status, err := h.client.GetStatus()
	if err != nil {
		t.Fatal(err)
	}
	if status.WindowCount != 2 || status.ActiveID != b.ID || status.Display != "headless" || !status.DaemonRunning {
		t.Errorf("status = %+v", status)
	}
	if h.host.Title(floating.ID(a.ID)) != "Notes" || !h.host.IsActive(floating.ID(b.ID)) || h.host.IsActive(floating.ID(a.ID)) {
		t.Errorf("host decorations out of step")
	}
}

func TestDaemon_MinimizeSelectRestoreClose(t *testing.T) {
	h := startDaemon(t, "")
	a := h.open(t, "A")

	if err := h.client.MinimizeWindow(ipc.SelectSlot(0)); err != nil {
		t.Fatal(err)
	}
	list := h.list(t)
	if !list.Windows[0].Minimized || !list.DockVisible {
		t.Fatalf("after minimize: %+v", list)
	}
	if !h.host.IsHidden(floating.ID(a.ID)) {
		t.Errorf("minimized view still shown")
	}

	// Selecting a minimized window restores it, like a dock tap.
	if err := h.client.SelectWindow(ipc.SelectID(a.ID[:8])); err != nil {
		t.Fatal(err)
	}
	list = h.list(t)
	if list.Windows[0].Minimized || !list.Windows[0].Active || list.DockVisible {
		t.Fatalf("after select: %+v", list)
	}

	b := h.open(t, "B")
	if err := h.client.MinimizeAll(); err != nil {
		t.Fatal(err)
	}
	status, _ := h.client.GetStatus()
	if status.MinimizedCount != 2 || status.ActiveID != "" {
		t.Errorf("after minimize all: %+v", status)
	}
	if err := h.client.RestoreAll(); err != nil {
		t.Fatal(err)
	}
	status, _ = h.client.GetStatus()
	if status.MinimizedCount != 0 || status.ActiveID != b.ID {
		t.Errorf("after restore all: %+v, want B active", status)
	}

	if err := h.client.CloseWindow(ipc.SelectID(a.ID)); err != nil {
		t.Fatal(err)
	}
	if err := h.client.RestoreWindow(ipc.SelectID(b.ID)); err != nil {
		t.Errorf("restore on an open window should be a no-op: %v", err)
	}
	list = h.list(t)
	if len(list.Windows) != 1 || list.Windows[0].ID != b.ID || list.Windows[0].Slot != 0 {
		t.Errorf("after close: %+v", list)
	}
}

func TestDaemon_SelectorErrors(t *testing.T) {
	h := startDaemon(t, "")
	h.open(t, "A")

	tests := []struct {
		name string
		sel  ipc.WindowSelector
		want string
	}{
		{"unknown id", ipc.SelectID("zzzz"), "no such window"},
		{"slot past the end", ipc.SelectSlot(3), "no such dock slot"},
		{"empty selector", ipc.WindowSelector{}, "exactly one of id or slot"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := h.client.CloseWindow(tt.sel)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("CloseWindow = %v, want error containing %q", err, tt.want)
			}
		})
	}
	if _, err := h.client.OpenWindow(ipc.OpenWindowPayload{X: ptr(1), Y: ptr(1)}); err == nil {
		t.Errorf("open with a position but no size accepted")
	}
}

func TestDaemon_HostInputRouting(t *testing.T) {
	h := startDaemon(t, "")
	a := h.open(t, "A")
	b := h.open(t, "B")
	idA, idB := floating.ID(a.ID), floating.ID(b.ID)

	// A sits under B at the default frame; click the part of A that B hides
	// after moving B away.
	h.onLoop(t, func() {
		h.host.Drag(idB, floating.Point{X: 60, Y: 110}, floating.Point{X: 260, Y: 410})
	})
	list := h.list(t)
	if list.Windows[1].X != 250 || list.Windows[1].Y != 400 {
		t.Fatalf("B after drag = %+v", list.Windows[1])
	}

	h.onLoop(t, func() { h.host.Click(floating.Point{X: 60, Y: 110}) })
	if list := h.list(t); !list.Windows[0].Active {
		t.Errorf("tap on A did not select it: %+v", list.Windows)
	}

	// Outside tap clears the active window.
	h.onLoop(t, func() { h.host.Click(floating.Point{X: 5, Y: 5}) })
	if status, _ := h.client.GetStatus(); status.ActiveID != "" {
		t.Errorf("active after outside tap = %q", status.ActiveID)
	}

	h.onLoop(t, func() {
		h.host.RequestMinimize(idA)
		h.host.RequestClose(idB)
	})
	list = h.list(t)
	if len(list.Windows) != 1 || !list.Windows[0].Minimized {
		t.Errorf("after minimize and close buttons: %+v", list)
	}
}

func TestDaemon_Hotkeys(t *testing.T) {
	h := startDaemon(t, "hotkeys:\n  close_active: Mod4-q\n  restore_all: \"\"\n")
	a := h.open(t, "A")
	b := h.open(t, "B")

	press := func(keys string) {
		t.Helper()
		var ok bool
		h.onLoop(t, func() { ok = h.host.PressKey(keys) })
		if !ok {
			t.Fatalf("%s is not bound", keys)
		}
	}

	press("Mod4-grave")
	if status, _ := h.client.GetStatus(); status.ActiveID != a.ID {
		t.Errorf("cycle from B: active = %q, want A", status.ActiveID)
	}
	press("Mod4-q")
	list := h.list(t)
	if len(list.Windows) != 1 || list.Windows[0].ID != b.ID {
		t.Fatalf("after close_active: %+v", list.Windows)
	}
	press("Mod4-Shift-m")
	if !h.list(t).Windows[0].Minimized {
		t.Fatalf("minimize_all left B up")
	}
	// Cycling onto the only, minimized window restores it.
	press("Mod4-grave")
	if list := h.list(t); list.Windows[0].Minimized || !list.Windows[0].Active {
		t.Errorf("cycle onto minimized B: %+v", list.Windows[0])
	}

	var bound bool
	h.onLoop(t, func() { bound = h.host.PressKey("Mod4-Shift-r") })
	if bound {
		t.Errorf("restore_all should be unbound by the config")
	}
}

func TestDaemon_Reload(t *testing.T) {
	h := startDaemon(t, "dock:\n  show_single_minimized: true\n")
	h.open(t, "A")
	if err := h.client.MinimizeWindow(ipc.SelectSlot(0)); err != nil {
		t.Fatal(err)
	}
	if !h.list(t).DockVisible {
		t.Fatalf("dock hidden for a single minimized window")
	}

	writeConfig(t, h.configPath, "dock:\n  show_single_minimized: false\nlog_level: debug\nwindow:\n  default_size: {width: 120, height: 90}\n")
	if err := h.client.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if h.list(t).DockVisible {
		t.Errorf("dock still visible after disabling the rule")
	}
	if got := h.d.Config().Window.DefaultSize; got.Width != 120 || got.Height != 90 {
		t.Errorf("config after reload = %+v", got)
	}
	if h.d.level.Level() != slog.LevelDebug {
		t.Errorf("log level not applied")
	}
	b := h.open(t, "B")
	if w := h.list(t).Windows[b.Slot]; w.Width != 120 || w.Height != 90 {
		t.Errorf("new window size = %vx%v, want reloaded default", w.Width, w.Height)
	}

	writeConfig(t, h.configPath, "animation:\n  minimize_scale: 3\n")
	if err := h.client.Reload(); err == nil || !strings.Contains(err.Error(), "minimize_scale") {
		t.Errorf("invalid reload = %v", err)
	}
}

func TestResolve(t *testing.T) {
	reg := floating.NewRegistry()
	host := platform.NewHeadless(floating.Rect{Width: 400, Height: 800}, nil)
	a := floating.New(reg, floating.AutoGeometry(), WindowSpec{Title: "A"})
	b := floating.New(reg, floating.AutoGeometry(), WindowSpec{Title: "B"})
	for _, w := range []*Window{a, b} {
		if err := w.Present(host); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		name    string
		sel     ipc.WindowSelector
		want    floating.ID
		wantErr error
	}{
		{"full id", ipc.SelectID(a.ID().String()), a.ID(), nil},
		{"short id", ipc.SelectID(b.ID().Short()), b.ID(), nil},
		{"slot", ipc.SelectSlot(1), b.ID(), nil},
		{"unknown", ipc.SelectID("nope"), "", ErrNoSuchWindow},
		{"bad slot", ipc.SelectSlot(2), "", dock.ErrNoSuchSlot},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := resolve(reg, tt.sel)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("resolve = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil || w.ID() != tt.want {
				t.Errorf("resolve = %v, %v; want %s", w, err, tt.want)
			}
		})
	}
}

func TestGeometryFor(t *testing.T) {
	p := floating.DefaultPlacement()
	tests := []struct {
		name string
		req  ipc.OpenWindowPayload
		want floating.Rect
	}{
		{"auto", ipc.OpenWindowPayload{}, floating.Rect{X: 50, Y: 100, Width: 200, Height: 350}},
		{"size only", ipc.OpenWindowPayload{Width: ptr(80), Height: ptr(60)}, floating.Rect{X: 50, Y: 100, Width: 80, Height: 60}},
		{"frame", ipc.OpenWindowPayload{X: ptr(1), Y: ptr(2), Width: ptr(3), Height: ptr(4)}, floating.Rect{X: 1, Y: 2, Width: 3, Height: 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := geometryFor(tt.req).Resolve(p); got != tt.want {
				t.Errorf("Resolve = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"WARN":    slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

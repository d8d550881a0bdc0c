package runtimepath

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDir_UsesXDGRuntimeDirWhenSet(t *testing.T) {
	td := t.TempDir()
	t.Setenv("XDG_RUNTIME_DIR", td)

	got, err := Dir()
	if err != nil {
		t.Fatalf("Dir() error: %v", err)
	}
	if got != td {
		t.Fatalf("Dir() = %q, want %q", got, td)
	}
}

func TestDir_FallbacksWhenXDGRuntimeDirMissing(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", "")

	got, err := Dir()
	if err != nil {
		t.Fatalf("Dir() error: %v", err)
	}

	wantRun := fmt.Sprintf("/run/user/%d", os.Getuid())
	wantTmp := fmt.Sprintf("/tmp/floatkit-runtime-%d", os.Getuid())
	if got != wantRun && got != wantTmp {
		t.Fatalf("Dir() = %q, want %q or %q", got, wantRun, wantTmp)
	}
}

func TestSocketPathAndLogPath(t *testing.T) {
	td := t.TempDir()
	t.Setenv("XDG_RUNTIME_DIR", td)
	t.Setenv("FLOATKIT_SOCKET", "")

	socket, err := SocketPath()
	if err != nil {
		t.Fatalf("SocketPath() error: %v", err)
	}
	if socket != filepath.Join(td, "floatkit.sock") {
		t.Fatalf("SocketPath() = %q", socket)
	}

	logPath, err := LogPath()
	if err != nil {
		t.Fatalf("LogPath() error: %v", err)
	}
	if !strings.HasSuffix(logPath, "/floatkit.log") {
		t.Fatalf("LogPath() = %q, missing suffix", logPath)
	}
}

func TestSocketPath_EnvOverride(t *testing.T) {
	t.Setenv("FLOATKIT_SOCKET", "/tmp/custom.sock")

	socket, err := SocketPath()
	if err != nil {
		t.Fatalf("SocketPath() error: %v", err)
	}
	if socket != "/tmp/custom.sock" {
		t.Fatalf("SocketPath() = %q, want override", socket)
	}
}

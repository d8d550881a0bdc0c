package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/1broseidon/floatkit/internal/daemon"
	"github.com/1broseidon/floatkit/internal/ipc"
	"github.com/1broseidon/floatkit/internal/runtimepath"
	"github.com/1broseidon/floatkit/internal/tui"
)

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "daemon":
		os.Exit(runDaemon(os.Args[2:]))
	case "status":
		os.Exit(runStatus(os.Args[2:]))
	case "list":
		os.Exit(runList(os.Args[2:]))
	case "open":
		os.Exit(runOpen(os.Args[2:]))
	case "select", "minimize", "restore", "close":
		os.Exit(runWindowAction(os.Args[1], os.Args[2:]))
	case "minimize-all", "restore-all":
		os.Exit(runBulk(os.Args[1], os.Args[2:]))
	case "reload":
		os.Exit(runReload(os.Args[2:]))
	case "dock":
		os.Exit(runDock(os.Args[2:]))
	case "palette":
		os.Exit(runPalette(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "mcp":
		os.Exit(runMCP(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: floatkit <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  daemon              Start the floatkit daemon (foreground)")
	fmt.Fprintln(w, "  status              Show daemon status")
	fmt.Fprintln(w, "  reload              Reload daemon configuration")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  list                List windows in dock order")
	fmt.Fprintln(w, "  open                Open a new floating window")
	fmt.Fprintln(w, "  select <window>     Activate a window (restores it if minimized)")
	fmt.Fprintln(w, "  minimize <window>   Minimize a window")
	fmt.Fprintln(w, "  restore <window>    Restore a minimized window")
	fmt.Fprintln(w, "  close <window>      Dismiss a window")
	fmt.Fprintln(w, "  minimize-all        Minimize every window")
	fmt.Fprintln(w, "  restore-all         Restore every minimized window")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  dock                Open the interactive dock")
	fmt.Fprintln(w, "  palette             Pick a window from a rofi/dmenu palette")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print configuration")
	fmt.Fprintln(w, "  config explain      Explain a config value")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  mcp serve           Start MCP server (stdio transport)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "A <window> is a dock slot number or a window ID (a unique prefix is enough).")
	fmt.Fprintln(w, "Run 'floatkit <command> --help' for command-specific options.")
}

// parseFlags parses args, returning an exit code when the command should
// stop.
func parseFlags(fs *flag.FlagSet, args []string) (int, bool) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0, false
		}
		return 2, false
	}
	return 0, true
}

func newFlagSet(name, usage, about string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: floatkit "+usage)
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, about)
		hasFlags := false
		fs.VisitAll(func(*flag.Flag) { hasFlags = true })
		if hasFlags {
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, "Flags:")
			fs.PrintDefaults()
		}
	}
	return fs
}

func runDaemon(args []string) int {
	fs := newFlagSet("daemon", "daemon [--headless] [--display DISPLAY] [--config PATH]",
		"Run the floatkit daemon in the foreground. SIGHUP reloads the config.")
	headless := fs.Bool("headless", false, "Run without a window system")
	display := fs.String("display", "", "X display to connect to (default: $DISPLAY)")
	path := fs.String("config", "", "Config file path (default: ~/.config/floatkit/config.yaml)")
	logFile := fs.String("log-file", "", "Log file (default: stderr, or the runtime log when stderr is not a terminal)")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "daemon takes no arguments")
		fs.Usage()
		return 2
	}

	logOut, closeLog, err := daemonLogOutput(*logFile)
	if err != nil {
		log.Printf("floatkit daemon: %v", err)
		return 1
	}
	defer closeLog()

	d, err := daemon.New(daemon.Options{
		ConfigPath: *path,
		Display:    *display,
		Headless:   *headless,
		LogOutput:  logOut,
	})
	if err != nil {
		log.Printf("floatkit daemon: %v", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := d.Run(ctx); err != nil {
		log.Printf("floatkit daemon: %v", err)
		return 1
	}
	return 0
}

// daemonLogOutput picks where daemon logs go. A daemon started from a
// session autostart has no terminal, so it logs to the runtime log file.
func daemonLogOutput(path string) (io.Writer, func(), error) {
	if path == "" {
		if term.IsTerminal(int(os.Stderr.Fd())) {
			return os.Stderr, func() {}, nil
		}
		p, err := runtimepath.LogPath()
		if err != nil {
			return nil, nil, err
		}
		path = p
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return f, func() { f.Close() }, nil
}

func runStatus(args []string) int {
	fs := newFlagSet("status", "status", "Show daemon status via IPC.")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "status takes no arguments")
		fs.Usage()
		return 2
	}

	status, err := ipc.NewClient().GetStatus()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Printf("daemon_running:  %v\n", status.DaemonRunning)
	fmt.Printf("display:         %s\n", status.Display)
	fmt.Printf("window_count:    %d\n", status.WindowCount)
	fmt.Printf("minimized_count: %d\n", status.MinimizedCount)
	fmt.Printf("active_id:       %s\n", status.ActiveID)
	fmt.Printf("dock_visible:    %v\n", status.DockVisible)
	fmt.Printf("uptime_seconds:  %d\n", status.UptimeSeconds)
	return 0
}

func runReload(args []string) int {
	fs := newFlagSet("reload", "reload", "Ask the daemon to reload its configuration.")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if err := ipc.NewClient().Reload(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runDock(args []string) int {
	fs := newFlagSet("dock", "dock",
		"Interactive dock: one slot per window. Keys: ←/→ move, enter select,\nm minimize, r restore, x close, n open, M/R all, ? help, q quit.")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	client := ipc.NewClient()
	if err := client.Ping(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if err := tui.Run(client); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

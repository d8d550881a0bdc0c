package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"golang.org/x/term"

	"github.com/1broseidon/floatkit/internal/ipc"
	"github.com/1broseidon/floatkit/internal/tui"
)

func runList(args []string) int {
	fs := newFlagSet("list", "list [--json]", "List live windows in dock order.")
	jsonOut := fs.Bool("json", false, "Output as JSON")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}

	data, err := ipc.NewClient().ListWindows()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(data); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0
	}
	writeWindowTable(os.Stdout, data.Windows)
	return 0
}

func writeWindowTable(w io.Writer, windows []ipc.WindowInfo) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SLOT\tID\tTITLE\tKIND\tSTATE\tFRAME")
	for _, win := range windows {
		id := win.ID
		if len(id) > 8 {
			id = id[:8]
		}
		marker := ""
		if win.Active {
			marker = "*"
		}
		fmt.Fprintf(tw, "%d%s\t%s\t%s\t%s\t%s\t%.0fx%.0f+%.0f+%.0f\n",
			win.Slot, marker, id, win.Title, win.Kind, windowState(win),
			win.Width, win.Height, win.X, win.Y)
	}
	_ = tw.Flush()
}

func windowState(w ipc.WindowInfo) string {
	switch {
	case w.Busy:
		return w.State + " (busy)"
	case w.Minimized:
		return "minimized"
	default:
		return w.State
	}
}

// optionalFloat is a flag that records whether it was set.
type optionalFloat struct{ v *float64 }

var _ flag.Value = (*optionalFloat)(nil)

func (o *optionalFloat) String() string {
	if o.v == nil {
		return ""
	}
	return strconv.FormatFloat(*o.v, 'f', -1, 64)
}

func (o *optionalFloat) Set(s string) error {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	o.v = &f
	return nil
}

func runOpen(args []string) int {
	fs := newFlagSet("open", "open [--title T] [--kind K] [--width W --height H [--x X --y Y]] [--prompt]",
		"Open and present a new window. Without a size the configured default is used.")
	title := fs.String("title", "", "Window title (default: Window N)")
	kind := fs.String("kind", "", "Window kind (default: note)")
	prompt := fs.Bool("prompt", false, "Ask for title and kind interactively")
	var x, y, width, height optionalFloat
	fs.Var(&x, "x", "Left edge of an exact frame")
	fs.Var(&y, "y", "Top edge of an exact frame")
	fs.Var(&width, "width", "Window width")
	fs.Var(&height, "height", "Window height")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "open takes no arguments")
		fs.Usage()
		return 2
	}

	req := ipc.OpenWindowPayload{Title: *title, Kind: *kind, X: x.v, Y: y.v, Width: width.v, Height: height.v}
	if *prompt {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			fmt.Fprintln(os.Stderr, "--prompt requires an interactive terminal")
			return 2
		}
		answers, err := tui.PromptOpen()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		req.Title, req.Kind = answers.Title, answers.Kind
	}
	if err := req.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	res, err := ipc.NewClient().OpenWindow(req)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Printf("%s slot=%d\n", res.ID, res.Slot)
	return 0
}

// parseSelector reads a window argument: digits name a dock slot unless
// byID is set, anything else is an ID or ID prefix.
func parseSelector(arg string, byID bool) ipc.WindowSelector {
	if !byID {
		if n, err := strconv.Atoi(arg); err == nil && n >= 0 {
			return ipc.SelectSlot(n)
		}
	}
	return ipc.SelectID(arg)
}

func runWindowAction(action string, args []string) int {
	fs := newFlagSet(action, action+" [--id] <slot|id>", actionHelp[action])
	byID := fs.Bool("id", false, "Treat the argument as a window ID even if it is numeric")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "%s requires exactly one <slot|id>\n", action)
		fs.Usage()
		return 2
	}
	sel := parseSelector(fs.Arg(0), *byID)

	client := ipc.NewClient()
	var err error
	switch action {
	case "select":
		err = client.SelectWindow(sel)
	case "minimize":
		err = client.MinimizeWindow(sel)
	case "restore":
		err = client.RestoreWindow(sel)
	case "close":
		err = client.CloseWindow(sel)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

var actionHelp = map[string]string{
	"select":   "Activate a window the way its dock slot does: a minimized window is\nrestored first.",
	"minimize": "Minimize a window into the dock.",
	"restore":  "Restore a minimized window to its previous position.",
	"close":    "Dismiss a window.",
}

func runBulk(action string, args []string) int {
	fs := newFlagSet(action, action, "Apply "+action+" to every window.")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	client := ipc.NewClient()
	var err error
	if action == "minimize-all" {
		err = client.MinimizeAll()
	} else {
		err = client.RestoreAll()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

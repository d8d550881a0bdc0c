package palette

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"os/exec"
	"strconv"
	"strings"
)

type launcherKind int

const (
	kindRofi launcherKind = iota
	kindFuzzel
	kindWofi
	kindDmenu
)

var launcherKinds = map[string]launcherKind{
	"rofi":   kindRofi,
	"fuzzel": kindFuzzel,
	"wofi":   kindWofi,
	"dmenu":  kindDmenu,
}

// launcher drives any dmenu-compatible program over stdin/stdout.
type launcher struct {
	command string
	kind    launcherKind
	// indexOutput launchers print the selected row number instead of its text.
	indexOutput bool
	markup      bool

	run func(cmd *exec.Cmd) ([]byte, error)
}

func newLauncher(kind launcherKind) *launcher {
	l := &launcher{kind: kind, run: func(cmd *exec.Cmd) ([]byte, error) { return cmd.Output() }}
	switch kind {
	case kindRofi:
		l.command, l.indexOutput, l.markup = "rofi", true, true
	case kindFuzzel:
		l.command, l.indexOutput = "fuzzel", true
	case kindWofi:
		l.command, l.markup = "wofi", true
	case kindDmenu:
		l.command = "dmenu"
	}
	return l
}

func (l *launcher) CustomKeys() bool { return l.kind == kindRofi }

func (l *launcher) Show(prompt string, items []Item, message string) (SelectResult, error) {
	if len(items) == 0 {
		return SelectResult{}, fmt.Errorf("palette: no items to show")
	}
	shown := make([]Item, len(items))
	copy(shown, items)

	input, selected := l.formatInput(shown)
	cmd := exec.Command(l.command, l.args(prompt, message, shown, selected)...)
	cmd.Stdin = strings.NewReader(input)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := l.run(cmd)
	selection := strings.TrimSpace(string(out))

	exitCode := 0
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		// 1 is "no selection", 130 is Ctrl+C.
		if selection == "" && (exitCode == 1 || exitCode == 130) {
			return SelectResult{}, ErrCancelled
		}
		if exitCode != ExitCustom1 && exitCode != ExitCustom2 {
			if msg := strings.TrimSpace(stderr.String()); msg != "" {
				return SelectResult{}, fmt.Errorf("%s failed: %s", l.command, msg)
			}
			return SelectResult{}, fmt.Errorf("%s failed: %w", l.command, err)
		}
	}
	if selection == "" {
		return SelectResult{}, ErrCancelled
	}

	item, err := l.parseSelection(selection, shown)
	if err != nil {
		return SelectResult{}, err
	}
	return SelectResult{Item: item, ExitCode: exitCode}, nil
}

func (l *launcher) args(prompt, message string, items []Item, selected int) []string {
	switch l.kind {
	case kindRofi:
		args := []string{"-dmenu", "-i", "-p", prompt, "-format", "i", "-no-custom", "-markup-rows", "-show-icons"}
		var active, urgent []string
		for i, it := range items {
			if it.IsHeader {
				continue
			}
			if it.IsActive {
				active = append(active, strconv.Itoa(i))
			}
			if it.IsUrgent {
				urgent = append(urgent, strconv.Itoa(i))
			}
		}
		if len(active) > 0 {
			args = append(args, "-a", strings.Join(active, ","))
		}
		if len(urgent) > 0 {
			args = append(args, "-u", strings.Join(urgent, ","))
		}
		if selected >= 0 {
			args = append(args, "-selected-row", strconv.Itoa(selected))
		}
		args = append(args, "-kb-custom-1", "Alt+Return", "-kb-custom-2", "Alt+d")
		if message != "" {
			args = append(args, "-mesg", message)
		}
		return args
	case kindFuzzel:
		return []string{"--dmenu", "--prompt", prompt, "--index"}
	case kindWofi:
		return []string{"--dmenu", "--prompt", prompt, "--allow-markup", "--allow-images"}
	default:
		return []string{"-i", "-p", prompt}
	}
}

// formatInput renders items one per line and returns the row to preselect:
// the first active selectable row, else the first selectable one.
func (l *launcher) formatInput(items []Item) (string, int) {
	// Text-output launchers match by label, so labels must be unique.
	if !l.indexOutput {
		seen := make(map[string]int)
		for i := range items {
			if items[i].IsHeader {
				continue
			}
			key := sanitizeLabel(items[i].Label)
			if n := seen[key]; n > 0 {
				items[i].Label = fmt.Sprintf("%s (%d)", key, n+1)
			}
			seen[key]++
		}
	}

	lines := make([]string, 0, len(items))
	first, firstActive := -1, -1
	for i, it := range items {
		lines = append(lines, l.formatItem(it))
		if it.IsHeader {
			continue
		}
		if first < 0 {
			first = i
		}
		if it.IsActive && firstActive < 0 {
			firstActive = i
		}
	}
	if firstActive >= 0 {
		first = firstActive
	}
	return strings.Join(lines, "\n"), first
}

func (l *launcher) formatItem(it Item) string {
	display := sanitizeLabel(it.Label)
	if l.markup {
		display = html.EscapeString(display)
		if it.IsHeader {
			display = "<b>" + display + "</b>"
		}
	}
	if l.kind != kindRofi {
		return display
	}

	// Rofi row properties: one NUL, then key/value pairs split by \x1f.
	var attrs []string
	if it.IsHeader {
		attrs = append(attrs, "nonselectable", "true")
	}
	if it.Icon != "" {
		attrs = append(attrs, "icon", sanitizeField(it.Icon))
	}
	if it.Meta != "" {
		attrs = append(attrs, "meta", sanitizeField(it.Meta))
	}
	if len(attrs) == 0 {
		return display
	}
	return display + "\x00" + strings.Join(attrs, "\x1f")
}

func (l *launcher) parseSelection(selection string, items []Item) (Item, error) {
	if l.indexOutput {
		if idx, err := strconv.Atoi(selection); err == nil {
			if idx < 0 || idx >= len(items) {
				return Item{}, fmt.Errorf("palette: index %d out of range", idx)
			}
			return items[idx], nil
		}
	}
	for _, it := range items {
		if sanitizeLabel(it.Label) == selection {
			return it, nil
		}
	}
	return Item{}, fmt.Errorf("palette: unknown selection %q", selection)
}

func sanitizeLabel(label string) string {
	label = strings.ReplaceAll(label, "\r", " ")
	label = strings.ReplaceAll(label, "\n", " ")
	return strings.TrimSpace(label)
}

func sanitizeField(value string) string {
	value = strings.ReplaceAll(value, "\x00", " ")
	value = strings.ReplaceAll(value, "\x1f", " ")
	return sanitizeLabel(value)
}

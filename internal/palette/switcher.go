package palette

import (
	"errors"
	"fmt"
	"strings"

	"github.com/1broseidon/floatkit/internal/ipc"
)

// Client is the part of ipc.Client the switcher uses.
type Client interface {
	ListWindows() (*ipc.WindowsData, error)
	OpenWindow(req ipc.OpenWindowPayload) (*ipc.OpenWindowData, error)
	SelectWindow(sel ipc.WindowSelector) error
	MinimizeWindow(sel ipc.WindowSelector) error
	CloseWindow(sel ipc.WindowSelector) error
	MinimizeAll() error
	RestoreAll() error
}

var _ Client = (*ipc.Client)(nil)

const (
	actionOpen        = "open"
	actionMinimizeAll = "minimize-all"
	actionRestoreAll  = "restore-all"
	windowPrefix      = "window:"
)

var kindIcons = map[string]string{
	"note":     "accessories-text-editor",
	"browser":  "web-browser",
	"terminal": "utilities-terminal",
	"media":    "multimedia-player",
}

// Items builds the palette rows: one per window in dock order, then the
// bulk actions.
func Items(windows []ipc.WindowInfo) []Item {
	items := make([]Item, 0, len(windows)+5)
	if len(windows) > 0 {
		items = append(items, Item{Label: "Windows", IsHeader: true})
	}
	for _, w := range windows {
		label := fmt.Sprintf("%d  %s", w.Slot+1, w.Title)
		if w.Minimized {
			label += "  (minimized)"
		}
		items = append(items, Item{
			Label:    label,
			Action:   windowPrefix + w.ID,
			Icon:     kindIcons[w.Kind],
			Meta:     w.Kind + " " + w.ID,
			IsActive: w.Active,
			IsUrgent: w.Busy,
		})
	}
	items = append(items,
		Item{Label: "Actions", IsHeader: true},
		Item{Label: "Open window", Action: actionOpen, Icon: "window-new"},
	)
	if len(windows) > 0 {
		items = append(items,
			Item{Label: "Minimize all", Action: actionMinimizeAll, Icon: "go-down"},
			Item{Label: "Restore all", Action: actionRestoreAll, Icon: "go-up"},
		)
	}
	return items
}

// Switcher shows the palette once and carries out the pick.
type Switcher struct {
	client  Client
	backend Backend
}

// NewSwitcher pairs a daemon client with a palette backend.
func NewSwitcher(client Client, backend Backend) *Switcher {
	return &Switcher{client: client, backend: backend}
}

// Run shows the palette. Picking a window selects it; on backends with
// custom keys, Alt+Return closes it and Alt+d minimizes it. A cancelled
// palette is not an error.
func (s *Switcher) Run() error {
	data, err := s.client.ListWindows()
	if err != nil {
		return err
	}
	message := ""
	if s.backend.CustomKeys() && len(data.Windows) > 0 {
		message = "Enter: select   Alt+Return: close   Alt+d: minimize"
	}

	res, err := s.backend.Show("floatkit", Items(data.Windows), message)
	if errors.Is(err, ErrCancelled) {
		return nil
	}
	if err != nil {
		return err
	}
	return s.dispatch(res)
}

func (s *Switcher) dispatch(res SelectResult) error {
	action := res.Item.Action
	switch action {
	case "":
		return nil
	case actionOpen:
		_, err := s.client.OpenWindow(ipc.OpenWindowPayload{})
		return err
	case actionMinimizeAll:
		return s.client.MinimizeAll()
	case actionRestoreAll:
		return s.client.RestoreAll()
	}

	id, ok := strings.CutPrefix(action, windowPrefix)
	if !ok {
		return fmt.Errorf("palette: unknown action %q", action)
	}
	sel := ipc.SelectID(id)
	switch res.ExitCode {
	case ExitCustom1:
		return s.client.CloseWindow(sel)
	case ExitCustom2:
		return s.client.MinimizeWindow(sel)
	default:
		return s.client.SelectWindow(sel)
	}
}

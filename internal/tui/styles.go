package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/floatkit/internal/ipc"
)

const slotWidth = 18

var (
	slotStyle = lipgloss.NewStyle().
			Width(slotWidth).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240"))

	cursorSlotStyle = slotStyle.
			BorderForeground(lipgloss.Color("62"))

	activeTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15"))

	minimizedTitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("241")).
				Italic(true)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250"))

	kindStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)
)

// slotState is the one-word state shown under a slot's title.
func slotState(w ipc.WindowInfo) string {
	switch {
	case w.Busy:
		return "animating"
	case w.Minimized:
		return "minimized"
	case w.Active:
		return "active"
	default:
		return "open"
	}
}

func renderSlot(w ipc.WindowInfo, cursor bool) string {
	title := truncate(w.Title, slotWidth-2)
	switch {
	case w.Minimized:
		title = minimizedTitleStyle.Render(title)
	case w.Active:
		title = activeTitleStyle.Render(title)
	default:
		title = titleStyle.Render(title)
	}

	dot := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render("○")
	if w.Active {
		dot = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Render("●")
	}
	body := fmt.Sprintf("%s %d\n%s\n%s", dot, w.Slot+1, title,
		kindStyle.Render(w.Kind+" · "+slotState(w)))

	if cursor {
		return cursorSlotStyle.Render(body)
	}
	return slotStyle.Render(body)
}

// renderDock lays the slots out in rows that fit width.
func renderDock(windows []ipc.WindowInfo, cursor, width int) string {
	if len(windows) == 0 {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Padding(1, 2).
			Render("No windows. Press n to open one.")
	}

	perRow := max(width/(slotWidth+4), 1)
	var rows []string
	for start := 0; start < len(windows); start += perRow {
		end := min(start+perRow, len(windows))
		cells := make([]string, 0, end-start)
		for i := start; i < end; i++ {
			cells = append(cells, renderSlot(windows[i], i == cursor))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// renderStatusBar renders the daemon connection status bar.
func renderStatusBar(connected bool, data ipc.WindowsData, width int) string {
	var status string
	if connected {
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Render("●")
		parts := []string{dot + " daemon connected", fmt.Sprintf("windows:%d", len(data.Windows))}
		if data.DockVisible {
			parts = append(parts, "dock:shown")
		} else {
			parts = append(parts, "dock:hidden")
		}
		status = strings.Join(parts, "  ")
	} else {
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render("●")
		status = dot + " daemon not running"
	}

	style := lipgloss.NewStyle().
		Width(width).
		Background(lipgloss.Color("235")).
		Foreground(lipgloss.Color("250")).
		Padding(0, 1)
	return style.Render(status)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}

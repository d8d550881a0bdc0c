package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/floatkit/internal/ipc"
)

const refreshInterval = 500 * time.Millisecond

type (
	tickMsg    struct{}
	windowsMsg struct {
		data *ipc.WindowsData
		err  error
	}
	actionMsg struct {
		what string
		err  error
	}
)

// model is the root bubbletea model for the dock.
type model struct {
	client Client
	help   help.Model

	windows   ipc.WindowsData
	connected bool
	cursor    int
	lastError string

	open *openForm

	width  int
	height int
}

func newModel(client Client) model {
	return model{
		client: client,
		help:   help.New(),
	}
}

func (m model) fetch() tea.Msg {
	data, err := m.client.ListWindows()
	return windowsMsg{data: data, err: err}
}

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(time.Time) tea.Msg { return tickMsg{} })
}

// act runs fn against the daemon and reports the result.
func (m model) act(what string, fn func() error) tea.Cmd {
	return func() tea.Msg { return actionMsg{what: what, err: fn()} }
}

func (m model) selected() (ipc.WindowSelector, bool) {
	if m.cursor < 0 || m.cursor >= len(m.windows.Windows) {
		return ipc.WindowSelector{}, false
	}
	return ipc.SelectID(m.windows.Windows[m.cursor].ID), true
}

// Init implements tea.Model.
func (m model) Init() tea.Cmd {
	return tea.Batch(m.fetch, tick())
}

// Update implements tea.Model.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
	case tickMsg:
		return m, tea.Batch(m.fetch, tick())
	case windowsMsg:
		if msg.err != nil {
			m.connected = false
			m.lastError = msg.err.Error()
			return m, nil
		}
		m.connected = true
		m.windows = *msg.data
		m.cursor = clamp(m.cursor, len(m.windows.Windows))
		return m, nil
	case actionMsg:
		if msg.err != nil {
			m.lastError = msg.what + ": " + msg.err.Error()
		} else {
			m.lastError = ""
		}
		return m, m.fetch
	}

	if m.open != nil {
		return m.updateOpen(msg)
	}
	if km, ok := msg.(tea.KeyMsg); ok {
		return m.updateKeys(km)
	}
	return m, nil
}

func (m model) updateOpen(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			m.open = nil
			return m, nil
		}
	}

	form, cmd := m.open.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.open.form = f
	}
	switch m.open.form.State {
	case huh.StateCompleted:
		req := m.open.payload()
		m.open = nil
		return m, m.act("open", func() error {
			_, err := m.client.OpenWindow(req)
			return err
		})
	case huh.StateAborted:
		m.open = nil
		return m, nil
	}
	return m, cmd
}

func (m model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := len(m.windows.Windows)
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, keys.Left):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, keys.Right):
		if m.cursor < n-1 {
			m.cursor++
		}
	case key.Matches(msg, keys.Refresh):
		return m, m.fetch
	case key.Matches(msg, keys.MinimizeAll):
		return m, m.act("minimize all", m.client.MinimizeAll)
	case key.Matches(msg, keys.RestoreAll):
		return m, m.act("restore all", m.client.RestoreAll)
	case key.Matches(msg, keys.New):
		m.open = newOpenForm(m.width)
		return m, m.open.form.Init()
	case len(msg.Runes) == 1 && msg.Runes[0] >= '1' && msg.Runes[0] <= '9':
		slot := int(msg.Runes[0] - '1')
		if slot >= n {
			return m, nil
		}
		m.cursor = slot
		return m, m.act("select", func() error { return m.client.SelectWindow(ipc.SelectSlot(slot)) })
	}

	sel, ok := m.selected()
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(msg, keys.Activate):
		return m, m.act("select", func() error { return m.client.SelectWindow(sel) })
	case key.Matches(msg, keys.Minimize):
		return m, m.act("minimize", func() error { return m.client.MinimizeWindow(sel) })
	case key.Matches(msg, keys.Restore):
		return m, m.act("restore", func() error { return m.client.RestoreWindow(sel) })
	case key.Matches(msg, keys.Close):
		return m, m.act("close", func() error { return m.client.CloseWindow(sel) })
	}
	return m, nil
}

// View implements tea.Model.
func (m model) View() string {
	if m.width == 0 {
		return ""
	}
	status := renderStatusBar(m.connected, m.windows, m.width)

	var content string
	if m.open != nil {
		content = lipgloss.NewStyle().Padding(1, 2).Render(m.open.form.View())
	} else {
		content = renderDock(m.windows.Windows, m.cursor, m.width)
	}

	parts := []string{status, content}
	if m.lastError != "" {
		parts = append(parts, errStyle.Padding(0, 1).Render(m.lastError))
	}
	parts = append(parts, lipgloss.NewStyle().Padding(0, 1).Render(m.help.View(keys)))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func clamp(cursor, n int) int {
	if n == 0 || cursor < 0 {
		return 0
	}
	if cursor >= n {
		return n - 1
	}
	return cursor
}

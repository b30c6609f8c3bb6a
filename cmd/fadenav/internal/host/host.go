// Package host runs the demo router in a terminal.
package host

import (
	"time"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/go-drift/fadenav/cmd/fadenav/internal/demo"
	"github.com/go-drift/fadenav/pkg/engine"
	"github.com/go-drift/fadenav/pkg/graphics"
	"github.com/go-drift/fadenav/pkg/platform"
	"github.com/go-drift/fadenav/pkg/widgets"
)

// DefaultFrameInterval paces frames at roughly 60 per second.
const DefaultFrameInterval = 16 * time.Millisecond

type keyMap struct {
	Links key.Binding
	Back  key.Binding
	Quit  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Links: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "follow link"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "backspace"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Links, k.Back, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// frameMsg asks the model to run one engine frame.
type frameMsg time.Time

// Model is the bubbletea model hosting one engine runner.
type Model struct {
	runner   *engine.Runner
	app      *demo.App
	keys     keyMap
	help     help.Model
	interval time.Duration

	list   *graphics.DisplayList
	width  int
	height int
	err    error
}

// New creates a model. The runner must already be started so that
// platform.Dispatch reaches it.
func New(app *demo.App, runner *engine.Runner, interval time.Duration) *Model {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	return &Model{
		runner:   runner,
		app:      app,
		keys:     defaultKeyMap(),
		help:     help.New(),
		interval: interval,
	}
}

// Err returns the frame error that stopped the program, if any.
func (m *Model) Err() error {
	return m.err
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (m *Model) Init() tea.Cmd {
	return m.tick()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			platform.BackButton.Press()
		default:
			widgets.DispatchKey(m.runner.Root(), msg.String())
		}
		if m.app.QuitRequested() {
			return m, tea.Quit
		}
		return m, nil

	case frameMsg:
		list, err := m.runner.StepFrame()
		if err != nil {
			m.err = err
			return m, tea.Quit
		}
		m.list = list
		if m.app.QuitRequested() {
			return m, tea.Quit
		}
		return m, m.tick()
	}
	return m, nil
}

// Screen renders the last painted frame with the key help on the last row.
func (m *Model) Screen() string {
	return render(m.list, m.width, m.height, m.help.View(m.keys))
}

func (m *Model) View() tea.View {
	v := tea.NewView(m.Screen())
	v.AltScreen = true
	return v
}

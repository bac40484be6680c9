// Package teahost drives a tempo Loop from a Bubble Tea program. Each tick
// message pumps one loop turn, then the program re-renders.
package teahost

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/phanxgames/tempo"
)

// DefaultInterval is the tick interval, about 60 frames per second.
const DefaultInterval = 16 * time.Millisecond

// FrameMsg is delivered on every tick.
type FrameMsg time.Time

// doTick returns a command that sends a FrameMsg after d.
func doTick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}

// Model pumps the loop from Bubble Tea's update goroutine, which becomes
// the loop goroutine for the lifetime of the program. Other goroutines reach
// the loop through Loop.Post.
type Model struct {
	loop     *tempo.Loop
	view     func(width int) string
	interval time.Duration
	width    int
	frames   uint64
	quitting bool
}

// Option configures a Model.
type Option func(*Model)

// WithInterval sets the tick interval. Non-positive values keep the
// default.
func WithInterval(d time.Duration) Option {
	return func(m *Model) {
		if d > 0 {
			m.interval = d
		}
	}
}

// New creates a model. view renders the screen; it receives the terminal
// width, or 0 before the first resize message.
func New(loop *tempo.Loop, view func(width int) string, opts ...Option) Model {
	m := Model{
		loop:     loop,
		view:     view,
		interval: DefaultInterval,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Frames returns how many loop turns the model has pumped.
func (m Model) Frames() uint64 {
	return m.frames
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return doTick(m.interval)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case FrameMsg:
		m.loop.Frame()
		m.frames++
		if m.loop.IsShutdown() {
			m.quitting = true
			return m, tea.Quit
		}
		return m, doTick(m.interval)

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.loop.Shutdown()
			m.quitting = true
			return m, tea.Quit
		case tea.KeyRunes:
			if msg.String() == "q" {
				m.loop.Shutdown()
				m.quitting = true
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting || m.view == nil {
		return ""
	}
	return m.view(m.width)
}

// Run runs a full-screen program around the loop and blocks until the user
// quits or the loop shuts down.
func Run(loop *tempo.Loop, view func(width int) string, opts ...Option) error {
	p := tea.NewProgram(New(loop, view, opts...), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

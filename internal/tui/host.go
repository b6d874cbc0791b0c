package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/viewbind/internal/sched"
)

type wakeMsg struct{}

// Host runs a Frame as a bubbletea program. Every message is processed as one
// turn of the queue, so bindings see one UI thread and work they defer runs
// right after the message that caused it.
type Host struct {
	Frame  *Frame
	Queue  *sched.Queue
	Styles Styles
	// OnKey receives keys the focused component did not use.
	OnKey func(msg tea.KeyMsg) bool
	Help  string

	width, height int
}

// NewHost creates a host for f.
func NewHost(f *Frame, q *sched.Queue, theme Theme) *Host {
	return &Host{Frame: f, Queue: q, Styles: theme.Styles()}
}

// Run starts the program and blocks until the frame closes.
func (h *Host) Run() error {
	p := tea.NewProgram(h, tea.WithAltScreen())
	h.Queue.OnPost(func() { p.Send(wakeMsg{}) })
	defer h.Queue.OnPost(nil)
	_, err := p.Run()
	h.Frame.Destroy()
	return err
}

func (h *Host) Init() tea.Cmd {
	h.Queue.Turn(func() { h.Frame.FocusNext(false) })
	return nil
}

func (h *Host) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		h.Queue.Turn(func() { h.HandleKey(msg) })
	case wakeMsg:
		h.Queue.Drain()
	case tea.WindowSizeMsg:
		h.width, h.height = msg.Width, msg.Height
	}
	if h.Frame.Closed() {
		return h, tea.Quit
	}
	return h, nil
}

// HandleKey routes one key press: tab moves the focus, ctrl+c and ctrl+q ask
// the frame to close, everything else goes to the focused component and then
// to OnKey.
func (h *Host) HandleKey(msg tea.KeyMsg) {
	switch msg.String() {
	case "ctrl+c", "ctrl+q":
		h.Frame.Close()
		return
	case "tab":
		h.Frame.FocusNext(false)
		return
	case "shift+tab":
		h.Frame.FocusNext(true)
		return
	}
	if c := h.Frame.Focused(); c != nil && c.HandleKey(msg) {
		return
	}
	if h.OnKey != nil {
		h.OnKey(msg)
	}
}

func (h *Host) View() string {
	view := h.Frame.View(h.Styles)
	if h.Help != "" {
		view = lipgloss.JoinVertical(lipgloss.Left, view, "", h.Styles.Status.Render(h.Help))
	}
	if h.width > 0 {
		view = lipgloss.NewStyle().MaxWidth(h.width).Render(view)
	}
	return view
}

package ui

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"cpmonk/pkg/buffer"
	"cpmonk/pkg/chat"
	"cpmonk/pkg/render"
	"cpmonk/pkg/ui/components/statusbar"
	"cpmonk/pkg/ui/components/viewport"

	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
)

const maxInputChars = 4000

// Options configures the chat view.
type Options struct {
	Service    string    // Name used to label replies
	Endpoint   string    // Shown in the status bar
	Links      bool      // Emit OSC 8 hyperlinks in replies
	RecallSize int       // Inputs kept for ctrl+p/ctrl+n
	Clipboard  io.Writer // OSC 52 destination; defaults to stdout
}

// Model represents the Bubble Tea application state
type Model struct {
	ctx     context.Context
	handler chat.Handler
	history *render.History

	// UI Components
	transcript viewport.ChatViewport
	input      textarea.Model
	statusBar  *statusbar.StatusBarView
	layout     *LayoutManager

	// Data
	recall    *buffer.InputRing
	draft     string // input saved while recalling
	clipboard io.Writer

	// UI state
	pending int
	width   int
	height  int
	ready   bool
}

// NewModel creates the chat view. The handler submits and resets; the
// history is the container the handler's renderer appends to.
func NewModel(ctx context.Context, h chat.Handler, hist *render.History, opts Options) Model {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.Clipboard == nil {
		opts.Clipboard = os.Stdout
	}

	input := textarea.New()
	input.Placeholder = "Ask the Monk..."
	input.ShowLineNumbers = false
	input.CharLimit = maxInputChars
	input.SetHeight(inputHeight)
	input.Focus()

	sb := statusbar.NewStatusBarView()
	sb.SetEndpoint(opts.Endpoint)

	m := Model{
		ctx:        ctx,
		handler:    h,
		history:    hist,
		transcript: viewport.NewChatViewport(opts.Service, opts.Links),
		input:      input,
		statusBar:  sb,
		layout:     NewLayoutManager(),
		recall:     buffer.New(opts.RecallSize),
		clipboard:  opts.Clipboard,
	}
	m.transcript.SetNodes(hist.Nodes())
	return m
}

// Init initializes the model (Bubble Tea lifecycle method)
func (m Model) Init() tea.Cmd {
	return waitForChange(m.ctx, m.history)
}

// Update handles messages and updates model state (Bubble Tea lifecycle method)
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		m.layout.SetSize(msg.Width, msg.Height)
		m.transcript.SetSize(msg.Width, m.layout.TranscriptHeight())
		m.input.SetWidth(msg.Width)
		m.statusBar.SetWidth(msg.Width)
		return m, nil

	case tea.KeyPressMsg:
		return m.handleKey(msg)

	case historyChangedMsg:
		m.transcript.SetNodes(m.history.Nodes())
		return m, waitForChange(m.ctx, m.history)

	case submitDoneMsg, resetDoneMsg:
		m.pending--
		if m.pending < 0 {
			m.pending = 0
		}
		m.statusBar.SetPending(m.pending)
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			slog.Error("clipboard_copy_failed", "error", msg.err)
			m.statusBar.SetMessage("Copy failed")
		} else {
			m.statusBar.SetMessage("Copied last reply")
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	keyStr := msg.String()
	if keyStr != "ctrl+y" {
		m.statusBar.SetMessage("")
	}

	switch keyStr {
	case "esc", "ctrl+c":
		return m, tea.Quit

	case "enter":
		text := strings.TrimSpace(m.input.Value())
		m.input.Reset()
		m.draft = ""
		if text == "" {
			m.recall.Push("")
			return m, nil
		}
		m.recall.Push(text)
		m.pending++
		m.statusBar.SetPending(m.pending)
		slog.Debug("ui_submit", "length", len(text), "pending", m.pending)
		return m, submitCmd(m.ctx, m.handler, text)

	case "ctrl+l":
		m.pending++
		m.statusBar.SetPending(m.pending)
		slog.Debug("ui_reset")
		return m, resetCmd(m.ctx, m.handler)

	case "ctrl+p":
		if !m.recall.Recalling() {
			m.draft = m.input.Value()
		}
		if text, ok := m.recall.Prev(); ok {
			m.input.SetValue(text)
		}
		return m, nil

	case "ctrl+n":
		if text, ok := m.recall.Next(); ok {
			m.input.SetValue(text)
		} else {
			m.input.SetValue(m.draft)
		}
		return m, nil

	case "pgup":
		m.transcript.PageUp()
		return m, nil

	case "pgdown":
		m.transcript.PageDown()
		return m, nil

	case "ctrl+y":
		node, ok := m.history.Last(chat.RoleRecipient)
		if !ok {
			m.statusBar.SetMessage("Nothing to copy yet")
			return m, nil
		}
		return m, copyCmd(m.clipboard, node.Text)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// Render returns the full screen as a string.
func (m Model) Render() string {
	if !m.ready {
		return "Initializing..."
	}
	return m.layout.RenderLayout(m.transcript.View(), m.input.View(), m.statusBar.Render())
}

// View renders the UI (Bubble Tea lifecycle method)
func (m Model) View() tea.View {
	v := tea.NewView(m.Render())
	v.AltScreen = true
	return v
}

// Pending returns the number of submits and resets still running.
func (m Model) Pending() int {
	return m.pending
}

// Run starts the interactive chat view and blocks until the user quits.
func Run(ctx context.Context, h chat.Handler, hist *render.History, opts Options) error {
	p := tea.NewProgram(NewModel(ctx, h, hist, opts), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

package ui

import (
	"context"
	"fmt"
	"io"

	"cpmonk/pkg/chat"
	"cpmonk/pkg/render"

	tea "charm.land/bubbletea/v2"
	osc52 "github.com/aymanbagabas/go-osc52/v2"
)

// historyChangedMsg is sent when the rendered history gains or loses nodes.
type historyChangedMsg struct{}

// submitDoneMsg is sent once a submit has rendered its outcome.
type submitDoneMsg struct{}

// resetDoneMsg is sent once a reset has rendered its notice.
type resetDoneMsg struct{}

// copiedMsg reports that a reply was written to the clipboard.
type copiedMsg struct {
	err error
}

// waitForChange blocks until the history changes. Update re-schedules it
// after every change so the transcript follows the renderer.
func waitForChange(ctx context.Context, h *render.History) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-h.Changes():
			return historyChangedMsg{}
		case <-ctx.Done():
			return nil
		}
	}
}

// submitCmd runs one submit on its own goroutine; overlapping submits are
// allowed and each renders its own outcome.
func submitCmd(ctx context.Context, h chat.Handler, text string) tea.Cmd {
	return func() tea.Msg {
		h.OnSubmit(ctx, text)
		return submitDoneMsg{}
	}
}

func resetCmd(ctx context.Context, h chat.Handler) tea.Cmd {
	return func() tea.Msg {
		h.OnReset(ctx)
		return resetDoneMsg{}
	}
}

// copyCmd writes text to the terminal clipboard via OSC 52.
func copyCmd(w io.Writer, text string) tea.Cmd {
	return func() tea.Msg {
		_, err := fmt.Fprint(w, osc52.New(text))
		return copiedMsg{err: err}
	}
}

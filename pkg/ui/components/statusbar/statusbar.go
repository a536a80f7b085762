package statusbar

import (
	"fmt"
	"strings"

	"cpmonk/pkg/ui/styles"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

const (
	minGap    = 2
	leftLabel = "[cpmonk]"
	keysHint  = "enter send | ctrl+l reset | esc quit"
)

// StatusBarView renders the one-line bar under the chat input.
type StatusBarView struct {
	endpoint string
	message  string
	pending  int
	width    int
	style    lipgloss.Style
}

// NewStatusBarView creates a new status bar view
func NewStatusBarView() *StatusBarView {
	return &StatusBarView{
		width: 80,
		style: styles.StatusBarStyle,
	}
}

// SetEndpoint sets the chat endpoint shown on the left.
func (s *StatusBarView) SetEndpoint(endpoint string) {
	s.endpoint = strings.TrimSpace(endpoint)
}

// SetMessage sets a temporary message that replaces the endpoint.
func (s *StatusBarView) SetMessage(msg string) {
	s.message = msg
}

// SetPending sets the number of requests awaiting a reply.
func (s *StatusBarView) SetPending(n int) {
	if n < 0 {
		n = 0
	}
	s.pending = n
}

// SetWidth updates the width for rendering
func (s *StatusBarView) SetWidth(width int) {
	s.width = width
}

// Render returns the styled status bar string padded to the full width.
func (s *StatusBarView) Render() string {
	innerWidth := s.width - s.style.GetHorizontalFrameSize()
	if innerWidth < 1 {
		innerWidth = 1
	}

	right := keysHint
	if s.pending > 0 {
		right = fmt.Sprintf("waiting on %d | %s", s.pending, keysHint)
	}
	rightWidth := ansi.StringWidth(right)

	var content string
	if rightWidth >= innerWidth {
		content = ansi.Truncate(right, innerWidth, "")
	} else {
		leftText := truncateEndpoint(s.endpoint, innerWidth-rightWidth-minGap-ansi.StringWidth(leftLabel)-1)
		if s.message != "" {
			leftText = ansi.Truncate(s.message, innerWidth-rightWidth-minGap-ansi.StringWidth(leftLabel)-1, "...")
		}

		left := leftLabel
		if leftText != "" {
			left += " " + leftText
		}
		left = ansi.Truncate(left, innerWidth-rightWidth-minGap, "")

		gap := innerWidth - ansi.StringWidth(left) - rightWidth
		if gap < 0 {
			gap = 0
		}
		content = left + strings.Repeat(" ", gap) + right
	}

	if w := ansi.StringWidth(content); w < innerWidth {
		content += strings.Repeat(" ", innerWidth-w)
	}

	return s.style.Render(content)
}

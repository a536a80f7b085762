package ui

import (
	"strings"

	"cpmonk/pkg/ui/styles"

	"charm.land/lipgloss/v2"
)

const (
	inputHeight     = 3
	separatorHeight = 1
	statusBarHeight = 1
)

// LayoutManager splits the screen between transcript, input and status bar
type LayoutManager struct {
	width  int
	height int
}

// NewLayoutManager creates a new layout manager
func NewLayoutManager() *LayoutManager {
	return &LayoutManager{
		width:  80,
		height: 24,
	}
}

// SetSize updates the layout dimensions
func (lm *LayoutManager) SetSize(width, height int) {
	lm.width = width
	lm.height = height
}

// TranscriptHeight returns the rows left for the transcript, at least one.
func (lm *LayoutManager) TranscriptHeight() int {
	h := lm.height - inputHeight - separatorHeight - statusBarHeight
	if h < 1 {
		return 1
	}
	return h
}

// RenderLayout stacks the transcript, a separator rule, the input and the status bar
func (lm *LayoutManager) RenderLayout(transcript, input, statusBar string) string {
	rule := styles.SeparatorStyle.Render(strings.Repeat("─", max(lm.width, 1)))
	return lipgloss.JoinVertical(
		lipgloss.Left,
		transcript,
		rule,
		input,
		statusBar,
	)
}

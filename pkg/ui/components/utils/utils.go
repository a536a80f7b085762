package utils

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

// TruncateToWidth truncates plain text to width with ellipsis
func TruncateToWidth(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(text) <= width {
		return text
	}
	if width <= 3 {
		return TrimToWidth(text, width)
	}
	return TrimToWidth(text, width-3) + "..."
}

// TrimToWidth trims plain text to width without ellipsis
func TrimToWidth(text string, width int) string {
	if width <= 0 {
		return ""
	}
	var sb strings.Builder
	currentWidth := 0
	for _, r := range text {
		runeWidth := runewidth.RuneWidth(r)
		if currentWidth+runeWidth > width {
			break
		}
		sb.WriteRune(r)
		currentWidth += runeWidth
	}
	return sb.String()
}

// WrapIndented wraps text to width minus indent and indents every line
// after the first by indent columns, leaving room for a label on the first.
// Escape sequences, hyperlinks included, do not count towards the width.
func WrapIndented(text string, width, indent int) []string {
	if width-indent < 1 {
		return strings.Split(text, "\n")
	}

	var out []string
	for _, para := range strings.Split(text, "\n") {
		wrapped := ansi.Wrap(para, width-indent, "")
		out = append(out, strings.Split(wrapped, "\n")...)
	}

	pad := strings.Repeat(" ", indent)
	for i := 1; i < len(out); i++ {
		out[i] = pad + out[i]
	}
	return out
}

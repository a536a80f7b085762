// Package styles provides the shared palette and styles for the cpmonk UI.
package styles

import (
	"charm.land/lipgloss/v2"
)

// Color palette - ANSI 256 colors used throughout the application
var (
	ColorText  = lipgloss.Color("252") // Primary text
	ColorError = lipgloss.Color("196")

	// Message colors
	ColorSender    = lipgloss.Color("39")  // Cyan for the user's own messages
	ColorRecipient = lipgloss.Color("213") // Pink for the Monk

	ColorBorder = lipgloss.Color("62")
)

// Transcript styles
var (
	// SenderLabelStyle prefixes the user's messages
	SenderLabelStyle = lipgloss.NewStyle().
				Foreground(ColorSender).
				Bold(true)

	// RecipientLabelStyle prefixes replies
	RecipientLabelStyle = lipgloss.NewStyle().
				Foreground(ColorRecipient).
				Bold(true)

	// ErrorLabelStyle prefixes error and quota notices
	ErrorLabelStyle = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)

	// TextStyle for message bodies
	TextStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	// SeparatorStyle draws the rule between the transcript and the input
	SeparatorStyle = lipgloss.NewStyle().
			Foreground(ColorBorder)
)

// Status bar styles
var (
	// StatusBarStyle is the default status bar style
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#D6336C")).
			Padding(0, 1).
			Bold(true)
)

// Welcome message styles
var (
	// WelcomeBorderStyle for welcome box borders
	WelcomeBorderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("99"))

	// WelcomeTitleStyle for welcome message title
	WelcomeTitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("219")).
				Bold(true)

	// WelcomeKeyStyle for keyboard shortcut keys
	WelcomeKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("222")).
			Bold(true)

	// WelcomeVersionStyle for version info (dimmed)
	WelcomeVersionStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("244"))
)

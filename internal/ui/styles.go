package ui

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	ColorPrimary   = lipgloss.Color("205") // Pink
	ColorSecondary = lipgloss.Color("241") // Gray
	ColorSuccess   = lipgloss.Color("42")  // Green
	ColorError     = lipgloss.Color("160") // Red
	ColorWarning   = lipgloss.Color("214") // Orange/Yellow
	ColorText      = lipgloss.Color("252") // White/Gray
	ColorCyan      = lipgloss.Color("87")

	// Base Styles
	StyleTitle   = lipgloss.NewStyle().Foreground(ColorText).Bold(true)
	StyleSubtle  = lipgloss.NewStyle().Foreground(ColorSecondary)
	StylePrimary = lipgloss.NewStyle().Foreground(ColorPrimary)
	StyleSuccess = lipgloss.NewStyle().Foreground(ColorSuccess)
	StyleError   = lipgloss.NewStyle().Foreground(ColorError)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorWarning)
	StyleText    = lipgloss.NewStyle().Foreground(ColorText)

	StyleHeader = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true).
			Padding(0, 1)

	// Board rows
	StyleCursor    = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	StyleDone      = lipgloss.NewStyle().Foreground(ColorSecondary).Strikethrough(true)
	StyleGrabbed   = lipgloss.NewStyle().Foreground(ColorWarning).Bold(true)
	StyleDropSlot  = lipgloss.NewStyle().Foreground(ColorWarning)
	StyleHelp      = lipgloss.NewStyle().Foreground(ColorSecondary)
	StyleInputMode = lipgloss.NewStyle().Foreground(ColorCyan).Bold(true)
)

// Icon returns a styled icon string
func Icon(icon string, style lipgloss.Style) string {
	return style.Render(icon)
}

// Checkbox renders the completion marker for a task.
func Checkbox(completed bool) string {
	if completed {
		return "[x]"
	}
	return "[ ]"
}

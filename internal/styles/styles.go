// Package styles provides Lip Gloss styles for the card.
package styles

import "github.com/charmbracelet/lipgloss"

// Terminal-adaptive colors that work in both light and dark terminals.
var (
	// Subtle is a muted color for secondary text
	Subtle = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#999999"}

	// Highlight is the accent color for selected items
	Highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}

	ErrorColor   = lipgloss.AdaptiveColor{Light: "#FF0000", Dark: "#FF6666"}
	SuccessColor = lipgloss.AdaptiveColor{Light: "#00AA00", Dark: "#66FF66"}
	WarningColor = lipgloss.AdaptiveColor{Light: "#FFAA00", Dark: "#FFCC66"}
)

// Base styles
var (
	// App is the base style for the entire card
	App = lipgloss.NewStyle().
		Padding(1, 2)

	// Title is the style for the card header
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Highlight)

	// Spinner is for the loading indicator
	Spinner = lipgloss.NewStyle().
		Foreground(Highlight)

	// StatusLine is for the footer hint line
	StatusLine = lipgloss.NewStyle().
			Foreground(Subtle)

	// ErrorBanner is for the top-level command error line
	ErrorBanner = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	// ErrorBox is for the full error view
	ErrorBox = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ErrorColor).
			Padding(0, 1)

	// EmptyHint is for the empty list message
	EmptyHint = lipgloss.NewStyle().
			Foreground(Subtle).
			Italic(true)
)

// Reminder row styles
var (
	// Item is the base style for a reminder row
	Item = lipgloss.NewStyle().
		PaddingLeft(2)

	// ItemSelected is the style for the row under the cursor
	ItemSelected = lipgloss.NewStyle().
			PaddingLeft(1).
			BorderLeft(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderLeftForeground(Highlight).
			Bold(true)

	// Due is for due date display
	Due = lipgloss.NewStyle().
		Foreground(Subtle).
		PaddingLeft(1)

	// DueOverdue is for overdue reminders
	DueOverdue = lipgloss.NewStyle().
			Foreground(ErrorColor).
			PaddingLeft(1)

	// DueToday is for reminders due today
	DueToday = lipgloss.NewStyle().
			Foreground(SuccessColor).
			PaddingLeft(1)
)

// Dialog styles
var (
	// Dialog is the edit overlay box
	Dialog = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Highlight).
		Padding(1, 2)

	// DialogTitle is the overlay heading
	DialogTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Highlight)

	// FieldLabel is for dialog field labels
	FieldLabel = lipgloss.NewStyle().
			Foreground(Subtle)
)

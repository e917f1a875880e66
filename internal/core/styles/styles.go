// Package styles provides shared lipgloss styles for console output.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	Prompt  = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	Title   = lipgloss.NewStyle().Bold(true)
	ID      = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	Tag     = lipgloss.NewStyle().Foreground(lipgloss.Color("13"))
	Muted   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	Success = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	Warning = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	Error   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))

	// DoneTitle renders titles of completed tasks.
	DoneTitle = lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("8"))
)

// Markers for task completion state.
const (
	MarkDone    = "[x]"
	MarkPending = "[ ]"
)

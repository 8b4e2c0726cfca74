package main

import "github.com/charmbracelet/lipgloss"

// Style definitions.
var (
	// TitleStyle for headers.
	TitleStyle = lipgloss.NewStyle().Bold(true)

	// HelpStyle for help text.
	HelpStyle = lipgloss.NewStyle().Faint(true)

	// ErrorStyle for error and rejection messages.
	ErrorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))

	// HintStyle for inline guidance such as the current market price.
	HintStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))

	// LabelStyle for form field labels.
	LabelStyle = lipgloss.NewStyle().Bold(true)
)

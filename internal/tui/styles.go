// Package tui holds the look shared by the terminal user interfaces.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/msto63/frege/internal/render"
)

// Colors
var (
	colorPrimary   = render.ColorPrimary
	colorSecondary = render.ColorSuccess
	colorError     = render.ColorError
	colorMuted     = render.ColorMuted
	colorFg        = lipgloss.Color("#F9FAFB")
	colorBar       = lipgloss.Color("#374151")
)

// Styles
var (
	// Title styles
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Italic(true)

	// Panel styles
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)

	FocusedBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorPrimary).
			Padding(0, 1)

	ErrorMessageStyle = lipgloss.NewStyle().
				Foreground(colorError)

	// Status styles
	StatusBarStyle = lipgloss.NewStyle().
			Background(colorBar).
			Foreground(colorFg).
			Padding(0, 1)

	StatusOKStyle = lipgloss.NewStyle().
			Foreground(colorSecondary).
			Bold(true)

	StatusErrorStyle = lipgloss.NewStyle().
				Foreground(colorError).
				Bold(true)

	// Tab styles
	TabStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(colorMuted)

	ActiveTabStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(colorPrimary).
			Bold(true).
			Underline(true)

	// Help styles
	HelpStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)
)

// RenderTitle renders a panel title
func RenderTitle(title string) string {
	return TitleStyle.Render(title)
}

// RenderError renders an error line
func RenderError(err string) string {
	return ErrorMessageStyle.Render("error: " + err)
}

// RenderKeyHint renders a keyboard shortcut hint
func RenderKeyHint(key, description string) string {
	return HelpKeyStyle.Render(key) + " " + HelpStyle.Render(description)
}

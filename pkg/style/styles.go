// Package style holds the lipgloss styles used for terminal output.
package style

import (
	"github.com/charmbracelet/lipgloss"
)

// Base styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(HeadingColor).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	PathStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor).
			Italic(true)

	CodeStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)
)

// Policy styles
var (
	InlineStyle = lipgloss.NewStyle().
			Foreground(InlineColor).
			Bold(true)

	ExternalStyle = lipgloss.NewStyle().
			Foreground(ExternalColor).
			Bold(true)
)

// Indicators
var (
	SuccessIndicator = SuccessStyle.Render("✓")
	ErrorIndicator   = ErrorStyle.Render("✗")
	WarningIndicator = WarningStyle.Render("!")
	PendingIndicator = MutedStyle.Render("○")
)

// ForPolicy returns the style for a bundling policy name.
func ForPolicy(policy string) lipgloss.Style {
	switch policy {
	case "inline":
		return InlineStyle
	case "external":
		return ExternalStyle
	}
	return MutedStyle
}

// ForLevel returns the style for a strictness level name.
func ForLevel(level string) lipgloss.Style {
	switch level {
	case "allow":
		return SuccessStyle
	case "warn":
		return WarningStyle
	case "error":
		return ErrorStyle
	}
	return MutedStyle
}

// Indent pads s by two spaces per level.
func Indent(s string, level int) string {
	return lipgloss.NewStyle().PaddingLeft(level * 2).Render(s)
}

// Bold renders s in bold.
func Bold(s string) string {
	return lipgloss.NewStyle().Bold(true).Render(s)
}

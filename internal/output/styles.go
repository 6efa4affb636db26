package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette. Named constants for every ANSI 256 color used by the CLI;
// never use inline lipgloss.Color literals elsewhere.
var (
	// ColorCyan is used for identifiable nouns: template and module paths.
	ColorCyan = lipgloss.Color("14")

	// colorGreen is used for the "converted" status.
	colorGreen = lipgloss.Color("82")

	// ColorYellow is used for the "updated" status of referencing files.
	ColorYellow = lipgloss.Color("220")

	// colorRed is used for the "deleted" status.
	colorRed = lipgloss.Color("196")

	// colorBoldRed is used for the "failed" status (matches ERROR level).
	colorBoldRed = lipgloss.Color("204")

	// ColorGreenCheck is used for the completion checkmark.
	ColorGreenCheck = lipgloss.Color("10")

	// ColorDimGray is used for borders and other structural chrome.
	ColorDimGray = lipgloss.Color("240")
)

// Semantic styles.
var (
	// StyleNoun styles identifiable nouns (paths).
	StyleNoun = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleAction styles action verbs.
	StyleAction = lipgloss.NewStyle().Bold(true)

	// StyleDim styles structural chrome (prefixes, separators).
	StyleDim = lipgloss.NewStyle().Faint(true)

	// StyleSummary styles completion and summary lines.
	StyleSummary = lipgloss.NewStyle().Bold(true)
)

// File status constants.
const (
	StatusConverted = "converted"
	StatusUpdated   = "updated"
	StatusDeleted   = "deleted"
	StatusFailed    = "failed"
)

// statusStyle returns the lipgloss style for a file status.
// Unknown statuses return an unstyled default.
func statusStyle(status string) lipgloss.Style {
	switch status {
	case StatusConverted:
		return lipgloss.NewStyle().Foreground(colorGreen)
	case StatusUpdated:
		return lipgloss.NewStyle().Foreground(ColorYellow)
	case StatusDeleted:
		return lipgloss.NewStyle().Foreground(colorRed)
	case StatusFailed:
		return lipgloss.NewStyle().Bold(true).Foreground(colorBoldRed)
	default:
		return lipgloss.NewStyle()
	}
}

// minPathColumnWidth keeps status words aligned across lines.
const minPathColumnWidth = 48

// FormatFileLine renders a path with a right-aligned, color-coded status.
//
// Format: f:<path>  <status>
func FormatFileLine(path, status string) string {
	padding := minPathColumnWidth - len(path)
	if padding < 2 {
		padding = 2
	}

	return StyleDim.Render("f:") +
		StyleNoun.Render(path) +
		strings.Repeat(" ", padding) +
		statusStyle(status).Render(status)
}

// FormatConversion renders "<template> -> <module>" for progress output.
func FormatConversion(template, module string) string {
	return fmt.Sprintf("%s %s %s",
		StyleNoun.Render(template),
		StyleDim.Render("->"),
		StyleNoun.Render(module))
}

// FormatCheckmark renders a green checkmark with a message for stdout output.
func FormatCheckmark(msg string) string {
	check := lipgloss.NewStyle().Foreground(ColorGreenCheck).Render("✔")
	return check + " " + msg
}

// FormatCross renders a red cross with a message for stdout output.
func FormatCross(msg string) string {
	cross := lipgloss.NewStyle().Foreground(colorBoldRed).Render("✘")
	return cross + " " + msg
}

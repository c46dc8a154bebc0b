package ui

import "github.com/charmbracelet/lipgloss"

// Color palette. Single amber accent with muted grays so the marked
// snippet terms stay the loudest thing on screen.
const (
	ColorAmber    = "214" // Primary accent - headers, active elements
	ColorAmberDim = "172" // Dimmed amber for secondary accents
	ColorWhite    = "255" // Important text
	ColorGray     = "245" // Secondary text, labels
	ColorDarkGray = "238" // Borders, separators
	ColorRed      = "196" // Errors
	ColorYellow   = "220" // Warnings
	ColorMark     = "220" // Matched terms inside snippets
)

// Styles holds all terminal styles for the browse view.
type Styles struct {
	Header   lipgloss.Style
	Label    lipgloss.Style
	Dim      lipgloss.Style
	Error    lipgloss.Style
	Active   lipgloss.Style
	Mark     lipgloss.Style
	Badge    lipgloss.Style
	Selected lipgloss.Style
	Border   lipgloss.Style
	Splash   lipgloss.Style
}

// DefaultStyles returns the styled component set.
func DefaultStyles() Styles {
	return Styles{
		Header:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorAmber)),
		Label:    lipgloss.NewStyle().Foreground(lipgloss.Color(ColorGray)),
		Dim:      lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDarkGray)),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color(ColorRed)),
		Active:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorAmber)),
		Mark:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorMark)),
		Badge:    lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAmberDim)),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorWhite)),
		Border:   lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDarkGray)),
		Splash:   lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAmberDim)),
	}
}

// NoColorStyles returns unstyled components for plain terminals.
func NoColorStyles() Styles {
	return Styles{
		Header:   lipgloss.NewStyle(),
		Label:    lipgloss.NewStyle(),
		Dim:      lipgloss.NewStyle(),
		Error:    lipgloss.NewStyle(),
		Active:   lipgloss.NewStyle(),
		Mark:     lipgloss.NewStyle().Bold(true),
		Badge:    lipgloss.NewStyle(),
		Selected: lipgloss.NewStyle().Bold(true),
		Border:   lipgloss.NewStyle(),
		Splash:   lipgloss.NewStyle(),
	}
}

// GetStyles returns the appropriate styles based on color preference.
func GetStyles(noColor bool) Styles {
	if noColor {
		return NoColorStyles()
	}
	return DefaultStyles()
}

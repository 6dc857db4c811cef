// Package tui holds the terminal styles and table rendering used by the
// inspection subcommands.
package tui

import "github.com/charmbracelet/lipgloss"

// Color palette matching the fatih/color usage in the command layer
var (
	// ColorGreen for spine pages and success indicators
	ColorGreen = lipgloss.AdaptiveColor{Light: "#00AF00", Dark: "#00D700"}

	// ColorCyan for network sources
	ColorCyan = lipgloss.AdaptiveColor{Light: "#00AFAF", Dark: "#00D7D7"}

	// ColorWhite for primary text
	ColorWhite = lipgloss.AdaptiveColor{Light: "#262626", Dark: "#FFFFFF"}

	// ColorGray for secondary text and borders
	ColorGray = lipgloss.AdaptiveColor{Light: "#767676", Dark: "#808080"}

	// ColorYellow for generated pages
	ColorYellow = lipgloss.AdaptiveColor{Light: "#D7AF00", Dark: "#FFD700"}
)

// Reusable styles
var (
	StyleNormal = lipgloss.NewStyle().Foreground(ColorWhite)

	// StyleSpine marks entries that are part of the reading order
	StyleSpine = lipgloss.NewStyle().Foreground(ColorGreen)

	// StyleNetwork is for entries fetched at pack time
	StyleNetwork = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleGenerated is for pages synthesised from inline content
	StyleGenerated = lipgloss.NewStyle().Foreground(ColorYellow)

	StyleHelp = lipgloss.NewStyle().Foreground(ColorGray)

	StyleHeader = lipgloss.NewStyle().
			Foreground(ColorWhite).
			Bold(true)

	StyleBorder = lipgloss.NewStyle().
			Foreground(ColorGray).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorGray)
)

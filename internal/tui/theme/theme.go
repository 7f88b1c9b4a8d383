// Package theme centralizes the demo's styling tokens. Colors are resolved
// once at startup from the terminal's background probe.
package theme

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var darkBackground = termenv.HasDarkBackground()

// pick resolves a token to the variant matching the detected background.
func pick(light, dark string) lipgloss.Color {
	if darkBackground {
		return lipgloss.Color(dark)
	}
	return lipgloss.Color(light)
}

// Design tokens.
var (
	Accent    = pick("#2563EB", "#3B82F6")
	AccentAlt = pick("#15803D", "#22C55E")

	TextPrimary = pick("#0F172A", "#F8FAFC")
	TextMuted   = pick("#64748B", "#94A3B8")
)

var (
	// Title styles the demo header.
	Title = lipgloss.NewStyle().Bold(true).Foreground(Accent)

	// Status styles the footer line.
	Status = lipgloss.NewStyle().Foreground(TextMuted)

	// Item styles an unselected grid cell.
	Item = lipgloss.NewStyle().Foreground(TextPrimary)

	// ItemSelected styles a cell currently inside the selection box.
	ItemSelected = lipgloss.NewStyle().Bold(true).Foreground(AccentAlt).Reverse(true)

	// SelectionBox styles the drawn box outline.
	SelectionBox = lipgloss.NewStyle().Foreground(Accent)
)

package display

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Static styles for content elements
var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	HandStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("14"))

	WinStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	TieStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	CategoryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12"))

	PercentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	RedCardStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	BlackCardStyle = lipgloss.NewStyle().
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))
)

// DisableColor renders every style as plain text.
func DisableColor() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

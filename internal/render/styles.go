package render

import "github.com/charmbracelet/lipgloss"

// Palette shared by every view.
var (
	Accent = lipgloss.Color("205")
	Muted  = lipgloss.Color("241")

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Accent)

	SelectedStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("57")).
			Foreground(lipgloss.Color("255"))

	MutedStyle = lipgloss.NewStyle().Foreground(Muted)

	SavedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("204"))

	ErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)

	activeCardStyle = cardStyle.BorderForeground(Accent)

	removingCardStyle = cardStyle.
				BorderForeground(lipgloss.Color("238")).
				Foreground(lipgloss.Color("238"))

	detailStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Accent).
			Padding(1, 2)

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")).
			Bold(true)
)

// scoreColor follows the usual critic-score bands.
func scoreColor(score int) lipgloss.Color {
	switch {
	case score >= 75:
		return lipgloss.Color("2")
	case score >= 50:
		return lipgloss.Color("3")
	default:
		return lipgloss.Color("1")
	}
}

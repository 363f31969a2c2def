package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/ryanm101/biblioteca/internal/render"
)

func (m Model) viewHelp() string {
	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("212")).
		Width(12)

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	sectionStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("243")).
		Bold(true).
		MarginTop(1)

	entry := func(k, d string) string {
		return keyStyle.Render("  "+k) + descStyle.Render(d)
	}

	lines := []string{
		render.TitleStyle.Render("⌨️  Keyboard Shortcuts"),
		sectionStyle.Render("Navigation"),
		entry("Tab/1-3", "Switch tab"),
		entry("h/j/k/l", "Move selection"),
		entry("Enter", "Open game details"),
		entry("Esc", "Close details or search"),

		sectionStyle.Render("Home"),
		entry("k (top)", "Focus the carousel (pauses it)"),
		entry("h/l", "Previous/next slide"),
		entry("1-9", "Jump to slide (carousel focused)"),

		sectionStyle.Render("Library"),
		entry("/", "Search"),
		entry("g/G", "Next/previous genre"),
		entry("m", "Load more"),

		sectionStyle.Render("Actions"),
		entry("w", "Toggle wishlist"),
		entry("b", "Buy (in details)"),
		entry("n", "Newsletter"),

		sectionStyle.Render("General"),
		entry("?", "Toggle this help"),
		entry("q", "Quit"),
		"",
		render.MutedStyle.Render("Press any key to close"),
	}

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(render.Accent).
		Padding(1, 3)

	return lipgloss.Place(m.width, m.height,
		lipgloss.Center, lipgloss.Center,
		boxStyle.Render(strings.Join(lines, "\n")))
}

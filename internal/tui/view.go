package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/ryanm101/biblioteca/internal/browse"
	"github.com/ryanm101/biblioteca/internal/render"
)

const cardWidth = 26

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	if m.showHelp {
		return m.viewHelp()
	}

	if m.detail != nil {
		return m.viewDetail()
	}

	var body string
	switch m.tab {
	case tabHome:
		body = m.viewHome()
	case tabLibrary:
		body = m.viewLibrary()
	case tabWishlist:
		body = m.viewWishlist()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		render.TitleStyle.Render("🎮 La Biblioteca Gamer"),
		m.viewTabs(),
		"",
		body,
		m.viewFooter(),
	)
}

func (m Model) viewTabs() string {
	tabStyle := lipgloss.NewStyle().Padding(0, 1)
	activeTabStyle := tabStyle.Background(render.Accent).Foreground(lipgloss.Color("0"))

	parts := make([]string, 0, len(tabNames))
	for i, name := range tabNames {
		label := fmt.Sprintf("%d %s", i+1, name)
		if tab(i) == tabWishlist {
			label = fmt.Sprintf("%s (%d)", label, len(m.session.saved))
		}
		style := tabStyle
		if tab(i) == m.tab {
			style = activeTabStyle
		}
		parts = append(parts, style.Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m Model) viewFooter() string {
	helpStyle := lipgloss.NewStyle().
		Foreground(render.Muted).
		MarginTop(1)

	var help string
	switch m.tab {
	case tabHome:
		help = "j/k: rows | h/l: browse | Enter: details | w: wishlist | n: newsletter | ?: help | q: quit"
	case tabLibrary:
		help = "/: search | g/G: genre | m: more | Enter: details | w: wishlist | ?: help | q: quit"
	case tabWishlist:
		help = "j/k: nav | Enter: details | w: remove | ?: help | q: quit"
	}

	statusStyle := lipgloss.NewStyle().
		Background(lipgloss.Color("235")).
		Foreground(render.Muted).
		Width(m.width)
	status := " Newsletter: " + m.opts.Links.Newsletter()
	if m.status != "" {
		status = " " + m.status
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		helpStyle.Render(help),
		statusStyle.Render(status),
	)
}

func (m Model) viewHome() string {
	var b strings.Builder
	b.WriteString(m.viewHero())
	b.WriteString("\n")

	if m.rowsLoading {
		b.WriteString(m.spinner.View() + " Loading…\n")
		return b.String()
	}

	perRow := m.gridColumns()
	for i, row := range m.rows {
		focused := m.region == i+1
		title := render.TitleStyle.Render(row.Title)
		if focused {
			title = "› " + title
		}
		b.WriteString(title + "\n")

		if len(row.Games) == 0 {
			b.WriteString(render.MutedStyle.Render("  "+render.NoResultsText) + "\n\n")
			continue
		}

		start := 0
		if focused && m.column >= perRow {
			start = m.column - perRow + 1
		}
		end := min(start+perRow, len(row.Games))

		cells := make([]string, 0, end-start)
		for j := start; j < end; j++ {
			g := row.Games[j]
			card := render.NewCard(g, m.session.saved[g.ID])
			cells = append(cells, card.Box(cardWidth, focused && j == m.column))
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...) + "\n")
	}
	return b.String()
}

func (m Model) viewHero() string {
	heroStyle := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		Padding(0, 2).
		Width(max(m.width-4, 30))
	if m.region == 0 {
		heroStyle = heroStyle.BorderForeground(render.Accent)
	}

	game, ok := m.carousel.Current()
	if !ok {
		if m.rowsLoading {
			return heroStyle.Render(m.spinner.View() + " Loading highlights…")
		}
		return heroStyle.Render(render.MutedStyle.Render("No highlights available."))
	}

	_, icon := render.SaveState(m.session.saved[game.ID])
	dots := make([]string, 0, m.carousel.Len())
	for _, active := range m.carousel.Indicators() {
		if active {
			dots = append(dots, render.TitleStyle.Render("●"))
		} else {
			dots = append(dots, render.MutedStyle.Render("○"))
		}
	}

	state := ""
	if m.carousel.Hovered() {
		state = render.MutedStyle.Render("  (paused)")
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		render.TitleStyle.Render(game.Name)+" "+icon,
		render.ScoreBar(game.Score, 20)+" "+game.ScoreText(),
		render.MutedStyle.Render(strings.Join(game.Genres, ", ")),
		strings.Join(dots, " ")+state,
	)
	return heroStyle.Render(content)
}

func (m Model) viewLibrary() string {
	var b strings.Builder

	filter := m.opts.Filters[m.filterIdx]
	if filter == "" {
		filter = "All"
	}
	b.WriteString(m.search.View())
	b.WriteString("   Genre: " + render.TitleStyle.Render(filter) + "\n\n")

	b.WriteString(m.viewGrid(m.catalog.Grid()))

	state := m.catalog.State()
	switch {
	case state.Loading && len(m.catalog.Grid().Games) > 0:
		b.WriteString("\n" + m.spinner.View() + " Loading more…")
	case m.catalog.Grid().ShowMore:
		b.WriteString("\n" + render.MutedStyle.Render(fmt.Sprintf("[m] Load more (page %d)", state.Page+1)))
	}
	return b.String()
}

func (m Model) viewGrid(grid *browse.Grid) string {
	if grid.Empty {
		return render.EmptyState(render.NoResultsText, max(m.width-4, 20))
	}

	cols := m.gridColumns()
	var cells []string
	for i, g := range grid.Games {
		card := render.NewCard(g, m.session.saved[g.ID])
		cells = append(cells, card.Box(cardWidth, i == m.cursor))
	}
	for _, p := range render.Placeholders(grid.Placeholders) {
		cells = append(cells, p.Box(cardWidth))
	}

	visibleRows := max((m.height-14)/7, 1)
	cursorRow := m.cursor / cols
	firstRow := 0
	if cursorRow >= visibleRows {
		firstRow = cursorRow - visibleRows + 1
	}
	return layoutGrid(cells, cols, firstRow, visibleRows)
}

func (m Model) viewWishlist() string {
	view := m.session.wishview
	if view.Empty() {
		return render.EmptyState(render.EmptyWishlist, max(m.width-4, 20))
	}

	cols := m.gridColumns()
	cells := make([]string, 0, view.Len())
	for i, card := range view.Cards() {
		cells = append(cells, card.Box(cardWidth, i == m.wishCursor))
	}

	visibleRows := max((m.height-12)/7, 1)
	cursorRow := m.wishCursor / cols
	firstRow := 0
	if cursorRow >= visibleRows {
		firstRow = cursorRow - visibleRows + 1
	}
	return layoutGrid(cells, cols, firstRow, visibleRows)
}

func (m Model) viewDetail() string {
	frame := render.Frame(m.viewport.View(), m.viewport.Width+4)
	hint := render.MutedStyle.Render("w: wishlist | b: buy | ↑/↓: scroll | Esc: close")
	return lipgloss.Place(m.width, m.height,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Left, frame, hint))
}

// gridColumns is how many cards fit side by side.
func (m Model) gridColumns() int {
	return max(m.width/(cardWidth+2), 1)
}

func layoutGrid(cells []string, cols, firstRow, rows int) string {
	var lines []string
	for r := firstRow; r < firstRow+rows; r++ {
		start := r * cols
		if start >= len(cells) {
			break
		}
		end := min(start+cols, len(cells))
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cells[start:end]...))
	}
	return strings.Join(lines, "\n")
}

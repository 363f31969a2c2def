// Package render turns game records into terminal views: a card for list
// cells and an expanded detail view. Rendering is pure; the only inputs are
// the record and the current wishlist membership.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/ryanm101/biblioteca/internal/catalog"
)

// Wishlist toggle labels and icons.
const (
	IconSaved     = "♥"
	IconUnsaved   = "♡"
	LabelSaved    = "In wishlist"
	LabelUnsaved  = "Add to wishlist"
	NoResultsText = "No games found."
	LoadFailText  = "Could not load this game."
	EmptyWishlist = "Your wishlist is empty. Press w on any game to save it."
)

// SaveState returns the label and icon for a wishlist toggle.
func SaveState(saved bool) (label, icon string) {
	if saved {
		return LabelSaved, IconSaved
	}
	return LabelUnsaved, IconUnsaved
}

// Action is what a key press on a card does.
type Action int

const (
	ActionNone Action = iota
	ActionOpen
	ActionToggle
)

// CardAction maps a key on a focused card to its action. The wishlist
// toggle never also opens the detail view.
func CardAction(key string) Action {
	switch key {
	case "enter":
		return ActionOpen
	case "w", " ":
		return ActionToggle
	}
	return ActionNone
}

// Card is the list-cell view of a game.
type Card struct {
	Game     catalog.GameSummary
	Saved    bool
	Removing bool
}

// NewCard builds the card for g with its current wishlist membership.
func NewCard(g catalog.GameSummary, saved bool) Card {
	return Card{Game: g, Saved: saved}
}

// Placeholder is a loading cell shown while a query is in flight.
type Placeholder struct{}

// Placeholders returns n loading cells.
func Placeholders(n int) []Placeholder {
	return make([]Placeholder, n)
}

// ScoreBar draws a critic score as a coloured bar of width cells.
func ScoreBar(score *int, width int) string {
	if score == nil {
		return MutedStyle.Render(strings.Repeat("·", width))
	}
	pct := *score
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}

	full := (pct * width) / 100
	filled := strings.Repeat("█", full)
	empty := strings.Repeat("░", width-full)

	barStyle := lipgloss.NewStyle().Foreground(scoreColor(pct))
	return barStyle.Render(filled) + lipgloss.NewStyle().Foreground(lipgloss.Color("235")).Render(empty)
}

// Line renders the card as a single row, for lists and rails.
func (c Card) Line(width int, selected bool) string {
	_, icon := SaveState(c.Saved)
	if c.Saved {
		icon = SavedStyle.Render(icon)
	}

	nameWidth := width - 12
	if nameWidth < 8 {
		nameWidth = 8
	}
	name := fmt.Sprintf("%-*s", nameWidth, Truncate(c.Game.Name, nameWidth))
	line := fmt.Sprintf("%s %s %3s", icon, name, c.Game.ScoreText())

	switch {
	case c.Removing:
		return MutedStyle.Strikethrough(true).Render(line)
	case selected:
		return SelectedStyle.Render(line)
	}
	return line
}

// Box renders the card as a bordered grid cell.
func (c Card) Box(width int, selected bool) string {
	label, icon := SaveState(c.Saved)
	inner := width - 4
	if inner < 10 {
		inner = 10
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render(Truncate(c.Game.Name, inner)))
	b.WriteString("\n")
	b.WriteString(ScoreBar(c.Game.Score, inner-4))
	b.WriteString(fmt.Sprintf(" %3s\n", c.Game.ScoreText()))
	b.WriteString(MutedStyle.Render(Truncate(strings.Join(c.Game.Genres, ", "), inner)))
	b.WriteString("\n")
	b.WriteString(MutedStyle.Render(Truncate(strings.Join(c.Game.Platforms, " · "), inner)))
	b.WriteString("\n")
	toggle := icon + " " + label
	if c.Saved {
		toggle = SavedStyle.Render(toggle)
	}
	b.WriteString(toggle)

	style := cardStyle
	switch {
	case c.Removing:
		style = removingCardStyle
	case selected:
		style = activeCardStyle
	}
	return style.Width(width).Render(b.String())
}

// Box renders a loading placeholder cell.
func (Placeholder) Box(width int) string {
	return cardStyle.
		BorderForeground(lipgloss.Color("238")).
		Width(width).
		Render(MutedStyle.Render("Loading…\n\n\n\n"))
}

// EmptyState renders a centred informational message.
func EmptyState(msg string, width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Padding(2, 0).
		Foreground(Muted).
		Render(msg)
}

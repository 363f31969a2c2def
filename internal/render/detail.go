package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/ryanm101/biblioteca/internal/catalog"
)

// DetailState is the lifecycle of an opened detail view.
type DetailState int

const (
	DetailLoading DetailState = iota
	DetailReady
	DetailFailed
)

func (s DetailState) String() string {
	switch s {
	case DetailLoading:
		return "loading"
	case DetailReady:
		return "ready"
	case DetailFailed:
		return "failed"
	}
	return "unknown"
}

// Detail is the expanded view of one game. It opens in the loading state
// and is resolved once the fetch returns. Card is the record the view was
// opened from; it keeps the wishlist toggle usable before and without a
// fetched detail.
type Detail struct {
	ID          int
	State       DetailState
	Card        catalog.GameSummary
	Game        *catalog.GameDetail
	Saved       bool
	PurchaseURL string
}

// OpenDetail returns the loading view for game.
func OpenDetail(game catalog.GameSummary, saved bool, purchaseURL string) Detail {
	return Detail{ID: game.ID, State: DetailLoading, Card: game, Saved: saved, PurchaseURL: purchaseURL}
}

// Resolve fills the view with g, or switches to the failed state when g is nil.
func (d Detail) Resolve(g *catalog.GameDetail) Detail {
	if g == nil {
		d.State = DetailFailed
		d.Game = nil
		return d
	}
	d.State = DetailReady
	d.Game = g
	return d
}

// Summary returns the card-level record for wishlist toggling: the fetched
// record once ready, otherwise the card the view was opened from.
func (d Detail) Summary() (catalog.GameSummary, bool) {
	if d.Game != nil {
		return d.Game.GameSummary, true
	}
	if d.Card.ID == 0 {
		return catalog.GameSummary{}, false
	}
	return d.Card, true
}

// ClosesDetail reports whether key dismisses the detail view.
func ClosesDetail(key string) bool {
	switch key {
	case "esc", "q", "x", "backspace":
		return true
	}
	return false
}

// FormatPlaytime renders an average playtime in hours.
func FormatPlaytime(hours int) string {
	if hours <= 0 {
		return "—"
	}
	if hours == 1 {
		return "1 hour"
	}
	return fmt.Sprintf("%d hours", hours)
}

func orDash(values []string) string {
	if len(values) == 0 {
		return "—"
	}
	return strings.Join(values, ", ")
}

// Body renders the inner content of the detail view, without the frame.
// The wishlist toggle and purchase link are shown in every state.
func (d Detail) Body(width int) string {
	var lines []string
	switch d.State {
	case DetailLoading:
		lines = d.pending(MutedStyle.Render("Loading…"))
	case DetailFailed:
		lines = d.pending(ErrorStyle.Render(LoadFailText))
	default:
		lines = d.content(width)
	}
	return strings.Join(append(lines, d.actions()...), "\n")
}

func (d Detail) pending(status string) []string {
	if d.Card.Name == "" {
		return []string{status}
	}
	return []string{TitleStyle.Render(d.Card.Name), "", status}
}

func (d Detail) actions() []string {
	label, icon := SaveState(d.Saved)
	toggle := fmt.Sprintf("[w] %s %s", icon, label)
	if d.Saved {
		toggle = SavedStyle.Render(toggle)
	}

	lines := []string{"", toggle}
	if d.PurchaseURL != "" {
		lines = append(lines, "[b] Buy: "+MutedStyle.Render(d.PurchaseURL))
	}
	return lines
}

func (d Detail) content(width int) []string {
	g := d.Game
	keyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Width(14)
	row := func(k, v string) string {
		return keyStyle.Render(k) + v
	}

	lines := []string{
		TitleStyle.Render(g.Name),
		"",
		row("Score", ScoreBar(g.Score, 20)+" "+g.ScoreText()),
		row("User rating", fmt.Sprintf("%.1f / 5", g.UserRating)),
		row("Released", orDash(nonEmpty(g.Released))),
		row("Genres", orDash(g.Genres)),
		row("Platforms", orDash(g.Platforms)),
		row("Developers", orDash(g.Developers)),
		row("Publishers", orDash(g.Publishers)),
		row("Rating", orDash(nonEmpty(g.ContentRating))),
		row("Playtime", FormatPlaytime(g.Playtime)),
	}

	if desc := PlainText(g.Description); desc != "" {
		lines = append(lines, "", sectionStyle.Render("About"),
			lipgloss.NewStyle().Width(width).Render(desc))
	}

	if len(g.Screenshots) > 0 {
		lines = append(lines, "", sectionStyle.Render("Screenshots"))
		for _, s := range g.Screenshots {
			lines = append(lines, MutedStyle.Render(Truncate(s, width)))
		}
	}
	return lines
}

// Frame wraps body in the detail view border.
func Frame(body string, width int) string {
	return detailStyle.Width(width).Render(body)
}

func nonEmpty(s string) []string {
	if s == "" {
		return nil
	}
	return []string{s}
}

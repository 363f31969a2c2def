// Package catalog defines the game records shared by every view.
package catalog

import "strconv"

// GameSummary is the card-level game record. Wishlist entries are rebuilt
// into it when read back from storage.
type GameSummary struct {
	ID        int      `json:"id"`
	Slug      string   `json:"slug,omitempty"`
	Name      string   `json:"name"`
	Image     string   `json:"background_image,omitempty"` // Cover image URL, optional
	Score     *int     `json:"metacritic,omitempty"`       // Critic score 0-100, nil when absent
	Genres    []string `json:"genres,omitempty"`           // Ordered genre names
	Platforms []string `json:"platforms,omitempty"`        // Ordered platform family names
	Released  string   `json:"released,omitempty"`         // ISO date, when known
}

// HasScore reports whether a critic score is present.
func (g GameSummary) HasScore() bool {
	return g.Score != nil
}

// ScoreText formats the critic score, or "—" when absent.
func (g GameSummary) ScoreText() string {
	if g.Score == nil {
		return "—"
	}
	return strconv.Itoa(*g.Score)
}

// GameDetail is the full record fetched when the detail view opens.
type GameDetail struct {
	GameSummary
	Description   string   // Rich text (HTML) or plain
	Developers    []string
	Publishers    []string
	ContentRating string   // e.g. "Mature"
	Playtime      int      // Average playtime in hours
	Screenshots   []string // Image URLs
	UserRating    float64  // 0-5
	Website       string
}

// Genre is an upstream genre identifier.
type Genre struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Slug       string `json:"slug"`
	GamesCount int    `json:"games_count"`
}

// Page is one page of a game listing.
type Page struct {
	Count   int           // Total results across all pages
	Next    string        // Opaque cursor; empty when no further page exists
	Results []GameSummary
}

// HasNext reports whether a further page exists.
func (p Page) HasNext() bool {
	return p.Next != ""
}

// Score returns a pointer to v, for building summaries with a critic score.
func Score(v int) *int {
	return &v
}

// Package showcase loads the curated home-page rows and drives the
// auto-advancing hero carousel.
package showcase

import (
	"context"
	"strings"
	"time"

	"github.com/ryanm101/biblioteca/internal/catalog"
	"github.com/ryanm101/biblioteca/internal/logging"
	"github.com/ryanm101/biblioteca/internal/rawg"
)

// Row keys for the fixed rails.
const (
	RowTopRated    = "top-rated"
	RowNewReleases = "new-releases"
	genreRowPrefix = "genre:"
)

// Options parameterize the curated queries.
type Options struct {
	PageSize         int
	NewReleaseWindow time.Duration
	Genres           []string // Genre slugs, one row each
}

// DefaultOptions mirrors the configuration defaults.
func DefaultOptions() Options {
	return Options{
		PageSize:         10,
		NewReleaseWindow: 90 * 24 * time.Hour,
		Genres:           []string{"action", "indie", "role-playing-games-rpg", "strategy"},
	}
}

// Row is one curated rail.
type Row struct {
	Key    string
	Title  string
	Query  rawg.GameQuery
	Games  []catalog.GameSummary
	Loaded bool // The query returned data
}

// Lister fetches one page of games.
type Lister interface {
	ListGames(ctx context.Context, q rawg.GameQuery) (catalog.Page, bool)
}

// CuratedRows returns the fixed query set, with the new-release window
// ending at now.
func CuratedRows(now time.Time, opts Options) []Row {
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultOptions().PageSize
	}
	if opts.NewReleaseWindow <= 0 {
		opts.NewReleaseWindow = DefaultOptions().NewReleaseWindow
	}

	rows := []Row{
		{
			Key:   RowTopRated,
			Title: "Top rated",
			Query: rawg.GameQuery{
				PageSize:   opts.PageSize,
				Ordering:   rawg.OrderMetacritic,
				Metacritic: "80,100",
			},
		},
		{
			Key:   RowNewReleases,
			Title: "New releases",
			Query: rawg.GameQuery{
				PageSize: opts.PageSize,
				Ordering: rawg.OrderReleased,
				Dates:    rawg.DateRange(now, opts.NewReleaseWindow),
			},
		},
	}
	for _, slug := range opts.Genres {
		if slug == "" {
			continue
		}
		rows = append(rows, Row{
			Key:   genreRowPrefix + slug,
			Title: GenreTitle(slug),
			Query: rawg.GameQuery{
				PageSize: opts.PageSize,
				Ordering: rawg.OrderMetacritic,
				Genres:   slug,
			},
		})
	}
	return rows
}

// GenreTitle turns a slug into a display title.
func GenreTitle(slug string) string {
	switch slug {
	case "role-playing-games-rpg":
		return "RPG"
	}
	words := strings.Split(slug, "-")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// LoadRow runs the query of one row. An absent result leaves the row
// empty and not loaded.
func LoadRow(ctx context.Context, l Lister, row Row) Row {
	page, ok := l.ListGames(ctx, row.Query)
	if !ok {
		logging.Debug("curated row unavailable", "row", row.Key)
		row.Games = nil
		row.Loaded = false
		return row
	}
	row.Games = page.Results
	row.Loaded = true
	return row
}

// LoadAll loads every row in order, one request at a time.
func LoadAll(ctx context.Context, l Lister, rows []Row) []Row {
	out := make([]Row, len(rows))
	for i, row := range rows {
		out[i] = LoadRow(ctx, l, row)
	}
	return out
}

// HeroItems picks up to n games with cover images for the carousel.
func HeroItems(games []catalog.GameSummary, n int) []catalog.GameSummary {
	items := make([]catalog.GameSummary, 0, n)
	for _, g := range games {
		if len(items) == n {
			break
		}
		if g.Image == "" {
			continue
		}
		items = append(items, g)
	}
	return items
}

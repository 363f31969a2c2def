// Package browse drives the searchable, filterable and paginated library
// grid.
//
// Catalog is a state machine over the query state. Every transition that
// needs data returns a Request stamped with a generation number; the caller
// runs it (usually off the UI loop) and hands the Result back to Apply.
// Results from an older generation are discarded, so a slow response for a
// previous filter or search can never overwrite newer content.
package browse

import (
	"context"
	"strings"

	"github.com/ryanm101/biblioteca/internal/catalog"
	"github.com/ryanm101/biblioteca/internal/logging"
	"github.com/ryanm101/biblioteca/internal/rawg"
)

// AllGenres is the filter vocabulary's "all" choice. It is equivalent to
// the empty genre.
const AllGenres = "todos"

// State is the current query state.
type State struct {
	Page    int    // Current page, starting at 1
	Genre   string // Active genre slug; empty means all
	Search  string // Trimmed search text; empty means none
	HasNext bool   // A further page exists
	Loading bool   // A request is in flight
}

// Request is one query to issue.
type Request struct {
	Generation uint64
	Reset      bool // Replaces the grid instead of appending
	Query      rawg.GameQuery
}

// Result is the outcome of running a Request.
type Result struct {
	Generation uint64
	Reset      bool
	Page       catalog.Page
	OK         bool
}

// Lister fetches one page of games.
type Lister interface {
	ListGames(ctx context.Context, q rawg.GameQuery) (catalog.Page, bool)
}

// Run executes req against l.
func Run(ctx context.Context, l Lister, req Request) Result {
	page, ok := l.ListGames(ctx, req.Query)
	return Result{Generation: req.Generation, Reset: req.Reset, Page: page, OK: ok}
}

// Catalog owns the query state and the grid it feeds.
type Catalog struct {
	state      State
	pageSize   int
	generation uint64
	grid       Grid
}

// NewCatalog creates a controller issuing pages of pageSize games.
func NewCatalog(pageSize int) *Catalog {
	if pageSize <= 0 {
		pageSize = 20
	}
	return &Catalog{
		state:    State{Page: 1},
		pageSize: pageSize,
	}
}

// State returns a copy of the query state.
func (c *Catalog) State() State {
	return c.state
}

// Grid returns the grid view model.
func (c *Catalog) Grid() *Grid {
	return &c.grid
}

// Generation returns the generation of the latest issued request.
func (c *Catalog) Generation() uint64 {
	return c.generation
}

// NormalizeGenre maps the "all" choice to the empty genre.
func NormalizeGenre(genre string) string {
	genre = strings.TrimSpace(genre)
	if strings.EqualFold(genre, AllGenres) {
		return ""
	}
	return genre
}

// Start issues the initial first-page query for the current filters.
func (c *Catalog) Start() Request {
	return c.reset()
}

// SetGenre switches the genre filter and restarts from the first page.
func (c *Catalog) SetGenre(genre string) Request {
	c.state.Genre = NormalizeGenre(genre)
	return c.reset()
}

// SetSearch applies debounced search text. ok is false when the trimmed
// text equals the active search, in which case nothing is issued.
func (c *Catalog) SetSearch(text string) (req Request, ok bool) {
	text = strings.TrimSpace(text)
	if text == c.state.Search {
		return Request{}, false
	}
	c.state.Search = text
	return c.reset(), true
}

// LoadMore requests the next page. It is a no-op while a request is in
// flight or when no further page exists.
func (c *Catalog) LoadMore() (req Request, ok bool) {
	if c.state.Loading || !c.state.HasNext {
		return Request{}, false
	}
	c.state.Page++
	c.state.Loading = true
	c.grid.ShowMore = false
	c.generation++
	return Request{Generation: c.generation, Query: c.query()}, true
}

func (c *Catalog) reset() Request {
	c.state.Page = 1
	c.state.HasNext = false
	c.state.Loading = true
	c.generation++
	c.grid.reset(c.pageSize)
	logging.Debug("catalog query reset", "genre", c.state.Genre, "search", c.state.Search, "generation", c.generation)
	return Request{Generation: c.generation, Reset: true, Query: c.query()}
}

func (c *Catalog) query() rawg.GameQuery {
	return rawg.GameQuery{
		Page:     c.state.Page,
		PageSize: c.pageSize,
		Ordering: rawg.OrderRelevance,
		Genres:   c.state.Genre,
		Search:   c.state.Search,
	}
}

// Apply folds a result into the state and grid. It returns false, leaving
// everything untouched, when the result belongs to a superseded request.
func (c *Catalog) Apply(res Result) bool {
	if res.Generation != c.generation {
		logging.Debug("dropping stale catalog result", "generation", res.Generation, "latest", c.generation)
		return false
	}
	c.state.Loading = false
	c.grid.Placeholders = 0

	if !res.OK {
		if res.Reset {
			c.grid.Empty = true
			c.grid.ShowMore = false
			return true
		}
		// The next load-more retries the same page.
		c.state.Page--
		c.grid.ShowMore = c.state.HasNext
		return true
	}

	c.grid.Games = append(c.grid.Games, res.Page.Results...)
	c.state.HasNext = res.Page.HasNext()
	c.grid.Empty = res.Reset && len(res.Page.Results) == 0
	c.grid.ShowMore = c.state.HasNext && !c.grid.Empty
	return true
}

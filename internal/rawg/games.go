package rawg

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/ryanm101/biblioteca/internal/catalog"
	"github.com/ryanm101/biblioteca/internal/logging"
)

// Orderings understood by the games endpoint.
const (
	OrderRelevance  = "-relevance"
	OrderMetacritic = "-metacritic"
	OrderReleased   = "-released"
	OrderRating     = "-rating"
)

// GameQuery is the parameter set of a games listing.
type GameQuery struct {
	Page       int
	PageSize   int
	Ordering   string
	Genres     string // Genre slug or id; empty means all
	Search     string
	Metacritic string // Score range, e.g. "80,100"
	Dates      string // Release window, e.g. "2026-07-20,2026-10-18"
}

// Params converts the query to request parameters, omitting unset fields.
func (q GameQuery) Params() Params {
	p := Params{
		"ordering":   q.Ordering,
		"genres":     q.Genres,
		"search":     q.Search,
		"metacritic": q.Metacritic,
		"dates":      q.Dates,
	}
	if q.Page > 0 {
		p["page"] = strconv.Itoa(q.Page)
	}
	if q.PageSize > 0 {
		p["page_size"] = strconv.Itoa(q.PageSize)
	}
	return p
}

// DateRange formats the dates parameter for the window ending at end.
func DateRange(end time.Time, window time.Duration) string {
	start := end.Add(-window)
	return start.Format("2006-01-02") + "," + end.Format("2006-01-02")
}

// ListGames fetches one page of games. ok is false when no data could be obtained.
func (c *Client) ListGames(ctx context.Context, q GameQuery) (page catalog.Page, ok bool) {
	payload := c.Fetch(ctx, "/games", q.Params())
	if payload == nil {
		return catalog.Page{}, false
	}

	var wire gameList
	if err := json.Unmarshal(payload, &wire); err != nil {
		logging.Warn("failed to decode game list", "error", err)
		return catalog.Page{}, false
	}

	page = catalog.Page{
		Count:   wire.Count,
		Results: make([]catalog.GameSummary, 0, len(wire.Results)),
	}
	if wire.Next != nil {
		page.Next = *wire.Next
	}
	for _, g := range wire.Results {
		page.Results = append(page.Results, g.summary())
	}
	return page, true
}

// GetGame fetches the detail record for id, or nil when unavailable.
func (c *Client) GetGame(ctx context.Context, id int) *catalog.GameDetail {
	payload := c.Fetch(ctx, fmt.Sprintf("/games/%d", id), nil)
	if payload == nil {
		return nil
	}

	var wire gameDetail
	if err := json.Unmarshal(payload, &wire); err != nil {
		logging.Warn("failed to decode game detail", "id", id, "error", err)
		return nil
	}
	d := wire.detail()
	return &d
}

// Screenshots fetches screenshot URLs for id. Nil when unavailable.
func (c *Client) Screenshots(ctx context.Context, id int) []string {
	payload := c.Fetch(ctx, fmt.Sprintf("/games/%d/screenshots", id), nil)
	if payload == nil {
		return nil
	}

	var wire struct {
		Results []imageRef `json:"results"`
	}
	if err := json.Unmarshal(payload, &wire); err != nil {
		logging.Warn("failed to decode screenshots", "id", id, "error", err)
		return nil
	}
	return imageURLs(wire.Results)
}

// ListGenres fetches the genre vocabulary. Nil when unavailable.
func (c *Client) ListGenres(ctx context.Context, pageSize int) []catalog.Genre {
	params := Params{}
	if pageSize > 0 {
		params["page_size"] = strconv.Itoa(pageSize)
	}
	payload := c.Fetch(ctx, "/genres", params)
	if payload == nil {
		return nil
	}

	var wire struct {
		Results []catalog.Genre `json:"results"`
	}
	if err := json.Unmarshal(payload, &wire); err != nil {
		logging.Warn("failed to decode genres", "error", err)
		return nil
	}
	return wire.Results
}

package rawg

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listBody = `{
  "count": 2,
  "next": "https://api.rawg.io/api/games?page=2",
  "results": [
    {
      "id": 3498,
      "slug": "grand-theft-auto-v",
      "name": "Grand Theft Auto V",
      "background_image": "https://media.rawg.io/gtav.jpg",
      "metacritic": 92,
      "released": "2013-09-17",
      "genres": [{"name": "Action"}, {"name": "Adventure"}],
      "parent_platforms": [{"platform": {"name": "PC"}}, {"platform": {"name": "PlayStation"}}]
    },
    {"id": 1, "name": "No Score", "metacritic": null}
  ]
}`

const detailBody = `{
  "id": 3328,
  "name": "The Witcher 3: Wild Hunt",
  "metacritic": 92,
  "released": "2015-05-18",
  "description": "<p>The third game in a series.</p>",
  "developers": [{"name": "CD PROJEKT RED"}],
  "publishers": [{"name": "CD PROJEKT RED"}],
  "esrb_rating": {"name": "Mature"},
  "playtime": 46,
  "rating": 4.66,
  "genres": [{"name": "RPG"}]
}`

func TestGameQuery_Params(t *testing.T) {
	q := GameQuery{Page: 2, PageSize: 20, Ordering: OrderRelevance, Genres: "indie"}
	p := q.Params()

	assert.Equal(t, "2", p["page"])
	assert.Equal(t, "20", p["page_size"])
	assert.Equal(t, "-relevance", p["ordering"])
	assert.Equal(t, "indie", p["genres"])
	assert.Empty(t, p["search"])

	_, hasPage := GameQuery{}.Params()["page"]
	assert.False(t, hasPage)
}

func TestDateRange(t *testing.T) {
	end := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, "2026-07-20,2026-10-18", DateRange(end, 90*24*time.Hour))
}

func TestListGames(t *testing.T) {
	up := newUpstream(t, http.StatusOK, listBody)
	c := New(up.URL, "k")

	page, ok := c.ListGames(context.Background(), GameQuery{Page: 1, PageSize: 20, Genres: "action"})
	require.True(t, ok)

	assert.Equal(t, "/games", up.lastPath.Load())
	assert.Equal(t, "action", up.query().Get("genres"))
	assert.Equal(t, 2, page.Count)
	assert.True(t, page.HasNext())
	require.Len(t, page.Results, 2)

	gta := page.Results[0]
	assert.Equal(t, 3498, gta.ID)
	assert.Equal(t, "https://media.rawg.io/gtav.jpg", gta.Image)
	assert.Equal(t, "92", gta.ScoreText())
	assert.Equal(t, []string{"Action", "Adventure"}, gta.Genres)
	assert.Equal(t, []string{"PC", "PlayStation"}, gta.Platforms)

	assert.False(t, page.Results[1].HasScore())
}

func TestListGames_LastPageHasNoCursor(t *testing.T) {
	up := newUpstream(t, http.StatusOK, `{"count":0,"next":null,"results":[]}`)
	c := New(up.URL, "k")

	page, ok := c.ListGames(context.Background(), GameQuery{Search: "zelda"})
	require.True(t, ok)
	assert.False(t, page.HasNext())
	assert.Empty(t, page.Results)
}

func TestListGames_Absent(t *testing.T) {
	up := newUpstream(t, http.StatusInternalServerError, `{}`)
	c := New(up.URL, "k")

	_, ok := c.ListGames(context.Background(), GameQuery{})
	assert.False(t, ok)
}

func TestGetGame(t *testing.T) {
	up := newUpstream(t, http.StatusOK, detailBody)
	c := New(up.URL, "k")

	d := c.GetGame(context.Background(), 3328)
	require.NotNil(t, d)

	assert.Equal(t, "/games/3328", up.lastPath.Load())
	assert.Equal(t, "The Witcher 3: Wild Hunt", d.Name)
	assert.Equal(t, "<p>The third game in a series.</p>", d.Description)
	assert.Equal(t, []string{"CD PROJEKT RED"}, d.Developers)
	assert.Equal(t, "Mature", d.ContentRating)
	assert.Equal(t, 46, d.Playtime)
	assert.InDelta(t, 4.66, d.UserRating, 0.001)
}

func TestGetGame_Absent(t *testing.T) {
	up := newUpstream(t, http.StatusNotFound, `{"detail":"Not found."}`)
	c := New(up.URL, "k")

	assert.Nil(t, c.GetGame(context.Background(), 1))
}

func TestScreenshots(t *testing.T) {
	up := newUpstream(t, http.StatusOK, `{"results":[{"image":"a.jpg"},{"image":""},{"image":"b.jpg"}]}`)
	c := New(up.URL, "k")

	assert.Equal(t, []string{"a.jpg", "b.jpg"}, c.Screenshots(context.Background(), 9))
	assert.Equal(t, "/games/9/screenshots", up.lastPath.Load())
}

func TestListGenres(t *testing.T) {
	up := newUpstream(t, http.StatusOK, `{"results":[{"id":4,"name":"Action","slug":"action","games_count":180000}]}`)
	c := New(up.URL, "k")

	genres := c.ListGenres(context.Background(), 40)
	require.Len(t, genres, 1)
	assert.Equal(t, "action", genres[0].Slug)
	assert.Equal(t, "40", up.query().Get("page_size"))
}

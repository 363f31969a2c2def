package main

import (
	"strings"
	"testing"
	"time"

	"github.com/ryanm101/biblioteca/internal/catalog"
	"github.com/ryanm101/biblioteca/internal/config"
	"github.com/ryanm101/biblioteca/internal/rawg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseGlobalFlags(t *testing.T) {
	defer func() { outputCfg = OutputConfig{} }()

	rest := parseGlobalFlags([]string{"--json", "games", "-q", "--genre", "indie"})
	assert.Equal(t, []string{"games", "--genre", "indie"}, rest)
	assert.True(t, outputCfg.JSON)
	assert.True(t, outputCfg.Quiet)
}

func TestParseGamesFlags(t *testing.T) {
	q, err := parseGamesFlags([]string{"--genre", "todos", "--search", "  zelda ", "--page", "3"}, 20)
	require.NoError(t, err)
	assert.Equal(t, rawg.GameQuery{
		Page:     3,
		PageSize: 20,
		Ordering: rawg.OrderRelevance,
		Search:   "zelda",
	}, q)

	q, err = parseGamesFlags([]string{"--genre", "indie", "--page-size", "5"}, 20)
	require.NoError(t, err)
	assert.Equal(t, "indie", q.Genres)
	assert.Equal(t, 5, q.PageSize)
	assert.Equal(t, 1, q.Page)
}

func TestParseGamesFlags_Invalid(t *testing.T) {
	_, err := parseGamesFlags([]string{"--page", "0"}, 20)
	assert.Error(t, err)

	_, err = parseGamesFlags([]string{"--nope"}, 20)
	assert.Error(t, err)
}

func TestFormatTable(t *testing.T) {
	out := formatTable([]string{"ID", "NAME"}, [][]string{
		{"1", "Pokémon"},
		{"22", "Doom"},
	})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "ID  NAME     ", lines[0])
	assert.Equal(t, "--  -------  ", lines[1])
	assert.Equal(t, "1   Pokémon  ", lines[2])
	assert.Equal(t, "22  Doom     ", lines[3])
}

func TestGameRows(t *testing.T) {
	score := 92
	rows := gameRows([]catalog.GameSummary{
		{ID: 7, Name: "Hades", Score: &score, Genres: []string{"Action", "Indie"}, Released: "2020-09-17"},
		{ID: 8, Name: "Unscored"},
	})
	assert.Equal(t, []string{"7", "Hades", "92", "Action, Indie", "2020-09-17"}, rows[0])
	assert.Equal(t, "—", rows[1][2])
}

func TestWarmQueries(t *testing.T) {
	old := cfg
	defer func() { cfg = old }()
	cfg = config.DefaultConfig()
	cfg.UI.GenreRows = []string{"indie"}

	qs := warmQueries(time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC), 2)
	require.Len(t, qs, 5)
	assert.Equal(t, "indie", qs[2].Genres)
	assert.Equal(t, 1, qs[3].Page)
	assert.Equal(t, 2, qs[4].Page)
	assert.Equal(t, cfg.GetPageSize(), qs[4].PageSize)
}

func TestRedactedConfig(t *testing.T) {
	old := cfg
	defer func() { cfg = old }()
	cfg = config.DefaultConfig()
	cfg.API.Key = "secret-key"
	cfg.IGDB.ClientSecret = "hunter2"

	data, err := yaml.Marshal(redactedConfig())
	require.NoError(t, err)
	assert.NotContains(t, string(data), "secret-key")
	assert.NotContains(t, string(data), "hunter2")
	assert.Equal(t, "secret-key", cfg.API.Key)
}

func TestExampleConfigParses(t *testing.T) {
	var c config.Config
	require.NoError(t, yaml.Unmarshal([]byte(exampleConfig), &c))
	assert.Equal(t, 30*time.Minute, c.Cache.TTL)
	assert.Equal(t, 350*time.Millisecond, c.UI.SearchDebounce)
	assert.Equal(t, "sqlite", c.Storage.Driver)
}

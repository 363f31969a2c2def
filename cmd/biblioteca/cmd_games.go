package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ryanm101/biblioteca/internal/browse"
	"github.com/ryanm101/biblioteca/internal/catalog"
	"github.com/ryanm101/biblioteca/internal/rawg"
	"github.com/ryanm101/biblioteca/internal/render"
)

// parseGamesFlags turns "games" arguments into a query.
func parseGamesFlags(args []string, pageSize int) (rawg.GameQuery, error) {
	fs := flag.NewFlagSet("games", flag.ContinueOnError)
	genre := fs.String("genre", "", "genre slug (todos = all)")
	search := fs.String("search", "", "search text")
	page := fs.Int("page", 1, "page number")
	ordering := fs.String("ordering", rawg.OrderRelevance, "result ordering")
	size := fs.Int("page-size", pageSize, "results per page")
	if err := fs.Parse(args); err != nil {
		return rawg.GameQuery{}, err
	}
	if *page < 1 {
		return rawg.GameQuery{}, fmt.Errorf("page must be at least 1")
	}

	return rawg.GameQuery{
		Page:     *page,
		PageSize: *size,
		Ordering: *ordering,
		Genres:   browse.NormalizeGenre(*genre),
		Search:   strings.TrimSpace(*search),
	}, nil
}

func gameRows(games []catalog.GameSummary) [][]string {
	rows := make([][]string, 0, len(games))
	for _, g := range games {
		rows = append(rows, []string{
			strconv.Itoa(g.ID),
			g.Name,
			g.ScoreText(),
			strings.Join(g.Genres, ", "),
			g.Released,
		})
	}
	return rows
}

func handleGamesCommand(ctx context.Context, args []string) {
	q, err := parseGamesFlags(args, cfg.GetPageSize())
	if err != nil {
		PrintError("Error: %v\n", err)
		os.Exit(1)
	}

	a := openApp(ctx, true)
	defer func() { _ = a.Close() }()

	page, ok := a.Client.ListGames(ctx, q)
	if !ok || len(page.Results) == 0 {
		if outputCfg.JSON {
			PrintResult([]catalog.GameSummary{})
			return
		}
		PrintInfo("%s\n", render.NoResultsText)
		return
	}

	if outputCfg.JSON {
		PrintResult(page)
		return
	}
	PrintTable([]string{"ID", "NAME", "SCORE", "GENRES", "RELEASED"}, gameRows(page.Results))
	if page.HasNext() {
		PrintInfo("\nMore results: --page %d\n", q.Page+1)
	}
}

func handleGameCommand(ctx context.Context, args []string) {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		PrintError("Error: invalid game id %q\n", args[0])
		os.Exit(1)
	}

	a := openApp(ctx, true)
	defer func() { _ = a.Close() }()

	d := a.Details.Detail(ctx, id)
	if d == nil {
		PrintError("%s\n", render.LoadFailText)
		os.Exit(1)
	}

	if outputCfg.JSON {
		PrintResult(d)
		return
	}

	detail := render.OpenDetail(d.GameSummary, a.Wishlist.Has(ctx, id), cfg.Links.PurchaseURL).Resolve(d)
	fmt.Println(detail.Body(80))
}

func handleGenresCommand(ctx context.Context) {
	a := openApp(ctx, true)
	defer func() { _ = a.Close() }()

	genres := a.Client.ListGenres(ctx, 40)
	if outputCfg.JSON {
		if genres == nil {
			genres = []catalog.Genre{}
		}
		PrintResult(genres)
		return
	}

	rows := make([][]string, 0, len(genres))
	for _, g := range genres {
		rows = append(rows, []string{g.Slug, g.Name, strconv.Itoa(g.GamesCount)})
	}
	PrintTable([]string{"SLUG", "NAME", "GAMES"}, rows)
}

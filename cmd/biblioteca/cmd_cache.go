package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/ryanm101/biblioteca/internal/rawg"
	"github.com/ryanm101/biblioteca/internal/showcase"
	"github.com/schollz/progressbar/v3"
)

func handleCacheCommand(ctx context.Context, args []string) {
	switch args[0] {
	case "stats":
		cacheStats(ctx)
	case "purge":
		cachePurge(ctx)
	case "clear":
		cacheClear(ctx)
	case "warm":
		pages := 1
		if len(args) > 1 {
			n, err := strconv.Atoi(args[1])
			if err != nil || n < 0 {
				PrintError("Error: invalid page count %q\n", args[1])
				os.Exit(1)
			}
			pages = n
		}
		cacheWarm(ctx, pages)
	default:
		fmt.Printf("Unknown cache command: %s\n", args[0])
		os.Exit(1)
	}
}

func cacheStats(ctx context.Context) {
	a := openApp(ctx, false)
	defer func() { _ = a.Close() }()

	st, err := a.Cache.Stats(ctx)
	if err != nil {
		PrintError("Error: %v\n", err)
		os.Exit(1)
	}

	if outputCfg.JSON {
		PrintResult(map[string]any{
			"entries": st.Entries,
			"stale":   st.Stale,
			"ttl":     a.Cache.TTL().String(),
		})
		return
	}
	fmt.Printf("Entries: %d\n", st.Entries)
	fmt.Printf("Stale:   %d\n", st.Stale)
	fmt.Printf("TTL:     %s\n", a.Cache.TTL())
}

func cachePurge(ctx context.Context) {
	a := openApp(ctx, false)
	defer func() { _ = a.Close() }()

	n, err := a.Cache.Purge(ctx)
	if err != nil {
		PrintError("Error: %v\n", err)
		os.Exit(1)
	}
	if outputCfg.JSON {
		PrintResult(map[string]int{"removed": n})
		return
	}
	PrintInfo("Removed %d stale entries\n", n)
}

func cacheClear(ctx context.Context) {
	a := openApp(ctx, false)
	defer func() { _ = a.Close() }()

	n, err := a.Cache.Clear(ctx)
	if err != nil {
		PrintError("Error: %v\n", err)
		os.Exit(1)
	}
	if outputCfg.JSON {
		PrintResult(map[string]int{"removed": n})
		return
	}
	PrintInfo("Removed %d entries\n", n)
}

// warmQueries lists the curated rows followed by the first library pages.
func warmQueries(now time.Time, pages int) []rawg.GameQuery {
	rows := showcase.CuratedRows(now, showcase.Options{
		PageSize:         10,
		NewReleaseWindow: cfg.UI.NewReleaseWindow,
		Genres:           cfg.GetGenreRows(),
	})

	queries := make([]rawg.GameQuery, 0, len(rows)+pages)
	for _, r := range rows {
		queries = append(queries, r.Query)
	}
	for p := 1; p <= pages; p++ {
		queries = append(queries, rawg.GameQuery{
			Page:     p,
			PageSize: cfg.GetPageSize(),
			Ordering: rawg.OrderRelevance,
		})
	}
	return queries
}

func cacheWarm(ctx context.Context, pages int) {
	a := openApp(ctx, true)
	defer func() { _ = a.Close() }()

	queries := warmQueries(time.Now(), pages)

	var bar *progressbar.ProgressBar
	if !outputCfg.Quiet && !outputCfg.JSON {
		bar = progressbar.Default(int64(len(queries)), "Warming")
	}

	ok := 0
	for _, q := range queries {
		if _, fetched := a.Client.ListGames(ctx, q); fetched {
			ok++
		}
		if bar != nil {
			_ = bar.Add(1)
		}
	}

	if outputCfg.JSON {
		PrintResult(map[string]int{"requested": len(queries), "cached": ok})
		return
	}
	PrintInfo("\nCached %d of %d queries\n", ok, len(queries))
}

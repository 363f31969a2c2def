package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/ryanm101/biblioteca/internal/catalog"
	"github.com/ryanm101/biblioteca/internal/render"
)

func handleWishlistCommand(ctx context.Context, args []string) {
	switch args[0] {
	case "list":
		listWishlist(ctx)
	case "add", "remove":
		if len(args) < 2 {
			fmt.Printf("Usage: biblioteca wishlist %s <id>\n", args[0])
			os.Exit(1)
		}
		id, err := strconv.Atoi(args[1])
		if err != nil {
			PrintError("Error: invalid game id %q\n", args[1])
			os.Exit(1)
		}
		if args[0] == "add" {
			addToWishlist(ctx, id)
		} else {
			removeFromWishlist(ctx, id)
		}
	default:
		fmt.Printf("Unknown wishlist command: %s\n", args[0])
		os.Exit(1)
	}
}

func listWishlist(ctx context.Context) {
	a := openApp(ctx, false)
	defer func() { _ = a.Close() }()

	games := a.Wishlist.GetAll(ctx)
	if outputCfg.JSON {
		PrintResult(games)
		return
	}
	if len(games) == 0 {
		PrintInfo("%s\n", render.EmptyWishlist)
		return
	}
	PrintTable([]string{"ID", "NAME", "SCORE", "GENRES", "RELEASED"}, gameRows(games))
}

func addToWishlist(ctx context.Context, id int) {
	a := openApp(ctx, false)
	defer func() { _ = a.Close() }()

	if a.Wishlist.Has(ctx, id) {
		PrintInfo("Game %d is already in the wishlist\n", id)
		return
	}

	if err := cfg.Validate(); err != nil {
		PrintError("Error: %v\n", err)
		os.Exit(2)
	}
	d := a.Client.GetGame(ctx, id)
	if d == nil {
		PrintError("%s\n", render.LoadFailText)
		os.Exit(1)
	}

	if _, err := a.Wishlist.Toggle(ctx, d.GameSummary); err != nil {
		PrintError("Error: %v\n", err)
		os.Exit(1)
	}
	report("added", d.GameSummary)
}

func removeFromWishlist(ctx context.Context, id int) {
	a := openApp(ctx, false)
	defer func() { _ = a.Close() }()

	removed, err := a.Wishlist.Remove(ctx, id)
	if err != nil {
		PrintError("Error: %v\n", err)
		os.Exit(1)
	}
	if !removed {
		PrintInfo("Game %d is not in the wishlist\n", id)
		return
	}
	report("removed", catalog.GameSummary{ID: id})
}

func report(status string, g catalog.GameSummary) {
	if outputCfg.JSON {
		PrintResult(map[string]any{"id": g.ID, "name": g.Name, "status": status})
		return
	}
	if g.Name != "" {
		PrintInfo("%s %s (%d)\n", status, g.Name, g.ID)
		return
	}
	PrintInfo("%s %d\n", status, g.ID)
}

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/ryanm101/biblioteca/internal/app"
	"github.com/ryanm101/biblioteca/internal/config"
	"github.com/ryanm101/biblioteca/internal/logging"
	"github.com/ryanm101/biblioteca/internal/tracing"
	"go.opentelemetry.io/otel/baggage"
)

var cfg *config.Config

func main() {
	ctx := context.Background()

	// Set global baggage
	m, _ := baggage.NewMember("app.version", "1.0.0")
	b, _ := baggage.New(m)
	ctx = baggage.ContextWithBaggage(ctx, b)

	// Load config
	var err error
	cfg, err = config.Load()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
		cfg = config.DefaultConfig()
	}

	// Setup Logging
	closer, err := logging.Setup(logging.Config{
		Format: cfg.Logging.Format,
		Level:  cfg.Logging.Level,
		File:   cfg.Logging.File,
	})
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	} else {
		defer func() { _ = closer.Close() }()
	}

	// Setup Tracing
	shutdown, err := tracing.Setup(ctx, tracing.DefaultConfig())
	if err != nil {
		logging.Error("failed to setup tracing", "error", err)
		shutdown = func(context.Context) error { return nil }
	}
	defer func() {
		if err := shutdown(ctx); err != nil {
			logging.Error("failed to shutdown tracing", "error", err)
		}
	}()

	// Parse global flags (--json, --quiet)
	args := parseGlobalFlags(os.Args[1:])

	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	switch args[0] {
	case "games":
		handleGamesCommand(ctx, args[1:])
	case "game":
		if len(args) < 2 {
			fmt.Println("Usage: biblioteca game <id>")
			os.Exit(1)
		}
		handleGameCommand(ctx, args[1:])
	case "genres":
		handleGenresCommand(ctx)
	case "wishlist":
		if len(args) < 2 {
			fmt.Println("Usage: biblioteca wishlist <command>")
			fmt.Println("Commands: list, add, remove")
			os.Exit(1)
		}
		handleWishlistCommand(ctx, args[1:])
	case "cache":
		if len(args) < 2 {
			fmt.Println("Usage: biblioteca cache <command>")
			fmt.Println("Commands: stats, purge, clear, warm")
			os.Exit(1)
		}
		handleCacheCommand(ctx, args[1:])
	case "contact":
		handleContactCommand(args[1:])
	case "newsletter":
		handleNewsletterCommand()
	case "config":
		handleConfigCommand(args[1:])
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", args[0])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("biblioteca - La Biblioteca Gamer")
	fmt.Println()
	fmt.Println("Usage: biblioteca [global options] <command> [options]")
	fmt.Println()
	fmt.Println("Global Options:")
	fmt.Println("  --json                              Output in JSON format")
	fmt.Println("  --quiet, -q                         Suppress non-error output")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  games [--genre g] [--search s] [--page n] [--ordering o]")
	fmt.Println("                                      List games")
	fmt.Println("  game <id>                           Show game details")
	fmt.Println("  genres                              List genres")
	fmt.Println("  wishlist list                       List saved games")
	fmt.Println("  wishlist add <id>                   Save a game")
	fmt.Println("  wishlist remove <id>                Remove a saved game")
	fmt.Println("  cache stats                         Show response cache statistics")
	fmt.Println("  cache purge                         Remove stale cache entries")
	fmt.Println("  cache clear                         Remove all cache entries")
	fmt.Println("  cache warm [pages]                  Prefetch home rows and library pages")
	fmt.Println("  contact <name> <email> <message>    Compose a contact e-mail")
	fmt.Println("  newsletter                          Open the newsletter sign-up page")
	fmt.Println("  config show                         Show active configuration")
	fmt.Println("  config init                         Initialize example config")
	fmt.Println("  help                                Show this help")
	fmt.Println()
	fmt.Println("Environment:")
	fmt.Println("  RAWG_API_KEY                        API key (may be set in .env)")
	fmt.Println("  BIBLIOTECA_DB                       Database path (default: biblioteca.db)")
}

// openApp opens storage and services. Commands that talk to the API need a key.
func openApp(ctx context.Context, needsAPI bool) *app.App {
	if needsAPI {
		if err := cfg.Validate(); err != nil {
			PrintError("Error: %v\n", err)
			os.Exit(2)
		}
	}

	a, err := app.Open(ctx, cfg)
	if err != nil {
		PrintError("Error: %v\n", err)
		os.Exit(1)
	}
	return a
}

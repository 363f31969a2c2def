// Package app wires configuration, storage and the API client into the
// services both front ends use.
package app

import (
	"context"
	"fmt"

	"github.com/ryanm101/biblioteca/internal/cache"
	"github.com/ryanm101/biblioteca/internal/config"
	"github.com/ryanm101/biblioteca/internal/db"
	"github.com/ryanm101/biblioteca/internal/kv"
	"github.com/ryanm101/biblioteca/internal/logging"
	"github.com/ryanm101/biblioteca/internal/metadata"
	"github.com/ryanm101/biblioteca/internal/metrics"
	"github.com/ryanm101/biblioteca/internal/rawg"
	"github.com/ryanm101/biblioteca/internal/wishlist"
)

// App holds the opened services.
type App struct {
	Config   *config.Config
	DB       *db.DB
	Store    kv.Store
	Cache    *cache.Cache
	Client   *rawg.Client
	Wishlist *wishlist.Store
	Details  *metadata.Service
}

// Open opens the database and builds every service from cfg.
func Open(ctx context.Context, cfg *config.Config) (*App, error) {
	database, err := db.OpenDriver(ctx, cfg.Storage.Driver, cfg.GetDBPath())
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	store := kv.NewSQLite(database.Conn(), cfg.Storage.Namespace)
	return build(ctx, cfg, database, store), nil
}

// build assembles the services over store. database may be nil.
func build(ctx context.Context, cfg *config.Config, database *db.DB, store kv.Store) *App {
	responses := cache.New(store, cache.WithTTL(cfg.GetCacheTTL()))
	client := rawg.New(cfg.API.BaseURL, cfg.API.Key,
		rawg.WithCache(responses),
		rawg.WithTimeout(cfg.API.Timeout),
		rawg.WithRateLimit(cfg.API.RequestsPerSecond),
	)

	var provider metadata.Provider
	if cfg.IGDB.Enabled() {
		p, err := metadata.NewIGDBProvider(cfg.IGDB.ClientID, cfg.IGDB.ClientSecret)
		if err != nil {
			logging.Warn("IGDB enrichment disabled", "error", err)
		} else {
			provider = p
		}
	}

	wl := wishlist.New(store)
	metrics.WishlistSize.Set(float64(wl.Count(ctx)))

	return &App{
		Config:   cfg,
		DB:       database,
		Store:    store,
		Cache:    responses,
		Client:   client,
		Wishlist: wl,
		Details:  metadata.NewService(client, provider),
	}
}

// Close releases the database.
func (a *App) Close() error {
	if a.DB == nil {
		return nil
	}
	return a.DB.Close()
}

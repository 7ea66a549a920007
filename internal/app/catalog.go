package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"

	coreconfig "github.com/m3rciful/travelbot/core/config"
	"github.com/m3rciful/travelbot/core/logger"
	"github.com/m3rciful/travelbot/internal/catalog"
)

const catalogLoadTimeout = 10 * time.Second

// loadCatalog reads cities from the configured source and validates them.
// db is only consulted for the postgres source.
func loadCatalog(ctx context.Context, cfg coreconfig.CatalogConfig, db *sqlx.DB) (*catalog.Catalog, error) {
	start := time.Now()

	var (
		cities []catalog.City
		err    error
	)
	switch cfg.Source {
	case "", coreconfig.CatalogBuiltin:
		cities = catalog.Builtin()
	case coreconfig.CatalogFile:
		cities, err = catalog.LoadFile(cfg.Path)
	case coreconfig.CatalogPostgres:
		if db == nil {
			return nil, fmt.Errorf("app: catalog source %q needs a database connection", cfg.Source)
		}
		loadCtx, cancel := context.WithTimeout(ctx, catalogLoadTimeout)
		defer cancel()
		cities, err = catalog.LoadPostgres(loadCtx, db)
	default:
		return nil, fmt.Errorf("app: unknown catalog source %q", cfg.Source)
	}
	if err != nil {
		return nil, fmt.Errorf("app: load catalog: %w", err)
	}

	cat, err := catalog.New(cities)
	if err != nil {
		return nil, fmt.Errorf("app: catalog: %w", err)
	}

	source := cfg.Source
	if source == "" {
		source = coreconfig.CatalogBuiltin
	}
	logger.Info(ctx, "app", "catalog.load",
		slog.String("status", "ok"),
		slog.String("source", source),
		slog.Int("cities", cat.Len()),
		slog.Duration("duration", time.Since(start)),
	)
	return cat, nil
}

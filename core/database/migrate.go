package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/m3rciful/travelbot/core/logger"
)

// RunMigrations applies all up migrations from cfg.MigrationsDir.
func RunMigrations(cfg Config) error {
	ctx := context.Background()
	if err := WaitForPostgres(cfg.URL(), 30*time.Second); err != nil {
		logger.LogEvent(ctx, logger.MIG, slog.LevelError, "db.migrate",
			slog.String("status", "fail"),
			slog.String("err", err.Error()),
		)
		return fmt.Errorf("database not ready: %w", err)
	}

	migrationsPath, err := resolveDir(cfg.MigrationsDir)
	if err != nil {
		return err
	}

	files := listMigrationFiles(migrationsPath)
	preview, truncated := logger.SummarizeStrings(files, 6)
	attrs := []slog.Attr{
		slog.String("source", migrationsPath),
		slog.Int("files", len(files)),
	}
	if preview != "" {
		attrs = append(attrs, slog.String("files_preview", preview))
	}
	if truncated {
		attrs = append(attrs, slog.Bool("files_truncated", true))
	}
	logger.LogEvent(ctx, logger.MIG, slog.LevelDebug, "migrate.resolve", attrs...)

	m, err := migrate.New("file://"+filepath.ToSlash(migrationsPath), cfg.URL())
	if err != nil {
		logger.LogEvent(ctx, logger.MIG, slog.LevelError, "migrate.init",
			slog.String("status", "fail"),
			slog.String("err", err.Error()),
		)
		return fmt.Errorf("failed to initialize migrations: %w", err)
	}
	defer func() { _, _ = m.Close() }()

	fromVer, _, _ := m.Version()

	start := time.Now()
	upErr := m.Up()
	took := time.Since(start)

	switch {
	case upErr == nil:
	case errors.Is(upErr, migrate.ErrNoChange):
		logger.LogEvent(ctx, logger.MIG, slog.LevelInfo, "migrate.summary",
			slog.String("status", "skip"),
			slog.Uint64("from_ver", uint64(fromVer)),
			slog.Uint64("to_ver", uint64(fromVer)),
			slog.Int("files", 0),
			slog.Duration("duration", took),
		)
		return nil
	default:
		logger.LogEvent(ctx, logger.MIG, slog.LevelError, "migrate.apply",
			slog.String("status", "fail"),
			slog.String("err", upErr.Error()),
			slog.Duration("duration", took),
		)
		return fmt.Errorf("migration execution failed: %w", upErr)
	}

	toVer, _, _ := m.Version()
	applied := selectApplied(files, uint64(fromVer), uint64(toVer))
	logger.LogEvent(ctx, logger.MIG, slog.LevelInfo, "migrate.summary",
		slog.String("status", "ok"),
		slog.Uint64("from_ver", uint64(fromVer)),
		slog.Uint64("to_ver", uint64(toVer)),
		slog.Int("files", len(applied)),
		slog.Duration("duration", took),
	)

	return nil
}

func resolveDir(dir string) (string, error) {
	if dir == "" {
		dir = "migrations"
	}
	if filepath.IsAbs(dir) {
		return dir, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	return filepath.Join(cwd, dir), nil
}

func listMigrationFiles(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if name := e.Name(); strings.HasSuffix(name, ".up.sql") {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func parseVersion(name string) uint64 {
	head, _, _ := strings.Cut(name, "_")
	v, _ := strconv.ParseUint(head, 10, 64)
	return v
}

func selectApplied(files []string, from, to uint64) []string {
	if to <= from {
		return nil
	}
	var out []string
	for _, f := range files {
		if v := parseVersion(f); v > from && v <= to {
			out = append(out, f)
		}
	}
	return out
}

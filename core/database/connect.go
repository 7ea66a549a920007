package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/m3rciful/travelbot/core/logger"
)

// Connect opens the database connection, configures the pool, and verifies connectivity.
func Connect(cfg Config) (*sqlx.DB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	start := time.Now()
	db, err := sqlx.ConnectContext(ctx, "postgres", cfg.DSN())
	took := time.Since(start)
	if err != nil {
		logger.LogEvent(ctx, logger.DB, slog.LevelError, "db.connect",
			slog.String("status", "fail"),
			slog.String("host", cfg.Host),
			slog.String("port", cfg.portOrDefault()),
			slog.String("db", cfg.Name),
			slog.Duration("duration", took),
			slog.String("err", err.Error()),
		)
		return nil, fmt.Errorf("db connect: %w", err)
	}

	maxConns := cfg.MaxConnections
	if maxConns <= 0 {
		maxConns = 2
	}
	db.SetMaxOpenConns(maxConns)
	db.SetMaxIdleConns(maxConns)

	logger.LogEvent(ctx, logger.DB, slog.LevelInfo, "db.connect",
		slog.String("status", "ok"),
		slog.String("host", cfg.Host),
		slog.String("port", cfg.portOrDefault()),
		slog.String("db", cfg.Name),
		slog.Int("pool_open", maxConns),
		slog.Duration("duration", took),
	)

	return db, nil
}

// WaitForPostgres tries to connect to the DB until it is ready or timeout is reached.
func WaitForPostgres(dsn string, timeout time.Duration) error {
	start := time.Now()
	var lastErr error
	for {
		db, err := sql.Open("postgres", dsn)
		if err == nil {
			if err = db.Ping(); err == nil {
				_ = db.Close()
				return nil
			}
			_ = db.Close()
		}
		lastErr = err
		if time.Since(start) > timeout {
			return fmt.Errorf("timeout reached waiting for database: %w", lastErr)
		}
		time.Sleep(2 * time.Second)
	}
}

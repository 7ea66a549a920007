package bootstrap

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	coreconfig "github.com/m3rciful/travelbot/core/config"
	coredatabase "github.com/m3rciful/travelbot/core/database"
	"github.com/m3rciful/travelbot/core/logger"
)

// Options control the bootstrap pipeline.
type Options struct {
	Config *coreconfig.Config

	LoggerInit func(*coreconfig.Config) error
	Connect    func(coredatabase.Config) (*sqlx.DB, error)
	Migrate    func(coredatabase.Config) error
}

// Result exposes infrastructure initialized by the bootstrap pipeline.
// DB is nil unless the configuration requires a database.
type Result struct {
	DB *sqlx.DB
}

// Close releases resources held by the result.
func (r *Result) Close() error {
	if r == nil || r.DB == nil {
		return nil
	}
	return r.DB.Close()
}

// Run initializes the logger and, when the catalog lives in Postgres,
// connects to the database and applies migrations.
func Run(opts Options) (*Result, error) {
	if opts.Config == nil {
		return nil, fmt.Errorf("bootstrap: nil config provided")
	}

	loggerInit := opts.LoggerInit
	if loggerInit == nil {
		loggerInit = logger.InitLogger
	}
	if err := loggerInit(opts.Config); err != nil {
		return nil, fmt.Errorf("bootstrap: logger init failed: %w", err)
	}

	if !opts.Config.DatabaseEnabled() {
		return &Result{}, nil
	}

	dbCfg := coredatabase.Config(opts.Config.Database)

	migrate := opts.Migrate
	if migrate == nil {
		migrate = coredatabase.RunMigrations
	}
	if err := migrate(dbCfg); err != nil {
		return nil, fmt.Errorf("bootstrap: migrations failed: %w", err)
	}

	connect := opts.Connect
	if connect == nil {
		connect = coredatabase.Connect
	}
	db, err := connect(dbCfg)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: database initialization failed: %w", err)
	}

	return &Result{DB: db}, nil
}

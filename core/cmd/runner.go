// Package cmd wires configuration loading, application bootstrap and the
// Telegram runtime into a single blocking Run call used by main packages.
package cmd

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	coreconfig "github.com/m3rciful/travelbot/core/config"
	"github.com/m3rciful/travelbot/core/logger"
	coretelegram "github.com/m3rciful/travelbot/core/telegram"
)

const defaultConfigEnvVar = "CONFIG_PATH"

// TelegramApp is the minimal interface required to run a Telegram bot.
type TelegramApp interface {
	TelegramRunOptions() (coretelegram.RunOptions, error)
}

// Options describe how to load configuration, bootstrap the app, and run the bot.
type Options struct {
	ConfigEnvVar      string
	DefaultConfigPath string

	LoadConfig func(path string) (*coreconfig.Config, error)
	Bootstrap  func(cfg *coreconfig.Config) (TelegramApp, error)

	ShutdownLogger func() error
	RunTelegram    func(ctx context.Context, opts coretelegram.RunOptions) error
	// Signals overrides the signals that stop the bot; tests use it to avoid
	// installing process-wide handlers.
	Signals []os.Signal
}

// Run loads configuration, bootstraps the Telegram app, and starts the bot runtime.
func Run(opts Options) error {
	if opts.Bootstrap == nil {
		return fmt.Errorf("cmd: Bootstrap is required")
	}
	load := opts.LoadConfig
	if load == nil {
		load = coreconfig.Load
	}

	env := opts.ConfigEnvVar
	if env == "" {
		env = defaultConfigEnvVar
	}
	cfgPath := os.Getenv(env)
	if cfgPath == "" {
		cfgPath = opts.DefaultConfigPath
	}

	log.Printf("loading config: %q", cfgPath)
	cfg, err := load(cfgPath)
	if err != nil {
		return fmt.Errorf("cmd: failed to load config: %w", err)
	}
	if cfg == nil {
		return fmt.Errorf("cmd: loaded config is nil")
	}

	shutdownLogger := opts.ShutdownLogger
	if shutdownLogger == nil {
		shutdownLogger = logger.Shutdown
	}
	defer func() {
		if err := shutdownLogger(); err != nil {
			log.Printf("logger shutdown error: %v", err)
		}
	}()

	application, err := opts.Bootstrap(cfg)
	if err != nil {
		return fmt.Errorf("cmd: bootstrap failed: %w", err)
	}

	runOpts, err := application.TelegramRunOptions()
	if err != nil {
		return fmt.Errorf("cmd: telegram options build failed: %w", err)
	}
	if runOpts.Config == nil {
		runOpts.Config = cfg
	}

	startedAt := time.Now()
	prevStart := runOpts.OnStart
	runOpts.OnStart = func(ctx context.Context, rt coretelegram.Runtime) error {
		if prevStart != nil {
			if err := prevStart(ctx, rt); err != nil {
				return err
			}
		}
		logger.Info(ctx, "app", "ready",
			slog.String("status", "ok"),
			slog.Duration("duration", time.Since(startedAt)),
		)
		return nil
	}

	prevStop := runOpts.OnStop
	runOpts.OnStop = func(ctx context.Context, rt coretelegram.Runtime) error {
		logger.Info(ctx, "app", "shutdown")
		if prevStop != nil {
			return prevStop(ctx, rt)
		}
		return nil
	}

	signals := opts.Signals
	if len(signals) == 0 {
		signals = []os.Signal{os.Interrupt, syscall.SIGTERM}
	}
	ctx, cancel := signal.NotifyContext(context.Background(), signals...)
	defer cancel()

	run := opts.RunTelegram
	if run == nil {
		run = coretelegram.RunTelegram
	}
	return run(ctx, runOpts)
}

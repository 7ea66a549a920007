package logger

import (
	"context"
	"errors"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/m3rciful/travelbot/core/buildinfo"
	coreconfig "github.com/m3rciful/travelbot/core/config"
)

var (
	initOnce   sync.Once
	shutdownMu sync.Mutex
	shutdowned bool

	logWriter  *asyncWriter
	logClosers []io.Closer

	levelVar slog.LevelVar

	debugSampler  = newRatioSampler(1, 50)
	traceOverride bool

	// L is the base logger. It discards output until InitLogger runs.
	L = slog.New(slog.NewTextHandler(io.Discard, nil))

	// DB logs database connection events.
	DB = L
	// MIG logs database migration events.
	MIG = L
	// TG logs Telegram transport events.
	TG = L
	// TWire logs Telegram wiring steps.
	TWire = L
)

// InitLogger configures the global structured logger. Calls after the first are no-ops.
func InitLogger(cfg *coreconfig.Config) error {
	initOnce.Do(func() {
		format := selectFormat(cfg)
		order := selectKeyOrder(cfg)
		levelVar.Set(selectLevel(cfg))

		num, den := parseDebugSample(cfg)
		debugSampler.Set(num, den)
		traceOverride = isTruthy(os.Getenv("TRACE")) || isTruthy(os.Getenv("LOG_TRACE"))

		outputs, closers := buildOutputs(cfg)
		logClosers = closers
		logWriter = newAsyncWriter(outputs, 64*1024)

		handler := newStructuredHandler(handlerConfig{
			level:    &levelVar,
			writer:   logWriter,
			format:   format,
			keyOrder: order,
		})

		L = slog.New(handler)
		slog.SetDefault(L)

		DB = L.With("component", "db")
		MIG = L.With("component", "db.migrate")
		TG = L.With("component", "tg")
		TWire = L.With("component", "tg.wire")

		logStartup(cfg)
	})
	return nil
}

func logStartup(cfg *coreconfig.Config) {
	attrs := []slog.Attr{
		slog.String("component", "app"),
		slog.String("go_version", runtime.Version()),
		slog.String("build_version", buildinfo.Version),
		slog.String("build_commit", buildinfo.Commit),
		slog.String("build_time", buildinfo.Date),
		slog.String("cfg_profile", selectProfile(cfg)),
	}
	if cfg != nil {
		attrs = append(attrs,
			slog.String("mode", cfg.Telegram.RunMode),
			slog.String("catalog_source", cfg.Catalog.Source),
		)
	}
	LogEvent(context.Background(), L, slog.LevelInfo, "startup", attrs...)
}

// Shutdown flushes buffered log output and closes opened sinks.
func Shutdown() error {
	shutdownMu.Lock()
	defer shutdownMu.Unlock()
	if shutdowned {
		return nil
	}
	shutdowned = true

	var errs []error
	if logWriter != nil {
		if err := logWriter.Flush(); err != nil {
			errs = append(errs, err)
		}
		if err := logWriter.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	for _, c := range logClosers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func selectFormat(cfg *coreconfig.Config) logFormat {
	if cfg == nil {
		return formatJSON
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Logging.Format)) {
	case "kv", "text", "pretty":
		return formatKV
	case "json":
		return formatJSON
	}
	if p := strings.ToLower(cfg.Logging.Profile); p == "debug" || p == "dev" {
		return formatKV
	}
	return formatJSON
}

func selectKeyOrder(cfg *coreconfig.Config) []string {
	if cfg == nil {
		return append([]string(nil), defaultKeyOrder...)
	}
	raw := strings.TrimSpace(cfg.Logging.KeysOrder)
	if raw == "" || raw == "default" {
		return append([]string(nil), defaultKeyOrder...)
	}
	var order []string
	for _, p := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			order = append(order, trimmed)
		}
	}
	if len(order) == 0 {
		return append([]string(nil), defaultKeyOrder...)
	}
	return order
}

func selectLevel(cfg *coreconfig.Config) slog.Level {
	if cfg == nil {
		return slog.LevelInfo
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Logging.Level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func buildOutputs(cfg *coreconfig.Config) ([]io.Writer, []io.Closer) {
	writers := []io.Writer{os.Stdout}
	if cfg == nil {
		return writers, nil
	}
	dir := strings.TrimSpace(cfg.Logging.Dir)
	file := strings.TrimSpace(cfg.Logging.BotFile)
	if dir == "" || file == "" {
		return writers, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Printf("logger: failed to create log dir %s: %v", dir, err)
		return writers, nil
	}
	path := filepath.Join(dir, file)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.Printf("logger: failed to open log file %s: %v", path, err)
		return writers, nil
	}
	return append(writers, f), []io.Closer{f}
}

func selectProfile(cfg *coreconfig.Config) string {
	if cfg == nil {
		return ""
	}
	if profile := strings.TrimSpace(cfg.Logging.Profile); profile != "" {
		return strings.ToLower(profile)
	}
	return "prod"
}

func parseDebugSample(cfg *coreconfig.Config) (int, int) {
	if cfg == nil || strings.TrimSpace(cfg.Logging.DebugSample) == "" {
		return 1, 50
	}
	num, den := parseRatioSpec(cfg.Logging.DebugSample)
	if num == 0 && den == 0 {
		return 0, 0
	}
	if num <= 0 || den <= 0 {
		return 1, 50
	}
	return num, den
}

func isTruthy(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}

// ShouldSampleDebug reports whether debug-level details should be logged for high-volume events.
func ShouldSampleDebug() bool {
	if traceOverride {
		return true
	}
	return debugSampler.Allow()
}

// LogEvent logs attrs with a leading event attribute through logg,
// falling back to the context logger and then to L.
func LogEvent(ctx context.Context, logg *slog.Logger, level slog.Level, event string, attrs ...slog.Attr) {
	if logg == nil {
		logg = FromContext(ctx)
	}
	if event != "" {
		attrs = append([]slog.Attr{slog.String("event", event)}, attrs...)
	}
	logg.LogAttrs(ctx, level, "", attrs...)
}

// Component constructs a logger scoped to the provided component attribute.
func Component(name string) *slog.Logger {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return L
	}
	return L.With("component", trimmed)
}

// Event logs with component scope resolved automatically.
func Event(ctx context.Context, component string, level slog.Level, event string, attrs ...slog.Attr) {
	LogEvent(ctx, Component(component), level, event, attrs...)
}

// Debug logs a debug-level event for the given component.
func Debug(ctx context.Context, component, event string, attrs ...slog.Attr) {
	Event(ctx, component, slog.LevelDebug, event, attrs...)
}

// Info logs an info-level event for the given component.
func Info(ctx context.Context, component, event string, attrs ...slog.Attr) {
	Event(ctx, component, slog.LevelInfo, event, attrs...)
}

// Warn logs a warn-level event for the given component.
func Warn(ctx context.Context, component, event string, attrs ...slog.Attr) {
	Event(ctx, component, slog.LevelWarn, event, attrs...)
}

// Error logs an error-level event for the given component.
func Error(ctx context.Context, component, event string, attrs ...slog.Attr) {
	Event(ctx, component, slog.LevelError, event, attrs...)
}

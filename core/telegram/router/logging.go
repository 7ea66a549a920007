package router

import (
	"errors"
	"log/slog"
	"reflect"
	"strings"
	"time"

	"github.com/m3rciful/travelbot/core/logger"
	tghelpers "github.com/m3rciful/travelbot/core/telegram/helpers"
	"github.com/m3rciful/travelbot/core/telegram/middleware"

	tele "gopkg.in/telebot.v4"
)

// RuleKey is the tele.Context key a handler may set to name the domain rule it ran.
const RuleKey = "rule"

// StatusKey lets a handler override the summary status, e.g. "skip".
const StatusKey = "handler_status"

func handleWithSummary(c tele.Context, handlerName string, start time.Time, fn func() error, extras ...slog.Attr) error {
	tghelpers.WithHandler(c, handlerName)
	err := fn()
	logHandlerSummary(c, handlerName, start, err, extras...)
	return err
}

func logHandlerSummary(c tele.Context, handlerName string, start time.Time, err error, extras ...slog.Attr) {
	ctx := tghelpers.WithHandler(c, handlerName)
	counters := middleware.GetCounters(c)

	status, outcome := "ok", "ok"
	if override, _ := c.Get(StatusKey).(string); override != "" {
		status = override
	}
	if err != nil {
		status, outcome = "fail", "fail"
		if counters.Messages > 0 {
			outcome = "notice"
		}
	}

	attrs := []slog.Attr{
		slog.String("status", status),
		slog.String("handler", handlerName),
	}
	if rule, _ := c.Get(RuleKey).(string); rule != "" {
		attrs = append(attrs, slog.String("rule", rule))
	}
	attrs = append(attrs,
		slog.String("outcome", outcome),
		slog.Duration("duration", time.Since(start)),
		slog.Int("messages", counters.Messages),
		slog.Int("photos", counters.Photos),
		slog.Bool("kb", counters.Keyboard),
	)
	if err != nil {
		attrs = append(attrs,
			slog.String("err", logger.SanitizeLimit(err.Error(), 256)),
			slog.String("err_code", deriveErrorCode(err)),
			slog.String("cause", handlerName),
		)
	}
	attrs = append(attrs, extras...)

	level := slog.LevelInfo
	if err != nil {
		level = slog.LevelWarn
	}
	logger.LogEvent(ctx, logger.Component("tg"), level, "handler.handled", attrs...)
}

func normalizeHandlerName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "unknown"
	}
	name = strings.TrimPrefix(name, "/")
	name = strings.ReplaceAll(name, " ", "_")
	return strings.ToLower(name)
}

func deriveErrorCode(err error) string {
	if err == nil {
		return ""
	}
	type coder interface{ Code() string }
	var c coder
	if errors.As(err, &c) {
		if code := strings.TrimSpace(c.Code()); code != "" {
			return strings.ToUpper(strings.ReplaceAll(code, " ", "_"))
		}
	}
	t := reflect.TypeOf(err)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t != nil && t.Name() != "" {
		return strings.ToUpper(t.Name())
	}
	return "UNKNOWN_ERROR"
}

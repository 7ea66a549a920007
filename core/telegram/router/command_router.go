package router

import (
	"context"
	"log/slog"
	"time"

	"github.com/m3rciful/travelbot/core/logger"
	tg "github.com/m3rciful/travelbot/core/telegram"

	tele "gopkg.in/telebot.v4"
)

// CommandRoutes binds every registered command and its aliases to a handler
// that logs a per-update summary.
func CommandRoutes(reg *tg.Registry) []tg.Route {
	if reg == nil {
		return nil
	}

	routes := make([]tg.Route, 0, len(reg.Commands()))
	for cmd, def := range reg.Commands() {
		name := normalizeHandlerName(cmd)
		h := def.Handler
		handler := func(c tele.Context) error {
			return handleWithSummary(c, name, time.Now(), func() error { return h(c) })
		}
		routes = append(routes, tg.Route{Endpoint: cmd, Handler: handler})
		for _, alias := range def.Aliases {
			if alias == "" {
				continue
			}
			if alias[0] != '/' {
				alias = "/" + alias
			}
			routes = append(routes, tg.Route{Endpoint: alias, Handler: handler})
		}
	}

	logger.LogEvent(context.Background(), logger.TWire, slog.LevelInfo, "wire.commands",
		slog.String("status", "ok"),
		slog.Int("commands", len(reg.Commands())),
	)

	return routes
}

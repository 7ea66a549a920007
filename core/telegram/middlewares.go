package telegram

import (
	"github.com/m3rciful/travelbot/core/telegram/middleware"

	tele "gopkg.in/telebot.v4"
)

// DefaultMiddlewares builds the shared middleware chain: panic recovery
// (optionally notifying the chat), update logging, and message metrics.
func DefaultMiddlewares(onPanic func(c tele.Context, recovered any)) []Middleware {
	return []Middleware{
		{Name: "recover", Use: middleware.RecoverWith(middleware.RecoverOptions{OnPanic: onPanic})},
		{Name: "logger", Use: middleware.LoggerMiddleware},
		{Name: "metrics", Use: middleware.MessageMetricsMiddleware},
	}
}

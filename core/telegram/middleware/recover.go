package middleware

import (
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/m3rciful/travelbot/core/logger"
	tghelpers "github.com/m3rciful/travelbot/core/telegram/helpers"

	tele "gopkg.in/telebot.v4"
)

// RecoverOptions customises RecoverWith.
type RecoverOptions struct {
	// OnPanic runs after the panic is logged, typically to notify the chat.
	OnPanic func(c tele.Context, recovered any)
}

// RecoverMiddleware catches panics in handlers and prevents the bot from crashing.
func RecoverMiddleware(next tele.HandlerFunc) tele.HandlerFunc {
	return RecoverWith(RecoverOptions{})(next)
}

// RecoverWith returns a recover middleware that also invokes opts.OnPanic.
func RecoverWith(opts RecoverOptions) func(tele.HandlerFunc) tele.HandlerFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				ctx := tghelpers.BuildContext(c)
				logger.LogEvent(ctx, logger.TG, slog.LevelError, "tg.panic",
					slog.String("status", "fail"),
					slog.String("err", fmt.Sprint(r)),
					slog.String("stack", string(debug.Stack())),
				)
				if opts.OnPanic != nil {
					opts.OnPanic(c, r)
				}
				err = fmt.Errorf("telegram: handler panic: %v", r)
			}()
			return next(c)
		}
	}
}

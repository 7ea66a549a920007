package middleware

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/m3rciful/travelbot/core/logger"
	tghelpers "github.com/m3rciful/travelbot/core/telegram/helpers"

	tele "gopkg.in/telebot.v4"
)

// recentUpdates keeps a short-lived set of processed update IDs to avoid double logging.
var (
	recentMu     sync.Mutex
	recentUpdate = make(map[int]time.Time)
	keepFor      = 10 * time.Second
)

func alreadyLogged(updateID int) bool {
	now := time.Now()
	recentMu.Lock()
	defer recentMu.Unlock()
	for id, ts := range recentUpdate {
		if now.Sub(ts) > keepFor {
			delete(recentUpdate, id)
		}
	}
	if _, ok := recentUpdate[updateID]; ok {
		return true
	}
	recentUpdate[updateID] = now
	return false
}

// LoggerMiddleware sets the request id for the update and logs a single
// sampled receipt line per update id.
func LoggerMiddleware(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		upd := c.Update()
		user := c.Sender()
		chat := c.Chat()

		var chatID, userID int64
		if chat != nil {
			chatID = chat.ID
		}
		if user != nil {
			userID = user.ID
		}
		rid := logger.BuildRID(upd.ID, chatID, userID)
		c.Set("rid", rid)
		c.Set("update_start", time.Now())

		ctx := logger.WithRID(context.Background(), rid)
		ctx = logger.WithUpdateMeta(ctx, upd.ID, userID, chatID)
		ctx = logger.WithLogger(ctx, logger.Component("tg"))
		tghelpers.StoreContext(c, ctx)

		if logger.ShouldSampleDebug() && !alreadyLogged(upd.ID) {
			attrs := []slog.Attr{slog.String("status", "ok")}
			if chat != nil {
				attrs = append(attrs, slog.String("chat_type", string(chat.Type)))
			}
			if user != nil && user.LanguageCode != "" {
				attrs = append(attrs, slog.String("lang", user.LanguageCode))
			}
			if msg := upd.Message; msg != nil {
				attrs = append(attrs, slog.String("kind", messageKind(msg)))
				if t := c.Text(); t != "" {
					attrs = append(attrs, slog.String("payload", logger.SanitizeLimit(t, 256)))
				}
			}
			logger.LogEvent(ctx, logger.Component("tg"), slog.LevelDebug, "update.received", attrs...)
		}

		return next(c)
	}
}

func messageKind(msg *tele.Message) string {
	switch {
	case msg.Photo != nil:
		return "photo"
	case msg.Text != "":
		return "text"
	case msg.Document != nil:
		return "document"
	case msg.Sticker != nil:
		return "sticker"
	default:
		return "other"
	}
}

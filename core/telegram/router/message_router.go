package router

import (
	"time"

	tg "github.com/m3rciful/travelbot/core/telegram"

	tele "gopkg.in/telebot.v4"
)

// MessageOptions holds handlers for plain message content.
// A nil handler leaves that content type unhandled but still summarised.
type MessageOptions struct {
	OnText  tele.HandlerFunc
	OnPhoto tele.HandlerFunc
}

// MessageRoutes builds routes for text and photo messages, plus a logged
// skip for documents, which the bot does not answer.
func MessageRoutes(opts MessageOptions) []tg.Route {
	return []tg.Route{
		{Endpoint: tele.OnText, Handler: summarised("text", opts.OnText)},
		{Endpoint: tele.OnPhoto, Handler: summarised("photo", opts.OnPhoto)},
		{Endpoint: tele.OnDocument, Handler: summarised("unexpected_document", nil)},
	}
}

func summarised(name string, h tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		start := time.Now()
		if h == nil {
			c.Set(StatusKey, "skip")
			logHandlerSummary(c, name, start, nil)
			return nil
		}
		return handleWithSummary(c, name, start, func() error { return h(c) })
	}
}

package helpers

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/m3rciful/travelbot/core/telegram/sender"

	tele "gopkg.in/telebot.v4"
)

var globalDispatcher atomic.Pointer[sender.Dispatcher]

// SetDispatcher wires the outbound worker pool used by the send helpers.
func SetDispatcher(d *sender.Dispatcher) {
	globalDispatcher.Store(d)
}

func currentDispatcher() *sender.Dispatcher {
	return globalDispatcher.Load()
}

// sendSync runs run on the dispatcher and waits for it, so sends of one update
// stay ordered. Without a dispatcher it runs inline.
func sendSync(ctx context.Context, action, endpoint string, run func() error) error {
	disp := currentDispatcher()
	if disp == nil {
		return run()
	}
	return disp.Do(ctx, action, endpoint, run)
}

// SendText sends plain text to the chat of the update, with an optional reply keyboard.
func SendText(ctx context.Context, c tele.Context, text string, markup *tele.ReplyMarkup) error {
	if text == "" {
		return errors.New("telegram: empty text")
	}
	return sendSync(ctx, "send_text", "sendMessage", func() error {
		if markup != nil {
			return c.Send(text, markup)
		}
		return c.Send(text)
	})
}

// SendPhoto sends a photo to the chat of the update. file is called on every
// attempt so readers are never reused across retries.
func SendPhoto(ctx context.Context, c tele.Context, file func() tele.File, caption string) error {
	if file == nil {
		return errors.New("telegram: nil photo file")
	}
	return sendSync(ctx, "send_photo", "sendPhoto", func() error {
		return c.Send(&tele.Photo{File: file(), Caption: caption})
	})
}

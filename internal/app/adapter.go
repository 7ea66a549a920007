package app

import (
	"bytes"
	"context"
	"fmt"

	tghelpers "github.com/m3rciful/travelbot/core/telegram/helpers"
	"github.com/m3rciful/travelbot/core/telegram/keyboard"
	"github.com/m3rciful/travelbot/internal/bot"
	"github.com/m3rciful/travelbot/internal/menu"
	"github.com/m3rciful/travelbot/internal/photo"

	tele "gopkg.in/telebot.v4"
)

// messageFrom converts an update into the transport-neutral message the
// dispatcher understands.
func messageFrom(c tele.Context) bot.Message {
	var msg bot.Message
	if chat := c.Chat(); chat != nil {
		msg.ChatID = chat.ID
	}
	if user := c.Sender(); user != nil {
		msg.SenderName = user.FirstName
	}

	m := c.Message()
	switch {
	case m == nil:
		msg.Kind = bot.KindOther
	case m.Photo != nil:
		msg.Kind = bot.KindPhoto
		msg.Text = m.Caption
	case m.Text != "":
		msg.Kind = bot.KindText
		msg.Text = m.Text
	default:
		msg.Kind = bot.KindOther
	}
	return msg
}

// teleSender answers within the chat of a single update.
type teleSender struct {
	c tele.Context
}

func (s teleSender) chatMatches(chatID int64) error {
	chat := s.c.Chat()
	if chat == nil || chat.ID != chatID {
		return fmt.Errorf("app: reply to chat %d outside of the current update", chatID)
	}
	return nil
}

func (s teleSender) SendText(ctx context.Context, chatID int64, text string, kb menu.Keyboard) error {
	if err := s.chatMatches(chatID); err != nil {
		return err
	}
	var markup *tele.ReplyMarkup
	if kb != nil {
		markup = keyboard.ReplyButtons(kb...)
	}
	return tghelpers.SendText(ctx, s.c, text, markup)
}

func (s teleSender) SendPhoto(ctx context.Context, chatID int64, src photo.Source, caption string) error {
	if err := s.chatMatches(chatID); err != nil {
		return err
	}
	var file func() tele.File
	switch {
	case len(src.Data) > 0:
		data := src.Data
		file = func() tele.File { return tele.FromReader(bytes.NewReader(data)) }
	case src.URL != "":
		file = func() tele.File { return tele.FromURL(src.URL) }
	default:
		return fmt.Errorf("app: empty photo source")
	}
	return tghelpers.SendPhoto(ctx, s.c, file, caption)
}

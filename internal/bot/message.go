// Package bot implements the travel informer conversation: an ordered list of
// rules mapping incoming messages onto handlers.
package bot

import (
	"context"

	"github.com/m3rciful/travelbot/internal/menu"
	"github.com/m3rciful/travelbot/internal/photo"
	"github.com/m3rciful/travelbot/internal/weather"
)

// Kind is the content type of an incoming message.
type Kind int

const (
	KindOther Kind = iota
	KindText
	KindPhoto
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindPhoto:
		return "photo"
	default:
		return "other"
	}
}

// Message is a transport-neutral inbound message.
type Message struct {
	ChatID     int64
	Text       string
	Kind       Kind
	SenderName string
}

// Sender delivers outbound messages. A nil keyboard leaves the current one in place.
type Sender interface {
	SendText(ctx context.Context, chatID int64, text string, kb menu.Keyboard) error
	SendPhoto(ctx context.Context, chatID int64, src photo.Source, caption string) error
}

// WeatherProvider returns current conditions for a city.
type WeatherProvider interface {
	Current(ctx context.Context, city string) (weather.Report, error)
}

// PhotoFetcher downloads a photo for upload as bytes.
type PhotoFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

package bot

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/m3rciful/travelbot/core/logger"
	"github.com/m3rciful/travelbot/internal/catalog"
	"github.com/m3rciful/travelbot/internal/menu"
	"github.com/m3rciful/travelbot/internal/photo"
	"github.com/m3rciful/travelbot/internal/session"
	"github.com/m3rciful/travelbot/internal/weather"
)

// Deps are the collaborators shared by all handlers.
type Deps struct {
	Catalog   *catalog.Catalog
	Sessions  session.Store
	Weather   WeatherProvider
	Photos    PhotoFetcher
	Reactions *Reactions
}

// Handlers implements every conversation step. Methods have the HandlerFunc shape.
type Handlers struct {
	catalog   *catalog.Catalog
	sessions  session.Store
	weather   WeatherProvider
	photos    PhotoFetcher
	reactions *Reactions
	log       *slog.Logger
}

// NewHandlers validates deps. A nil session store or reaction picker gets a default.
func NewHandlers(d Deps) (*Handlers, error) {
	switch {
	case d.Catalog == nil:
		return nil, errors.New("bot: catalog is required")
	case d.Weather == nil:
		return nil, errors.New("bot: weather provider is required")
	case d.Photos == nil:
		return nil, errors.New("bot: photo fetcher is required")
	}
	if d.Sessions == nil {
		d.Sessions = session.NewMemoryStore()
	}
	if d.Reactions == nil {
		d.Reactions = NewReactions(rand64())
	}
	return &Handlers{
		catalog:   d.Catalog,
		sessions:  d.Sessions,
		weather:   d.Weather,
		photos:    d.Photos,
		reactions: d.Reactions,
		log:       logger.Component("bot"),
	}, nil
}

// Start greets the sender and shows the city list.
func (h *Handlers) Start(ctx context.Context, req Request, out Sender) error {
	return out.SendText(ctx, req.ChatID, welcomeText(req.SenderName), h.citiesKeyboard())
}

// Help lists every city and shows the city list.
func (h *Handlers) Help(ctx context.Context, req Request, out Sender) error {
	return out.SendText(ctx, req.ChatID, helpText(h.catalog.Names()), h.citiesKeyboard())
}

// Bye says goodbye without a keyboard.
func (h *Handlers) Bye(ctx context.Context, req Request, out Sender) error {
	return out.SendText(ctx, req.ChatID, textBye, nil)
}

// ChangeCity shows the city list again.
func (h *Handlers) ChangeCity(ctx context.Context, req Request, out Sender) error {
	return out.SendText(ctx, req.ChatID, textChooseCity, h.citiesKeyboard())
}

// SelectCity stores req.Arg, the canonical city name resolved by the matching rule.
func (h *Handlers) SelectCity(ctx context.Context, req Request, out Sender) error {
	h.sessions.Set(req.ChatID, req.Arg)
	logger.LogEvent(ctx, h.log, slog.LevelDebug, "session.set", slog.String("city", req.Arg))
	return out.SendText(ctx, req.ChatID, selectedText(req.Arg), menu.CityActions())
}

// Info sends the reference card of the selected city.
func (h *Handlers) Info(ctx context.Context, req Request, out Sender) error {
	city, ok := h.selectedCity(req.ChatID)
	if !ok {
		return h.requireCity(ctx, req, out)
	}
	return out.SendText(ctx, req.ChatID, infoText(city), nil)
}

// Photo delivers every photo of the selected city, by URL first and by
// download when the messenger rejects the URL.
func (h *Handlers) Photo(ctx context.Context, req Request, out Sender) error {
	city, ok := h.selectedCity(req.ChatID)
	if !ok {
		return h.requireCity(ctx, req, out)
	}
	if err := out.SendText(ctx, req.ChatID, textLoadingPhotos, nil); err != nil {
		return err
	}

	var delivered, fallback, failed int
	for _, u := range city.PhotoURLs {
		o := h.deliverPhoto(ctx, req.ChatID, city.Name, u, out)
		switch o.Status {
		case photo.Delivered:
			delivered++
		case photo.FallbackDelivered:
			fallback++
		default:
			failed++
			logger.LogEvent(ctx, h.log, slog.LevelWarn, "photo.deliver",
				slog.String("status", "fail"),
				slog.String("city", city.Name),
				slog.String("url", logger.SanitizeLimit(u, 256)),
				slog.String("err", logger.SanitizeLimit(o.Err.Error(), 256)),
			)
		}
	}

	status := "ok"
	if failed > 0 {
		status = "fail"
	}
	logger.LogEvent(ctx, h.log, slog.LevelInfo, "photo.summary",
		slog.String("status", status),
		slog.String("city", city.Name),
		slog.Int("photos", len(city.PhotoURLs)),
		slog.Int("delivered", delivered),
		slog.Int("fallback", fallback),
		slog.Int("failed", failed),
	)

	if delivered+fallback == 0 {
		return out.SendText(ctx, req.ChatID, textPhotosFailed, nil)
	}
	return nil
}

func (h *Handlers) deliverPhoto(ctx context.Context, chatID int64, city, u string, out Sender) photo.Outcome {
	caption := photoCaption(city, u)
	sendErr := out.SendPhoto(ctx, chatID, photo.FromURL(u), caption)
	if sendErr == nil {
		return photo.Outcome{URL: u, Status: photo.Delivered}
	}

	data, err := h.photos.Fetch(ctx, u)
	if err != nil {
		return photo.Outcome{URL: u, Status: photo.Failed, Err: errors.Join(sendErr, err)}
	}
	if err := out.SendPhoto(ctx, chatID, photo.FromBytes(data), caption); err != nil {
		return photo.Outcome{URL: u, Status: photo.Failed, Err: errors.Join(sendErr, err)}
	}
	return photo.Outcome{URL: u, Status: photo.FallbackDelivered}
}

// Weather reports current conditions for the selected city. Provider failures
// are answered with a classified notice and are not returned.
func (h *Handlers) Weather(ctx context.Context, req Request, out Sender) error {
	city, ok := h.selectedCity(req.ChatID)
	if !ok {
		return h.requireCity(ctx, req, out)
	}

	report, err := h.weather.Current(ctx, city.Name)
	if err != nil {
		return out.SendText(ctx, req.ChatID, weatherErrorText(err), nil)
	}
	return out.SendText(ctx, req.ChatID, weatherText(city.Name, report), nil)
}

func weatherErrorText(err error) string {
	switch {
	case errors.Is(err, weather.ErrUnavailable):
		return textWeatherOffline
	case errors.Is(err, weather.ErrBadResponse):
		return textWeatherBadData
	default:
		return textUnknownError
	}
}

// PhotoReaction answers a user photo with distinct phrases, one per line.
func (h *Handlers) PhotoReaction(ctx context.Context, req Request, out Sender) error {
	return out.SendText(ctx, req.ChatID, strings.Join(h.reactions.Pick(reactionCount), "\n"), nil)
}

// NotFound answers text that matched no other rule.
func (h *Handlers) NotFound(ctx context.Context, req Request, out Sender) error {
	return out.SendText(ctx, req.ChatID, notFoundText(req.Text), h.citiesKeyboard())
}

func (h *Handlers) selectedCity(chatID int64) (catalog.City, bool) {
	name, ok := h.sessions.Get(chatID)
	if !ok {
		return catalog.City{}, false
	}
	return h.catalog.Lookup(name)
}

func (h *Handlers) requireCity(ctx context.Context, req Request, out Sender) error {
	if err := out.SendText(ctx, req.ChatID, textSelectCityFirst, nil); err != nil {
		return err
	}
	return h.Help(ctx, req, out)
}

func (h *Handlers) citiesKeyboard() menu.Keyboard {
	return menu.Cities(h.catalog.Names())
}

package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/m3rciful/travelbot/core/bootstrap"
	coreconfig "github.com/m3rciful/travelbot/core/config"
	tg "github.com/m3rciful/travelbot/core/telegram"
	"github.com/m3rciful/travelbot/core/telegram/keyboard"
	"github.com/m3rciful/travelbot/core/telegram/router"
	"github.com/m3rciful/travelbot/internal/bot"
	"github.com/m3rciful/travelbot/internal/menu"
	"github.com/m3rciful/travelbot/internal/photo"
	"github.com/m3rciful/travelbot/internal/weather"

	tele "gopkg.in/telebot.v4"
)

type outgoing struct {
	what any
	opts []any
}

type stubContext struct {
	tele.Context
	chat  *tele.Chat
	user  *tele.User
	msg   *tele.Message
	store map[string]any
	sent  []outgoing
	err   error
}

func newStubContext(chatID int64, msg *tele.Message) *stubContext {
	return &stubContext{
		chat:  &tele.Chat{ID: chatID},
		user:  &tele.User{ID: 7, FirstName: "Анна"},
		msg:   msg,
		store: map[string]any{},
	}
}

func (s *stubContext) Update() tele.Update    { return tele.Update{ID: 1, Message: s.msg} }
func (s *stubContext) Chat() *tele.Chat       { return s.chat }
func (s *stubContext) Sender() *tele.User     { return s.user }
func (s *stubContext) Message() *tele.Message { return s.msg }
func (s *stubContext) Get(key string) any     { return s.store[key] }
func (s *stubContext) Set(key string, v any)  { s.store[key] = v }

func (s *stubContext) Send(what any, opts ...any) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, outgoing{what: what, opts: opts})
	return nil
}

func (s *stubContext) texts() []string {
	var out []string
	for _, o := range s.sent {
		if text, ok := o.what.(string); ok {
			out = append(out, text)
		}
	}
	return out
}

type stubWeather struct{}

func (stubWeather) Current(context.Context, string) (weather.Report, error) {
	return weather.Report{LocalTime: "2024-05-01 12:00", TempC: "18", TempF: "64.4", Condition: "Ясно"}, nil
}

type stubFetcher struct{}

func (stubFetcher) Fetch(context.Context, string) ([]byte, error) {
	return nil, errors.New("offline")
}

func newTestApp(t *testing.T, cfg *coreconfig.Config) *App {
	t.Helper()
	if cfg == nil {
		cfg = &coreconfig.Config{}
	}
	a, err := New(cfg, Deps{Weather: stubWeather{}, Photos: stubFetcher{}})
	require.NoError(t, err)
	return a
}

func TestMessageFrom(t *testing.T) {
	msg := messageFrom(newStubContext(10, &tele.Message{Text: "Париж"}))
	require.Equal(t, bot.Message{ChatID: 10, Text: "Париж", Kind: bot.KindText, SenderName: "Анна"}, msg)

	msg = messageFrom(newStubContext(10, &tele.Message{Photo: &tele.Photo{}, Caption: "море"}))
	require.Equal(t, bot.KindPhoto, msg.Kind)

	msg = messageFrom(newStubContext(10, &tele.Message{Sticker: &tele.Sticker{}}))
	require.Equal(t, bot.KindOther, msg.Kind)

	msg = messageFrom(newStubContext(10, nil))
	require.Equal(t, bot.KindOther, msg.Kind)
}

func TestTeleSenderRejectsOtherChats(t *testing.T) {
	c := newStubContext(10, &tele.Message{Text: "hi"})
	s := teleSender{c: c}

	require.Error(t, s.SendText(context.Background(), 11, "hello", nil))
	require.Error(t, s.SendPhoto(context.Background(), 11, photo.FromURL("https://example.com/a.jpg"), ""))
	require.Empty(t, c.sent)
}

func TestTeleSenderText(t *testing.T) {
	c := newStubContext(10, &tele.Message{Text: "hi"})
	s := teleSender{c: c}

	require.NoError(t, s.SendText(context.Background(), 10, "plain", nil))
	require.NoError(t, s.SendText(context.Background(), 10, "with kb", menu.CityActions()))
	require.Len(t, c.sent, 2)
	require.Empty(t, c.sent[0].opts)

	require.Len(t, c.sent[1].opts, 1)
	markup, ok := c.sent[1].opts[0].(*tele.ReplyMarkup)
	require.True(t, ok)
	require.Equal(t, [][]string(menu.CityActions()), keyboard.Labels(markup))
}

func TestTeleSenderPhotoSources(t *testing.T) {
	c := newStubContext(10, &tele.Message{Text: "hi"})
	s := teleSender{c: c}

	require.NoError(t, s.SendPhoto(context.Background(), 10, photo.FromURL("https://example.com/a.jpg"), "url"))
	require.NoError(t, s.SendPhoto(context.Background(), 10, photo.FromBytes([]byte{1, 2, 3}), "bytes"))
	require.Error(t, s.SendPhoto(context.Background(), 10, photo.Source{}, "empty"))
	require.Len(t, c.sent, 2)

	byURL := c.sent[0].what.(*tele.Photo)
	require.Equal(t, "https://example.com/a.jpg", byURL.File.FileURL)
	require.Equal(t, "url", byURL.Caption)

	byData := c.sent[1].what.(*tele.Photo)
	require.NotNil(t, byData.File.FileReader)
	require.Equal(t, "bytes", byData.Caption)
}

func TestHandleUpdateRunsConversation(t *testing.T) {
	a := newTestApp(t, nil)

	start := newStubContext(10, &tele.Message{Text: "/start"})
	require.NoError(t, a.handleUpdate(start))
	require.Equal(t, bot.RuleStart, start.Get(router.RuleKey))
	require.Len(t, start.texts(), 1)
	require.Contains(t, start.texts()[0], "Привет, Анна! 👋")

	pick := newStubContext(10, &tele.Message{Text: "  пАрИж "})
	require.NoError(t, a.handleUpdate(pick))
	require.Equal(t, bot.RuleSelectCity, pick.Get(router.RuleKey))
	require.Contains(t, pick.texts()[0], "✅ Выбран город: Париж")

	forecast := newStubContext(10, &tele.Message{Text: menu.Weather})
	require.NoError(t, a.handleUpdate(forecast))
	require.Equal(t, bot.RuleWeather, forecast.Get(router.RuleKey))
	require.Contains(t, forecast.texts()[0], "🌤 Погода в Париж")
}

func TestHandleUpdateSkipsUnsupportedContent(t *testing.T) {
	a := newTestApp(t, nil)
	c := newStubContext(10, &tele.Message{Sticker: &tele.Sticker{}})

	require.NoError(t, a.handleUpdate(c))
	require.Equal(t, "skip", c.Get(router.StatusKey))
	require.Nil(t, c.Get(router.RuleKey))
	require.Empty(t, c.sent)
}

func TestNotifyPanicSendsNotice(t *testing.T) {
	a := newTestApp(t, nil)
	c := newStubContext(10, &tele.Message{Text: "boom"})

	a.notifyPanic(c, "boom")
	require.Equal(t, []string{bot.UnknownErrorText}, c.texts())
}

func TestTelegramRunOptions(t *testing.T) {
	a := newTestApp(t, nil)
	opts, err := a.TelegramRunOptions()
	require.NoError(t, err)

	require.Same(t, a.cfg, opts.Config)
	require.Len(t, opts.Middlewares, 3)

	endpoints := map[any]bool{}
	for _, r := range opts.Routes {
		endpoints[r.Endpoint] = true
	}
	for _, want := range []any{"/start", "/help", "/bye", tele.OnText, tele.OnPhoto} {
		require.True(t, endpoints[want], "missing route %v", want)
	}

	visible := opts.Registry.ListCommands(true)
	require.Len(t, visible, 3)
	require.NoError(t, opts.OnStop(context.Background(), tg.Runtime{}))
}

func TestLoadCatalogSources(t *testing.T) {
	ctx := context.Background()

	cat, err := loadCatalog(ctx, coreconfig.CatalogConfig{}, nil)
	require.NoError(t, err)
	require.Equal(t, 5, cat.Len())

	path := filepath.Join(t.TempDir(), "cities.yaml")
	doc := "cities:\n" +
		"  - name: Берлин\n" +
		"    country: Германия\n" +
		"    lat: 52.52\n" +
		"    lon: 13.405\n" +
		"    area: 891.8 км²\n" +
		"    population: 3.6 млн\n" +
		"    photos:\n" +
		"      - https://example.com/berlin.jpg\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	cat, err = loadCatalog(ctx, coreconfig.CatalogConfig{Source: coreconfig.CatalogFile, Path: path}, nil)
	require.NoError(t, err)
	require.Equal(t, []string{"Берлин"}, cat.Names())

	_, err = loadCatalog(ctx, coreconfig.CatalogConfig{Source: coreconfig.CatalogPostgres}, nil)
	require.ErrorContains(t, err, "needs a database connection")

	_, err = loadCatalog(ctx, coreconfig.CatalogConfig{Source: "ftp"}, nil)
	require.Error(t, err)
}

func TestNewRejectsNilConfig(t *testing.T) {
	_, err := New(nil, Deps{Infra: &bootstrap.Result{}})
	require.Error(t, err)
}

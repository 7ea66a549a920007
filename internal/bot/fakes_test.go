package bot

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/m3rciful/travelbot/internal/catalog"
	"github.com/m3rciful/travelbot/internal/menu"
	"github.com/m3rciful/travelbot/internal/photo"
	"github.com/m3rciful/travelbot/internal/session"
	"github.com/m3rciful/travelbot/internal/weather"
)

type sent struct {
	ChatID   int64
	Text     string
	Keyboard menu.Keyboard
	Photo    *photo.Source
}

type fakeSender struct {
	mu       sync.Mutex
	messages []sent
	// photoErr decides the result of SendPhoto; nil accepts everything.
	photoErr func(src photo.Source) error
	textErr  error
}

func (f *fakeSender) SendText(_ context.Context, chatID int64, text string, kb menu.Keyboard) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.textErr != nil {
		return f.textErr
	}
	f.messages = append(f.messages, sent{ChatID: chatID, Text: text, Keyboard: kb})
	return nil
}

func (f *fakeSender) SendPhoto(_ context.Context, chatID int64, src photo.Source, caption string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.photoErr != nil {
		if err := f.photoErr(src); err != nil {
			return err
		}
	}
	f.messages = append(f.messages, sent{ChatID: chatID, Text: caption, Photo: &src})
	return nil
}

func (f *fakeSender) texts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, m := range f.messages {
		if m.Photo == nil {
			out = append(out, m.Text)
		}
	}
	return out
}

func (f *fakeSender) last() sent {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.messages[len(f.messages)-1]
}

type fakeWeather struct {
	report weather.Report
	err    error
	calls  []string
}

func (f *fakeWeather) Current(_ context.Context, city string) (weather.Report, error) {
	f.calls = append(f.calls, city)
	return f.report, f.err
}

type fakeFetcher struct {
	data  []byte
	err   error
	calls []string
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) ([]byte, error) {
	f.calls = append(f.calls, url)
	return f.data, f.err
}

var errTransport = errors.New("telegram: wrong file identifier/HTTP URL specified (400)")

type fixture struct {
	handlers *Handlers
	disp     *Dispatcher
	sessions session.Store
	weather  *fakeWeather
	fetcher  *fakeFetcher
	catalog  *catalog.Catalog
}

func newFixture(t *testing.T, cities ...catalog.City) *fixture {
	t.Helper()
	if len(cities) == 0 {
		cities = catalog.Builtin()
	}
	cat, err := catalog.New(cities)
	require.NoError(t, err)

	f := &fixture{
		sessions: session.NewMemoryStore(),
		weather:  &fakeWeather{},
		fetcher:  &fakeFetcher{},
		catalog:  cat,
	}
	f.handlers, err = NewHandlers(Deps{
		Catalog:   cat,
		Sessions:  f.sessions,
		Weather:   f.weather,
		Photos:    f.fetcher,
		Reactions: NewReactions(1),
	})
	require.NoError(t, err)
	f.disp = NewDispatcher(DefaultRules(f.handlers)...)
	return f
}

func (f *fixture) send(t *testing.T, chatID int64, text string) (*fakeSender, string) {
	t.Helper()
	out := &fakeSender{}
	rule, err := f.disp.Dispatch(context.Background(), Message{ChatID: chatID, Text: text, Kind: KindText, SenderName: "Анна"}, out)
	require.NoError(t, err)
	return out, rule
}

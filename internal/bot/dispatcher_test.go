package bot

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/m3rciful/travelbot/internal/menu"
)

func TestRouteOrder(t *testing.T) {
	f := newFixture(t)

	cases := []struct {
		msg  Message
		rule string
		arg  string
	}{
		{Message{Kind: KindText, Text: "/start"}, RuleStart, ""},
		{Message{Kind: KindText, Text: "/start@travel_informer_bot"}, RuleStart, ""},
		{Message{Kind: KindText, Text: "/help"}, RuleHelp, ""},
		{Message{Kind: KindText, Text: "/bye now"}, RuleBye, "now"},
		{Message{Kind: KindText, Text: "Выбрать другой город"}, RuleChangeCity, ""},
		{Message{Kind: KindText, Text: "Париж"}, RuleSelectCity, "Париж"},
		{Message{Kind: KindText, Text: "  нью-йорк "}, RuleSelectCity, "Нью-Йорк"},
		{Message{Kind: KindText, Text: "Справка"}, RuleInfo, ""},
		{Message{Kind: KindText, Text: "Фото"}, RulePhoto, ""},
		{Message{Kind: KindText, Text: "Погода"}, RuleWeather, ""},
		{Message{Kind: KindPhoto}, RulePhotoReaction, ""},
		{Message{Kind: KindText, Text: "Пар"}, RuleNotFound, ""},
		{Message{Kind: KindText, Text: "/unknown"}, RuleNotFound, ""},
		{Message{Kind: KindText, Text: "справка"}, RuleNotFound, ""},
		{Message{Kind: KindText, Text: "/starting"}, RuleNotFound, ""},
	}
	for _, tc := range cases {
		rule, req, ok := f.disp.Route(tc.msg)
		require.True(t, ok, "route %q", tc.msg.Text)
		require.Equal(t, tc.rule, rule.Name, "route %q", tc.msg.Text)
		require.Equal(t, tc.arg, req.Arg, "route %q", tc.msg.Text)
	}
}

func TestRouteSkipsOtherKinds(t *testing.T) {
	f := newFixture(t)
	_, _, ok := f.disp.Route(Message{Kind: KindOther, Text: "Париж"})
	require.False(t, ok)

	out := &fakeSender{}
	rule, err := f.disp.Dispatch(context.Background(), Message{ChatID: 1, Kind: KindOther}, out)
	require.NoError(t, err)
	require.Empty(t, rule)
	require.Empty(t, out.messages)
}

func TestPhotoCaptionDoesNotTriggerTextRules(t *testing.T) {
	f := newFixture(t)
	rule, _, ok := f.disp.Route(Message{Kind: KindPhoto, Text: "/start"})
	require.True(t, ok)
	require.Equal(t, RulePhotoReaction, rule.Name)
}

func TestDispatchHandlerErrorSendsNotice(t *testing.T) {
	boom := errors.New("boom")
	d := NewDispatcher(Rule{
		Name:   "broken",
		Match:  Content(KindText),
		Handle: func(context.Context, Request, Sender) error { return boom },
	})

	out := &fakeSender{}
	rule, err := d.Dispatch(context.Background(), Message{ChatID: 7, Kind: KindText, Text: "x"}, out)
	require.ErrorIs(t, err, boom)
	require.Equal(t, "broken", rule)
	require.Equal(t, []string{"⚠️ Неизвестная ошибка."}, out.texts())
}

func TestDispatchRecoversPanics(t *testing.T) {
	d := NewDispatcher(Rule{
		Name:   "panicky",
		Match:  Content(KindText),
		Handle: func(context.Context, Request, Sender) error { panic("nil map") },
	})

	out := &fakeSender{}
	_, err := d.Dispatch(context.Background(), Message{ChatID: 7, Kind: KindText, Text: "x"}, out)
	require.ErrorContains(t, err, "nil map")
	require.Equal(t, []string{"⚠️ Неизвестная ошибка."}, out.texts())
}

func TestCommandMatcher(t *testing.T) {
	m := Command("/help")
	_, ok := m(Message{Kind: KindText, Text: "  /help  "})
	require.True(t, ok)
	_, ok = m(Message{Kind: KindText, Text: "/HELP"})
	require.False(t, ok)
	_, ok = m(Message{Kind: KindText, Text: ""})
	require.False(t, ok)
	_, ok = m(Message{Kind: KindPhoto, Text: "/help"})
	require.False(t, ok)
}

func TestStartHelpBye(t *testing.T) {
	f := newFixture(t)
	cities := menu.Keyboard{{"Париж", "Лондон"}, {"Токио", "Рим"}, {"Нью-Йорк"}}

	out, _ := f.send(t, 1, "/start")
	require.Equal(t, "Привет, Анна! 👋\nЯ — Информер путешественника 🌍\nНапиши /help чтобы увидеть список городов", out.last().Text)
	require.Equal(t, cities, out.last().Keyboard)

	out, _ = f.send(t, 1, "/help")
	require.Equal(t, "Доступные города:\nПариж\nЛондон\nТокио\nРим\nНью-Йорк\n\nВыберите город из меню ниже или введите название:", out.last().Text)
	require.Equal(t, cities, out.last().Keyboard)

	out, _ = f.send(t, 1, "/bye")
	require.Equal(t, "До свидания! ✈️", out.last().Text)
	require.Nil(t, out.last().Keyboard)

	out, _ = f.send(t, 1, "Выбрать другой город")
	require.Equal(t, "Выберите город:", out.last().Text)
	require.Equal(t, cities, out.last().Keyboard)
}

func TestWelcomeWithoutName(t *testing.T) {
	require.Equal(t, "Привет! 👋", welcomeText(" ")[:len("Привет! 👋")])
}

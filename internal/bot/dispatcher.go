package bot

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"strings"
	"time"

	"github.com/m3rciful/travelbot/core/logger"
	"github.com/m3rciful/travelbot/internal/catalog"
	"github.com/m3rciful/travelbot/internal/menu"
)

// Rule names, in dispatch order.
const (
	RuleStart         = "start"
	RuleHelp          = "help"
	RuleBye           = "bye"
	RuleChangeCity    = "change_city"
	RuleSelectCity    = "select_city"
	RuleInfo          = "info"
	RulePhoto         = "photo"
	RuleWeather       = "weather"
	RulePhotoReaction = "photo_reaction"
	RuleNotFound      = "not_found"
)

// Request is a message plus the value captured by the rule that matched it.
type Request struct {
	Message
	Arg string
}

// HandlerFunc handles one matched message.
type HandlerFunc func(ctx context.Context, req Request, out Sender) error

// Matcher decides whether a rule applies and may capture an argument.
type Matcher func(msg Message) (arg string, ok bool)

// Rule pairs a matcher with its handler.
type Rule struct {
	Name   string
	Match  Matcher
	Handle HandlerFunc
}

// Dispatcher evaluates rules in order; the first match wins.
type Dispatcher struct {
	rules []Rule
	log   *slog.Logger
}

// NewDispatcher keeps rules in the given order.
func NewDispatcher(rules ...Rule) *Dispatcher {
	return &Dispatcher{rules: rules, log: logger.Component("bot")}
}

// DefaultRules wires the conversation: commands, the change-city button,
// city names, the action buttons, user photos and finally the not-found reply.
func DefaultRules(h *Handlers) []Rule {
	return []Rule{
		{Name: RuleStart, Match: Command("/start"), Handle: h.Start},
		{Name: RuleHelp, Match: Command("/help"), Handle: h.Help},
		{Name: RuleBye, Match: Command("/bye"), Handle: h.Bye},
		{Name: RuleChangeCity, Match: Text(menu.ChooseAnother), Handle: h.ChangeCity},
		{Name: RuleSelectCity, Match: CityName(h.catalog), Handle: h.SelectCity},
		{Name: RuleInfo, Match: Text(menu.Info), Handle: h.Info},
		{Name: RulePhoto, Match: Text(menu.Photo), Handle: h.Photo},
		{Name: RuleWeather, Match: Text(menu.Weather), Handle: h.Weather},
		{Name: RulePhotoReaction, Match: Content(KindPhoto), Handle: h.PhotoReaction},
		{Name: RuleNotFound, Match: Content(KindText), Handle: h.NotFound},
	}
}

// Route returns the rule that would handle msg. ok is false for messages
// no rule accepts, such as stickers.
func (d *Dispatcher) Route(msg Message) (Rule, Request, bool) {
	for _, r := range d.rules {
		if arg, ok := r.Match(msg); ok {
			return r, Request{Message: msg, Arg: arg}, true
		}
	}
	return Rule{}, Request{}, false
}

// Dispatch routes msg and runs the handler. A failing or panicking handler is
// answered with a generic notice; its error is returned for logging only.
// The returned name is empty when no rule matched.
func (d *Dispatcher) Dispatch(ctx context.Context, msg Message, out Sender) (string, error) {
	rule, req, ok := d.Route(msg)
	if !ok {
		logger.LogEvent(ctx, d.log, slog.LevelDebug, "dispatch.route",
			slog.String("status", "skip"),
			slog.String("kind", msg.Kind.String()),
		)
		return "", nil
	}

	start := time.Now()
	err := safeHandle(ctx, rule.Handle, req, out)
	if err == nil {
		logger.LogEvent(ctx, d.log, slog.LevelDebug, "dispatch.route",
			slog.String("status", "ok"),
			slog.String("rule", rule.Name),
			slog.Duration("duration", time.Since(start)),
		)
		return rule.Name, nil
	}

	logger.LogEvent(ctx, d.log, slog.LevelError, "dispatch.route",
		slog.String("status", "fail"),
		slog.String("rule", rule.Name),
		slog.String("outcome", "notice"),
		slog.Duration("duration", time.Since(start)),
		slog.String("err", logger.SanitizeLimit(err.Error(), 256)),
	)
	if noticeErr := out.SendText(ctx, msg.ChatID, textUnknownError, nil); noticeErr != nil {
		logger.LogEvent(ctx, d.log, slog.LevelWarn, "dispatch.notice",
			slog.String("status", "fail"),
			slog.String("rule", rule.Name),
			slog.String("err", logger.SanitizeLimit(noticeErr.Error(), 256)),
		)
	}
	return rule.Name, err
}

func safeHandle(ctx context.Context, h HandlerFunc, req Request, out Sender) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("bot: handler panic: %v", r)
			logger.Error(ctx, "bot", "handler.panic",
				slog.String("err", fmt.Sprint(r)),
				slog.String("stack", string(debug.Stack())),
			)
		}
	}()
	return h(ctx, req, out)
}

// Command matches text whose first word is name, with or without an @botname suffix.
func Command(name string) Matcher {
	return func(msg Message) (string, bool) {
		if msg.Kind != KindText {
			return "", false
		}
		fields := strings.Fields(msg.Text)
		if len(fields) == 0 {
			return "", false
		}
		cmd, _, _ := strings.Cut(fields[0], "@")
		if cmd != name {
			return "", false
		}
		return strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(msg.Text), fields[0])), true
	}
}

// Text matches the exact button label.
func Text(label string) Matcher {
	return func(msg Message) (string, bool) {
		return "", msg.Kind == KindText && msg.Text == label
	}
}

// CityName matches text that resolves to a catalog city and captures the canonical name.
func CityName(c *catalog.Catalog) Matcher {
	return func(msg Message) (string, bool) {
		if msg.Kind != KindText {
			return "", false
		}
		return c.Resolve(msg.Text)
	}
}

// Content matches every message of the given kind.
func Content(kind Kind) Matcher {
	return func(msg Message) (string, bool) {
		return "", msg.Kind == kind
	}
}

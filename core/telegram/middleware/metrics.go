package middleware

import (
	tele "gopkg.in/telebot.v4"
)

const (
	counterMessages = "messages"
	counterPhotos   = "photos"
	counterKeyboard = "kb"
)

// metricsContext wraps tele.Context to count sent messages and detect keyboard usage.
type metricsContext struct{ tele.Context }

func (m metricsContext) inc(key string) {
	n, _ := m.Get(key).(int)
	m.Set(key, n+1)
}

func (m metricsContext) record(what any, opts []any) {
	m.inc(counterMessages)
	if _, ok := what.(*tele.Photo); ok {
		m.inc(counterPhotos)
	}
	if hasKeyboard(opts) {
		m.Set(counterKeyboard, true)
	}
}

func hasKeyboard(opts []any) bool {
	for _, o := range opts {
		switch v := o.(type) {
		case *tele.SendOptions:
			if v != nil && v.ReplyMarkup != nil {
				return true
			}
		case *tele.ReplyMarkup:
			if v != nil {
				return true
			}
		}
	}
	return false
}

// Send proxies tele.Context.Send while updating message counters.
func (m metricsContext) Send(what any, opts ...any) error {
	err := m.Context.Send(what, opts...)
	if err == nil {
		m.record(what, opts)
	}
	return err
}

// Reply proxies tele.Context.Reply while updating message counters.
func (m metricsContext) Reply(what any, opts ...any) error {
	err := m.Context.Reply(what, opts...)
	if err == nil {
		m.record(what, opts)
	}
	return err
}

// MessageMetricsMiddleware instruments context to count outbound messages, photos and keyboards.
func MessageMetricsMiddleware(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		c.Set(counterMessages, 0)
		c.Set(counterPhotos, 0)
		c.Set(counterKeyboard, false)
		return next(metricsContext{Context: c})
	}
}

// Counters holds per-update outbound statistics.
type Counters struct {
	Messages int
	Photos   int
	Keyboard bool
}

// GetCounters reads the counters recorded by MessageMetricsMiddleware.
func GetCounters(c tele.Context) Counters {
	msgs, _ := c.Get(counterMessages).(int)
	photos, _ := c.Get(counterPhotos).(int)
	kb, _ := c.Get(counterKeyboard).(bool)
	return Counters{Messages: msgs, Photos: photos, Keyboard: kb}
}

package logger

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

type logFormat string

const (
	formatJSON logFormat = "json"
	formatKV   logFormat = "kv"

	timeFormatMillis = "2006-01-02T15:04:05.000Z07:00"
)

type handlerConfig struct {
	level    slog.Leveler
	writer   *asyncWriter
	format   logFormat
	keyOrder []string
}

// structuredHandler renders records as flat kv or JSON lines with a stable key order.
type structuredHandler struct {
	cfg    handlerConfig
	attrs  []slog.Attr
	groups []string
}

func newStructuredHandler(cfg handlerConfig) *structuredHandler {
	if cfg.level == nil {
		cfg.level = slog.LevelInfo
	}
	if cfg.keyOrder == nil {
		cfg.keyOrder = append([]string(nil), defaultKeyOrder...)
	}
	return &structuredHandler{cfg: cfg}
}

func (h *structuredHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.cfg.level.Level()
}

func (h *structuredHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.cfg.writer == nil {
		return fmt.Errorf("logger: writer not initialized")
	}

	isJSON := h.cfg.format == formatJSON
	fields := make(map[string]any, 16)
	ts := r.Time.UTC()
	fields["ts"] = ts.Truncate(time.Millisecond).Format(timeFormatMillis)
	fields["level"] = normalizeLevel(r.Level.String())
	if isJSON {
		fields["ts_unix_nano"] = ts.UnixNano()
	}

	for _, a := range h.attrs {
		h.collect(fields, a)
	}
	r.Attrs(func(a slog.Attr) bool {
		h.collect(fields, a)
		return true
	})
	addContextFields(ctx, fields)

	if rid, ok := fields["rid"].(string); ok && rid != "" {
		if compact := CompactRID(rid); compact != rid {
			if isJSON {
				fields["rid_full"] = rid
			}
			fields["rid"] = compact
		}
	}
	if ev, _ := fields["event"].(string); ev == "" {
		if r.Message != "" {
			fields["event"] = r.Message
		} else {
			fields["event"] = "unknown"
		}
	}
	if c, _ := fields["component"].(string); c == "" {
		fields["component"] = "app"
	}

	normalizeEnums(fields)
	pruneEmpty(fields)

	var (
		line []byte
		err  error
	)
	if isJSON {
		line, err = formatJSONLine(fields, h.cfg.keyOrder)
		if err != nil {
			return err
		}
	} else {
		line = formatKVLine(fields, h.cfg.keyOrder)
	}
	return h.cfg.writer.Write(append(line, '\n'))
}

func (h *structuredHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(append([]slog.Attr(nil), h.attrs...), attrs...)
	return &clone
}

func (h *structuredHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.groups = append(append([]string(nil), h.groups...), name)
	return &clone
}

func (h *structuredHandler) collect(fields map[string]any, attr slog.Attr) {
	flattenAttr(strings.Join(h.groups, "."), attr, func(k string, v slog.Value) {
		if key, val, ok := normalizeAttr(k, v); ok {
			fields[key] = val
		}
	})
}

func flattenAttr(prefix string, attr slog.Attr, fn func(string, slog.Value)) {
	key := attr.Key
	if key == "" {
		key = prefix
	} else if prefix != "" {
		key = prefix + "." + key
	}
	if attr.Value.Kind() == slog.KindGroup {
		for _, child := range attr.Value.Group() {
			flattenAttr(key, child, fn)
		}
		return
	}
	fn(key, attr.Value.Resolve())
}

// durationKey maps duration attributes to *_ms keys.
func durationKey(key string) string {
	switch {
	case key == "duration":
		return "duration_ms"
	case strings.HasSuffix(key, "_ms"):
		return key
	default:
		return key + "_ms"
	}
}

func normalizeAttr(key string, val slog.Value) (string, any, bool) {
	if key == "" {
		return "", nil, false
	}
	switch val.Kind() {
	case slog.KindString:
		return key, strings.TrimSpace(val.String()), true
	case slog.KindBool:
		return key, val.Bool(), true
	case slog.KindInt64:
		return key, val.Int64(), true
	case slog.KindUint64:
		if u := val.Uint64(); u <= math.MaxInt64 {
			return key, int64(u), true
		}
		return key, val.Uint64(), true
	case slog.KindFloat64:
		return key, val.Float64(), true
	case slog.KindDuration:
		return durationKey(key), RoundMS(val.Duration()).Milliseconds(), true
	case slog.KindTime:
		return key, val.Time().UTC().Format(time.RFC3339Nano), true
	}
	switch x := val.Any().(type) {
	case nil:
		return key, nil, false
	case error:
		return key, x.Error(), true
	case string:
		return key, strings.TrimSpace(x), true
	case fmt.Stringer:
		return key, x.String(), true
	default:
		return key, fmt.Sprint(x), true
	}
}

func normalizeEnums(fields map[string]any) {
	if s, ok := fields["status"].(string); ok && s != "" {
		if normalized, valid := normalizeStatus(s); valid {
			fields["status"] = normalized
		}
	}
	if o, ok := fields["outcome"].(string); ok && o != "" {
		if normalized, valid := normalizeOutcome(o); valid {
			fields["outcome"] = normalized
		} else {
			delete(fields, "outcome")
		}
	}
}

func pruneEmpty(fields map[string]any) {
	for k, v := range fields {
		if s, ok := v.(string); ok && s == "" {
			delete(fields, k)
		}
	}
}

func orderedKeys(fields map[string]any, order []string) []string {
	keys := make([]string, 0, len(fields))
	seen := make(map[string]struct{}, len(fields))
	for _, key := range order {
		if _, ok := fields[key]; ok {
			if _, dup := seen[key]; dup {
				continue
			}
			keys = append(keys, key)
			seen[key] = struct{}{}
		}
	}
	rest := make([]string, 0, len(fields)-len(keys))
	for key := range fields {
		if _, ok := seen[key]; !ok {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	return append(keys, rest...)
}

func formatJSONLine(fields map[string]any, order []string) ([]byte, error) {
	var b strings.Builder
	b.WriteByte('{')
	for i, key := range orderedKeys(fields, order) {
		data, err := json.Marshal(fields[key])
		if err != nil {
			return nil, err
		}
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Quote(key))
		b.WriteByte(':')
		b.Write(data)
	}
	b.WriteByte('}')
	return []byte(b.String()), nil
}

func formatKVLine(fields map[string]any, order []string) []byte {
	var b strings.Builder
	for i, key := range orderedKeys(fields, order) {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(key)
		b.WriteByte('=')
		s := fmt.Sprint(fields[key])
		if strings.IndexFunc(s, needsQuote) >= 0 {
			s = strconv.Quote(s)
		}
		b.WriteString(s)
	}
	return []byte(b.String())
}

func needsQuote(r rune) bool {
	return r <= 32 || r == '=' || r == '"'
}

func addContextFields(ctx context.Context, fields map[string]any) {
	if ctx == nil {
		return
	}
	setIfAbsent := func(key string, val any, present bool) {
		if !present {
			return
		}
		if _, ok := fields[key]; !ok {
			fields[key] = val
		}
	}
	rid := RIDFrom(ctx)
	setIfAbsent("rid", rid, rid != "")
	uid := UserIDFrom(ctx)
	setIfAbsent("user_id", uid, uid != 0)
	upd := UpdateIDFrom(ctx)
	setIfAbsent("update_id", upd, upd != 0)
	cid := ChatIDFrom(ctx)
	setIfAbsent("chat_id", cid, cid != 0)
	handler := HandlerFrom(ctx)
	setIfAbsent("handler", handler, handler != "")
}

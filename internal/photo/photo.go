// Package photo downloads city photos when the messenger cannot fetch them by URL.
package photo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/m3rciful/travelbot/core/logger"
	"github.com/m3rciful/travelbot/core/netutil"
)

const (
	defaultTimeout  = 10 * time.Second
	defaultMaxBytes = 10 << 20
)

// ErrTooLarge is returned when a photo exceeds the configured size limit.
var ErrTooLarge = errors.New("photo: body exceeds size limit")

// Source is what the transport sends: a URL for the messenger to fetch, or raw bytes.
type Source struct {
	URL  string
	Data []byte
}

// FromURL references a photo by URL.
func FromURL(u string) Source { return Source{URL: u} }

// FromBytes wraps downloaded photo bytes.
func FromBytes(b []byte) Source { return Source{Data: b} }

// Status describes how a single photo ended up.
type Status int

const (
	// Failed means neither delivery by reference nor by bytes worked.
	Failed Status = iota
	// Delivered means the messenger accepted the URL.
	Delivered
	// FallbackDelivered means the bytes were downloaded and uploaded instead.
	FallbackDelivered
)

func (s Status) String() string {
	switch s {
	case Delivered:
		return "delivered"
	case FallbackDelivered:
		return "fallback"
	default:
		return "failed"
	}
}

// Outcome records the result for one photo URL.
type Outcome struct {
	URL    string
	Status Status
	Err    error
}

// OK reports whether the photo reached the chat by either path.
func (o Outcome) OK() bool { return o.Status != Failed }

// Options configures Fetcher.
type Options struct {
	Timeout    time.Duration
	MaxBytes   int64
	HTTPClient *http.Client
}

// Fetcher performs plain GET downloads with a fixed timeout and no retries.
type Fetcher struct {
	http     *http.Client
	maxBytes int64
	log      *slog.Logger
}

// NewFetcher builds a fetcher; zero options mean a 10 second timeout and a 10 MiB cap.
func NewFetcher(opts Options) *Fetcher {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.MaxBytes <= 0 {
		opts.MaxBytes = defaultMaxBytes
	}
	hc := opts.HTTPClient
	if hc == nil {
		hc = netutil.BuildHTTPClient(netutil.ClientOptions{Timeout: opts.Timeout})
	}
	return &Fetcher{http: hc, maxBytes: opts.MaxBytes, log: logger.Component("photo")}
}

// Fetch downloads rawURL. Only HTTP 200 counts as success.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	start := time.Now()
	data, code, err := f.fetch(ctx, rawURL)

	attrs := []slog.Attr{
		slog.String("url", logger.SanitizeLimit(rawURL, 256)),
		slog.Duration("duration", time.Since(start)),
	}
	if code != 0 {
		attrs = append(attrs, slog.Int("http_code", code))
	}
	if err != nil {
		attrs = append(attrs,
			slog.String("status", "fail"),
			slog.String("err", err.Error()),
			slog.String("err_kind", netutil.Classify(err)),
		)
		logger.LogEvent(ctx, f.log, slog.LevelWarn, "photo.fetch", attrs...)
		return nil, err
	}
	attrs = append(attrs, slog.String("status", "ok"), slog.Int("bytes", len(data)))
	logger.LogEvent(ctx, f.log, slog.LevelDebug, "photo.fetch", attrs...)
	return data, nil
}

func (f *Fetcher) fetch(ctx context.Context, rawURL string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("photo: build request: %w", err)
	}
	resp, err := f.http.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("photo: get: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		return nil, resp.StatusCode, fmt.Errorf("photo: unexpected status %s", resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("photo: read body: %w", err)
	}
	if int64(len(data)) > f.maxBytes {
		return nil, resp.StatusCode, ErrTooLarge
	}
	if len(data) == 0 {
		return nil, resp.StatusCode, errors.New("photo: empty body")
	}
	return data, resp.StatusCode, nil
}

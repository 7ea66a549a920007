// Package weather queries the current conditions endpoint of weatherapi.com.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/m3rciful/travelbot/core/logger"
	"github.com/m3rciful/travelbot/core/netutil"
)

var (
	// ErrUnavailable means no response was received: transport failure or timeout.
	ErrUnavailable = errors.New("weather: provider unavailable")
	// ErrBadResponse means a response arrived but carried an error or lacked required data.
	ErrBadResponse = errors.New("weather: bad response")
)

const (
	defaultBaseURL = "https://api.weatherapi.com/v1"
	defaultLang    = "ru"
	defaultTimeout = 10 * time.Second
	maxBodyBytes   = 1 << 20
)

// Report holds the current conditions exactly as the provider formatted them.
type Report struct {
	LocalTime string
	TempC     string
	TempF     string
	Condition string
}

// Options configures Client.
type Options struct {
	BaseURL    string
	APIKey     string
	Lang       string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client performs one-shot current weather lookups. It never retries.
type Client struct {
	baseURL string
	apiKey  string
	lang    string
	http    *http.Client
	log     *slog.Logger
}

// NewClient builds a client; zero options fall back to the public endpoint,
// Russian condition texts and a 10 second timeout.
func NewClient(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultBaseURL
	}
	if opts.Lang == "" {
		opts.Lang = defaultLang
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	hc := opts.HTTPClient
	if hc == nil {
		hc = netutil.BuildHTTPClient(netutil.ClientOptions{Timeout: opts.Timeout})
	}
	return &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		apiKey:  opts.APIKey,
		lang:    opts.Lang,
		http:    hc,
		log:     logger.Component("weather"),
	}
}

type apiCurrent struct {
	TempC     *json.Number `json:"temp_c"`
	TempF     *json.Number `json:"temp_f"`
	Condition *struct {
		Text *string `json:"text"`
	} `json:"condition"`
}

type apiLocation struct {
	LocalTime *string `json:"localtime"`
}

// Current fetches current conditions for city. Errors wrap ErrUnavailable or
// ErrBadResponse; anything else is unexpected.
func (c *Client) Current(ctx context.Context, city string) (Report, error) {
	start := time.Now()
	report, code, err := c.fetch(ctx, city)

	attrs := []slog.Attr{
		slog.String("city", city),
		slog.Duration("duration", time.Since(start)),
	}
	if code != 0 {
		attrs = append(attrs, slog.Int("http_code", code))
	}
	if err != nil {
		attrs = append(attrs,
			slog.String("status", "fail"),
			slog.String("err", err.Error()),
			slog.String("err_kind", errKind(err)),
		)
		logger.LogEvent(ctx, c.log, slog.LevelWarn, "weather.fetch", attrs...)
		return Report{}, err
	}
	logger.LogEvent(ctx, c.log, slog.LevelDebug, "weather.fetch", append(attrs, slog.String("status", "ok"))...)
	return report, nil
}

func (c *Client) fetch(ctx context.Context, city string) (Report, int, error) {
	endpoint, err := url.Parse(c.baseURL + "/current.json")
	if err != nil {
		return Report{}, 0, fmt.Errorf("weather: build url: %w", err)
	}
	q := endpoint.Query()
	q.Set("key", c.apiKey)
	q.Set("q", city)
	q.Set("lang", c.lang)
	endpoint.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return Report{}, 0, fmt.Errorf("weather: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Report{}, 0, fmt.Errorf("%w: %w", ErrUnavailable, stripQuery(err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return Report{}, resp.StatusCode, fmt.Errorf("%w: read body: %w", ErrUnavailable, err)
	}

	report, err := decodeReport(body)
	return report, resp.StatusCode, err
}

func decodeReport(body []byte) (Report, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(body, &top); err != nil {
		return Report{}, fmt.Errorf("%w: decode: %w", ErrBadResponse, err)
	}
	if raw, ok := top["error"]; ok {
		return Report{}, fmt.Errorf("%w: provider error %s", ErrBadResponse, providerMessage(raw))
	}

	var (
		current  apiCurrent
		location apiLocation
	)
	if err := unmarshalField(top, "current", &current); err != nil {
		return Report{}, err
	}
	if err := unmarshalField(top, "location", &location); err != nil {
		return Report{}, err
	}

	switch {
	case current.TempC == nil:
		return Report{}, fmt.Errorf("%w: missing current.temp_c", ErrBadResponse)
	case current.TempF == nil:
		return Report{}, fmt.Errorf("%w: missing current.temp_f", ErrBadResponse)
	case current.Condition == nil || current.Condition.Text == nil:
		return Report{}, fmt.Errorf("%w: missing current.condition.text", ErrBadResponse)
	case location.LocalTime == nil:
		return Report{}, fmt.Errorf("%w: missing location.localtime", ErrBadResponse)
	}

	return Report{
		LocalTime: *location.LocalTime,
		TempC:     current.TempC.String(),
		TempF:     current.TempF.String(),
		Condition: *current.Condition.Text,
	}, nil
}

func unmarshalField(top map[string]json.RawMessage, key string, dst any) error {
	raw, ok := top[key]
	if !ok {
		return fmt.Errorf("%w: missing %s", ErrBadResponse, key)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%w: decode %s: %w", ErrBadResponse, key, err)
	}
	return nil
}

func providerMessage(raw json.RawMessage) string {
	var e struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &e); err != nil || (e.Code == 0 && e.Message == "") {
		return logger.SanitizeLimit(string(raw), 128)
	}
	return fmt.Sprintf("%d: %s", e.Code, logger.SanitizeLimit(e.Message, 128))
}

// stripQuery removes the request URL, which carries the API key, from transport errors.
func stripQuery(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err
	}
	return err
}

func errKind(err error) string {
	switch {
	case errors.Is(err, ErrBadResponse):
		return "bad_response"
	case errors.Is(err, ErrUnavailable):
		return netutil.Classify(err)
	}
	return netutil.KindUnknown
}

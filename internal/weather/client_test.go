package weather

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Options{BaseURL: srv.URL + "/v1", APIKey: "k3y", Timeout: 2 * time.Second})
}

func TestCurrentSuccess(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/current.json", r.URL.Path)
		require.Equal(t, "k3y", r.URL.Query().Get("key"))
		require.Equal(t, "Париж", r.URL.Query().Get("q"))
		require.Equal(t, "ru", r.URL.Query().Get("lang"))
		_, _ = w.Write([]byte(`{
			"location": {"name": "Paris", "localtime": "2024-05-01 14:05"},
			"current": {"temp_c": 18.0, "temp_f": 64.4, "condition": {"text": "Солнечно"}}
		}`))
	})

	report, err := client.Current(context.Background(), "Париж")
	require.NoError(t, err)
	require.Equal(t, Report{
		LocalTime: "2024-05-01 14:05",
		TempC:     "18.0",
		TempF:     "64.4",
		Condition: "Солнечно",
	}, report)
}

func TestCurrentBadResponses(t *testing.T) {
	cases := map[string]string{
		"provider error":    `{"error": {"code": 1006, "message": "No matching location found."}}`,
		"null error field":  `{"error": null, "current": {}}`,
		"not json":          `<html>bad gateway</html>`,
		"missing temp_c":    `{"location": {"localtime": "x"}, "current": {"temp_f": 64.4, "condition": {"text": "Ясно"}}}`,
		"missing temp_f":    `{"location": {"localtime": "x"}, "current": {"temp_c": 18, "condition": {"text": "Ясно"}}}`,
		"missing condition": `{"location": {"localtime": "x"}, "current": {"temp_c": 18, "temp_f": 64.4}}`,
		"missing localtime": `{"location": {}, "current": {"temp_c": 18, "temp_f": 64.4, "condition": {"text": "Ясно"}}}`,
		"missing current":   `{"location": {"localtime": "x"}}`,
		"wrong shape":       `{"location": {"localtime": "x"}, "current": []}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(body))
			})
			_, err := client.Current(context.Background(), "Рим")
			require.ErrorIs(t, err, ErrBadResponse)
			require.False(t, errors.Is(err, ErrUnavailable))
		})
	}
}

func TestCurrentErrorStatusWithProviderError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": {"code": 2006, "message": "API key is invalid."}}`))
	})
	_, err := client.Current(context.Background(), "Рим")
	require.ErrorIs(t, err, ErrBadResponse)
}

func TestCurrentUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	base := srv.URL
	srv.Close()

	client := NewClient(Options{BaseURL: base, APIKey: "secret-key", Timeout: time.Second})
	_, err := client.Current(context.Background(), "Токио")
	require.ErrorIs(t, err, ErrUnavailable)
	require.NotContains(t, err.Error(), "secret-key")
}

func TestCurrentTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		<-release
	}))
	t.Cleanup(func() {
		close(release)
		srv.Close()
	})

	client := NewClient(Options{BaseURL: srv.URL, APIKey: "k", Timeout: 50 * time.Millisecond})
	_, err := client.Current(context.Background(), "Лондон")
	require.ErrorIs(t, err, ErrUnavailable)
	require.Equal(t, "timeout", errKind(err))
}

func TestNewClientDefaults(t *testing.T) {
	c := NewClient(Options{BaseURL: "https://api.weatherapi.com/v1/"})
	require.Equal(t, "https://api.weatherapi.com/v1", c.baseURL)
	require.Equal(t, "ru", c.lang)
	require.Equal(t, 10*time.Second, c.http.Timeout)
}

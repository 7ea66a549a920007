package photo

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFetchOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write([]byte("jpeg-bytes"))
	}))
	defer srv.Close()

	data, err := NewFetcher(Options{}).Fetch(context.Background(), srv.URL+"/a.jpg")
	require.NoError(t, err)
	require.Equal(t, []byte("jpeg-bytes"), data)
}

func TestFetchRequires200(t *testing.T) {
	for _, code := range []int{http.StatusNoContent, http.StatusNotFound, http.StatusBadGateway} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(code)
		}))
		_, err := NewFetcher(Options{}).Fetch(context.Background(), srv.URL)
		srv.Close()
		require.Error(t, err, "status %d", code)
	}
}

func TestFetchSizeLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("x", 32)))
	}))
	defer srv.Close()

	_, err := NewFetcher(Options{MaxBytes: 16}).Fetch(context.Background(), srv.URL)
	require.ErrorIs(t, err, ErrTooLarge)
}

func TestFetchTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { <-release }))
	t.Cleanup(func() {
		close(release)
		srv.Close()
	})

	_, err := NewFetcher(Options{Timeout: 50 * time.Millisecond}).Fetch(context.Background(), srv.URL)
	require.Error(t, err)
}

func TestOutcome(t *testing.T) {
	require.True(t, Outcome{Status: Delivered}.OK())
	require.True(t, Outcome{Status: FallbackDelivered}.OK())
	require.False(t, Outcome{Status: Failed, Err: errors.New("x")}.OK())
	require.Equal(t, "fallback", FallbackDelivered.String())
	require.Equal(t, "failed", Status(42).String())
}

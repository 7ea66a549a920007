package netutil

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestShouldRetry(t *testing.T) {
	require.False(t, ShouldRetry(nil))
	require.False(t, ShouldRetry(errors.New("plain")))
	require.False(t, ShouldRetry(context.Canceled))
	require.True(t, ShouldRetry(&net.OpError{Op: "dial", Err: errors.New("refused")}))
	require.True(t, ShouldRetry(&url.Error{Op: "Get", URL: "http://x", Err: timeoutErr{}}))
}

func TestClassify(t *testing.T) {
	require.Equal(t, "", Classify(nil))
	require.Equal(t, KindCancelled, Classify(context.Canceled))
	require.Equal(t, KindTimeout, Classify(context.DeadlineExceeded))
	require.Equal(t, KindDNS, Classify(&net.DNSError{Name: "nowhere.invalid"}))
	require.Equal(t, KindDial, Classify(&net.OpError{Op: "dial", Err: errors.New("refused")}))
	require.Equal(t, KindTimeout, Classify(&url.Error{Op: "Get", URL: "http://x", Err: timeoutErr{}}))
	require.Equal(t, KindUnknown, Classify(errors.New("boom")))
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func TestBuildHTTPClientRetriesDialErrors(t *testing.T) {
	var calls atomic.Int32
	base := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		if calls.Add(1) < 3 {
			return nil, &net.OpError{Op: "dial", Err: errors.New("refused")}
		}
		return &http.Response{StatusCode: http.StatusOK, Body: http.NoBody, Request: r}, nil
	})

	client := BuildHTTPClient(ClientOptions{Base: base, Retries: 3, RetryBackoff: time.Millisecond})
	resp, err := client.Get("http://telegram.invalid/getMe")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.EqualValues(t, 3, calls.Load())
}

func TestBuildHTTPClientWithoutRetries(t *testing.T) {
	var calls atomic.Int32
	base := roundTripFunc(func(*http.Request) (*http.Response, error) {
		calls.Add(1)
		return nil, &net.OpError{Op: "dial", Err: errors.New("refused")}
	})

	client := BuildHTTPClient(ClientOptions{Base: base, Timeout: time.Second})
	_, err := client.Get("http://weather.invalid/current.json")
	require.Error(t, err)
	require.EqualValues(t, 1, calls.Load())
	require.Equal(t, time.Second, client.Timeout)
}

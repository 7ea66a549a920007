package netutil

import (
	"net"
	"net/http"
	"time"
)

const (
	defaultDialTimeout       = 5 * time.Second
	defaultTLSHandshake      = 5 * time.Second
	defaultIdleConnTimeout   = 30 * time.Second
	defaultClientTimeout     = 30 * time.Second
	defaultKeepAliveInterval = 30 * time.Second
	defaultRetryBackoff      = 2 * time.Second
)

// ClientOptions tunes BuildHTTPClient. Zero values pick defaults; Retries=0 disables retrying.
type ClientOptions struct {
	Timeout         time.Duration
	ResponseTimeout time.Duration
	Retries         int
	RetryBackoff    time.Duration
	Base            http.RoundTripper
}

// BuildHTTPClient returns an HTTP client with bounded timeouts and optional
// retries for transient network failures.
func BuildHTTPClient(opts ClientOptions) *http.Client {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultClientTimeout
	}
	if opts.RetryBackoff <= 0 {
		opts.RetryBackoff = defaultRetryBackoff
	}
	base := opts.Base
	if base == nil {
		base = &http.Transport{
			Proxy:                 http.ProxyFromEnvironment,
			DialContext:           (&net.Dialer{Timeout: defaultDialTimeout, KeepAlive: defaultKeepAliveInterval}).DialContext,
			ForceAttemptHTTP2:     true,
			MaxIdleConns:          100,
			MaxIdleConnsPerHost:   10,
			IdleConnTimeout:       defaultIdleConnTimeout,
			TLSHandshakeTimeout:   defaultTLSHandshake,
			ResponseHeaderTimeout: opts.ResponseTimeout,
			ExpectContinueTimeout: 1 * time.Second,
		}
	}

	transport := base
	if opts.Retries > 0 {
		transport = &retryTransport{
			base:       base,
			maxRetries: opts.Retries,
			backoff:    opts.RetryBackoff,
		}
	}

	return &http.Client{
		Timeout:   opts.Timeout,
		Transport: transport,
	}
}

type retryTransport struct {
	base       http.RoundTripper
	maxRetries int
	backoff    time.Duration
}

func (t *retryTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	attempts := t.maxRetries + 1
	var lastErr error

	for attempt := 1; attempt <= attempts; attempt++ {
		currReq := req
		if attempt > 1 {
			currReq = req.Clone(req.Context())
			if req.GetBody != nil {
				body, err := req.GetBody()
				if err != nil {
					return nil, err
				}
				currReq.Body = body
			} else if req.Body != nil && req.Body != http.NoBody {
				return nil, lastErr
			}
		}

		resp, err := t.base.RoundTrip(currReq)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		if !ShouldRetry(err) || attempt == attempts {
			break
		}

		timer := time.NewTimer(t.backoff * time.Duration(attempt))
		select {
		case <-req.Context().Done():
			timer.Stop()
			return nil, req.Context().Err()
		case <-timer.C:
		}
	}

	return nil, lastErr
}

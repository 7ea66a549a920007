// Package netutil holds the HTTP plumbing shared by the Telegram transport
// and the outbound weather and photo clients.
package netutil

import (
	"context"
	"errors"
	"net"
	"net/url"
)

// ShouldRetry reports whether a network error is worth retrying.
// Only transient dial and timeout failures qualify; a cancelled context never does.
func ShouldRetry(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		if opErr.Timeout() || opErr.Op == "dial" {
			return true
		}
		if nested, ok := opErr.Err.(net.Error); ok && nested.Timeout() {
			return true
		}
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if urlErr.Timeout() {
			return true
		}
		if urlErr.Err != nil && !errors.Is(urlErr.Err, err) {
			return ShouldRetry(urlErr.Err)
		}
	}

	return false
}

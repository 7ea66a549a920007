package netutil

import (
	"context"
	"crypto/tls"
	"errors"
	"net"
	"net/url"
)

// Error kinds reported by Classify.
const (
	KindTimeout   = "timeout"
	KindDNS       = "dns"
	KindDial      = "dial"
	KindTLS       = "tls"
	KindCancelled = "cancelled"
	KindUnknown   = "unknown"
)

// Classify maps a transport error onto a short kind suitable for the err_kind log field.
func Classify(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, context.Canceled) {
		return KindCancelled
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		if dnsErr.IsTimeout {
			return KindTimeout
		}
		return KindDNS
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return KindTimeout
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		if opErr.Timeout() {
			return KindTimeout
		}
		if opErr.Op == "dial" {
			return KindDial
		}
		if opErr.Op == "read" || opErr.Op == "write" {
			if kind := Classify(opErr.Err); kind != "" && kind != KindUnknown {
				return kind
			}
		}
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if urlErr.Timeout() {
			return KindTimeout
		}
		if urlErr.Err != nil && !errors.Is(urlErr.Err, err) {
			if kind := Classify(urlErr.Err); kind != "" && kind != KindUnknown {
				return kind
			}
		}
	}

	var alertErr tls.AlertError
	if errors.As(err, &alertErr) {
		return KindTLS
	}
	var certErr *tls.CertificateVerificationError
	if errors.As(err, &certErr) {
		return KindTLS
	}

	return KindUnknown
}

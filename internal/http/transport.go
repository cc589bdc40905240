package http

import (
	"crypto/tls"
	"net"
	"net/http"
	"time"
)

// TransportOption configures the transport returned by GetHTTPTransport
type TransportOption func(*http.Transport)

// WithInsecure disables certificate verification when insecure is true.
// Artifactory instances behind internal CAs or self-signed certificates
// are the expected case.
func WithInsecure(insecure bool) TransportOption {
	return func(tr *http.Transport) {
		if tr.TLSClientConfig == nil {
			tr.TLSClientConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}
		tr.TLSClientConfig.InsecureSkipVerify = insecure //nolint:gosec
	}
}

// GetHTTPTransport returns a fresh transport with the options applied.
// The default transport is never mutated.
func GetHTTPTransport(opts ...TransportOption) *http.Transport {
	tr := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		TLSClientConfig:       &tls.Config{MinVersion: tls.VersionTLS12},
	}
	for _, opt := range opts {
		opt(tr)
	}
	return tr
}

// IsInsecure reports whether the client skips certificate verification
func IsInsecure(c *http.Client) bool {
	if c == nil {
		return false
	}
	tr, ok := c.Transport.(*http.Transport)
	if !ok || tr.TLSClientConfig == nil {
		return false
	}
	return tr.TLSClientConfig.InsecureSkipVerify
}

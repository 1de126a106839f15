package liveclient

import (
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"time"

	"golang.org/x/net/http2"
)

// buildHTTPClient creates the HTTP client used against the game client's
// loopback endpoint. The game serves a self-signed certificate on 127.0.0.1,
// so verification is switched off unless the config asks for it.
func buildHTTPClient(cfg Config) (*http.Client, error) {
	if cfg.Timeout <= 0 {
		return nil, fmt.Errorf("timeout must be > 0")
	}

	tlsConfig := &tls.Config{
		InsecureSkipVerify: !cfg.VerifyTLS, //nolint:gosec // loopback, self-signed
		MinVersion:         tls.VersionTLS12,
	}

	transport := &http.Transport{
		Proxy: nil, // never route loopback traffic through a proxy
		DialContext: (&net.Dialer{
			Timeout:   cfg.Timeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSClientConfig:     tlsConfig,
		TLSHandshakeTimeout: cfg.Timeout,
		MaxIdleConns:        4,
		IdleConnTimeout:     90 * time.Second,
	}

	// Negotiate h2 when the endpoint offers it, fall back to HTTP/1.1 otherwise.
	if err := http2.ConfigureTransport(transport); err != nil {
		return nil, fmt.Errorf("failed to configure http2: %w", err)
	}

	return &http.Client{
		Transport: transport,
		Timeout:   cfg.Timeout,
	}, nil
}

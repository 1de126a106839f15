// Package liveclient talks to the League of Legends Live Client Data API that
// the game client serves on https://127.0.0.1:2999 while a match is running.
//
// Responses are read as text before decoding so that a payload which does not
// match package schema can be reported with its line, column and surrounding
// lines. The upstream schema changes between game patches without notice.
package liveclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Alex-Aron/LeagueOverlay/internal/schema"
)

const (
	DefaultBaseURL = "https://127.0.0.1:2999/liveclientdata"
	DefaultTimeout = 5 * time.Second

	EndpointGameStats    = "/gamestats"
	EndpointAllGameData  = "/allgamedata"
	EndpointEventData    = "/eventdata"
	EndpointPlayerScores = "/playerscores"

	maxErrorBody = 512
)

type Config struct {
	BaseURL   string
	Timeout   time.Duration
	VerifyTLS bool
}

func (c Config) withDefaults() Config {
	if strings.TrimSpace(c.BaseURL) == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	return c
}

// Client is safe for concurrent use. It holds no state besides the HTTP
// client configuration.
type Client struct {
	http    *http.Client
	baseURL string
	logger  *zap.Logger
}

// New builds a Client. An error here means the HTTP client itself could not
// be constructed and is fatal to startup.
func New(cfg Config, logger *zap.Logger) (*Client, error) {
	cfg = cfg.withDefaults()
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", cfg.BaseURL, err)
	}
	httpClient, err := buildHTTPClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build HTTP client: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		http:    httpClient,
		baseURL: cfg.BaseURL,
		logger:  logger,
	}, nil
}

// BaseURL returns the endpoint prefix requests are issued against.
func (c *Client) BaseURL() string { return c.baseURL }

// CheckActive reports whether a match is running. Any transport or decode
// failure counts as "not active".
func (c *Client) CheckActive(ctx context.Context) bool {
	_, err := Request[schema.GameData](ctx, c, EndpointGameStats)
	if err != nil {
		c.logger.Debug("liveness probe negative", append(LogFields(err), zap.Error(err))...)
		return false
	}
	return true
}

// FetchSnapshotRaw fetches /allgamedata and checks that it is well-formed
// JSON. The raw bytes are returned untouched so the typed decode can
// report positions against the same text.
func (c *Client) FetchSnapshotRaw(ctx context.Context) (json.RawMessage, error) {
	return Request[json.RawMessage](ctx, c, EndpointAllGameData)
}

func (c *Client) FetchEvents(ctx context.Context) (schema.EventList, error) {
	return Request[schema.EventList](ctx, c, EndpointEventData)
}

// FetchPlayerScores returns the scoreboard line for one riot id.
func (c *Client) FetchPlayerScores(ctx context.Context, riotID string) (schema.Score, error) {
	endpoint := EndpointPlayerScores + "?riotId=" + url.QueryEscape(riotID)
	return Request[schema.Score](ctx, c, endpoint)
}

// Request issues a GET against endpoint and decodes the body into T.
// Non-2xx responses fail with *HTTPError, bodies that do not match T fail
// with *DecodeError.
func Request[T any](ctx context.Context, c *Client, endpoint string) (T, error) {
	var zero T
	text, err := c.get(ctx, endpoint)
	if err != nil {
		return zero, err
	}
	return Decode[T](endpoint, text)
}

func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request %s: %w", endpoint, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &HTTPError{Endpoint: endpoint, Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	text, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", endpoint, err)
	}
	return text, nil
}

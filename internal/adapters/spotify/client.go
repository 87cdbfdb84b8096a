// Package spotify adapts the Spotify Web API to the track resolver and
// playlist exporter ports. The access token is the caller's: every method
// takes it per call, since tokens belong to a session, not to the process.
package spotify

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"

	"github.com/vibecheck-labs/vibecheck/internal/core/ports"
)

const (
	defaultBaseURL = "https://api.spotify.com/v1"

	defaultMaxRetries = 3
	defaultBackoff    = 500 * time.Millisecond

	// Spotify's search endpoint throttles aggressively during bulk
	// resolution; stay under ~10 req/s per token.
	defaultSearchRate  = 8
	defaultSearchBurst = 4
)

// Client is an HTTP client for the Spotify adapter.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	limiter     *rate.Limiter
	logger      *log.Logger
	maxRetries  int
	baseBackoff time.Duration
}

var (
	_ ports.TrackResolver    = (*Client)(nil)
	_ ports.PlaylistExporter = (*Client)(nil)
)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithBaseURL points the client at a different API host. Used by tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithRetry overrides the retry budget and base backoff.
func WithRetry(maxRetries int, baseBackoff time.Duration) Option {
	return func(c *Client) {
		if maxRetries > 0 {
			c.maxRetries = maxRetries
		}
		if baseBackoff > 0 {
			c.baseBackoff = baseBackoff
		}
	}
}

// WithSearchRate overrides the search rate limit.
func WithSearchRate(perSecond float64, burst int) Option {
	return func(c *Client) {
		if perSecond > 0 && burst > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *log.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient constructs a new Spotify client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient:  &http.Client{Timeout: 15 * time.Second},
		baseURL:     defaultBaseURL,
		limiter:     rate.NewLimiter(rate.Limit(defaultSearchRate), defaultSearchBurst),
		logger:      log.Default(),
		maxRetries:  defaultMaxRetries,
		baseBackoff: defaultBackoff,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) newRequest(ctx context.Context, method, url, token string, body []byte) (*http.Request, error) {
	req, err := newJSONRequest(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("spotify adapter: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	return req, nil
}

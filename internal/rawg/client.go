// Package rawg is the client for the upstream game-metadata REST API.
//
// Fetch never fails from the caller's point of view: a network failure or a
// non-success status is logged and reported as an absent (nil) result, which
// callers render as "nothing to show". Successful payloads are written to the
// response cache, and cache hits are served without network I/O.
package rawg

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/ryanm101/biblioteca/internal/cache"
	"github.com/ryanm101/biblioteca/internal/logging"
	"github.com/ryanm101/biblioteca/internal/metrics"
	"github.com/ryanm101/biblioteca/internal/tracing"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/time/rate"
)

// DefaultBaseURL is the public API root.
const DefaultBaseURL = "https://api.rawg.io/api"

// maxBody bounds a single response body.
const maxBody = 8 << 20

// Sentinel errors for network failures. They never escape Fetch.
var (
	ErrNetwork = errors.New("network failure")
	ErrStatus  = errors.New("unexpected status")
)

// Params are query parameters. Empty values are omitted from requests.
type Params map[string]string

// Client issues cached requests against the API.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	cache   *cache.Cache
	limiter *rate.Limiter
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default instrumented HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithCache enables response caching.
func WithCache(rc *cache.Cache) Option {
	return func(c *Client) {
		c.cache = rc
	}
}

// WithRateLimit throttles network requests to rps per second. Zero disables throttling.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// WithTimeout sets the transport timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// New creates a client for baseURL authenticated with apiKey.
func New(baseURL, apiKey string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   10 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// URL builds the request URL for endpoint. The API key is always present;
// empty parameters are omitted.
func (c *Client) URL(endpoint string, params Params) string {
	q := url.Values{}
	q.Set("key", c.apiKey)
	for k, v := range params {
		if v == "" {
			continue
		}
		q.Set(k, v)
	}
	return c.baseURL + endpoint + "?" + q.Encode()
}

// Fetch returns the JSON payload for endpoint and params, or nil when no
// data could be obtained.
func (c *Client) Fetch(ctx context.Context, endpoint string, params Params) json.RawMessage {
	label := endpointLabel(endpoint)
	ctx, span := tracing.StartSpan(ctx, "rawg.fetch", tracing.WithAttributes(attribute.String("rawg.endpoint", label)))
	defer span.End()

	key := cache.Key(endpoint, params)
	if c.cache != nil {
		if payload, ok := c.cache.Get(ctx, key); ok {
			metrics.APIRequests.WithLabelValues(label, "cached").Inc()
			span.SetAttributes(attribute.Bool("rawg.cached", true))
			return payload
		}
	}

	payload, err := c.get(ctx, label, c.URL(endpoint, params))
	if err != nil {
		logging.Warn("api request failed", "endpoint", endpoint, "error", err)
		metrics.APIRequests.WithLabelValues(label, "error").Inc()
		tracing.RecordError(span, err)
		return nil
	}

	metrics.APIRequests.WithLabelValues(label, "ok").Inc()
	if c.cache != nil {
		c.cache.Set(ctx, key, payload)
	}
	return payload
}

func (c *Client) get(ctx context.Context, label, reqURL string) (json.RawMessage, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: rate limit wait: %v", ErrNetwork, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrNetwork, err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.RecordAPIDuration(label, start)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s", ErrStatus, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrNetwork, err)
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("%w: response is not valid JSON", ErrNetwork)
	}
	return json.RawMessage(body), nil
}

var idSegment = regexp.MustCompile(`^/games/[^/]+`)

// endpointLabel collapses per-game paths so metric labels stay bounded.
func endpointLabel(endpoint string) string {
	if endpoint == "/games" || !strings.HasPrefix(endpoint, "/games/") {
		return endpoint
	}
	return idSegment.ReplaceAllString(endpoint, "/games/{id}")
}

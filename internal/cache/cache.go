// Package cache stores upstream API responses in the persistent key-value
// store with a time-to-live. Every storage failure degrades to a cache miss.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/ryanm101/biblioteca/internal/kv"
	"github.com/ryanm101/biblioteca/internal/logging"
	"github.com/ryanm101/biblioteca/internal/metrics"
	"github.com/ryanm101/biblioteca/internal/tracing"
	"go.opentelemetry.io/otel/attribute"
)

// DefaultTTL is the maximum age of a servable entry.
const DefaultTTL = 30 * time.Minute

// keyPrefix separates cache entries from other values in the same namespace.
const keyPrefix = "cache:"

// Clock returns the current time.
type Clock func() time.Time

// envelope is the stored form of an entry. TS is the write time in Unix milliseconds.
type envelope struct {
	Data json.RawMessage `json:"data"`
	TS   int64           `json:"ts"`
}

// Cache is a TTL response cache over a kv.Store.
type Cache struct {
	store kv.Store
	ttl   time.Duration
	now   Clock
}

// Option configures a Cache.
type Option func(*Cache)

// WithTTL overrides DefaultTTL.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithClock injects the time source.
func WithClock(now Clock) Option {
	return func(c *Cache) {
		c.now = now
	}
}

// New creates a cache backed by store.
func New(store kv.Store, opts ...Option) *Cache {
	c := &Cache{store: store, ttl: DefaultTTL, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// TTL returns the configured time-to-live.
func (c *Cache) TTL() time.Duration {
	return c.ttl
}

// Key derives the cache key for an endpoint and parameter set. Empty values
// are dropped and names are sorted, so logically identical queries collide.
func Key(endpoint string, params map[string]string) string {
	names := make([]string, 0, len(params))
	for k, v := range params {
		if v == "" {
			continue
		}
		names = append(names, k)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(endpoint)
	for i, k := range names {
		if i == 0 {
			b.WriteByte('?')
		} else {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(k))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(params[k]))
	}
	return b.String()
}

// Get returns the payload for key if present and fresh. A stale entry is
// deleted and reported as absent.
func (c *Cache) Get(ctx context.Context, key string) (json.RawMessage, bool) {
	ctx, span := tracing.StartSpan(ctx, "cache.get", tracing.WithAttributes(attribute.String("cache.key", key)))
	defer span.End()

	raw, err := c.store.Get(ctx, keyPrefix+key)
	if errors.Is(err, kv.ErrNotFound) {
		metrics.CacheLookups.WithLabelValues("miss").Inc()
		span.SetAttributes(attribute.String("cache.result", "miss"))
		return nil, false
	}
	if err != nil {
		logging.Warn("cache read failed", "key", key, "error", err)
		metrics.CacheLookups.WithLabelValues("error").Inc()
		span.SetAttributes(attribute.String("cache.result", "error"))
		return nil, false
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil || env.Data == nil {
		logging.Warn("cache entry corrupted", "key", key, "error", err)
		metrics.CacheLookups.WithLabelValues("error").Inc()
		span.SetAttributes(attribute.String("cache.result", "error"))
		c.remove(ctx, key)
		return nil, false
	}

	if c.isStale(env) {
		metrics.CacheLookups.WithLabelValues("stale").Inc()
		span.SetAttributes(attribute.String("cache.result", "stale"))
		c.remove(ctx, key)
		return nil, false
	}

	metrics.CacheLookups.WithLabelValues("hit").Inc()
	span.SetAttributes(attribute.String("cache.result", "hit"))
	return env.Data, true
}

// Set stores payload under key, replacing any existing entry. Failures are
// logged and otherwise ignored.
func (c *Cache) Set(ctx context.Context, key string, payload json.RawMessage) {
	raw, err := json.Marshal(envelope{Data: payload, TS: c.now().UnixMilli()})
	if err == nil {
		err = c.store.Set(ctx, keyPrefix+key, raw)
	}
	if err != nil {
		logging.Warn("cache write failed", "key", key, "error", err)
		metrics.CacheWrites.WithLabelValues("error").Inc()
		return
	}
	metrics.CacheWrites.WithLabelValues("ok").Inc()
}

// isStale also rejects entries stamped in the future, which a clock step
// back would otherwise keep alive past the TTL.
func (c *Cache) isStale(env envelope) bool {
	age := c.now().Sub(time.UnixMilli(env.TS))
	return age < 0 || age > c.ttl
}

func (c *Cache) remove(ctx context.Context, key string) {
	if err := c.store.Remove(ctx, keyPrefix+key); err != nil {
		logging.Warn("cache evict failed", "key", key, "error", err)
	}
}

// Stats summarises the cache contents.
type Stats struct {
	Entries int
	Stale   int
}

// Stats counts fresh and stale entries without modifying them.
func (c *Cache) Stats(ctx context.Context) (Stats, error) {
	keys, err := c.store.Keys(ctx, keyPrefix)
	if err != nil {
		return Stats{}, err
	}

	st := Stats{Entries: len(keys)}
	for _, k := range keys {
		raw, err := c.store.Get(ctx, k)
		if err != nil {
			continue
		}
		var env envelope
		if json.Unmarshal(raw, &env) != nil || c.isStale(env) {
			st.Stale++
		}
	}
	return st, nil
}

// Purge removes every stale or unreadable entry and returns how many were removed.
func (c *Cache) Purge(ctx context.Context) (int, error) {
	keys, err := c.store.Keys(ctx, keyPrefix)
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, k := range keys {
		raw, err := c.store.Get(ctx, k)
		if err != nil {
			continue
		}
		var env envelope
		if json.Unmarshal(raw, &env) == nil && !c.isStale(env) {
			continue
		}
		if err := c.store.Remove(ctx, k); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}

// Clear removes every cache entry and returns how many were removed.
func (c *Cache) Clear(ctx context.Context) (int, error) {
	keys, err := c.store.Keys(ctx, keyPrefix)
	if err != nil {
		return 0, err
	}
	for i, k := range keys {
		if err := c.store.Remove(ctx, k); err != nil {
			return i, err
		}
	}
	return len(keys), nil
}

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/ryanm101/biblioteca/internal/kv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time          { return f.now }
func (f *fakeClock) Advance(d time.Duration) { f.now = f.now.Add(d) }

func newTestCache(store kv.Store) (*Cache, *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)}
	return New(store, WithClock(clock.Now)), clock
}

func TestKey(t *testing.T) {
	tests := []struct {
		name     string
		endpoint string
		params   map[string]string
		expected string
	}{
		{"no params", "/genres", nil, "/genres"},
		{"sorted", "/games", map[string]string{"page": "1", "genres": "indie"}, "/games?genres=indie&page=1"},
		{"drops empty", "/games", map[string]string{"page": "1", "search": ""}, "/games?page=1"},
		{"escapes", "/games", map[string]string{"search": "half life"}, "/games?search=half+life"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Key(tt.endpoint, tt.params))
		})
	}
}

func TestKey_OrderIndependent(t *testing.T) {
	a := map[string]string{}
	a["ordering"] = "-relevance"
	a["page"] = "2"
	a["genres"] = "rpg"

	b := map[string]string{}
	b["genres"] = "rpg"
	b["page"] = "2"
	b["ordering"] = "-relevance"

	assert.Equal(t, Key("/games", a), Key("/games", b))
}

func TestGetSet_TTL(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	c, clock := newTestCache(store)

	key := Key("/games", map[string]string{"page": "1", "genres": "indie"})
	payload := json.RawMessage(`{"results":[{"id":1}]}`)
	c.Set(ctx, key, payload)

	raw, err := store.Get(ctx, keyPrefix+key)
	require.NoError(t, err)
	var env envelope
	require.NoError(t, json.Unmarshal(raw, &env))
	assert.Equal(t, clock.now.UnixMilli(), env.TS)
	assert.JSONEq(t, string(payload), string(env.Data))

	clock.Advance(10 * time.Minute)
	got, ok := c.Get(ctx, key)
	require.True(t, ok)
	assert.JSONEq(t, string(payload), string(got))

	clock.Advance(21 * time.Minute)
	got, ok = c.Get(ctx, key)
	assert.False(t, ok)
	assert.Nil(t, got)

	_, err = store.Get(ctx, keyPrefix+key)
	assert.ErrorIs(t, err, kv.ErrNotFound, "stale entry should be deleted on read")
}

func TestGet_ExactlyTTLIsFresh(t *testing.T) {
	ctx := context.Background()
	c, clock := newTestCache(kv.NewMemory())

	c.Set(ctx, "k", json.RawMessage(`1`))
	clock.Advance(DefaultTTL)

	_, ok := c.Get(ctx, "k")
	assert.True(t, ok)
}

func TestGet_FutureTimestampIsStale(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	c, clock := newTestCache(store)

	// Written by a clock running a day ahead
	clock.Advance(24 * time.Hour)
	c.Set(ctx, "k", json.RawMessage(`1`))
	clock.Advance(-22 * time.Hour)

	_, ok := c.Get(ctx, "k")
	assert.False(t, ok)

	_, err := store.Get(ctx, keyPrefix+"k")
	assert.ErrorIs(t, err, kv.ErrNotFound)
}

func TestSet_Overwrites(t *testing.T) {
	ctx := context.Background()
	c, clock := newTestCache(kv.NewMemory())

	c.Set(ctx, "k", json.RawMessage(`"old"`))
	clock.Advance(29 * time.Minute)
	c.Set(ctx, "k", json.RawMessage(`"new"`))
	clock.Advance(10 * time.Minute)

	got, ok := c.Get(ctx, "k")
	require.True(t, ok, "overwrite should refresh the timestamp")
	assert.Equal(t, `"new"`, string(got))
}

func TestGet_StorageFailureIsMiss(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	c, _ := newTestCache(store)
	c.Set(ctx, "k", json.RawMessage(`1`))

	store.FailGet = errors.New("disk on fire")
	got, ok := c.Get(ctx, "k")
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestSet_StorageFailureIsSwallowed(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	store.FailSet = errors.New("quota exceeded")
	c, _ := newTestCache(store)

	assert.NotPanics(t, func() { c.Set(ctx, "k", json.RawMessage(`1`)) })

	store.FailSet = nil
	_, ok := c.Get(ctx, "k")
	assert.False(t, ok)
}

func TestGet_CorruptedEnvelope(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	c, _ := newTestCache(store)

	require.NoError(t, store.Set(ctx, keyPrefix+"k", []byte("{not json")))

	_, ok := c.Get(ctx, "k")
	assert.False(t, ok)
	assert.Equal(t, 0, store.Len(), "corrupted entry should be evicted")
}

func TestStatsPurgeClear(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	c, clock := newTestCache(store)

	c.Set(ctx, "old", json.RawMessage(`1`))
	clock.Advance(40 * time.Minute)
	c.Set(ctx, "fresh", json.RawMessage(`2`))
	require.NoError(t, store.Set(ctx, "wishlist", []byte("[]")))

	st, err := c.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, Stats{Entries: 2, Stale: 1}, st)

	removed, err := c.Purge(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	_, ok := c.Get(ctx, "fresh")
	assert.True(t, ok)

	cleared, err := c.Clear(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, cleared)

	_, err = store.Get(ctx, "wishlist")
	assert.NoError(t, err, "clear must leave non-cache keys alone")
}

func TestWithTTL(t *testing.T) {
	c := New(kv.NewMemory(), WithTTL(time.Minute))
	assert.Equal(t, time.Minute, c.TTL())

	c = New(kv.NewMemory(), WithTTL(0))
	assert.Equal(t, DefaultTTL, c.TTL())
}

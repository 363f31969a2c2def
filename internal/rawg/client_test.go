package rawg

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ryanm101/biblioteca/internal/cache"
	"github.com/ryanm101/biblioteca/internal/kv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// upstream is a fake API server that records every request it receives.
type upstream struct {
	*httptest.Server
	hits     atomic.Int32
	lastPath atomic.Value // string
	lastQS   atomic.Value // url.Values
}

func newUpstream(t *testing.T, status int, body string) *upstream {
	t.Helper()
	u := &upstream{}
	u.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u.hits.Add(1)
		u.lastPath.Store(r.URL.Path)
		u.lastQS.Store(r.URL.Query())
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(u.Close)
	return u
}

func (u *upstream) query() url.Values {
	v, _ := u.lastQS.Load().(url.Values)
	return v
}

func newCachedClient(baseURL string) *Client {
	return New(baseURL, "test-key", WithCache(cache.New(kv.NewMemory())))
}

func TestURL_OmitsEmptyParams(t *testing.T) {
	c := New("https://example.test/api/", "k")

	got, err := url.Parse(c.URL("/games", Params{"page": "1", "search": "", "genres": "indie"}))
	require.NoError(t, err)

	assert.Equal(t, "/api/games", got.Path)
	q := got.Query()
	assert.Equal(t, "k", q.Get("key"))
	assert.Equal(t, "1", q.Get("page"))
	assert.Equal(t, "indie", q.Get("genres"))
	_, hasSearch := q["search"]
	assert.False(t, hasSearch, "empty params must be omitted, not sent empty")
}

func TestFetch_SecondCallServedFromCache(t *testing.T) {
	up := newUpstream(t, http.StatusOK, `{"count":1,"next":null,"results":[{"id":7,"name":"Celeste"}]}`)
	c := newCachedClient(up.URL)
	ctx := context.Background()

	first := c.Fetch(ctx, "/games", Params{"page": "1", "genres": "indie"})
	second := c.Fetch(ctx, "/games", Params{"genres": "indie", "page": "1"})

	require.NotNil(t, first)
	assert.Equal(t, int32(1), up.hits.Load(), "second call must not reach the network")
	assert.JSONEq(t, string(first), string(second))
}

func TestFetch_NonSuccessIsAbsent(t *testing.T) {
	up := newUpstream(t, http.StatusUnauthorized, `{"error":"bad key"}`)
	c := newCachedClient(up.URL)

	got := c.Fetch(context.Background(), "/games", nil)
	assert.Nil(t, got)

	// Failures are not cached
	_ = c.Fetch(context.Background(), "/games", nil)
	assert.Equal(t, int32(2), up.hits.Load())
}

func TestFetch_NetworkFailureIsAbsent(t *testing.T) {
	up := newUpstream(t, http.StatusOK, `{}`)
	base := up.URL
	up.Close()

	c := New(base, "k")
	assert.Nil(t, c.Fetch(context.Background(), "/games", nil))
}

func TestFetch_InvalidJSONIsAbsent(t *testing.T) {
	up := newUpstream(t, http.StatusOK, `<html>maintenance</html>`)
	c := New(up.URL, "k")

	assert.Nil(t, c.Fetch(context.Background(), "/games", nil))
}

func TestFetch_CancelledContextIsAbsent(t *testing.T) {
	up := newUpstream(t, http.StatusOK, `{}`)
	c := New(up.URL, "k", WithRateLimit(1))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Nil(t, c.Fetch(ctx, "/genres", nil))
}

func TestWithTimeout(t *testing.T) {
	c := New("", "k", WithTimeout(3*time.Second))
	assert.Equal(t, 3*time.Second, c.http.Timeout)
	assert.Equal(t, DefaultBaseURL, c.baseURL)
}

func TestEndpointLabel(t *testing.T) {
	tests := []struct {
		endpoint string
		expected string
	}{
		{"/games", "/games"},
		{"/genres", "/genres"},
		{"/games/3498", "/games/{id}"},
		{"/games/3498/screenshots", "/games/{id}/screenshots"},
	}

	for _, tt := range tests {
		t.Run(tt.endpoint, func(t *testing.T) {
			assert.Equal(t, tt.expected, endpointLabel(tt.endpoint))
		})
	}
}

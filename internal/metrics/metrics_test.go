package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordAPIDuration(t *testing.T) {
	start := time.Now().Add(-100 * time.Millisecond)

	assert.NotPanics(t, func() { RecordAPIDuration("/games", start) })
}

func TestAPIRequests_Counter(t *testing.T) {
	before := testutil.ToFloat64(APIRequests.WithLabelValues("/genres", "cached"))

	APIRequests.WithLabelValues("/genres", "cached").Inc()

	after := testutil.ToFloat64(APIRequests.WithLabelValues("/genres", "cached"))
	assert.Equal(t, before+1, after)
}

func TestWishlistSize_Gauge(t *testing.T) {
	WishlistSize.Set(7)
	assert.Equal(t, float64(7), testutil.ToFloat64(WishlistSize))
}

func TestHandler_Health(t *testing.T) {
	srv := httptest.NewServer(Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), `"status":"ok"`)
}

func TestHandler_Metrics(t *testing.T) {
	CacheLookups.WithLabelValues("hit").Inc()

	srv := httptest.NewServer(Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "biblioteca_cache_lookups_total")
}

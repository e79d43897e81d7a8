package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"catalog/internal/metrics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, m *metrics.HTTPMetrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	return string(body)
}

func TestHTTPMetrics_ObserveRequest(t *testing.T) {
	m := metrics.NewHTTPMetrics("catalog")

	m.ObserveRequest("GET", 200, 4*time.Millisecond)
	m.ObserveRequest("GET", 200, 6*time.Millisecond)
	m.ObserveRequest("DELETE", 401, time.Millisecond)

	body := scrape(t, m)
	assert.Contains(t, body, `catalog_http_requests_total{method="GET",status="200"} 2`)
	assert.Contains(t, body, `catalog_http_requests_total{method="DELETE",status="401"} 1`)
	assert.Contains(t, body, `catalog_http_request_duration_seconds_count{method="GET"} 2`)
	assert.Contains(t, body, "go_goroutines")
}

func TestHTTPMetrics_InstancesAreIndependent(t *testing.T) {
	a := metrics.NewHTTPMetrics("catalog")
	b := metrics.NewHTTPMetrics("catalog")

	a.ObserveRequest("POST", 201, time.Millisecond)
	assert.NotContains(t, scrape(t, b), `catalog_http_requests_total{method="POST"`)
}

package prometheus

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveHTTPRequest(t *testing.T) {
	c := NewCollector()

	c.ObserveHTTPRequest(http.MethodGet, "/health", http.StatusOK, 2*time.Millisecond)
	c.ObserveHTTPRequest(http.MethodGet, "/health", http.StatusOK, 3*time.Millisecond)
	c.ObserveHTTPRequest(http.MethodGet, "", http.StatusNotFound, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.httpRequests.WithLabelValues("GET", "/health", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.httpRequests.WithLabelValues("GET", UnmatchedRoute, "404")))
	assert.Equal(t, 2, testutil.CollectAndCount(c.httpDuration))
}

func TestInFlight(t *testing.T) {
	c := NewCollector()

	c.IncInFlight()
	c.IncInFlight()
	c.DecInFlight()

	assert.Equal(t, 1.0, testutil.ToFloat64(c.httpInFlight))
}

func TestCollectorsAreIndependent(t *testing.T) {
	a := NewCollector()
	b := NewCollector()

	a.IncGRPCRequests("/grpc.health.v1.Health/Check", "OK")

	assert.Equal(t, 1.0, testutil.ToFloat64(a.grpcRequests.WithLabelValues("/grpc.health.v1.Health/Check", "OK")))
	assert.Equal(t, 0, testutil.CollectAndCount(b.grpcRequests))
}

func TestHandlerExposesMetrics(t *testing.T) {
	c := NewCollector()
	c.RecordBuildInfo("v1.2.3", "2024-01-01T00:00:00Z")
	c.ObserveHTTPRequest(http.MethodGet, "/", http.StatusOK, time.Millisecond)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `devops_demo_build_info{build_time="2024-01-01T00:00:00Z",version="v1.2.3"} 1`)
	assert.Contains(t, body, `devops_demo_http_requests_total{method="GET",route="/",status="200"} 1`)
	assert.Contains(t, body, "go_goroutines")
}

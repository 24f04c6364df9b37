package observability

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPMetricsMiddleware(t *testing.T) {
	metrics := NewMetrics(prometheus.NewRegistry())

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	wrapped := HTTPMetricsMiddleware(metrics)(handler)

	wrapped.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/v1/rows", nil))
	wrapped.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/v1/rows", nil))
	wrapped.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/missing", nil))

	ok := metrics.HTTPRequestsTotal.WithLabelValues("GET", "/api/v1/rows", "200")
	assert.Equal(t, float64(2), testutil.ToFloat64(ok))

	missing := metrics.HTTPRequestsTotal.WithLabelValues("GET", "/missing", "404")
	assert.Equal(t, float64(1), testutil.ToFloat64(missing))
}

func TestMetricsScrapeEndpoint(t *testing.T) {
	metrics := NewMetrics(prometheus.NewRegistry())
	metrics.HTTPRequestsTotal.WithLabelValues("GET", "/api/v1/rows", "200").Inc()

	router := mux.NewRouter()
	metrics.RegisterRoutes(router)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "rowsd_http_requests_total")
}

func TestNewMetricsWithNilRegistry(t *testing.T) {
	metrics := NewMetrics(nil)
	require.NotNil(t, metrics)

	rec := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

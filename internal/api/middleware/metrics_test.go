package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	r := chi.NewRouter()
	r.Use(m.Handler)
	r.Get("/calories/log/{logId}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	for i := 0; i < 3; i++ {
		r.ServeHTTP(httptest.NewRecorder(),
			httptest.NewRequest(http.MethodGet, "/calories/log/"+uuid.NewString(), nil))
	}
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.InDelta(t, 3, testutil.ToFloat64(
		m.requests.WithLabelValues(http.MethodGet, "/calories/log/{logId}", "404")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(
		m.requests.WithLabelValues(http.MethodGet, "/health", "200")), 0)
	assert.InDelta(t, 0, testutil.ToFloat64(m.inFlight), 0)

	// One series per route, the unmatched request included.
	assert.Equal(t, 3, testutil.CollectAndCount(m.requests))
	assert.Equal(t, 3, testutil.CollectAndCount(m.duration))

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "calorie_api_http_requests_total")
	assert.Contains(t, names, "calorie_api_http_request_duration_seconds")
	assert.Contains(t, names, "calorie_api_http_requests_in_flight")
}

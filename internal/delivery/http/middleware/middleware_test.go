package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/remotework/jobnexus/pkg/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

func TestMetrics_LabelsByRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Metrics)
	r.Get("/widgets/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	counter := metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/widgets/{id}", "418")
	before := counterValue(t, counter)

	for _, path := range []string{"/widgets/1", "/widgets/2"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusTeapot, rec.Code)
	}

	assert.Equal(t, before+2, counterValue(t, counter))
}

func TestLogging_RecordsStatus(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	handler := Logging(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/jobs", nil))

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "/api/jobs", fields["path"])
	assert.Equal(t, int64(http.StatusCreated), fields["status"])
}

func TestRateLimit(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	tests := []struct {
		name     string
		rps      float64
		burst    int
		allowed  int
		requests int
	}{
		{name: "disabled", rps: 0, burst: 0, allowed: 5, requests: 5},
		{name: "burst exhausted", rps: 0.001, burst: 2, allowed: 2, requests: 4},
		{name: "zero burst admits one", rps: 0.001, burst: 0, allowed: 1, requests: 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := RateLimit(tt.rps, tt.burst)(ok)
			passed := 0
			for i := 0; i < tt.requests; i++ {
				rec := httptest.NewRecorder()
				handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/extract-job", nil))
				if rec.Code == http.StatusOK {
					passed++
				} else {
					assert.Equal(t, http.StatusTooManyRequests, rec.Code)
					assert.JSONEq(t, `{"error":"Too many requests"}`, rec.Body.String())
				}
			}
			assert.Equal(t, tt.allowed, passed)
		})
	}
}

package http

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Maverick-Meerkats/greenfieldAPI-Reviews/pkg/health"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func serve(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestRouter_Health(t *testing.T) {
	hh := health.NewHandler()
	hh.Register("postgres", func(context.Context) error { return nil })

	r := NewRouter(hh, RouterConfig{}, testLogger())

	assert.Equal(t, http.StatusOK, serve(t, r, "/health/live").Code)
	assert.Equal(t, http.StatusOK, serve(t, r, "/health/ready").Code)
}

func TestRouter_ReadinessFailsWhenDependencyDown(t *testing.T) {
	hh := health.NewHandler()
	hh.Register("postgres", func(context.Context) error { return errors.New("connection refused") })

	r := NewRouter(hh, RouterConfig{}, testLogger())

	assert.Equal(t, http.StatusServiceUnavailable, serve(t, r, "/health/ready").Code)
	assert.Equal(t, http.StatusOK, serve(t, r, "/health/live").Code)
}

func TestRouter_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "reviews_test_total", Help: "test"})
	require.NoError(t, reg.Register(counter))
	counter.Inc()

	r := NewRouter(health.NewHandler(), RouterConfig{Gatherer: reg}, testLogger())

	rec := serve(t, r, "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "reviews_test_total 1")
}

func TestRouter_PprofDisabledWithoutAllowlist(t *testing.T) {
	r := NewRouter(health.NewHandler(), RouterConfig{}, testLogger())
	assert.Equal(t, http.StatusNotFound, serve(t, r, "/debug/pprof/").Code)
}

func TestRouter_NoReviewRoutes(t *testing.T) {
	r := NewRouter(health.NewHandler(), RouterConfig{}, testLogger())
	assert.Equal(t, http.StatusNotFound, serve(t, r, "/reviews").Code)
}

package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Maverick-Meerkats/greenfieldAPI-Reviews/pkg/health"
	"github.com/Maverick-Meerkats/greenfieldAPI-Reviews/pkg/middleware"
)

// RouterConfig selects what the ops router exposes.
type RouterConfig struct {
	Gatherer          prometheus.Gatherer
	PprofAllowedCIDRs []string
}

// NewRouter creates the operational router: liveness, readiness, Prometheus
// metrics and allowlisted pprof. Reviews are not served over HTTP.
func NewRouter(healthHandler *health.Handler, cfg RouterConfig, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogging(logger))
	r.Use(chimw.Timeout(30 * time.Second))

	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())

	gatherer := cfg.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	if len(cfg.PprofAllowedCIDRs) > 0 {
		middleware.RegisterPprof(r, cfg.PprofAllowedCIDRs, logger)
	}

	return r
}

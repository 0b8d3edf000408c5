package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/remotework/jobnexus/internal/delivery/http/handler"
	"github.com/remotework/jobnexus/internal/delivery/http/middleware"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

// Options tune the router middleware.
type Options struct {
	RequestTimeout time.Duration
	ExtractRPS     float64
	ExtractBurst   int
	// AllowedOrigins may call the API from a browser; empty allows any origin.
	AllowedOrigins []string
}

func New(h *handler.Handler, logger *zap.Logger, opts Options) http.Handler {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 60 * time.Second
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logging(logger))
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(cors.New(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type", "Accept"},
	}).Handler)
	r.Use(chimw.Timeout(opts.RequestTimeout))

	// Prometheus metrics endpoint
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.HandleHealthCheck)
		r.With(middleware.RateLimit(opts.ExtractRPS, opts.ExtractBurst)).Post("/extract-job", h.HandleExtractJob)
		r.Get("/extraction-failures", h.HandleListFailures)
		r.Get("/jobs", h.HandleListJobs)
		r.Post("/jobs", h.HandleCreateJob)
		r.Get("/jobs/{id}", h.HandleGetJob)
	})

	return r
}

// Package server implements `fsl serve`'s local HTTP introspection server:
// liveness/metrics endpoints plus a re-parse-on-request view of a schema
// directory (spec.md §6.6 "HTTP introspection server"). It performs no
// mutation of the schema files it reads; it exists for local development,
// not as part of the core's testable properties.
package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"github.com/rs/zerolog"

	_ "github.com/schemakit/fsl/internal/server/docs"
)

// Server wires the chi router, Prometheus registry and configured schema
// directory together. It is safe for concurrent use: every request
// re-parses the schema directory into its own tree rather than sharing one
// across goroutines (spec.md §5 forbids that).
type Server struct {
	schemasDir string
	logger     zerolog.Logger

	registry      *prometheus.Registry
	parseTotal    prometheus.Counter
	linkTotal     prometheus.Counter
	mergeTotal    prometheus.Counter
	printDuration prometheus.Histogram
}

// Config configures a new Server.
type Config struct {
	SchemasDir string
	Logger     zerolog.Logger
}

// New builds a Server and registers its Prometheus metrics against a
// fresh registry (never the global default, so repeated tests that
// construct multiple Servers never collide on metric names).
func New(cfg Config) *Server {
	reg := prometheus.NewRegistry()

	s := &Server{
		schemasDir: cfg.SchemasDir,
		logger:     cfg.Logger,
		registry:   reg,
		parseTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fsl_parse_total",
			Help: "Total number of schema-directory parses served.",
		}),
		linkTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fsl_link_total",
			Help: "Total number of function-link operations served.",
		}),
		mergeTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fsl_merge_roles_total",
			Help: "Total number of role-merge operations served.",
		}),
		printDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "fsl_canonical_print_seconds",
			Help:    "Latency of canonical-print requests.",
			Buckets: prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(s.parseTotal, s.linkTotal, s.mergeTotal, s.printDuration)
	return s
}

// Router builds the server's chi route tree.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", s.handleHealthz)
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	r.Get("/schema", s.handleSchema)
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	return r
}

// loggingMiddleware logs each request at Debug level with a uuid-tagged
// request id, skipping the noisy health/metrics endpoints.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		reqID := uuid.NewString()
		w.Header().Set("X-Request-Id", reqID)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		if r.URL.Path == "/healthz" || r.URL.Path == "/metrics" {
			return
		}
		s.logger.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration", time.Since(start)).
			Str("request_id", reqID).
			Msg("http request")
	})
}

// handleHealthz godoc
// @Summary  Liveness probe
// @Tags     ops
// @Produce  json
// @Success  200  {object}  map[string]string
// @Router   /healthz [get]
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

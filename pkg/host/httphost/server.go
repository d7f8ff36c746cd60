package httphost

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/sankey/pkg/errors"
	"github.com/matzehuels/sankey/pkg/interact"
	"github.com/matzehuels/sankey/pkg/observability"
	"github.com/matzehuels/sankey/pkg/pipeline"
)

// DefaultMaxBodyBytes limits the size of a posted snapshot.
const DefaultMaxBodyBytes = 8 << 20

// Server is the HTTP host. It owns the sessions and renders frames through a
// pipeline runner so artifacts are cached.
type Server struct {
	runner   *pipeline.Runner
	opts     pipeline.Options
	sessions *Store
	logger   *log.Logger
	gatherer prometheus.Gatherer
	maxBody  int64
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request and render logger.
func WithLogger(l *log.Logger) Option { return func(s *Server) { s.logger = l } }

// WithRunner sets the pipeline runner used for artifact rendering.
func WithRunner(r *pipeline.Runner) Option { return func(s *Server) { s.runner = r } }

// WithOptions sets the layout and render options applied to every session.
func WithOptions(o pipeline.Options) Option { return func(s *Server) { s.opts = o } }

// WithGatherer exposes the gatherer's metrics at GET /metrics.
func WithGatherer(g prometheus.Gatherer) Option { return func(s *Server) { s.gatherer = g } }

// WithSessionTTL sets how long idle sessions are kept.
func WithSessionTTL(ttl time.Duration) Option {
	return func(s *Server) { s.sessions = NewStore(ttl) }
}

// WithMaxBodyBytes overrides [DefaultMaxBodyBytes].
func WithMaxBodyBytes(n int64) Option { return func(s *Server) { s.maxBody = n } }

// New creates a server. The pipeline options are validated once here.
func New(opts ...Option) (*Server, error) {
	s := &Server{maxBody: DefaultMaxBodyBytes}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if s.runner == nil {
		s.runner = pipeline.NewRunner(nil, nil, s.logger)
	}
	if s.sessions == nil {
		s.sessions = NewStore(DefaultSessionTTL)
	}
	if s.opts.Logger == nil {
		s.opts.Logger = s.logger
	}
	if err := s.opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	return s, nil
}

// Sessions returns the session store.
func (s *Server) Sessions() *Store { return s.sessions }

// Handler returns the HTTP handler with every route registered.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	r.Post("/snapshot", s.handleCreate)
	r.Route("/sessions/{session}", func(r chi.Router) {
		r.Use(s.withSession)
		r.Delete("/", s.handleDelete)
		r.Post("/snapshot", s.handleSnapshot)
		r.Get("/frame.svg", s.handleArtifact(pipeline.FormatSVG, "image/svg+xml"))
		r.Get("/frame.json", s.handleArtifact(pipeline.FormatJSON, "application/json"))
		r.Get("/scene", s.handleScene)
		r.Get("/marking", s.handleMarking)
		r.Post("/events/hover", s.handleHover)
		r.Post("/events/leave", s.handleLeave)
		r.Post("/events/click", s.handleClick)
		r.Post("/events/background", s.handleBackground)
	})
	return r
}

// newController builds the controller of a new session.
func (s *Server) newController(host interact.Host, canvas interact.Canvas) *interact.Controller {
	return interact.NewController(host, canvas,
		interact.WithLogger(s.logger),
		interact.WithRenderOptions(s.opts.RenderOptions()...))
}

// observe reports every request to the HTTP hooks and logs it.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		d := time.Since(start)
		hooks.OnResponse(r.Context(), r.Method, route, status, d)
		s.logger.Debug("request", "method", r.Method, "route", route, "status", status, "duration", d)
	})
}

type errorResponse struct {
	Error string      `json:"error"`
	Code  errors.Code `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), errorResponse{Error: err.Error(), Code: errors.GetCode(err)})
}

// statusFor maps error codes to HTTP status codes.
func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidCanvas,
		errors.ErrCodeInvalidStyle, errors.ErrCodeInvalidConfig:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound:
		return http.StatusNotFound
	case errors.ErrCodeNegativeValue, errors.ErrCodeConservation:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeExpiredSnapshot:
		return http.StatusGone
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

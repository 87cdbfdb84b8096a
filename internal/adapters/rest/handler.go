// Package rest is the HTTP adapter: it decodes requests, drives the
// orchestrator, and maps the error taxonomy to status codes. Raw transport
// errors from collaborators never reach this layer.
package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/vibecheck-labs/vibecheck/internal/core/domain"
	"github.com/vibecheck-labs/vibecheck/internal/core/services"
	"github.com/vibecheck-labs/vibecheck/internal/middleware"
)

// Authorizer runs the external login flow; the handler only consumes the
// resulting opaque token.
type Authorizer interface {
	AuthURL(state string) string
	Exchange(ctx context.Context, code string) (string, error)
}

// ProfileFetcher resolves a token to the account behind it.
type ProfileFetcher interface {
	Profile(ctx context.Context, token string) (domain.Profile, error)
}

// Handler manages the HTTP interface for the application.
type Handler struct {
	svc      *services.Orchestrator
	auth     Authorizer
	profiles ProfileFetcher
	logger   *log.Logger

	frontendURL string
	metrics     http.Handler
	router      chi.Router

	stateMu sync.Mutex
	states  map[string]time.Time
}

// Options configures the handler.
type Options struct {
	Auth        Authorizer
	Profiles    ProfileFetcher
	Logger      *log.Logger
	FrontendURL string
	Metrics     http.Handler
}

// NewHandler initializes the HTTP adapter and sets up routes.
func NewHandler(svc *services.Orchestrator, opts Options) *Handler {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	h := &Handler{
		svc:         svc,
		auth:        opts.Auth,
		profiles:    opts.Profiles,
		logger:      logger,
		frontendURL: opts.FrontendURL,
		metrics:     opts.Metrics,
		states:      make(map[string]time.Time),
	}
	h.routes()
	return h
}

// ServeHTTP satisfies the http.Handler interface.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) routes() {
	r := chi.NewRouter()
	r.Use(middleware.Recovery(h.logger))
	r.Use(middleware.Logging(h.logger))
	r.Use(middleware.CORS(h.frontendURL))

	r.Get("/health", h.HealthCheck)
	if h.metrics != nil {
		r.Method(http.MethodGet, "/metrics", h.metrics)
	}

	r.Get("/login", h.Login)
	r.Get("/callback", h.Callback)

	r.Get("/questions", h.Questions)
	r.Get("/last-vibe", h.LastVibe)

	r.Route("/runs", func(r chi.Router) {
		r.Post("/", h.StartRun)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.GetRun)
			r.Delete("/", h.EndRun)
			r.Post("/answers", h.Answer)
			r.Post("/generate", h.Generate)
			r.Post("/regenerate", h.Regenerate)
			r.Post("/export", h.Export)
		})
	})

	h.router = r
}

// HealthCheck is a simple endpoint to verify the API is running.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	h.respond(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) respond(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("failed to encode response", "err", err)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// respondError maps the domain error taxonomy to HTTP status codes.
func (h *Handler) respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrMissingCredential):
		status = http.StatusUnauthorized
	case errors.Is(err, domain.ErrRunNotFound), errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrExportInFlight):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrNoTracks), errors.Is(err, domain.ErrQuizComplete), errors.Is(err, domain.ErrQuizNotComplete):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrGenerationFailed), errors.Is(err, domain.ErrExportFailed):
		status = http.StatusBadGateway
	}
	h.respond(w, status, errorResponse{Error: err.Error()})
}

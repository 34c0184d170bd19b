package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"sqlsplit/internal/middleware"
)

// RouterConfig configures NewRouter.
type RouterConfig struct {
	CORSAllowedOrigins []string
	RateLimit          middleware.RateLimitConfig
	// Auth protects /v1 when non-nil.
	Auth middleware.TokenValidator
	// UI is mounted at /ui when non-nil.
	UI http.Handler
}

// NewRouter builds the HTTP routes. ctx bounds background work such as the
// rate limiter's idle sweep.
func NewRouter(ctx context.Context, h *Handler, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader, "Retry-After"},
		MaxAge:         300,
	}))

	r.Get("/health", h.Health)

	r.Group(func(r chi.Router) {
		if cfg.RateLimit.RequestsPerSecond > 0 {
			r.Use(middleware.RateLimiter(ctx, cfg.RateLimit))
		}
		if cfg.UI != nil {
			r.Mount("/ui", cfg.UI)
			r.Get("/", func(w http.ResponseWriter, r *http.Request) {
				http.Redirect(w, r, "/ui", http.StatusFound)
			})
		}
		r.Route("/v1", func(r chi.Router) {
			if cfg.Auth != nil {
				r.Use(middleware.Auth(cfg.Auth))
			}
			r.Use(chimw.Timeout(2 * time.Minute))
			r.Post("/decompose", h.Decompose)
			r.Post("/decompose/batch", h.DecomposeBatch)
			r.Post("/query", h.Query)
			r.Get("/history", h.ListHistory)
			r.Get("/history/{id}", h.GetHistory)
		})
	})
	return r
}

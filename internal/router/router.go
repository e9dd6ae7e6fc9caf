package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ourday/rsvp/internal/config"
	"github.com/ourday/rsvp/internal/handler"
	"github.com/ourday/rsvp/internal/middleware"
	"github.com/ourday/rsvp/internal/view"
)

// New creates and configures the HTTP router
func New(h *handler.Handler, mw *middleware.Middleware, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Panic recovery (outermost)
	r.Use(mw.Recover)
	r.Use(mw.RequestID)
	r.Use(mw.Timing)
	r.Use(mw.Logger)
	r.Use(mw.SecurityHeaders)

	// Health check endpoints
	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)

	// RSVP page
	r.Get("/", h.Page)
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(view.Static())))
	r.Get("/invitation/qr.png", h.InvitationQR)

	// Submissions (rate limited per client IP)
	submitRateLimit := mw.RateLimit(middleware.RateLimitConfig{
		Name:    "rsvp",
		Limit:   cfg.Security.RateLimiting.Limit,
		Window:  cfg.Security.RateLimiting.Window,
		KeyFn:   middleware.IPKey,
		OnLimit: h.RateLimited,
	})
	r.With(submitRateLimit).Post("/rsvp", h.SubmitForm)
	r.With(submitRateLimit).Post("/api/v1/rsvp", h.SubmitJSON)

	return r
}

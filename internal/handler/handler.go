package handler

import (
	"context"
	"sync/atomic"

	"github.com/ourday/rsvp/internal/config"
	"github.com/ourday/rsvp/internal/logger"
	"github.com/ourday/rsvp/internal/service"
)

// HealthChecker is a dependency that can report its health
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Handler holds all HTTP handlers
type Handler struct {
	rsvpSvc *service.RSVPService
	rdb     HealthChecker
	log     *logger.Logger
	cfg     *config.Config
	page    atomic.Pointer[config.PageConfig]
}

// New creates a new Handler instance. rdb may be nil when Redis is disabled.
func New(rsvpSvc *service.RSVPService, rdb HealthChecker, log *logger.Logger, cfg *config.Config) *Handler {
	h := &Handler{
		rsvpSvc: rsvpSvc,
		rdb:     rdb,
		log:     log.WithComponent("handler"),
		cfg:     cfg,
	}
	h.SetPage(cfg.Page)
	return h
}

// SetPage swaps the page wording, e.g. after the config file changed
func (h *Handler) SetPage(page config.PageConfig) {
	h.page.Store(&page)
}

func (h *Handler) pageConfig() config.PageConfig {
	return *h.page.Load()
}

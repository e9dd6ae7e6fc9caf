package middleware

import (
	"github.com/ourday/rsvp/internal/config"
	"github.com/ourday/rsvp/internal/logger"
)

// Middleware holds all HTTP middleware
type Middleware struct {
	counter Counter
	log     *logger.Logger
	cfg     *config.Config
}

// New creates a new Middleware instance. counter may be nil, in which case
// rate limiting is skipped.
func New(counter Counter, log *logger.Logger, cfg *config.Config) *Middleware {
	return &Middleware{
		counter: counter,
		log:     log,
		cfg:     cfg,
	}
}

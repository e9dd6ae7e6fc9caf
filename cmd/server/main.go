package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/ourday/rsvp/internal/config"
	"github.com/ourday/rsvp/internal/database"
	"github.com/ourday/rsvp/internal/email"
	"github.com/ourday/rsvp/internal/form"
	"github.com/ourday/rsvp/internal/handler"
	"github.com/ourday/rsvp/internal/logger"
	"github.com/ourday/rsvp/internal/middleware"
	"github.com/ourday/rsvp/internal/router"
	"github.com/ourday/rsvp/internal/service"
)

func main() {
	// Page wording is hot-reloaded once the handler exists
	var live atomic.Pointer[handler.Handler]
	var log *logger.Logger

	cfg, err := config.LoadAndWatch(
		func(next *config.Config) {
			if h := live.Load(); h != nil {
				h.SetPage(next.Page)
				log.Info().Str("heading", next.Page.Heading).Msg("page configuration reloaded")
			}
		},
		func(err error) {
			if live.Load() != nil {
				log.Error().Err(err).Msg("config reload failed")
			}
		},
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log = logger.New(cfg.Log.Level, cfg.Log.Format)
	log.Info().Str("version", handler.Version).Msg("starting RSVP server")

	// Connect to Redis (rate limit counters only)
	var counter middleware.Counter
	var health handler.HealthChecker
	if cfg.Redis.Enabled {
		rdb, err := database.NewRedis(cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to Redis")
		}
		defer rdb.Close()
		counter, health = rdb, rdb
		log.Info().Str("addr", cfg.Redis.Addr()).Msg("connected to Redis")
	} else if cfg.Security.RateLimiting.Enabled {
		log.Warn().Msg("rate limiting is enabled but Redis is not; submissions are not limited")
	}

	// Email delivery
	sender, err := email.NewSender(context.Background(), cfg.Email, log)
	if err != nil {
		log.Fatal().Err(err).Str("provider", cfg.Email.Provider).Msg("failed to initialize email provider")
	}
	log.Info().Str("provider", sender.Name()).Dur("timeout", cfg.Email.Timeout).Msg("email provider initialized")

	rsvpSvc := service.NewRSVPService(sender, form.NewValidator(), cfg.Email, log)

	h := handler.New(rsvpSvc, health, log, cfg)
	live.Store(h)

	mw := middleware.New(counter, log, cfg)

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router.New(h, mw, cfg),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  2 * cfg.Server.ReadTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

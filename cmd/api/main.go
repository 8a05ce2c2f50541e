package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/store-scheduler/internal/audit"
	"github.com/BruksfildServices01/store-scheduler/internal/cache"
	"github.com/BruksfildServices01/store-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/store-scheduler/internal/db"
	"github.com/BruksfildServices01/store-scheduler/internal/logging"
	"github.com/BruksfildServices01/store-scheduler/internal/notify"
	"github.com/BruksfildServices01/store-scheduler/internal/observability"
	"github.com/BruksfildServices01/store-scheduler/internal/routes"
)

var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	logging.Setup(cfg.LogLevel, cfg.LogPretty)
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to set up tracing")
	}

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}

	booked, closeCache, err := cache.New(ctx, cfg.RedisURL, cfg.BookedCacheTTL)
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, booked cache disabled")
		booked, closeCache = cache.Nop{}, func() error { return nil }
	}

	auditDispatcher := audit.NewDispatcher(audit.New(db), cfg.NotifyQueueSize)
	notifier := notify.NewDispatcher(notify.NewMailer(cfg.SMTP), cfg.NotifyQueueSize)

	r := gin.New()
	routes.RegisterRoutes(r, db, cfg, routes.Infra{
		Audit:    auditDispatcher,
		Notifier: notifier,
		Booked:   booked,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("version", version).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	// drain after the server stops accepting work
	notifier.Close()
	auditDispatcher.Close()

	if err := closeCache(); err != nil {
		log.Warn().Err(err).Msg("close redis")
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	if err := shutdownOTel(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("otel shutdown")
	}
}

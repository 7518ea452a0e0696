package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"org-structure-service/internal/apperror"
	"org-structure-service/internal/config"
	"org-structure-service/internal/db"
	"org-structure-service/internal/demo"
	"org-structure-service/internal/httpapi"
	"org-structure-service/internal/service"
)

func main() {
	// -- Logger --
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	// -- Configs preload --
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("config error")
	}
	logger = logger.Level(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// -- Storage --
	var store service.Store = service.NopStore{}
	if cfg.Persistent() {
		database, err := db.Connect(cfg, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("database connection error")
		}
		store = db.NewStore(database)
	} else {
		logger.Warn().Msg("DATABASE_URL not set, organizations are kept in memory only")
	}

	organizationService := service.NewOrganizationService(store, logger)
	if err := organizationService.Restore(ctx); err != nil {
		logger.Fatal().Err(err).Msg("restore organizations")
	}
	if cfg.SeedDemo {
		seedDemo(ctx, organizationService, logger)
	}

	// -- Router --
	handler := httpapi.NewHandler(organizationService, logger)
	server := &http.Server{
		Addr: ":" + cfg.Port,
		Handler: httpapi.NewRouter(httpapi.RouterConfig{
			Handler: handler,
			Log:     logger,
			Metrics: cfg.MetricsEnabled,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("shutdown")
		}
	}()

	// -- Startup --
	logger.Info().Str("port", cfg.Port).Msg("starting server")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal().Err(err).Msg("server failed")
	}
	logger.Info().Msg("server stopped")
}

// seedDemo registers the sample organizations that are not present yet.
func seedDemo(ctx context.Context, svc *service.OrganizationService, logger zerolog.Logger) {
	organizations, err := demo.Organizations()
	if err != nil {
		logger.Fatal().Err(err).Msg("build demo organizations")
	}
	for _, organization := range organizations {
		err := svc.Add(ctx, organization)
		switch {
		case err == nil:
			logger.Info().Str("organization_id", organization.ID()).Msg("demo organization seeded")
		case apperror.Is(err, apperror.CodeConflict):
			logger.Debug().Str("organization_id", organization.ID()).Msg("demo organization already present")
		default:
			logger.Fatal().Err(err).Msg("seed demo organization")
		}
	}
}

package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/danielxmed/nobra-calculator/adapters/calculators"
	"github.com/danielxmed/nobra-calculator/adapters/metadata"
	"github.com/danielxmed/nobra-calculator/adapters/postgres"
	"github.com/danielxmed/nobra-calculator/app"
	"github.com/danielxmed/nobra-calculator/internal"
	"github.com/danielxmed/nobra-calculator/internal/config"
	"github.com/danielxmed/nobra-calculator/ports"
	"github.com/danielxmed/nobra-calculator/ui"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	logger := internal.NewDefaultLogger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	source, err := buildDescriptorSource(ctx, appConfig)
	if err != nil {
		log.Fatalf("descriptor source setup failed: %v", err)
	}

	registry := app.NewRegistry(source, calculators.NewRegistry(), logger)

	// Publish the initial catalogue. A failed first load is not fatal: the
	// server starts with an empty snapshot and the operator can fix the
	// source and reload.
	if outcome, err := registry.Reload(ctx); err != nil {
		logger.Error("initial catalogue load failed, serving empty catalogue: %v", err)
	} else {
		logger.Info("catalogue loaded: %d scores", outcome.ScoreCount)
	}

	if appConfig.Metadata.Watch && appConfig.Database.URL == "" {
		go func() {
			err := metadata.Watch(ctx, appConfig.Metadata.Dir, logger, func() {
				if _, err := registry.Reload(ctx); err != nil {
					logger.Error("watch-triggered reload failed: %v", err)
				}
			})
			if err != nil {
				logger.Error("metadata watcher stopped: %v", err)
			}
		}()
	}

	scoreService := app.NewScoreService(registry, logger)
	apiApp := ui.NewApp(scoreService, registry, logger)

	if err := apiApp.Start(appConfig.Server.Port); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

// buildDescriptorSource picks the catalogue backend: Postgres when
// DATABASE_URL is configured, the metadata directory otherwise.
func buildDescriptorSource(ctx context.Context, appConfig *config.Config) (ports.DescriptorSource, error) {
	if appConfig.Database.URL == "" {
		return metadata.NewFileSource(appConfig.Metadata.Dir), nil
	}

	db, err := sqlx.Connect("postgres", appConfig.Database.URL)
	if err != nil {
		return nil, err
	}
	if err := postgres.EnsureSchema(ctx, db); err != nil {
		return nil, err
	}
	return postgres.NewDescriptorSource(db), nil
}

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
	"github.com/rs/zerolog/log"

	"github.com/scythe504/spyfall-backend/internal/catalog"
	"github.com/scythe504/spyfall-backend/internal/config"
	"github.com/scythe504/spyfall-backend/internal/database"
	"github.com/scythe504/spyfall-backend/internal/game"
	"github.com/scythe504/spyfall-backend/internal/hub"
	"github.com/scythe504/spyfall-backend/internal/server"
)

func gracefulShutdown(ctx context.Context, apiServer *http.Server, done chan<- struct{}) {
	<-ctx.Done()

	log.Info().Msg("shutting down gracefully, press Ctrl+C again to force")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	close(done)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	logger := log.Logger

	locations := catalog.Default()
	if cfg.LocationsFile != "" {
		locations, err = catalog.LoadCSVFile(cfg.LocationsFile)
		if err != nil {
			log.Fatal().Err(err).Str("file", cfg.LocationsFile).Msg("failed to load locations")
		}
	}
	log.Info().Int("locations", locations.Len()).Msg("location catalog ready")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	engineOpts := []game.Option{
		game.WithCatalog(locations),
		game.WithRoundDuration(cfg.RoundDuration),
		game.WithTickInterval(cfg.TickInterval),
		game.WithLogger(logger.With().Str("component", "engine").Logger()),
	}
	var serverOpts []server.Option

	if cfg.DatabaseURL != "" {
		db, err := database.New(ctx, cfg.DatabaseURL, logger.With().Str("component", "database").Logger())
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer db.Close()

		engineOpts = append(engineOpts, game.WithArchiver(db, cfg.ArchiveTimeout))
		serverOpts = append(serverOpts, server.WithDatabase(db))
	} else {
		log.Warn().Msg("DATABASE_URL not set, round outcomes will not be archived")
	}

	h := hub.New(logger.With().Str("component", "hub").Logger())
	rooms := game.NewRegistry(game.WithRegistryLogger(logger.With().Str("component", "registry").Logger()))
	engine := game.NewEngine(rooms, h, engineOpts...)

	serverOpts = append(serverOpts,
		server.WithSendBuffer(cfg.WSSendBuffer),
		server.WithLogger(logger.With().Str("component", "server").Logger()),
	)
	apiServer := server.New(cfg.Addr(), engine, h, serverOpts...).HTTPServer()

	done := make(chan struct{})
	go gracefulShutdown(ctx, apiServer, done)

	log.Info().Str("addr", apiServer.Addr).Msg("starting server")
	if err := apiServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error().Err(err).Msg("http server error")
		stop()
	}

	<-done
	engine.Wait()
	log.Info().Msg("graceful shutdown complete")
}

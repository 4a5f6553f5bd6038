package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/kidgames/internal/catalog"
	"github.com/robalobadob/kidgames/internal/config"
	"github.com/robalobadob/kidgames/internal/events"
	"github.com/robalobadob/kidgames/internal/httpserver"
	"github.com/robalobadob/kidgames/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("bad configuration")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if cfg.DevSecret() {
		log.Warn().Msg("SESSION_SECRET not set, using the development key")
	}

	if err := catalog.Init(); err != nil {
		log.Fatal().Err(err).Msg("failed to load game catalogue")
	}
	cat := catalog.Default()
	entries, playable := cat.Stats()
	log.Info().Int("entries", entries).Int("playable", playable).Msg("catalogue loaded")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hub := events.NewHub(cfg.ClientOrigin)
	defer hub.Close()

	mem := store.NewMemoryStore()
	srv := httpserver.New(cfg, mem, hub, cat)
	go srv.Janitor(ctx, cfg.SweepInterval)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown")
		}
	}()

	log.Info().Str("port", cfg.Port).Msg("starting kidgames server")
	if err := srv.Start(cfg.Addr()); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
	log.Info().Msg("server stopped")
}

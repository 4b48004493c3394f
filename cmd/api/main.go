package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"libraryapi/internal/cache"
	"libraryapi/internal/config"
	httpx "libraryapi/internal/http"
	"libraryapi/internal/http/handlers"
	"libraryapi/internal/services/library"
	"libraryapi/internal/store"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Load()
	setupLogging(cfg.App)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init store
	st, err := store.Open(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("store init failed")
	}
	defer st.Close()

	// Author cache is optional
	var authorCache cache.AuthorCache = cache.Noop{}
	if cfg.Redis.Addr != "" {
		authorCache, err = cache.NewRedisCache(ctx, cfg.Redis.Addr, cfg.Redis.TTL)
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, author cache disabled")
			authorCache = cache.Noop{}
		}
	}
	defer authorCache.Close()

	registry, err := library.NewRegistry()
	if err != nil {
		log.Fatal().Err(err).Msg("property mappings invalid")
	}
	hm, err := handlers.NewHypermedia(cfg.App.BaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("link routes invalid")
	}

	svc := library.NewService(st.Authors, st.Books, st.UnitOfWork, authorCache, registry)
	if cfg.DB.Seed {
		n, err := svc.Seed(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("seed failed")
		}
		log.Info().Int("authors", n).Msg("store seeded")
	}

	// Router
	r := httpx.NewRouter(ctx, httpx.RouterDependencies{
		Config:     cfg,
		Library:    svc,
		Hypermedia: hm,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info().Msgf("Library API listening on :%s", cfg.App.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	cancel()
	ctx2, cancel2 := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	log.Info().Msg("server stopped")
}

// setupLogging uses a console writer in development and JSON elsewhere.
func setupLogging(app config.AppCfg) {
	level, err := zerolog.ParseLevel(app.LogLevel)
	if err != nil || app.LogLevel == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if app.Env == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}

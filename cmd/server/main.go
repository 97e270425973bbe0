package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/filatrack/filatrack/api"
	"github.com/filatrack/filatrack/config"
	"github.com/filatrack/filatrack/logger"
	"github.com/filatrack/filatrack/store"
)

func main() {
	log := logger.New("filatrack")

	// Parse command line flags and environment
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	// Create the data directory if it doesn't exist
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		log.Fatal().Err(err).Str("dir", cfg.DataDir).Msg("failed to create data directory")
	}

	// Open the local store
	local, err := store.OpenLocal(filepath.Join(cfg.DataDir, "filatrack.db"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open local store")
	}

	// Wire the remote adapter when configured
	var remote store.Remote
	if cfg.Remote.URL != "" {
		remote = store.NewHTTPRemote(cfg.Remote.URL, cfg.Remote.Token, cfg.Remote.PollInterval)
		log.Info().Str("url", cfg.Remote.URL).Msg("remote sync enabled")
	}

	// Create the inventory store and load initial state
	st := store.New(local, remote, cfg.Seed, log)
	if err := st.Open(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("failed to load initial state")
	}

	// Setup HTTP router
	router := api.SetupRouter(st, log)

	// Start HTTP server
	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	// Start the server in a goroutine
	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("starting HTTP server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Handle shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("error shutting down HTTP server")
	}

	// Stop remote sync and close the local store
	st.Close()
	if err := local.Close(); err != nil {
		log.Error().Err(err).Msg("error closing local store")
	}

	log.Info().Msg("shutdown complete")
}

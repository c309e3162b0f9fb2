package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/labshare-dev/labshare/internal/config"
	"github.com/labshare-dev/labshare/internal/console"
	"github.com/labshare-dev/labshare/internal/logger"
)

var version = "dev" // Will be set during build with -ldflags

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	level := cfg.Logging.Level
	if level == "" {
		level = "info"
	}
	logger.Init(level, cfg.Logging.Format)
	log := logger.GetLogger()

	srv, err := console.New(cfg, log, version)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create console server")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info().Str("version", version).Msg("Starting labshare console...")

	if err := srv.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("Console server failed")
	}
}

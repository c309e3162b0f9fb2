package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/labshare-dev/labshare/internal/cli"
	"github.com/labshare-dev/labshare/internal/cli/commands"
	"github.com/labshare-dev/labshare/internal/config"
	"github.com/labshare-dev/labshare/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	level := cfg.Logging.Level
	if level == "" {
		level = "warn"
	}
	format := "console"
	if os.Getenv("LABSHARE_LOG_FORMAT") != "" {
		format = cfg.Logging.Format
	}
	logger.InitWriter(os.Stderr, level, format)

	d := commands.NewDeps()
	d.Logger = logger.GetLogger()
	d.Timeout = cfg.API.Timeout
	if url, ok := config.APIURLFromEnv(); ok {
		d.FallbackURL = url
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx, d, os.Args[1:]); err != nil {
		stop()
		os.Exit(1)
	}
}

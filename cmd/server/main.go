package main

import (
	"context"
	"fmt"
	"os"

	"github.com/taskflow-dev/taskflow/internal/config"
	"github.com/taskflow-dev/taskflow/internal/logger"
	"github.com/taskflow-dev/taskflow/internal/server"
)

var version = "dev" // Will be set during build with -ldflags

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger.Init(cfg.Logging.Level, cfg.Logging.Format)
	log := logger.GetLogger()

	srv := server.New(cfg, log)

	log.Info().Str("version", version).Msg("Starting Taskflow server...")

	// Start HTTP server (this blocks until shutdown)
	if err := srv.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Server failed")
	}
}

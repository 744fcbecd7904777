// Command server runs the blog API.
//
// Configuration comes from defaults, config.yaml, .env and BLOGAPI_* environment
// variables (see internal/config). Typical local run:
//
//	BLOGAPI_SERVER_PORT=3000 go run ./cmd/server
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/sakif/blog-api/internal/config"
	"github.com/sakif/blog-api/internal/logger"
	"github.com/sakif/blog-api/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// No configured logger yet.
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.New(cfg.Server.LogLevel, cfg.Server.LogFormat, os.Stdout)
	slog.SetDefault(log)

	srv, err := server.New(cfg, log)
	if err != nil {
		log.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Blocks until SIGINT/SIGTERM.
	if err := srv.Start(); err != nil {
		log.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

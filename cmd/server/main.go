// Package main is the entry point for the record manager server.
//
// main's job is kept to three steps: read configuration, create
// dependencies, start the application. All actual logic lives in the
// internal packages.
package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/darshana-perera-97/desktop-crud-exe/internal/config"
	"github.com/darshana-perera-97/desktop-crud-exe/internal/server"
)

func main() {
	// Structured logging to the terminal. Use LevelInfo in production to
	// reduce noise; Debug keeps the full request trail during development.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	port := 8080
	if portStr := os.Getenv("PORT"); portStr != "" {
		var err error
		port, err = strconv.Atoi(portStr)
		if err != nil {
			logger.Error("invalid PORT value", slog.String("value", portStr))
			os.Exit(1)
		}
	}

	// Settings live under the user's home directory
	// (~/.desktop-crud-app/config.json); the data directory defaults to
	// ~/Desktop CRUD App Data and is changeable from the settings page.
	cfgMgr, err := config.NewManager()
	if err != nil {
		logger.Error("failed to set up configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := cfgMgr.EnsureDataDirectory(); err != nil {
		logger.Error("failed to create data directory", slog.String("error", err.Error()))
		os.Exit(1)
	}

	staticDir, _ := filepath.Abs("web/static")
	if _, err := os.Stat(staticDir); err != nil {
		// Running without bundled UI assets is fine — the API still serves.
		staticDir = ""
	}

	srv, err := server.New(server.Config{
		Port:      port,
		StaticDir: staticDir,
	}, cfgMgr, logger)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Start blocks until the server is shut down (Ctrl+C or SIGTERM).
	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// Package server sets up the HTTP server, router, and all route definitions.
//
// This is the composition root: the storage backend, the services holding
// the working sets, and the handlers are all wired together in New, rather
// than scattered across the codebase. main.go stays minimal — read config,
// create the server, start it.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/darshana-perera-97/desktop-crud-exe/internal/config"
	"github.com/darshana-perera-97/desktop-crud-exe/internal/export"
	"github.com/darshana-perera-97/desktop-crud-exe/internal/handler"
	"github.com/darshana-perera-97/desktop-crud-exe/internal/metrics"
	"github.com/darshana-perera-97/desktop-crud-exe/internal/middleware"
	"github.com/darshana-perera-97/desktop-crud-exe/internal/normalize"
	"github.com/darshana-perera-97/desktop-crud-exe/internal/refdata"
	"github.com/darshana-perera-97/desktop-crud-exe/internal/repository"
	"github.com/darshana-perera-97/desktop-crud-exe/internal/repository/jsonfile"
	sqliteRepo "github.com/darshana-perera-97/desktop-crud-exe/internal/repository/sqlite"
	"github.com/darshana-perera-97/desktop-crud-exe/internal/service"
)

// Config holds server configuration.
type Config struct {
	Port      int
	StaticDir string // UI assets; empty disables the static route
}

// Server owns the router and, when the SQLite backend is selected, the
// database connection closed on shutdown.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *sqliteRepo.DB // nil for the JSON-file backend
}

// New assembles the dependency chain:
//
//	config.Manager → Store (jsonfile or sqlite) → Services → Handlers
//
// The JSON-file backend re-resolves the data directory from the config on
// every operation, so a settings change takes effect live. The SQLite
// backend binds to one database file at startup; switching directories with
// it takes a restart.
func New(cfg Config, cfgMgr *config.Manager, logger *slog.Logger) (*Server, error) {
	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
	}

	appCfg := cfgMgr.Load()

	var store repository.Store
	switch appCfg.StorageBackend {
	case config.BackendSQLite:
		db, err := sqliteRepo.New(filepath.Join(appCfg.DataDirectory, "records.db"))
		if err != nil {
			return nil, fmt.Errorf("opening database: %w", err)
		}
		s.db = db
		store = db
	default:
		store = jsonfile.New(cfgMgr)
	}

	m := metrics.New()
	norm := normalize.New(refdata.Default())

	records := service.NewRecordService(store, norm, m, logger)
	communities := service.NewCommunityService(store, norm, m, logger)

	// Initial load. A failure is survivable — the backup guard keeps the
	// session usable and a later reload can succeed — so log, don't abort.
	ctx := context.Background()
	if err := records.Load(ctx); err != nil {
		logger.Warn("initial record load failed", slog.String("error", err.Error()))
	}
	if err := communities.Load(ctx); err != nil {
		logger.Warn("initial community load failed", slog.String("error", err.Error()))
	}

	reload := func(ctx context.Context) error {
		return errors.Join(records.Load(ctx), communities.Load(ctx))
	}

	s.setupRoutes(cfgMgr, records, communities, reload, m)
	return s, nil
}

// setupRoutes configures middleware and routes.
//
// ROUTE STRUCTURE:
//
//	GET    /                          → UI assets (when StaticDir is set)
//	GET    /metrics                   → Prometheus metrics
//	GET    /api/records               → filtered, paginated list
//	POST   /api/records               → create
//	DELETE /api/records?confirm=true  → delete all
//	GET    /api/records/stats         → landing-page counters
//	GET    /api/records/{id}          → single record
//	PUT    /api/records/{id}          → update
//	DELETE /api/records/{id}?confirm=true → delete
//	GET    /api/communities           → list
//	POST   /api/communities           → create
//	GET    /api/communities/suggestions → merged tag suggestions
//	GET    /api/settings              → storage settings
//	PUT    /api/settings              → change data directory
//	GET    /api/export/fields         → export column catalogue
//	POST   /api/export/records        → tabular PDF
//	POST   /api/export/addresses      → address-list PDF
//
// Middleware order matters: RequestID and RealIP first so the logger sees
// them, Recoverer before the handlers so a panic becomes a 500.
func (s *Server) setupRoutes(
	cfgMgr *config.Manager,
	records *service.RecordService,
	communities *service.CommunityService,
	reload func(context.Context) error,
	m *metrics.Metrics,
) {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	if s.config.StaticDir != "" {
		fileServer := http.FileServer(http.Dir(s.config.StaticDir))
		s.router.Handle("/*", fileServer)
	}

	s.router.Handle("/metrics", promhttp.Handler())

	recordHandler := handler.NewRecordHandler(records, s.logger)
	communityHandler := handler.NewCommunityHandler(communities, records, s.logger)
	settingsHandler := handler.NewSettingsHandler(cfgMgr, reload, s.logger)
	exportHandler := handler.NewExportHandler(records, export.NewRenderer(), m, s.logger)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/records", recordHandler.HandleList)
		r.Post("/records", recordHandler.HandleCreate)
		r.Delete("/records", recordHandler.HandleDeleteAll)
		r.Get("/records/stats", recordHandler.HandleStats)
		r.Get("/records/{id}", recordHandler.HandleGet)
		r.Put("/records/{id}", recordHandler.HandleUpdate)
		r.Delete("/records/{id}", recordHandler.HandleDelete)

		r.Get("/communities", communityHandler.HandleList)
		r.Post("/communities", communityHandler.HandleCreate)
		r.Get("/communities/suggestions", communityHandler.HandleSuggestions)

		r.Get("/settings", settingsHandler.HandleGet)
		r.Put("/settings", settingsHandler.HandleUpdate)

		r.Get("/export/fields", exportHandler.HandleFields)
		r.Post("/export/records", exportHandler.HandleRecords)
		r.Post("/export/addresses", exportHandler.HandleAddresses)
	})
}

// Start runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully: stop accepting connections, give in-flight requests 30
// seconds, and close the database connection when one is open.
func (s *Server) Start() error {
	if s.db != nil {
		defer s.db.Close()
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second, // PDF rendering can run long
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("url", fmt.Sprintf("http://localhost:%d", s.config.Port)),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}

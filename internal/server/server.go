// Package server wires storage, services and handlers into a chi router
// and runs the HTTP server with graceful shutdown.
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
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sakif/filmorate/internal/config"
	"github.com/sakif/filmorate/internal/graph"
	"github.com/sakif/filmorate/internal/handler"
	"github.com/sakif/filmorate/internal/middleware"
	"github.com/sakif/filmorate/internal/repository"
	"github.com/sakif/filmorate/internal/repository/memory"
	sqliteRepo "github.com/sakif/filmorate/internal/repository/sqlite"
	"github.com/sakif/filmorate/internal/service"
)

// Server owns the router and the storage backend. The backend is closed
// when Start returns or Close is called.
type Server struct {
	router *chi.Mux
	config *config.Config
	logger *slog.Logger
	store  *storage
}

// storage is the backend chosen by config.Storage.
type storage struct {
	users   repository.UserRepository
	films   repository.FilmRepository
	friends repository.FriendRepository
	likes   repository.LikeRepository
	catalog repository.CatalogRepository

	pinger handler.Pinger // nil when the backend cannot become unreachable
	close  func() error
}

func New(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	store, err := openStorage(cfg)
	if err != nil {
		return nil, fmt.Errorf("opening %s storage: %w", cfg.Storage, err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		store:  store,
	}
	s.setupRoutes()

	return s, nil
}

func openStorage(cfg *config.Config) (*storage, error) {
	switch cfg.Storage {
	case config.StorageMemory:
		m := memory.New()
		return &storage{
			users:   m.Users(),
			films:   m.Films(),
			friends: m.Friends(),
			likes:   m.Likes(),
			catalog: m.Catalog(),
			close:   func() error { return nil },
		}, nil

	case config.StorageSQLite:
		if cfg.DBPath != ":memory:" {
			dir := filepath.Dir(cfg.DBPath)
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("creating database directory %s: %w", dir, err)
			}
		}
		db, err := sqliteRepo.New(cfg.DBPath)
		if err != nil {
			return nil, err
		}
		return &storage{
			users:   db.Users(),
			films:   db.Films(),
			friends: db.Friends(),
			likes:   db.Likes(),
			catalog: db.Catalog(),
			pinger:  db,
			close:   db.Close,
		}, nil
	}
	return nil, fmt.Errorf("unknown storage %q", cfg.Storage)
}

func (s *Server) setupRoutes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(middleware.Metrics)

	relations := graph.NewRelations(s.store.users, s.store.films, s.store.friends, s.store.likes)
	ranking := graph.NewRanking(relations, s.store.films, s.store.likes)

	catalogService := service.NewCatalogService(s.store.catalog,
		s.config.CatalogCacheSize, s.config.CatalogCacheTTL, s.logger)
	userService := service.NewUserService(s.store.users, relations, ranking, s.logger)
	filmService := service.NewFilmService(s.store.films, s.store.users, catalogService, relations, ranking, s.logger)

	userHandler := handler.NewUserHandler(userService, s.logger)
	filmHandler := handler.NewFilmHandler(filmService, s.logger)
	catalogHandler := handler.NewCatalogHandler(catalogService, s.logger)
	healthHandler := handler.NewHealthHandler(s.store.pinger, s.logger)

	s.router.Get("/health", healthHandler.HandleHealth)
	s.router.Handle("/metrics", promhttp.Handler())

	s.router.Group(func(r chi.Router) {
		if s.config.RateLimitRequests > 0 {
			r.Use(httprate.Limit(
				s.config.RateLimitRequests,
				s.config.RateLimitWindow,
				httprate.WithKeyFuncs(httprate.KeyByIP),
				httprate.WithLimitHandler(handler.HandleTooManyRequests),
			))
		}

		r.Mount("/users", userHandler.Routes())
		r.Mount("/films", filmHandler.Routes())
		r.Mount("/mpa", catalogHandler.MPARoutes())
		r.Mount("/genres", catalogHandler.GenreRoutes())
	})
}

// Handler exposes the router, e.g. for httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Close releases the storage backend.
func (s *Server) Close() error {
	return s.store.close()
}

// Start serves until SIGINT/SIGTERM, then drains in-flight requests for up
// to config.ShutdownTimeout.
func (s *Server) Start() error {
	defer func() {
		if err := s.Close(); err != nil {
			s.logger.Error("failed to close storage", slog.String("error", err.Error()))
		}
	}()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("storage", s.config.Storage),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}

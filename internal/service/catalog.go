package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/sakif/filmorate/internal/model"
	"github.com/sakif/filmorate/internal/repository"
)

var catalogCacheLookups = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "filmorate",
		Subsystem: "catalog",
		Name:      "cache_lookups_total",
		Help:      "Catalog cache lookups by entry kind and result (hit or miss).",
	},
	[]string{"kind", "result"},
)

// CatalogService serves MPA ratings and genres. Single-entry lookups go
// through an expiring LRU cache; the reference tables never change at
// runtime, so entries are never invalidated explicitly.
type CatalogService struct {
	repo    repository.CatalogRepository
	ratings *expirable.LRU[int64, model.MPARating]
	genres  *expirable.LRU[int64, model.Genre]
	logger  *slog.Logger
}

func NewCatalogService(repo repository.CatalogRepository, size int, ttl time.Duration, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		repo:    repo,
		ratings: expirable.NewLRU[int64, model.MPARating](size, nil, ttl),
		genres:  expirable.NewLRU[int64, model.Genre](size, nil, ttl),
		logger:  logger,
	}
}

func (s *CatalogService) MPARating(ctx context.Context, id int64) (*model.MPARating, error) {
	if r, ok := s.ratings.Get(id); ok {
		catalogCacheLookups.WithLabelValues("mpa", "hit").Inc()
		return &r, nil
	}
	catalogCacheLookups.WithLabelValues("mpa", "miss").Inc()

	r, err := s.repo.MPARating(ctx, id)
	if err != nil {
		logFailure(s.logger, "failed to get mpa rating", err, slog.Int64("id", id))
		return nil, err
	}
	s.ratings.Add(id, *r)
	return r, nil
}

func (s *CatalogService) MPARatings(ctx context.Context) ([]model.MPARating, error) {
	ratings, err := s.repo.MPARatings(ctx)
	if err != nil {
		s.logger.Error("failed to list mpa ratings", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing mpa ratings: %w", err)
	}
	return ratings, nil
}

func (s *CatalogService) Genre(ctx context.Context, id int64) (*model.Genre, error) {
	if g, ok := s.genres.Get(id); ok {
		catalogCacheLookups.WithLabelValues("genre", "hit").Inc()
		return &g, nil
	}
	catalogCacheLookups.WithLabelValues("genre", "miss").Inc()

	g, err := s.repo.Genre(ctx, id)
	if err != nil {
		logFailure(s.logger, "failed to get genre", err, slog.Int64("id", id))
		return nil, err
	}
	s.genres.Add(id, *g)
	return g, nil
}

func (s *CatalogService) Genres(ctx context.Context) ([]model.Genre, error) {
	genres, err := s.repo.Genres(ctx)
	if err != nil {
		s.logger.Error("failed to list genres", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing genres: %w", err)
	}
	return genres, nil
}

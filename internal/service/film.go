package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sakif/filmorate/internal/graph"
	"github.com/sakif/filmorate/internal/model"
	"github.com/sakif/filmorate/internal/repository"
)

// FilmService manages films and likes and answers popularity queries.
type FilmService struct {
	films     repository.FilmRepository
	users     repository.UserRepository
	catalog   *CatalogService
	relations *graph.Relations
	ranking   *graph.Ranking
	logger    *slog.Logger
}

func NewFilmService(
	films repository.FilmRepository,
	users repository.UserRepository,
	catalog *CatalogService,
	relations *graph.Relations,
	ranking *graph.Ranking,
	logger *slog.Logger,
) *FilmService {
	return &FilmService{
		films:     films,
		users:     users,
		catalog:   catalog,
		relations: relations,
		ranking:   ranking,
		logger:    logger,
	}
}

// Create stores a new film. The MPA rating and every genre must exist in
// the catalog; duplicate genres collapse.
func (s *FilmService) Create(ctx context.Context, film *model.Film) (*model.Film, error) {
	if err := s.resolveCatalog(ctx, film); err != nil {
		return nil, err
	}

	if err := s.films.Create(ctx, film); err != nil {
		s.logger.Error("failed to create film",
			slog.String("name", film.Name),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating film: %w", err)
	}

	s.logger.Info("film created",
		slog.Int64("id", film.ID),
		slog.String("name", film.Name),
	)
	return film, nil
}

// Update replaces an existing film. The film must exist before its
// catalog references are checked.
func (s *FilmService) Update(ctx context.Context, film *model.Film) (*model.Film, error) {
	if _, err := s.films.GetByID(ctx, film.ID); err != nil {
		logFailure(s.logger, "failed to load film for update", err, slog.Int64("id", film.ID))
		return nil, err
	}
	if err := s.resolveCatalog(ctx, film); err != nil {
		return nil, err
	}

	if err := s.films.Update(ctx, film); err != nil {
		logFailure(s.logger, "failed to update film", err, slog.Int64("id", film.ID))
		return nil, fmt.Errorf("updating film: %w", err)
	}

	s.logger.Info("film updated", slog.Int64("id", film.ID))
	return film, nil
}

func (s *FilmService) GetByID(ctx context.Context, id int64) (*model.Film, error) {
	film, err := s.films.GetByID(ctx, id)
	if err != nil {
		logFailure(s.logger, "failed to get film", err, slog.Int64("id", id))
		return nil, err
	}
	return film, nil
}

func (s *FilmService) List(ctx context.Context) ([]model.Film, error) {
	films, err := s.films.List(ctx)
	if err != nil {
		s.logger.Error("failed to list films", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing films: %w", err)
	}
	return films, nil
}

func (s *FilmService) AddLike(ctx context.Context, filmID, userID int64) error {
	if err := s.requireLikeEndpoints(ctx, filmID, userID); err != nil {
		return err
	}
	if err := s.relations.AddLike(ctx, filmID, userID); err != nil {
		logFailure(s.logger, "failed to add like", err,
			slog.Int64("film_id", filmID), slog.Int64("user_id", userID))
		return err
	}

	s.logger.Info("like added",
		slog.Int64("film_id", filmID),
		slog.Int64("user_id", userID),
	)
	return nil
}

func (s *FilmService) RemoveLike(ctx context.Context, filmID, userID int64) error {
	if err := s.requireLikeEndpoints(ctx, filmID, userID); err != nil {
		return err
	}
	if err := s.relations.RemoveLike(ctx, filmID, userID); err != nil {
		logFailure(s.logger, "failed to remove like", err,
			slog.Int64("film_id", filmID), slog.Int64("user_id", userID))
		return err
	}

	s.logger.Info("like removed",
		slog.Int64("film_id", filmID),
		slog.Int64("user_id", userID),
	)
	return nil
}

// Popular returns up to count films, most liked first.
func (s *FilmService) Popular(ctx context.Context, count int) ([]model.Film, error) {
	films, err := s.ranking.PopularFilms(ctx, count)
	if err != nil {
		s.logger.Error("failed to rank films",
			slog.Int("count", count),
			slog.String("error", err.Error()),
		)
		return nil, err
	}
	return films, nil
}

// resolveCatalog replaces the MPA rating and genres of film with the full
// catalog entries.
func (s *FilmService) resolveCatalog(ctx context.Context, film *model.Film) error {
	mpa, err := s.catalog.MPARating(ctx, film.MPA.ID)
	if err != nil {
		return err
	}
	film.MPA = *mpa

	film.NormalizeGenres()
	for i, g := range film.Genres {
		genre, err := s.catalog.Genre(ctx, g.ID)
		if err != nil {
			return err
		}
		film.Genres[i] = *genre
	}
	return nil
}

func (s *FilmService) requireLikeEndpoints(ctx context.Context, filmID, userID int64) error {
	if _, err := s.films.GetByID(ctx, filmID); err != nil {
		logFailure(s.logger, "failed to resolve film for like", err, slog.Int64("film_id", filmID))
		return err
	}
	if err := requireUsers(ctx, s.users, userID); err != nil {
		logFailure(s.logger, "failed to resolve user for like", err, slog.Int64("user_id", userID))
		return err
	}
	return nil
}

package memory

import (
	"context"
	"sync"

	"github.com/sakif/filmorate/internal/apperror"
	"github.com/sakif/filmorate/internal/model"
	"github.com/sakif/filmorate/internal/repository"
)

var _ repository.FilmRepository = (*FilmStore)(nil)

// FilmStore keeps films keyed by ID. Genres are stored embedded in the film.
type FilmStore struct {
	mu     sync.RWMutex
	films  map[int64]model.Film
	lastID int64
}

func NewFilmStore() *FilmStore {
	return &FilmStore{films: make(map[int64]model.Film)}
}

func (s *FilmStore) Create(_ context.Context, film *model.Film) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastID++
	film.ID = s.lastID
	s.films[film.ID] = film.Clone()
	return nil
}

func (s *FilmStore) Update(_ context.Context, film *model.Film) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.films[film.ID]; !ok {
		return apperror.NotFound("film", film.ID)
	}
	s.films[film.ID] = film.Clone()
	return nil
}

func (s *FilmStore) GetByID(_ context.Context, id int64) (*model.Film, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, ok := s.films[id]
	if !ok {
		return nil, apperror.NotFound("film", id)
	}
	out := f.Clone()
	return &out, nil
}

func (s *FilmStore) List(_ context.Context) ([]model.Film, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Film, 0, len(s.films))
	for _, id := range sortedKeys(s.films) {
		out = append(out, s.films[id].Clone())
	}
	return out, nil
}

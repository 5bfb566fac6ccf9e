package memory

import (
	"context"

	"github.com/sakif/filmorate/internal/apperror"
	"github.com/sakif/filmorate/internal/model"
	"github.com/sakif/filmorate/internal/repository"
)

var _ repository.CatalogRepository = (*CatalogStore)(nil)

// CatalogStore holds the reference tables. It is immutable after
// construction, so no lock is needed.
type CatalogStore struct {
	ratings map[int64]model.MPARating
	genres  map[int64]model.Genre
}

func NewCatalogStore(ratings []model.MPARating, genres []model.Genre) *CatalogStore {
	c := &CatalogStore{
		ratings: make(map[int64]model.MPARating, len(ratings)),
		genres:  make(map[int64]model.Genre, len(genres)),
	}
	for _, r := range ratings {
		c.ratings[r.ID] = r
	}
	for _, g := range genres {
		c.genres[g.ID] = g
	}
	return c
}

func (c *CatalogStore) MPARating(_ context.Context, id int64) (*model.MPARating, error) {
	r, ok := c.ratings[id]
	if !ok {
		return nil, apperror.NotFound("mpa rating", id)
	}
	return &r, nil
}

func (c *CatalogStore) MPARatings(_ context.Context) ([]model.MPARating, error) {
	out := make([]model.MPARating, 0, len(c.ratings))
	for _, id := range sortedKeys(c.ratings) {
		out = append(out, c.ratings[id])
	}
	return out, nil
}

func (c *CatalogStore) Genre(_ context.Context, id int64) (*model.Genre, error) {
	g, ok := c.genres[id]
	if !ok {
		return nil, apperror.NotFound("genre", id)
	}
	return &g, nil
}

func (c *CatalogStore) Genres(_ context.Context) ([]model.Genre, error) {
	out := make([]model.Genre, 0, len(c.genres))
	for _, id := range sortedKeys(c.genres) {
		out = append(out, c.genres[id])
	}
	return out, nil
}

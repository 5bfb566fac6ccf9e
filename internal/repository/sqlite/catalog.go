package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sakif/filmorate/internal/apperror"
	"github.com/sakif/filmorate/internal/model"
	"github.com/sakif/filmorate/internal/repository"
)

var _ repository.CatalogRepository = (*CatalogDB)(nil)

// CatalogDB reads the mpa_ratings and genres reference tables. Their rows
// come from the seed migration; nothing writes to them at runtime.
type CatalogDB struct {
	conn *sql.DB
}

func (r *CatalogDB) MPARating(ctx context.Context, id int64) (*model.MPARating, error) {
	var m model.MPARating
	err := r.conn.QueryRowContext(ctx,
		`SELECT id, name, description FROM mpa_ratings WHERE id = ?`, id,
	).Scan(&m.ID, &m.Name, &m.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NotFound("mpa rating", id)
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: getting mpa rating %d: %w", id, err)
	}
	return &m, nil
}

func (r *CatalogDB) MPARatings(ctx context.Context) ([]model.MPARating, error) {
	rows, err := r.conn.QueryContext(ctx,
		`SELECT id, name, description FROM mpa_ratings ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing mpa ratings: %w", err)
	}
	defer rows.Close()

	ratings := []model.MPARating{}
	for rows.Next() {
		var m model.MPARating
		if err := rows.Scan(&m.ID, &m.Name, &m.Description); err != nil {
			return nil, fmt.Errorf("sqlite: scanning mpa rating row: %w", err)
		}
		ratings = append(ratings, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating mpa rating rows: %w", err)
	}
	return ratings, nil
}

func (r *CatalogDB) Genre(ctx context.Context, id int64) (*model.Genre, error) {
	var g model.Genre
	err := r.conn.QueryRowContext(ctx,
		`SELECT id, name FROM genres WHERE id = ?`, id,
	).Scan(&g.ID, &g.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NotFound("genre", id)
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: getting genre %d: %w", id, err)
	}
	return &g, nil
}

func (r *CatalogDB) Genres(ctx context.Context) ([]model.Genre, error) {
	rows, err := r.conn.QueryContext(ctx, `SELECT id, name FROM genres ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing genres: %w", err)
	}
	defer rows.Close()

	genres := []model.Genre{}
	for rows.Next() {
		var g model.Genre
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, fmt.Errorf("sqlite: scanning genre row: %w", err)
		}
		genres = append(genres, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating genre rows: %w", err)
	}
	return genres, nil
}

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

var _ repository.FilmRepository = (*FilmDB)(nil)

// FilmDB stores films in the films table and their genre sets in
// film_genres. Reads join the MPA rating and genre names back in.
type FilmDB struct {
	conn *sql.DB
}

const filmSelect = `
	SELECT f.id, f.name, f.description, f.release_date, f.duration,
	       m.id, m.name, m.description
	FROM films f
	JOIN mpa_ratings m ON m.id = f.mpa_rating_id`

func (r *FilmDB) Create(ctx context.Context, film *model.Film) error {
	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO films (name, description, release_date, duration, mpa_rating_id)
		 VALUES (?, ?, ?, ?, ?)`,
		film.Name, film.Description, film.ReleaseDate.String(), film.Duration, film.MPA.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting film %q: %w", film.Name, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading new film id: %w", err)
	}

	if err := insertFilmGenres(ctx, tx, id, film.Genres); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: committing film %q: %w", film.Name, err)
	}
	film.ID = id
	return nil
}

// Update rewrites the film row and replaces its genre set.
func (r *FilmDB) Update(ctx context.Context, film *model.Film) error {
	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE films
		 SET name = ?, description = ?, release_date = ?, duration = ?, mpa_rating_id = ?
		 WHERE id = ?`,
		film.Name, film.Description, film.ReleaseDate.String(), film.Duration, film.MPA.ID, film.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating film %d: %w", film.ID, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if n == 0 {
		return apperror.NotFound("film", film.ID)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM film_genres WHERE film_id = ?`, film.ID); err != nil {
		return fmt.Errorf("sqlite: clearing genres of film %d: %w", film.ID, err)
	}
	if err := insertFilmGenres(ctx, tx, film.ID, film.Genres); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: committing film %d: %w", film.ID, err)
	}
	return nil
}

func (r *FilmDB) GetByID(ctx context.Context, id int64) (*model.Film, error) {
	row := r.conn.QueryRowContext(ctx, filmSelect+` WHERE f.id = ?`, id)

	f, err := scanFilm(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NotFound("film", id)
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: getting film %d: %w", id, err)
	}

	films := []model.Film{*f}
	if err := r.attachGenres(ctx, films); err != nil {
		return nil, err
	}
	return &films[0], nil
}

func (r *FilmDB) List(ctx context.Context) ([]model.Film, error) {
	rows, err := r.conn.QueryContext(ctx, filmSelect+` ORDER BY f.id`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing films: %w", err)
	}

	films, err := collectFilms(rows)
	if err != nil {
		return nil, err
	}
	if err := r.attachGenres(ctx, films); err != nil {
		return nil, err
	}
	return films, nil
}

// attachGenres loads the genre sets of all films with a single query.
// Rows from the film query must already be closed: the pool has one
// connection.
func (r *FilmDB) attachGenres(ctx context.Context, films []model.Film) error {
	if len(films) == 0 {
		return nil
	}

	index := make(map[int64]int, len(films))
	ids := make([]int64, len(films))
	for i, f := range films {
		index[f.ID] = i
		ids[i] = f.ID
		films[i].Genres = []model.Genre{}
	}

	rows, err := r.conn.QueryContext(ctx,
		`SELECT fg.film_id, g.id, g.name
		 FROM film_genres fg
		 JOIN genres g ON g.id = fg.genre_id
		 WHERE fg.film_id IN (`+placeholders(len(ids))+`)
		 ORDER BY fg.film_id, g.id`,
		int64Args(ids)...,
	)
	if err != nil {
		return fmt.Errorf("sqlite: loading film genres: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			filmID int64
			g      model.Genre
		)
		if err := rows.Scan(&filmID, &g.ID, &g.Name); err != nil {
			return fmt.Errorf("sqlite: scanning film genre row: %w", err)
		}
		i := index[filmID]
		films[i].Genres = append(films[i].Genres, g)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("sqlite: iterating film genre rows: %w", err)
	}
	return nil
}

func insertFilmGenres(ctx context.Context, tx *sql.Tx, filmID int64, genres []model.Genre) error {
	for _, g := range genres {
		_, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO film_genres (film_id, genre_id) VALUES (?, ?)`,
			filmID, g.ID,
		)
		if err != nil {
			return fmt.Errorf("sqlite: linking film %d to genre %d: %w", filmID, g.ID, err)
		}
	}
	return nil
}

func scanFilm(s scanner) (*model.Film, error) {
	var (
		f       model.Film
		release string
	)
	err := s.Scan(
		&f.ID, &f.Name, &f.Description, &release, &f.Duration,
		&f.MPA.ID, &f.MPA.Name, &f.MPA.Description,
	)
	if err != nil {
		return nil, err
	}

	f.ReleaseDate, err = model.ParseDate(release)
	if err != nil {
		return nil, fmt.Errorf("film %d release date: %w", f.ID, err)
	}
	return &f, nil
}

func collectFilms(rows *sql.Rows) ([]model.Film, error) {
	defer rows.Close()

	films := []model.Film{}
	for rows.Next() {
		f, err := scanFilm(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning film row: %w", err)
		}
		films = append(films, *f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating film rows: %w", err)
	}
	return films, nil
}

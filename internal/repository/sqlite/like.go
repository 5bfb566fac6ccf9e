package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sakif/filmorate/internal/repository"
)

var _ repository.LikeRepository = (*LikeDB)(nil)

// LikeDB stores (film, user) pairs in film_likes.
type LikeDB struct {
	conn *sql.DB
}

func (r *LikeDB) Add(ctx context.Context, filmID, userID int64) error {
	_, err := r.conn.ExecContext(ctx,
		`INSERT INTO film_likes (film_id, user_id) VALUES (?, ?)
		 ON CONFLICT (film_id, user_id) DO NOTHING`, filmID, userID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: adding like film=%d user=%d: %w", filmID, userID, err)
	}
	return nil
}

func (r *LikeDB) Remove(ctx context.Context, filmID, userID int64) error {
	_, err := r.conn.ExecContext(ctx,
		`DELETE FROM film_likes WHERE film_id = ? AND user_id = ?`, filmID, userID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: removing like film=%d user=%d: %w", filmID, userID, err)
	}
	return nil
}

func (r *LikeDB) Exists(ctx context.Context, filmID, userID int64) (bool, error) {
	var exists bool
	err := r.conn.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM film_likes WHERE film_id = ? AND user_id = ?)`,
		filmID, userID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("sqlite: checking like film=%d user=%d: %w", filmID, userID, err)
	}
	return exists, nil
}

func (r *LikeDB) Counts(ctx context.Context) (map[int64]int, error) {
	rows, err := r.conn.QueryContext(ctx,
		`SELECT film_id, COUNT(*) FROM film_likes GROUP BY film_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: counting likes: %w", err)
	}
	defer rows.Close()

	counts := make(map[int64]int)
	for rows.Next() {
		var (
			filmID int64
			n      int
		)
		if err := rows.Scan(&filmID, &n); err != nil {
			return nil, fmt.Errorf("sqlite: scanning like count row: %w", err)
		}
		counts[filmID] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating like count rows: %w", err)
	}
	return counts, nil
}

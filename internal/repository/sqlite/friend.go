package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sakif/filmorate/internal/repository"
)

var _ repository.FriendRepository = (*FriendDB)(nil)

// FriendDB stores each friendship as two directed rows in user_friends.
// Both rows are written in one transaction so the relation stays symmetric.
type FriendDB struct {
	conn *sql.DB
}

func (r *FriendDB) Add(ctx context.Context, userID, friendID int64) error {
	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: beginning transaction: %w", err)
	}
	defer tx.Rollback()

	// Only primary-key conflicts are ignored; the self-friendship CHECK
	// still fails.
	const q = `INSERT INTO user_friends (user_id, friend_id) VALUES (?, ?)
		ON CONFLICT (user_id, friend_id) DO NOTHING`
	if _, err := tx.ExecContext(ctx, q, userID, friendID); err != nil {
		return fmt.Errorf("sqlite: adding friend %d -> %d: %w", userID, friendID, err)
	}
	if _, err := tx.ExecContext(ctx, q, friendID, userID); err != nil {
		return fmt.Errorf("sqlite: adding friend %d -> %d: %w", friendID, userID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: committing friendship %d <-> %d: %w", userID, friendID, err)
	}
	return nil
}

func (r *FriendDB) Remove(ctx context.Context, userID, friendID int64) error {
	_, err := r.conn.ExecContext(ctx,
		`DELETE FROM user_friends
		 WHERE (user_id = ? AND friend_id = ?) OR (user_id = ? AND friend_id = ?)`,
		userID, friendID, friendID, userID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: removing friendship %d <-> %d: %w", userID, friendID, err)
	}
	return nil
}

func (r *FriendDB) FriendIDs(ctx context.Context, userID int64) ([]int64, error) {
	rows, err := r.conn.QueryContext(ctx,
		`SELECT friend_id FROM user_friends WHERE user_id = ? ORDER BY friend_id`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing friends of user %d: %w", userID, err)
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("sqlite: scanning friend row: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating friend rows: %w", err)
	}
	return ids, nil
}

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/sakif/filmorate/internal/apperror"
	"github.com/sakif/filmorate/internal/model"
	"github.com/sakif/filmorate/internal/repository"
)

var _ repository.UserRepository = (*UserDB)(nil)

// UserDB stores users in the users table.
type UserDB struct {
	conn *sql.DB
}

const userColumns = `id, email, login, name, birthday`

func (r *UserDB) Create(ctx context.Context, user *model.User) error {
	res, err := r.conn.ExecContext(ctx,
		`INSERT INTO users (email, login, name, birthday) VALUES (?, ?, ?, ?)`,
		user.Email, user.Login, user.Name, birthdayValue(user),
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting user %q: %w", user.Login, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading new user id: %w", err)
	}
	user.ID = id
	return nil
}

func (r *UserDB) Update(ctx context.Context, user *model.User) error {
	res, err := r.conn.ExecContext(ctx,
		`UPDATE users SET email = ?, login = ?, name = ?, birthday = ? WHERE id = ?`,
		user.Email, user.Login, user.Name, birthdayValue(user), user.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating user %d: %w", user.ID, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if n == 0 {
		return apperror.NotFound("user", user.ID)
	}
	return nil
}

func (r *UserDB) GetByID(ctx context.Context, id int64) (*model.User, error) {
	row := r.conn.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id,
	)

	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NotFound("user", id)
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: getting user %d: %w", id, err)
	}
	return u, nil
}

func (r *UserDB) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.conn.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing users: %w", err)
	}
	return collectUsers(rows)
}

func (r *UserDB) ListByIDs(ctx context.Context, ids []int64) ([]model.User, error) {
	if len(ids) == 0 {
		return []model.User{}, nil
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE id IN (` +
		placeholders(len(ids)) + `) ORDER BY id`
	rows, err := r.conn.QueryContext(ctx, query, int64Args(ids)...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing users by id: %w", err)
	}
	return collectUsers(rows)
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanUser(s scanner) (*model.User, error) {
	var (
		u        model.User
		birthday sql.NullString
	)
	if err := s.Scan(&u.ID, &u.Email, &u.Login, &u.Name, &birthday); err != nil {
		return nil, err
	}
	if birthday.Valid {
		d, err := model.ParseDate(birthday.String)
		if err != nil {
			return nil, fmt.Errorf("user %d birthday: %w", u.ID, err)
		}
		u.Birthday = &d
	}
	return &u, nil
}

func collectUsers(rows *sql.Rows) ([]model.User, error) {
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning user row: %w", err)
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating user rows: %w", err)
	}
	return users, nil
}

func birthdayValue(u *model.User) sql.NullString {
	if u.Birthday == nil {
		return sql.NullString{}
	}
	return nullableDate(u.Birthday.String())
}

// placeholders returns "?, ?, ..." with n markers.
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func int64Args(ids []int64) []any {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}

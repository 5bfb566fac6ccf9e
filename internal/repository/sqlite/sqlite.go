// Package sqlite implements the repository interfaces on top of SQLite.
//
// The driver is modernc.org/sqlite (pure Go, no cgo). Schema and catalog
// seed data live in embedded migrations applied with golang-migrate when
// the database is opened, so a fresh file and ":memory:" behave the same.
//
// The pool is capped at one connection. SQLite serializes writers anyway,
// and a single connection keeps ":memory:" databases and per-connection
// PRAGMAs consistent across every query.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	// registers the "sqlite" driver with database/sql
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// DB wraps the connection pool and hands out one repository per table group.
type DB struct {
	conn *sql.DB

	users   *UserDB
	films   *FilmDB
	friends *FriendDB
	likes   *LikeDB
	catalog *CatalogDB
}

// New opens (or creates) the database at dbPath and migrates it to the
// latest schema. Use ":memory:" for a throwaway database.
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: enabling foreign keys: %w", err)
	}

	if err := runMigrations(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return &DB{
		conn:    conn,
		users:   &UserDB{conn: conn},
		films:   &FilmDB{conn: conn},
		friends: &FriendDB{conn: conn},
		likes:   &LikeDB{conn: conn},
		catalog: &CatalogDB{conn: conn},
	}, nil
}

// runMigrations applies every pending migration from migrationsFS.
//
// The migrate instance is not closed: closing it would also close
// the shared *sql.DB through the database driver.
func runMigrations(conn *sql.DB) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("creating migration source: %w", err)
	}

	driver, err := migratesqlite.WithInstance(conn, &migratesqlite.Config{})
	if err != nil {
		return fmt.Errorf("creating migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("initializing migrations: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("applying migrations: %w", err)
	}
	return nil
}

func (db *DB) Users() *UserDB {
	return db.users
}

func (db *DB) Films() *FilmDB {
	return db.films
}

func (db *DB) Friends() *FriendDB {
	return db.friends
}

func (db *DB) Likes() *LikeDB {
	return db.likes
}

func (db *DB) Catalog() *CatalogDB {
	return db.catalog
}

// Ping reports whether the database is reachable. Used by the health check.
func (db *DB) Ping(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

// Close closes the connection pool.
func (db *DB) Close() error {
	return db.conn.Close()
}

// nullableDate converts an optional date to its TEXT column value.
func nullableDate(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// Package repository declares the storage contracts. Two implementations
// exist: memory (process-local maps) and sqlite (relational tables). The
// server picks one at startup; nothing above this layer knows which.
//
// Every lookup of a missing entity returns an error wrapping
// apperror.ErrNotFound. Edge operations are idempotent: adding an existing
// edge or removing an absent one succeeds without changing anything.
package repository

import (
	"context"

	"github.com/sakif/filmorate/internal/model"
)

// UserRepository stores users. Create assigns the next ID (last assigned + 1,
// starting at 1); IDs are never reused.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	// ListByIDs returns the users with the given IDs ordered by ID.
	// Unknown IDs are skipped.
	ListByIDs(ctx context.Context, ids []int64) ([]model.User, error)
}

// FilmRepository stores films together with their MPA rating and genre set.
type FilmRepository interface {
	Create(ctx context.Context, film *model.Film) error
	Update(ctx context.Context, film *model.Film) error
	GetByID(ctx context.Context, id int64) (*model.Film, error)
	List(ctx context.Context) ([]model.Film, error)
}

// FriendRepository stores the symmetric friendship relation. Add and Remove
// always affect both directions together.
type FriendRepository interface {
	Add(ctx context.Context, userID, friendID int64) error
	Remove(ctx context.Context, userID, friendID int64) error
	// FriendIDs returns the IDs of userID's friends ordered by ID.
	FriendIDs(ctx context.Context, userID int64) ([]int64, error)
}

// LikeRepository stores (film, user) like edges.
type LikeRepository interface {
	Add(ctx context.Context, filmID, userID int64) error
	Remove(ctx context.Context, filmID, userID int64) error
	Exists(ctx context.Context, filmID, userID int64) (bool, error)
	// Counts returns the number of likes per film. Films without likes
	// are absent from the map.
	Counts(ctx context.Context) (map[int64]int, error)
}

// CatalogRepository serves the read-only MPA rating and genre tables.
type CatalogRepository interface {
	MPARating(ctx context.Context, id int64) (*model.MPARating, error)
	MPARatings(ctx context.Context) ([]model.MPARating, error)
	Genre(ctx context.Context, id int64) (*model.Genre, error)
	Genres(ctx context.Context) ([]model.Genre, error)
}

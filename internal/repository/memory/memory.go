// Package memory implements the repository interfaces with process-local
// maps. Each store owns its own RWMutex: writers are serialized per store,
// readers run concurrently and never observe a half-applied write.
//
// Records are copied on the way in and on the way out, so callers can never
// mutate stored state through a returned pointer.
package memory

import (
	"slices"

	"github.com/sakif/filmorate/internal/model"
)

// Store bundles one instance of every in-memory repository.
type Store struct {
	users   *UserStore
	films   *FilmStore
	friends *FriendStore
	likes   *LikeStore
	catalog *CatalogStore
}

// New creates an empty store whose catalog is seeded with the default MPA
// ratings and genres.
func New() *Store {
	return &Store{
		users:   NewUserStore(),
		films:   NewFilmStore(),
		friends: NewFriendStore(),
		likes:   NewLikeStore(),
		catalog: NewCatalogStore(model.DefaultMPARatings(), model.DefaultGenres()),
	}
}

func (s *Store) Users() *UserStore {
	return s.users
}

func (s *Store) Films() *FilmStore {
	return s.films
}

func (s *Store) Friends() *FriendStore {
	return s.friends
}

func (s *Store) Likes() *LikeStore {
	return s.likes
}

func (s *Store) Catalog() *CatalogStore {
	return s.catalog
}

// sortedKeys returns the keys of m in ascending order.
func sortedKeys[V any](m map[int64]V) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

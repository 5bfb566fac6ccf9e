package memory

import (
	"context"
	"sync"

	"github.com/sakif/filmorate/internal/apperror"
	"github.com/sakif/filmorate/internal/model"
	"github.com/sakif/filmorate/internal/repository"
)

var _ repository.UserRepository = (*UserStore)(nil)

// UserStore keeps users keyed by ID.
type UserStore struct {
	mu     sync.RWMutex
	users  map[int64]model.User
	lastID int64
}

func NewUserStore() *UserStore {
	return &UserStore{users: make(map[int64]model.User)}
}

// Create assigns the next ID and stores a copy of user.
func (s *UserStore) Create(_ context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastID++
	user.ID = s.lastID
	s.users[user.ID] = copyUser(*user)
	return nil
}

// Update replaces an existing user. Unknown IDs are never inserted.
func (s *UserStore) Update(_ context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.ID]; !ok {
		return apperror.NotFound("user", user.ID)
	}
	s.users[user.ID] = copyUser(*user)
	return nil
}

func (s *UserStore) GetByID(_ context.Context, id int64) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, apperror.NotFound("user", id)
	}
	out := copyUser(u)
	return &out, nil
}

func (s *UserStore) List(_ context.Context) ([]model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.User, 0, len(s.users))
	for _, id := range sortedKeys(s.users) {
		out = append(out, copyUser(s.users[id]))
	}
	return out, nil
}

func (s *UserStore) ListByIDs(_ context.Context, ids []int64) ([]model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	wanted := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}

	out := make([]model.User, 0, len(wanted))
	for _, id := range sortedKeys(wanted) {
		if u, ok := s.users[id]; ok {
			out = append(out, copyUser(u))
		}
	}
	return out, nil
}

func copyUser(u model.User) model.User {
	if u.Birthday != nil {
		b := *u.Birthday
		u.Birthday = &b
	}
	return u
}

package memory

import (
	"context"
	"sync"

	"github.com/sakif/filmorate/internal/repository"
)

var _ repository.LikeRepository = (*LikeStore)(nil)

// LikeStore keeps, per film, the set of users who liked it.
type LikeStore struct {
	mu    sync.RWMutex
	likes map[int64]map[int64]struct{}
}

func NewLikeStore() *LikeStore {
	return &LikeStore{likes: make(map[int64]map[int64]struct{})}
}

func (s *LikeStore) Add(_ context.Context, filmID, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	set, ok := s.likes[filmID]
	if !ok {
		set = make(map[int64]struct{})
		s.likes[filmID] = set
	}
	set[userID] = struct{}{}
	return nil
}

func (s *LikeStore) Remove(_ context.Context, filmID, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	set := s.likes[filmID]
	delete(set, userID)
	if len(set) == 0 {
		delete(s.likes, filmID)
	}
	return nil
}

func (s *LikeStore) Exists(_ context.Context, filmID, userID int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.likes[filmID][userID]
	return ok, nil
}

func (s *LikeStore) Counts(_ context.Context) (map[int64]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[int64]int, len(s.likes))
	for filmID, set := range s.likes {
		counts[filmID] = len(set)
	}
	return counts, nil
}

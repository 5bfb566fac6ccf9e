package memory

import (
	"context"
	"sync"

	"github.com/sakif/filmorate/internal/repository"
)

var _ repository.FriendRepository = (*FriendStore)(nil)

// edge is an undirected friendship in canonical order (lo < hi).
type edge struct {
	lo, hi int64
}

func newEdge(a, b int64) edge {
	if a > b {
		a, b = b, a
	}
	return edge{lo: a, hi: b}
}

// FriendStore keeps each friendship once as a canonical edge, plus an
// adjacency index for neighbour lookups. Both are updated under the same
// lock, so the relation is symmetric at every observable point.
type FriendStore struct {
	mu    sync.RWMutex
	edges map[edge]struct{}
	adj   map[int64]map[int64]struct{}
}

func NewFriendStore() *FriendStore {
	return &FriendStore{
		edges: make(map[edge]struct{}),
		adj:   make(map[int64]map[int64]struct{}),
	}
}

func (s *FriendStore) Add(_ context.Context, userID, friendID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := newEdge(userID, friendID)
	if _, ok := s.edges[e]; ok {
		return nil
	}
	s.edges[e] = struct{}{}
	s.link(userID, friendID)
	s.link(friendID, userID)
	return nil
}

func (s *FriendStore) Remove(_ context.Context, userID, friendID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := newEdge(userID, friendID)
	if _, ok := s.edges[e]; !ok {
		return nil
	}
	delete(s.edges, e)
	s.unlink(userID, friendID)
	s.unlink(friendID, userID)
	return nil
}

func (s *FriendStore) FriendIDs(_ context.Context, userID int64) ([]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return sortedKeys(s.adj[userID]), nil
}

func (s *FriendStore) link(from, to int64) {
	set, ok := s.adj[from]
	if !ok {
		set = make(map[int64]struct{})
		s.adj[from] = set
	}
	set[to] = struct{}{}
}

func (s *FriendStore) unlink(from, to int64) {
	set := s.adj[from]
	delete(set, to)
	if len(set) == 0 {
		delete(s.adj, from)
	}
}

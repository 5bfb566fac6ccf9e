package graph

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/sakif/filmorate/internal/model"
	"github.com/sakif/filmorate/internal/repository"
)

// DefaultPopularCount is the number of films returned by a popularity
// query that does not ask for a specific count.
const DefaultPopularCount = 10

// Ranking answers the derived queries over the graph.
type Ranking struct {
	relations *Relations
	films     repository.FilmRepository
	likes     repository.LikeRepository
}

func NewRanking(relations *Relations, films repository.FilmRepository, likes repository.LikeRepository) *Ranking {
	return &Ranking{relations: relations, films: films, likes: likes}
}

// PopularFilms returns up to count films ordered by like count, most liked
// first. Films with equal counts are ordered by ID.
func (r *Ranking) PopularFilms(ctx context.Context, count int) ([]model.Film, error) {
	if count <= 0 {
		return []model.Film{}, nil
	}

	films, err := r.films.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing films: %w", err)
	}
	counts, err := r.likes.Counts(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting likes: %w", err)
	}
	return RankByLikes(films, counts, count), nil
}

// CommonFriends returns the users who are friends of both a and b, ordered
// by ID. For a == b this is simply a's friend list.
func (r *Ranking) CommonFriends(ctx context.Context, a, b int64) ([]model.User, error) {
	left, err := r.relations.FriendIDs(ctx, a)
	if err != nil {
		return nil, err
	}
	right := left
	if b != a {
		right, err = r.relations.FriendIDs(ctx, b)
		if err != nil {
			return nil, err
		}
	}
	return r.relations.usersByIDs(ctx, Intersect(left, right))
}

// RankByLikes orders films by counts[film.ID] descending, then by ID
// ascending, and returns at most count of them. films is not modified.
func RankByLikes(films []model.Film, counts map[int64]int, count int) []model.Film {
	if count <= 0 {
		return []model.Film{}
	}

	ranked := slices.Clone(films)
	slices.SortStableFunc(ranked, func(x, y model.Film) int {
		if c := cmp.Compare(counts[y.ID], counts[x.ID]); c != 0 {
			return c
		}
		return cmp.Compare(x.ID, y.ID)
	})

	if len(ranked) > count {
		ranked = ranked[:count]
	}
	if ranked == nil {
		ranked = []model.Film{}
	}
	return ranked
}

// Intersect returns the IDs present in both a and b in ascending order.
// Inputs need not be sorted; duplicates collapse.
func Intersect(a, b []int64) []int64 {
	in := make(map[int64]struct{}, len(a))
	for _, id := range a {
		in[id] = struct{}{}
	}

	out := []int64{}
	for _, id := range b {
		if _, ok := in[id]; ok {
			out = append(out, id)
			delete(in, id)
		}
	}
	slices.Sort(out)
	return out
}

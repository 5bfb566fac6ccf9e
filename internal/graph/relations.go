package graph

import (
	"context"
	"fmt"

	"github.com/sakif/filmorate/internal/apperror"
	"github.com/sakif/filmorate/internal/model"
	"github.com/sakif/filmorate/internal/repository"
)

// Relations mutates and reads the friendship and like edges.
type Relations struct {
	users   repository.UserRepository
	films   repository.FilmRepository
	friends repository.FriendRepository
	likes   repository.LikeRepository
}

func NewRelations(
	users repository.UserRepository,
	films repository.FilmRepository,
	friends repository.FriendRepository,
	likes repository.LikeRepository,
) *Relations {
	return &Relations{users: users, films: films, friends: friends, likes: likes}
}

// AddFriend makes userID and friendID friends of each other. Adding an
// existing friendship is a no-op. Both users must exist before the
// self-pair rule is applied, so an unknown ID always reports NotFound.
func (r *Relations) AddFriend(ctx context.Context, userID, friendID int64) error {
	if err := r.requireUsers(ctx, userID, friendID); err != nil {
		return err
	}
	if userID == friendID {
		return apperror.ValidationFailed("friendId", "a user cannot befriend themselves")
	}

	if err := r.friends.Add(ctx, userID, friendID); err != nil {
		return fmt.Errorf("adding friendship %d <-> %d: %w", userID, friendID, err)
	}
	edgeMutations.WithLabelValues(edgeFriend, opAdd).Inc()
	return nil
}

// RemoveFriend ends the friendship between userID and friendID in both
// directions. Removing an absent friendship is a no-op.
func (r *Relations) RemoveFriend(ctx context.Context, userID, friendID int64) error {
	if err := r.requireUsers(ctx, userID, friendID); err != nil {
		return err
	}

	if err := r.friends.Remove(ctx, userID, friendID); err != nil {
		return fmt.Errorf("removing friendship %d <-> %d: %w", userID, friendID, err)
	}
	edgeMutations.WithLabelValues(edgeFriend, opRemove).Inc()
	return nil
}

// FriendIDs returns the IDs of userID's friends in ascending order.
func (r *Relations) FriendIDs(ctx context.Context, userID int64) ([]int64, error) {
	if err := r.requireUsers(ctx, userID); err != nil {
		return nil, err
	}

	ids, err := r.friends.FriendIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing friends of user %d: %w", userID, err)
	}
	return ids, nil
}

// Friends returns the full records of userID's friends ordered by ID.
func (r *Relations) Friends(ctx context.Context, userID int64) ([]model.User, error) {
	ids, err := r.FriendIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	return r.usersByIDs(ctx, ids)
}

// AddLike records that userID likes filmID. Liking twice is a no-op.
func (r *Relations) AddLike(ctx context.Context, filmID, userID int64) error {
	if err := r.requireFilmAndUser(ctx, filmID, userID); err != nil {
		return err
	}

	if err := r.likes.Add(ctx, filmID, userID); err != nil {
		return fmt.Errorf("adding like film=%d user=%d: %w", filmID, userID, err)
	}
	edgeMutations.WithLabelValues(edgeLike, opAdd).Inc()
	return nil
}

// RemoveLike withdraws userID's like of filmID. Removing an absent like
// is a no-op.
func (r *Relations) RemoveLike(ctx context.Context, filmID, userID int64) error {
	if err := r.requireFilmAndUser(ctx, filmID, userID); err != nil {
		return err
	}

	if err := r.likes.Remove(ctx, filmID, userID); err != nil {
		return fmt.Errorf("removing like film=%d user=%d: %w", filmID, userID, err)
	}
	edgeMutations.WithLabelValues(edgeLike, opRemove).Inc()
	return nil
}

// LikeExists reports whether userID likes filmID. Unknown IDs simply
// report false.
func (r *Relations) LikeExists(ctx context.Context, filmID, userID int64) (bool, error) {
	ok, err := r.likes.Exists(ctx, filmID, userID)
	if err != nil {
		return false, fmt.Errorf("checking like film=%d user=%d: %w", filmID, userID, err)
	}
	return ok, nil
}

// requireUsers returns the NotFound error of the first missing user.
func (r *Relations) requireUsers(ctx context.Context, ids ...int64) error {
	for _, id := range ids {
		if _, err := r.users.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

func (r *Relations) requireFilmAndUser(ctx context.Context, filmID, userID int64) error {
	if _, err := r.films.GetByID(ctx, filmID); err != nil {
		return err
	}
	return r.requireUsers(ctx, userID)
}

func (r *Relations) usersByIDs(ctx context.Context, ids []int64) ([]model.User, error) {
	users, err := r.users.ListByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("loading users: %w", err)
	}
	return users, nil
}

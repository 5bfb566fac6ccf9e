package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sakif/filmorate/internal/graph"
	"github.com/sakif/filmorate/internal/model"
	"github.com/sakif/filmorate/internal/repository"
)

// UserService manages users and their friendships.
type UserService struct {
	users     repository.UserRepository
	relations *graph.Relations
	ranking   *graph.Ranking
	logger    *slog.Logger
}

func NewUserService(
	users repository.UserRepository,
	relations *graph.Relations,
	ranking *graph.Ranking,
	logger *slog.Logger,
) *UserService {
	return &UserService{users: users, relations: relations, ranking: ranking, logger: logger}
}

// Create stores a new user. A blank name is replaced by the login.
func (s *UserService) Create(ctx context.Context, user *model.User) (*model.User, error) {
	user.ApplyDefaultName()

	if err := s.users.Create(ctx, user); err != nil {
		s.logger.Error("failed to create user",
			slog.String("login", user.Login),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating user: %w", err)
	}

	s.logger.Info("user created",
		slog.Int64("id", user.ID),
		slog.String("login", user.Login),
	)
	return user, nil
}

// Update replaces an existing user. Unknown IDs fail with NotFound and
// nothing is stored.
func (s *UserService) Update(ctx context.Context, user *model.User) (*model.User, error) {
	if _, err := s.users.GetByID(ctx, user.ID); err != nil {
		logFailure(s.logger, "failed to load user for update", err, slog.Int64("id", user.ID))
		return nil, err
	}

	user.ApplyDefaultName()

	if err := s.users.Update(ctx, user); err != nil {
		logFailure(s.logger, "failed to update user", err, slog.Int64("id", user.ID))
		return nil, fmt.Errorf("updating user: %w", err)
	}

	s.logger.Info("user updated", slog.Int64("id", user.ID))
	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		logFailure(s.logger, "failed to get user", err, slog.Int64("id", id))
		return nil, err
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		s.logger.Error("failed to list users", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing users: %w", err)
	}
	return users, nil
}

func (s *UserService) AddFriend(ctx context.Context, userID, friendID int64) error {
	if err := requireUsers(ctx, s.users, userID, friendID); err != nil {
		logFailure(s.logger, "failed to resolve users for friendship", err,
			slog.Int64("user_id", userID), slog.Int64("friend_id", friendID))
		return err
	}
	if err := s.relations.AddFriend(ctx, userID, friendID); err != nil {
		logFailure(s.logger, "failed to add friend", err,
			slog.Int64("user_id", userID), slog.Int64("friend_id", friendID))
		return err
	}

	s.logger.Info("friend added",
		slog.Int64("user_id", userID),
		slog.Int64("friend_id", friendID),
	)
	return nil
}

func (s *UserService) RemoveFriend(ctx context.Context, userID, friendID int64) error {
	if err := requireUsers(ctx, s.users, userID, friendID); err != nil {
		logFailure(s.logger, "failed to resolve users for friendship", err,
			slog.Int64("user_id", userID), slog.Int64("friend_id", friendID))
		return err
	}
	if err := s.relations.RemoveFriend(ctx, userID, friendID); err != nil {
		logFailure(s.logger, "failed to remove friend", err,
			slog.Int64("user_id", userID), slog.Int64("friend_id", friendID))
		return err
	}

	s.logger.Info("friend removed",
		slog.Int64("user_id", userID),
		slog.Int64("friend_id", friendID),
	)
	return nil
}

func (s *UserService) Friends(ctx context.Context, userID int64) ([]model.User, error) {
	friends, err := s.relations.Friends(ctx, userID)
	if err != nil {
		logFailure(s.logger, "failed to list friends", err, slog.Int64("user_id", userID))
		return nil, err
	}
	return friends, nil
}

func (s *UserService) CommonFriends(ctx context.Context, userID, otherID int64) ([]model.User, error) {
	common, err := s.ranking.CommonFriends(ctx, userID, otherID)
	if err != nil {
		logFailure(s.logger, "failed to list common friends", err,
			slog.Int64("user_id", userID), slog.Int64("other_id", otherID))
		return nil, err
	}
	return common, nil
}

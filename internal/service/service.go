// Package service is the facade the HTTP layer talks to. It applies the
// business rules that sit above storage (name defaulting, catalog
// resolution of films, endpoint existence for edge mutations) and delegates
// edge work to the graph engine.
//
// Services return *apperror.AppError values for expected failures and
// wrap everything else. Storage failures are logged at error level;
// NotFound and validation failures are not logged here, the handler turns
// them into 4xx responses.
package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/sakif/filmorate/internal/apperror"
	"github.com/sakif/filmorate/internal/repository"
)

// logFailure logs err unless it is an expected domain error.
func logFailure(logger *slog.Logger, msg string, err error, attrs ...any) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return
	}
	logger.Error(msg, append(attrs, slog.String("error", err.Error()))...)
}

// requireUsers returns the NotFound error of the first unknown user. Edge
// mutations call it before handing off to the graph engine, which checks
// again.
func requireUsers(ctx context.Context, users repository.UserRepository, ids ...int64) error {
	for _, id := range ids {
		if _, err := users.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

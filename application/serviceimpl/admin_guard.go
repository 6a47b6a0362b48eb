package serviceimpl

import (
	"context"
	"errors"

	"heritage-archive/domain/models"
	"heritage-archive/domain/repositories"
	"heritage-archive/pkg/apperror"
)

// requireAdmin loads the actor from the store and checks the admin role.
// It runs on every admin call; a role seen earlier is never reused.
func requireAdmin(ctx context.Context, profiles repositories.ProfileRepository, actorID string) (*models.Profile, error) {
	if actorID == "" {
		return nil, apperror.Unauthorized("authentication required")
	}

	actor, err := profiles.GetByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.Unauthorized("account no longer exists")
		}
		return nil, err
	}

	if !actor.IsAdmin() {
		return nil, apperror.Forbidden("admin role required")
	}
	return actor, nil
}

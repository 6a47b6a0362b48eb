package services

import (
	"context"

	"heritage-archive/domain/models"
)

type AuthService interface {
	// GetGoogleAuthURL returns the Google OAuth authorization URL
	GetGoogleAuthURL(state string) string

	// HandleGoogleCallback signs the user in, provisioning a profile on first
	// sign-in, and returns a session token.
	HandleGoogleCallback(ctx context.Context, code string) (token string, profile *models.Profile, err error)

	// GetCurrentUser returns the profile behind a validated session
	GetCurrentUser(ctx context.Context, userID string) (*models.Profile, error)
}

package services

import (
	"context"

	"heritage-archive/domain/models"
)

// Identity is what the identity provider tells us about a signed-in user.
type Identity struct {
	ID        string
	Email     string
	FullName  string
	AvatarURL string
}

type AccountService interface {
	// EnsureProfile returns the profile for identity, creating it if absent.
	// The very first profile becomes an approved admin; later ones start as
	// unapproved members.
	EnsureProfile(ctx context.Context, identity Identity) (*models.Profile, error)
	GetProfile(ctx context.Context, id string) (*models.Profile, error)
}

package repositories

import (
	"context"

	"heritage-archive/domain/models"
)

type ProfileRepository interface {
	Create(ctx context.Context, profile *models.Profile) error
	GetByID(ctx context.Context, id string) (*models.Profile, error)

	// ListPending returns unapproved non-admin accounts, newest first.
	ListPending(ctx context.Context) ([]models.Profile, error)
	ListAll(ctx context.Context) ([]models.Profile, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) (*models.Profile, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	CountPending(ctx context.Context) (int64, error)
}

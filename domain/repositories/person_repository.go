package repositories

import (
	"context"

	"heritage-archive/domain/models"
)

type PersonRepository interface {
	Create(ctx context.Context, person *models.Person) error
	GetByID(ctx context.Context, id string) (*models.Person, error)
	GetByIDs(ctx context.Context, ids []string) ([]models.Person, error)
	List(ctx context.Context, filter models.PersonFilter) ([]models.Person, error)

	// GetChildren returns rows with father_id = parentID OR mother_id = parentID.
	// An empty status returns children in any status.
	GetChildren(ctx context.Context, parentID string, status models.PersonStatus) ([]models.Person, error)

	// Update writes a partial column set and bumps version. When expectedVersion
	// is non-nil the write only happens if the stored version still matches,
	// otherwise a conflict error is returned.
	Update(ctx context.Context, id string, fields map[string]interface{}, expectedVersion *int) (*models.Person, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context, filter models.PersonFilter) (int64, error)
}

package repositories

import (
	"context"

	"heritage-archive/domain/models"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id string) (*models.Comment, error)
	ListByMember(ctx context.Context, memberID string) ([]models.Comment, error)
	Delete(ctx context.Context, id string) error
}

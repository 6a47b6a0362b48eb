package services

import (
	"context"

	"heritage-archive/domain/models"
)

type CommentService interface {
	List(ctx context.Context, memberID string) ([]models.Comment, error)
	Create(ctx context.Context, userID, memberID, content string) (*models.Comment, error)
	// Delete is allowed for the comment's author and for admins.
	Delete(ctx context.Context, actor *models.Profile, commentID string) error
}

package repositories

import (
	"context"

	"heritage-archive/domain/models"
)

type MessageRepository interface {
	Create(ctx context.Context, message *models.Message) error

	// ListByUser returns one account's thread, oldest first.
	ListByUser(ctx context.Context, userID string) ([]models.Message, error)

	// ListAll returns every message with its profile preloaded, oldest first.
	ListAll(ctx context.Context) ([]models.Message, error)
}

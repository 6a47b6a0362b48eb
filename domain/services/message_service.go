package services

import (
	"context"

	"heritage-archive/domain/models"
)

type MessageThread struct {
	UserID   string
	Profile  *models.Profile
	Messages []models.Message
}

type MessageService interface {
	Send(ctx context.Context, userID, content string) (*models.Message, error)
	ListMine(ctx context.Context, userID string) ([]models.Message, error)

	// Admin side
	Reply(ctx context.Context, actorID, userID, content string) (*models.Message, error)
	Threads(ctx context.Context, actorID string) ([]MessageThread, error)
}

package services

import (
	"context"

	"heritage-archive/domain/models"
)

type ModerationLogService interface {
	// List returns moderation logs with pagination
	List(ctx context.Context, page, limit int) ([]models.ModerationLog, int64, error)

	// ListByAction returns moderation logs filtered by action
	ListByAction(ctx context.Context, action models.ModerationAction, page, limit int) ([]models.ModerationLog, int64, error)

	// ListByTarget returns the history of one person or account
	ListByTarget(ctx context.Context, targetID string) ([]models.ModerationLog, error)
}

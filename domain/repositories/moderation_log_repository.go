package repositories

import (
	"context"

	"heritage-archive/domain/models"
)

type ModerationLogRepository interface {
	// Create a new moderation log entry
	Create(ctx context.Context, log *models.ModerationLog) error

	// List logs with pagination, newest first
	List(ctx context.Context, offset, limit int) ([]models.ModerationLog, int64, error)

	// List logs for one action type
	ListByAction(ctx context.Context, action models.ModerationAction, offset, limit int) ([]models.ModerationLog, int64, error)

	// All logs about one target
	ListByTarget(ctx context.Context, targetID string) ([]models.ModerationLog, error)
}

package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"

	"heritage-archive/domain/models"
	"heritage-archive/domain/repositories"
	"heritage-archive/pkg/apperror"
)

type ModerationLogRepositoryImpl struct {
	db *gorm.DB
}

func NewModerationLogRepository(db *gorm.DB) repositories.ModerationLogRepository {
	return &ModerationLogRepositoryImpl{db: db}
}

func (r *ModerationLogRepositoryImpl) Create(ctx context.Context, log *models.ModerationLog) error {
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now()
	}
	if err := r.db.WithContext(ctx).Create(log).Error; err != nil {
		return apperror.Store("failed to write moderation log", err)
	}
	return nil
}

func (r *ModerationLogRepositoryImpl) List(ctx context.Context, offset, limit int) ([]models.ModerationLog, int64, error) {
	return r.page(r.db.WithContext(ctx).Model(&models.ModerationLog{}), offset, limit)
}

func (r *ModerationLogRepositoryImpl) ListByAction(ctx context.Context, action models.ModerationAction, offset, limit int) ([]models.ModerationLog, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ModerationLog{}).Where("action = ?", action)
	return r.page(query, offset, limit)
}

func (r *ModerationLogRepositoryImpl) ListByTarget(ctx context.Context, targetID string) ([]models.ModerationLog, error) {
	var logs []models.ModerationLog
	err := r.db.WithContext(ctx).
		Where("target_id = ?", targetID).
		Order("created_at DESC").
		Find(&logs).Error
	if err != nil {
		return nil, apperror.Store("failed to list moderation logs", err)
	}
	return logs, nil
}

func (r *ModerationLogRepositoryImpl) page(query *gorm.DB, offset, limit int) ([]models.ModerationLog, int64, error) {
	var logs []models.ModerationLog
	var total int64

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperror.Store("failed to count moderation logs", err)
	}

	err := query.
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&logs).Error
	if err != nil {
		return nil, 0, apperror.Store("failed to list moderation logs", err)
	}

	return logs, total, nil
}

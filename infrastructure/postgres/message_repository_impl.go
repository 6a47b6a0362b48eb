package postgres

import (
	"context"

	"gorm.io/gorm"

	"heritage-archive/domain/models"
	"heritage-archive/domain/repositories"
	"heritage-archive/pkg/apperror"
)

type MessageRepositoryImpl struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) repositories.MessageRepository {
	return &MessageRepositoryImpl{db: db}
}

func (r *MessageRepositoryImpl) Create(ctx context.Context, message *models.Message) error {
	if err := r.db.WithContext(ctx).Create(message).Error; err != nil {
		return apperror.Store("failed to create message", err)
	}
	return nil
}

func (r *MessageRepositoryImpl) ListByUser(ctx context.Context, userID string) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&messages).Error
	if err != nil {
		return nil, apperror.Store("failed to list messages", err)
	}
	return messages, nil
}

func (r *MessageRepositoryImpl) ListAll(ctx context.Context) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.WithContext(ctx).
		Preload("Profile").
		Order("created_at ASC").
		Find(&messages).Error
	if err != nil {
		return nil, apperror.Store("failed to list messages", err)
	}
	return messages, nil
}

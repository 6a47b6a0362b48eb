package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"heritage-archive/domain/models"
	"heritage-archive/domain/repositories"
	"heritage-archive/pkg/apperror"
)

type CommentRepositoryImpl struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) repositories.CommentRepository {
	return &CommentRepositoryImpl{db: db}
}

func (r *CommentRepositoryImpl) Create(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return apperror.Store("failed to create comment", err)
	}
	return nil
}

func (r *CommentRepositoryImpl) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&comment).Error
	if err != nil {
		return nil, storeError(err, "comment", id)
	}
	return &comment, nil
}

func (r *CommentRepositoryImpl) ListByMember(ctx context.Context, memberID string) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.WithContext(ctx).
		Preload("Profile").
		Where("member_id = ?", memberID).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, apperror.Store("failed to list comments", err)
	}
	return comments, nil
}

func (r *CommentRepositoryImpl) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Comment{})
	if result.Error != nil {
		return apperror.Store("failed to delete comment", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperror.NotFound(fmt.Sprintf("comment %s not found", id))
	}
	return nil
}

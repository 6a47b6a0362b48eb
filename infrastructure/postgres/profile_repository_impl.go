package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"heritage-archive/domain/models"
	"heritage-archive/domain/repositories"
	"heritage-archive/pkg/apperror"
)

type ProfileRepositoryImpl struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) repositories.ProfileRepository {
	return &ProfileRepositoryImpl{db: db}
}

func (r *ProfileRepositoryImpl) Create(ctx context.Context, profile *models.Profile) error {
	if err := r.db.WithContext(ctx).Create(profile).Error; err != nil {
		return apperror.Store("failed to create profile", err)
	}
	return nil
}

func (r *ProfileRepositoryImpl) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&profile).Error
	if err != nil {
		return nil, storeError(err, "profile", id)
	}
	return &profile, nil
}

func (r *ProfileRepositoryImpl) ListPending(ctx context.Context) ([]models.Profile, error) {
	var profiles []models.Profile
	err := r.pending(ctx).Order("created_at DESC").Find(&profiles).Error
	if err != nil {
		return nil, apperror.Store("failed to list pending profiles", err)
	}
	return profiles, nil
}

func (r *ProfileRepositoryImpl) ListAll(ctx context.Context) ([]models.Profile, error) {
	var profiles []models.Profile
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&profiles).Error
	if err != nil {
		return nil, apperror.Store("failed to list profiles", err)
	}
	return profiles, nil
}

func (r *ProfileRepositoryImpl) Update(ctx context.Context, id string, fields map[string]interface{}) (*models.Profile, error) {
	result := r.db.WithContext(ctx).Model(&models.Profile{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return nil, apperror.Store("failed to update profile", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, apperror.NotFound(fmt.Sprintf("profile %s not found", id))
	}
	return r.GetByID(ctx, id)
}

func (r *ProfileRepositoryImpl) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Profile{})
	if result.Error != nil {
		return apperror.Store("failed to delete profile", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperror.NotFound(fmt.Sprintf("profile %s not found", id))
	}
	return nil
}

func (r *ProfileRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Profile{}).Count(&count).Error; err != nil {
		return 0, apperror.Store("failed to count profiles", err)
	}
	return count, nil
}

func (r *ProfileRepositoryImpl) CountPending(ctx context.Context) (int64, error) {
	var count int64
	if err := r.pending(ctx).Count(&count).Error; err != nil {
		return 0, apperror.Store("failed to count pending profiles", err)
	}
	return count, nil
}

func (r *ProfileRepositoryImpl) pending(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.Profile{}).
		Where("is_approved = ?", false).
		Where("role <> ?", models.RoleAdmin)
}

package serviceimpl

import (
	"context"

	"heritage-archive/domain/models"
	"heritage-archive/domain/repositories"
	"heritage-archive/domain/services"
)

type ModerationLogServiceImpl struct {
	logRepo repositories.ModerationLogRepository
}

func NewModerationLogService(logRepo repositories.ModerationLogRepository) services.ModerationLogService {
	return &ModerationLogServiceImpl{
		logRepo: logRepo,
	}
}

func (s *ModerationLogServiceImpl) List(ctx context.Context, page, limit int) ([]models.ModerationLog, int64, error) {
	return s.logRepo.List(ctx, pageOffset(page, limit), limit)
}

func (s *ModerationLogServiceImpl) ListByAction(ctx context.Context, action models.ModerationAction, page, limit int) ([]models.ModerationLog, int64, error) {
	return s.logRepo.ListByAction(ctx, action, pageOffset(page, limit), limit)
}

func (s *ModerationLogServiceImpl) ListByTarget(ctx context.Context, targetID string) ([]models.ModerationLog, error) {
	return s.logRepo.ListByTarget(ctx, targetID)
}

// pageOffset converts a 1-based page into an offset.
func pageOffset(page, limit int) int {
	offset := (page - 1) * limit
	if offset < 0 {
		offset = 0
	}
	return offset
}

package handlers

import (
	"github.com/gofiber/fiber/v2"

	"heritage-archive/domain/dto"
	"heritage-archive/domain/models"
	"heritage-archive/domain/services"
	"heritage-archive/pkg/utils"
)

type ModerationLogHandler struct {
	logService services.ModerationLogService
}

func NewModerationLogHandler(logService services.ModerationLogService) *ModerationLogHandler {
	return &ModerationLogHandler{logService: logService}
}

// GetModerationLogs returns the moderation history
// @Summary Moderation history
// @Tags Admin
// @Security BearerAuth
// @Param action query string false "Filter by action"
// @Param target_id query string false "History of one person or account"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(50)
// @Success 200 {object} map[string]interface{}
// @Router /admin/moderation-logs [get]
func (h *ModerationLogHandler) GetModerationLogs(c *fiber.Ctx) error {
	var req dto.ModerationLogListRequest
	if err := utils.ParseQuery(c, &req); err != nil {
		return err
	}
	if req.Page == 0 {
		req.Page = 1
	}
	if req.Limit == 0 {
		req.Limit = 50
	}

	if req.TargetID != "" {
		logs, err := h.logService.ListByTarget(c.UserContext(), req.TargetID)
		if err != nil {
			return err
		}
		return utils.SuccessResponse(c, "Moderation logs retrieved", dto.ModerationLogsToResponse(logs))
	}

	var (
		logs  []models.ModerationLog
		total int64
		err   error
	)
	if req.Action != "" {
		logs, total, err = h.logService.ListByAction(c.UserContext(), models.ModerationAction(req.Action), req.Page, req.Limit)
	} else {
		logs, total, err = h.logService.List(c.UserContext(), req.Page, req.Limit)
	}
	if err != nil {
		return err
	}

	return utils.PaginatedResponse(c, dto.ModerationLogsToResponse(logs), total, req.Page, req.Limit)
}

// GetModerationActions returns the action types for filtering
// @Summary Moderation action types
// @Tags Admin
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /admin/moderation-logs/actions [get]
func (h *ModerationLogHandler) GetModerationActions(c *fiber.Ctx) error {
	actions := []fiber.Map{
		{"value": models.ActionPersonSubmitted, "label": "Submission received", "category": "person"},
		{"value": models.ActionPersonApproved, "label": "Submission approved", "category": "person"},
		{"value": models.ActionPersonRejected, "label": "Submission rejected", "category": "person"},
		{"value": models.ActionPersonUpdated, "label": "Family member edited", "category": "person"},
		{"value": models.ActionPersonImageRemoved, "label": "Image removed", "category": "person"},
		{"value": models.ActionAccountApproved, "label": "Account approved", "category": "account"},
		{"value": models.ActionAccountRejected, "label": "Account rejected", "category": "account"},
		{"value": models.ActionAccountUpdated, "label": "Account edited", "category": "account"},
		{"value": models.ActionAccountDeleted, "label": "Account deleted", "category": "account"},
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    actions,
	})
}

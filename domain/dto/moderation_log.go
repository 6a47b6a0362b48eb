package dto

import (
	"encoding/json"
	"time"

	"heritage-archive/domain/models"
)

// ModerationLogResponse represents a moderation log entry
type ModerationLogResponse struct {
	ID         string    `json:"id"`
	ActorID    string    `json:"actor_id"`
	Action     string    `json:"action"`
	TargetType string    `json:"target_type"`
	TargetID   string    `json:"target_id"`
	Message    string    `json:"message"`
	Details    any       `json:"details,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// ModerationLogListRequest represents a request to list moderation logs
type ModerationLogListRequest struct {
	Action   string `query:"action"`
	TargetID string `query:"target_id"`
	Page     int    `query:"page" validate:"omitempty,min=1"`
	Limit    int    `query:"limit" validate:"omitempty,min=1,max=100"`
}

// ModerationLogToResponse converts a model to response DTO
func ModerationLogToResponse(log *models.ModerationLog) *ModerationLogResponse {
	resp := &ModerationLogResponse{
		ID:         log.ID,
		ActorID:    log.ActorID,
		Action:     string(log.Action),
		TargetType: log.TargetType,
		TargetID:   log.TargetID,
		Message:    log.Message,
		CreatedAt:  log.CreatedAt,
	}

	// Parse JSON details if present
	if log.Details != "" {
		var details map[string]interface{}
		if err := json.Unmarshal([]byte(log.Details), &details); err == nil {
			resp.Details = details
		}
	}

	return resp
}

// ModerationLogsToResponse converts a slice of models to response DTOs
func ModerationLogsToResponse(logs []models.ModerationLog) []*ModerationLogResponse {
	result := make([]*ModerationLogResponse, len(logs))
	for i := range logs {
		result[i] = ModerationLogToResponse(&logs[i])
	}
	return result
}

package services

import "time"

// ModerationEvent is pushed to connected admins whenever the moderation queue changes.
type ModerationEvent struct {
	Type      string                 `json:"type"`
	TargetID  string                 `json:"target_id"`
	ActorID   string                 `json:"actor_id,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	Data      map[string]interface{} `json:"data,omitempty"`
}

type EventPublisher interface {
	Publish(event ModerationEvent)
}

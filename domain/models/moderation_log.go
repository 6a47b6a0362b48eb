package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ModerationAction string

const (
	// Person actions
	ActionPersonApproved     ModerationAction = "person_approved"
	ActionPersonRejected     ModerationAction = "person_rejected"
	ActionPersonUpdated      ModerationAction = "person_updated"
	ActionPersonImageRemoved ModerationAction = "person_image_removed"

	// Account actions
	ActionAccountApproved ModerationAction = "account_approved"
	ActionAccountRejected ModerationAction = "account_rejected"
	ActionAccountUpdated  ModerationAction = "account_updated"
	ActionAccountDeleted  ModerationAction = "account_deleted"

	// Submissions
	ActionPersonSubmitted ModerationAction = "person_submitted"
)

// ModerationLog records every admin decision. Rejections delete the target row,
// so this table is the only place a rejected submission is still mentioned.
type ModerationLog struct {
	ID         string           `gorm:"primaryKey;type:varchar(36)"`
	ActorID    string           `gorm:"type:varchar(128);not null;index"`
	Action     ModerationAction `gorm:"type:varchar(50);not null;index"`
	TargetType string           `gorm:"type:varchar(20);not null"` // person, account
	TargetID   string           `gorm:"type:varchar(128);not null;index"`
	Message    string           `gorm:"type:text"`
	Details    string           `gorm:"type:text"` // JSON-encoded ModerationDetails
	CreatedAt  time.Time        `gorm:"index"`
}

func (ModerationLog) TableName() string {
	return "moderation_logs"
}

func (l *ModerationLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	return nil
}

// ModerationDetails is the structured payload stored in ModerationLog.Details.
type ModerationDetails struct {
	TargetName    string   `json:"target_name,omitempty"`
	ChangedFields []string `json:"changed_fields,omitempty"`
	OldVersion    int      `json:"old_version,omitempty"`
	NewVersion    int      `json:"new_version,omitempty"`
	ImageURL      string   `json:"image_url,omitempty"`
	Role          string   `json:"role,omitempty"`
}

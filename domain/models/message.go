package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Message is one entry in the thread between an account and the admins.
// UserID is always the member's account, also for admin replies.
type Message struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)"`
	UserID      string    `gorm:"type:varchar(128);not null;index"`
	Content     string    `gorm:"type:text;not null"`
	IsFromAdmin bool      `gorm:"not null;default:false"`
	CreatedAt   time.Time `gorm:"index"`

	Profile *Profile `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
}

func (Message) TableName() string {
	return "messages"
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}

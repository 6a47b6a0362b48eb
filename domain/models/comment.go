package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Comment struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)"`
	MemberID  string    `gorm:"type:varchar(36);not null;index"`
	UserID    string    `gorm:"type:varchar(128);not null;index"`
	Content   string    `gorm:"type:text;not null"`
	CreatedAt time.Time

	Person  *Person  `gorm:"foreignKey:MemberID;references:ID;constraint:OnDelete:CASCADE"`
	Profile *Profile `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
}

func (Comment) TableName() string {
	return "comments"
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}

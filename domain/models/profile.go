package models

import (
	"time"
)

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// Profile is the local account row for a signed-in identity. ID is the
// identity provider's subject, not a generated key.
type Profile struct {
	ID         string `gorm:"primaryKey;type:varchar(128)"`
	FullName   string
	Email      string `gorm:"index"`
	Role       Role   `gorm:"type:varchar(20);not null;default:'member'"`
	IsApproved bool   `gorm:"not null;default:false"`
	AvatarURL  *string
	LastLogin  *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Profile) TableName() string {
	return "profiles"
}

func (p *Profile) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// CanContribute reports whether the account may use member features.
func (p *Profile) CanContribute() bool {
	return p.IsAdmin() || p.IsApproved
}

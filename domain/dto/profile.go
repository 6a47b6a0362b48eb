package dto

import "time"

type ProfileResponse struct {
	ID         string     `json:"id"`
	FullName   string     `json:"full_name"`
	Email      string     `json:"email"`
	Role       string     `json:"role"`
	IsApproved bool       `json:"is_approved"`
	AvatarURL  *string    `json:"avatar_url,omitempty"`
	LastLogin  *time.Time `json:"last_login,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

type UpdateAccountRequest struct {
	FullName   *string `json:"full_name" validate:"omitempty,min=1,max=200"`
	Role       *string `json:"role" validate:"omitempty,oneof=admin member"`
	IsApproved *bool   `json:"is_approved"`
}

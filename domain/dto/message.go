package dto

import "time"

type MessageResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Content     string    `json:"content"`
	IsFromAdmin bool      `json:"is_from_admin"`
	CreatedAt   time.Time `json:"created_at"`
}

type SendMessageRequest struct {
	Content string `json:"content" validate:"required,min=1,max=4000"`
}

// MessageThreadResponse groups one account's messages for the admin inbox.
type MessageThreadResponse struct {
	UserID   string            `json:"user_id"`
	FullName string            `json:"full_name"`
	Email    string            `json:"email"`
	Messages []MessageResponse `json:"messages"`
}

package dto

import "time"

type CommentResponse struct {
	ID         string    `json:"id"`
	MemberID   string    `json:"member_id"`
	UserID     string    `json:"user_id"`
	AuthorName string    `json:"author_name,omitempty"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

type CreateCommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=2000"`
}

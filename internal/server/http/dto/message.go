package dto

import "time"

// MessageRequest describes a new board post.
type MessageRequest struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

// MessageResponse describes a board entry. Author and timestamp are
// omitted for readers without membership.
type MessageResponse struct {
	ID        int64      `json:"id"`
	Title     string     `json:"title"`
	Message   string     `json:"message"`
	Author    string     `json:"author,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

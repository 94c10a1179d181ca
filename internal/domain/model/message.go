package model

import "time"

// Message describes a board post left by a user.
// Author carries the poster's display name when listings are read with a
// join; it is cleared for readers who are not members.
type Message struct {
	ID        int64
	UserID    int64
	Title     string
	Body      string
	CreatedAt time.Time
	Author    string
}

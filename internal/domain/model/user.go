package model

import (
	"strings"
	"time"
)

// User represents a registered account of the community site.
type User struct {
	ID           int64
	FirstName    string
	LastName     string
	Username     string
	PasswordHash string
	Member       bool
	CreatedAt    time.Time
}

// DisplayName returns the name shown next to board messages.
func (u User) DisplayName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Registration carries the sign-up form fields.
type Registration struct {
	FirstName       string
	LastName        string
	Username        string
	Password        string
	PasswordConfirm string
}

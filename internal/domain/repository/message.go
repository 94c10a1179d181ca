package repository

import (
	"context"
	"time"

	"github.com/akulagin/clubhouse/internal/domain/model"
)

// MessageRepository describes persistence operations for board messages.
type MessageRepository interface {
	Create(ctx context.Context, userID int64, title, body string) (*model.Message, error)
	// List returns messages newest-first with author display names joined in.
	List(ctx context.Context) ([]model.Message, error)
	// DeleteOlderThan removes at most limit messages posted before cutoff
	// and returns how many were deleted.
	DeleteOlderThan(ctx context.Context, cutoff time.Time, limit int) (int64, error)
}

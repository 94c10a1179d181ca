package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/akulagin/clubhouse/internal/domain/model"
	"github.com/akulagin/clubhouse/internal/domain/repository"
)

// MessageUseCase encapsulates board operations.
type MessageUseCase struct {
	messages repository.MessageRepository
}

// NewMessageUseCase constructs MessageUseCase.
func NewMessageUseCase(messages repository.MessageRepository) *MessageUseCase {
	return &MessageUseCase{messages: messages}
}

// Post validates and stores a new board message for the user.
func (u *MessageUseCase) Post(ctx context.Context, userID int64, title, body string) (*model.Message, error) {
	title = strings.TrimSpace(title)
	body = strings.TrimSpace(body)

	if err := ValidateMessage(title, body); err != nil {
		return nil, err
	}

	return u.messages.Create(ctx, userID, title, body)
}

// Board lists messages newest-first. Readers who are not members get the
// anonymized view: author names and timestamps are stripped.
func (u *MessageUseCase) Board(ctx context.Context, member bool) ([]model.Message, error) {
	messages, err := u.messages.List(ctx)
	if err != nil {
		return nil, err
	}

	if !member {
		for i := range messages {
			messages[i].Author = ""
			messages[i].CreatedAt = time.Time{}
		}
	}

	return messages, nil
}

// Prune deletes at most limit messages posted before cutoff.
func (u *MessageUseCase) Prune(ctx context.Context, cutoff time.Time, limit int) (int64, error) {
	return u.messages.DeleteOlderThan(ctx, cutoff, limit)
}

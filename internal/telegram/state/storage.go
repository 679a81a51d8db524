package state

import (
	"context"
	"time"
)

// ChatSession maps a Telegram user to their intake session.
type ChatSession struct {
	UserID    int64     `json:"user_id"`
	ChatID    int64     `json:"chat_id"`
	SessionID string    `json:"session_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Storage defines the interface for chat session persistence
type Storage interface {
	Get(ctx context.Context, userID int64) (*ChatSession, error)
	Set(ctx context.Context, session *ChatSession) error
	Delete(ctx context.Context, userID int64) error
}

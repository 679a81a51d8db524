package state

import (
	"context"
	"fmt"
	"time"
)

// Manager manages telegram chat sessions
type Manager struct {
	storage Storage
}

// NewManager creates a new state manager
func NewManager(storage Storage) *Manager {
	return &Manager{
		storage: storage,
	}
}

// GetSession retrieves the chat session from storage
func (m *Manager) GetSession(ctx context.Context, userID int64) (*ChatSession, error) {
	session, err := m.storage.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get chat session from storage: %w", err)
	}
	return session, nil
}

// Bind links a Telegram user to an intake session, creating the chat
// session record when needed.
func (m *Manager) Bind(ctx context.Context, userID, chatID int64, sessionID string) error {
	session, err := m.storage.Get(ctx, userID)
	if err != nil {
		session = &ChatSession{
			UserID:    userID,
			ChatID:    chatID,
			CreatedAt: time.Now(),
		}
	}

	session.SessionID = sessionID
	session.ChatID = chatID
	session.UpdatedAt = time.Now()

	if err := m.storage.Set(ctx, session); err != nil {
		return fmt.Errorf("save chat session: %w", err)
	}
	return nil
}

// Unbind removes the user's chat session record
func (m *Manager) Unbind(ctx context.Context, userID int64) error {
	if err := m.storage.Delete(ctx, userID); err != nil {
		return fmt.Errorf("delete chat session: %w", err)
	}
	return nil
}

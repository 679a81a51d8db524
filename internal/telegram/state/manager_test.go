package state

import (
	"context"
	"errors"
	"testing"
)

type fakeStorage struct {
	sessions map[int64]*ChatSession
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{sessions: make(map[int64]*ChatSession)}
}

func (f *fakeStorage) Get(ctx context.Context, userID int64) (*ChatSession, error) {
	session, ok := f.sessions[userID]
	if !ok {
		return nil, errors.New("chat session not found")
	}
	return session, nil
}

func (f *fakeStorage) Set(ctx context.Context, session *ChatSession) error {
	f.sessions[session.UserID] = session
	return nil
}

func (f *fakeStorage) Delete(ctx context.Context, userID int64) error {
	delete(f.sessions, userID)
	return nil
}

func TestBindCreatesChatSession(t *testing.T) {
	ctx := context.Background()
	manager := NewManager(newFakeStorage())

	if err := manager.Bind(ctx, 42, 100, "s-1"); err != nil {
		t.Fatalf("Bind: %v", err)
	}

	session, err := manager.GetSession(ctx, 42)
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if session.SessionID != "s-1" || session.ChatID != 100 {
		t.Errorf("session = %+v", session)
	}
}

func TestBindRebindsExistingUser(t *testing.T) {
	ctx := context.Background()
	manager := NewManager(newFakeStorage())

	if err := manager.Bind(ctx, 42, 100, "s-1"); err != nil {
		t.Fatalf("Bind: %v", err)
	}
	if err := manager.Bind(ctx, 42, 100, "s-2"); err != nil {
		t.Fatalf("rebind: %v", err)
	}

	session, err := manager.GetSession(ctx, 42)
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if session.SessionID != "s-2" {
		t.Errorf("session id = %q, want %q", session.SessionID, "s-2")
	}
}

func TestUnbind(t *testing.T) {
	ctx := context.Background()
	manager := NewManager(newFakeStorage())

	if err := manager.Bind(ctx, 42, 100, "s-1"); err != nil {
		t.Fatalf("Bind: %v", err)
	}
	if err := manager.Unbind(ctx, 42); err != nil {
		t.Fatalf("Unbind: %v", err)
	}
	if _, err := manager.GetSession(ctx, 42); err == nil {
		t.Error("expected error after unbind")
	}
}

package repository

import (
	"context"
	"fmt"
	"strconv"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/oselik/nutriplan-backend/internal/config"
	"github.com/oselik/nutriplan-backend/internal/telegram/state"
)

var _ state.Storage = &TelegramStateCache{}

// TelegramStateCache keeps the telegram user to session mapping in
// memory with the same TTL window as the session store, so a chat
// binding never outlives its session by much.
type TelegramStateCache struct {
	cache *gocache.Cache
	ttl   time.Duration
}

func NewTelegramStateCache(cfg config.SessionStoreConfig) *TelegramStateCache {
	return &TelegramStateCache{
		cache: gocache.New(cfg.TTL, cfg.CleanupInterval),
		ttl:   cfg.TTL,
	}
}

func userKey(userID int64) string {
	return strconv.FormatInt(userID, 10)
}

func (r *TelegramStateCache) Get(_ context.Context, userID int64) (*state.ChatSession, error) {
	value, ok := r.cache.Get(userKey(userID))
	if !ok {
		return nil, fmt.Errorf("chat session not found: %d", userID)
	}

	session, ok := value.(*state.ChatSession)
	if !ok {
		return nil, fmt.Errorf("chat session not found: %d", userID)
	}
	return session, nil
}

func (r *TelegramStateCache) Set(_ context.Context, session *state.ChatSession) error {
	r.cache.Set(userKey(session.UserID), session, r.ttl)
	return nil
}

func (r *TelegramStateCache) Delete(_ context.Context, userID int64) error {
	r.cache.Delete(userKey(userID))
	return nil
}

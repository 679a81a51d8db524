package repository

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/oselik/nutriplan-backend/internal/config"
	"github.com/oselik/nutriplan-backend/internal/entity"
)

// SessionStorage defines the interface for session persistence
type SessionStorage interface {
	Save(ctx context.Context, session *entity.Session) error
	GetByID(ctx context.Context, id string) (*entity.Session, error)
	Delete(ctx context.Context, id string) error
}

var _ SessionStorage = &SessionCache{}

// SessionCache implements SessionStorage on top of an in-memory TTL cache.
// Expired sessions are evicted by the cache janitor; callers serialize
// access to a session through the usecase layer.
type SessionCache struct {
	cache *gocache.Cache
	ttl   time.Duration
}

func NewSessionCache(cfg config.SessionStoreConfig) *SessionCache {
	return &SessionCache{
		cache: gocache.New(cfg.TTL, cfg.CleanupInterval),
		ttl:   cfg.TTL,
	}
}

// Save stores the session and refreshes its expiration window.
func (r *SessionCache) Save(_ context.Context, session *entity.Session) error {
	session.UpdatedAt = time.Now().UTC()
	r.cache.Set(session.ID, session, r.ttl)
	return nil
}

func (r *SessionCache) GetByID(_ context.Context, id string) (*entity.Session, error) {
	value, ok := r.cache.Get(id)
	if !ok {
		return nil, entity.ErrSessionNotFound
	}

	session, ok := value.(*entity.Session)
	if !ok {
		return nil, entity.ErrSessionNotFound
	}
	return session, nil
}

func (r *SessionCache) Delete(_ context.Context, id string) error {
	r.cache.Delete(id)
	return nil
}

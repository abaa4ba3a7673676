package session

import (
	"context"
	"errors"
	"parcel-tracking-service/internal/domain"
	"time"

	"github.com/patrickmn/go-cache"
)

// MemoryStore keeps sessions in a process-local expiring cache.
type MemoryStore struct {
	cache *cache.Cache
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = cache.NoExpiration
	}
	return &MemoryStore{cache: cache.New(ttl, 10*time.Minute)}
}

func (m *MemoryStore) Get(ctx context.Context, token string) (*domain.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	v, ok := m.cache.Get(token)
	if !ok {
		return nil, nil
	}
	s := v.(domain.Session)
	return &s, nil
}

func (m *MemoryStore) Put(ctx context.Context, s *domain.Session) error {
	if s == nil || s.Token == "" {
		return errors.New("put session: token is required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	m.cache.SetDefault(s.Token, *s)
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, token string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.cache.Delete(token)
	return nil
}

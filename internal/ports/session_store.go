package ports

import (
	"context"
	"parcel-tracking-service/internal/domain"
)

// SessionStore is the read/write/clear storage behind login sessions.
type SessionStore interface {
	// Get returns (nil, nil) for unknown or expired tokens.
	Get(ctx context.Context, token string) (*domain.Session, error)
	Put(ctx context.Context, s *domain.Session) error
	Delete(ctx context.Context, token string) error
}

package services

import (
	"context"
	"fmt"
	"parcel-tracking-service/internal/domain"
	"parcel-tracking-service/internal/ports"
	"strings"

	"github.com/google/uuid"
	"github.com/zoobzio/clockz"
)

// SessionService issues and resolves login tokens. Any non-empty user name
// is accepted; the role only selects which dashboard the client shows.
type SessionService struct {
	store ports.SessionStore
	clock clockz.Clock
}

func NewSessionService(store ports.SessionStore, clock clockz.Clock) *SessionService {
	if clock == nil {
		clock = clockz.RealClock
	}
	return &SessionService{store: store, clock: clock}
}

func (s *SessionService) Login(ctx context.Context, user, role string) (*domain.Session, error) {
	const op = "login"

	user = strings.TrimSpace(user)
	if user == "" {
		return nil, domain.ValidationError(op, "user is required")
	}
	r, ok := domain.ParseRole(role)
	if !ok {
		return nil, domain.ValidationError(op, fmt.Sprintf("unknown role %q", role))
	}

	sess := &domain.Session{
		Token:     uuid.NewString(),
		User:      user,
		Role:      r,
		CreatedAt: s.clock.Now(),
	}
	if err := s.store.Put(ctx, sess); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return sess, nil
}

func (s *SessionService) Lookup(ctx context.Context, token string) (*domain.Session, error) {
	const op = "lookup session"

	token = strings.TrimSpace(token)
	if token == "" {
		return nil, domain.ValidationError(op, "token is required")
	}

	sess, err := s.store.Get(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if sess == nil {
		return nil, domain.NotFoundError(op, "session not found or expired")
	}
	return sess, nil
}

// Logout is idempotent.
func (s *SessionService) Logout(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return domain.ValidationError("logout", "token is required")
	}
	if err := s.store.Delete(ctx, token); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"parcel-tracking-service/internal/domain"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "session:"

// RedisStore keeps sessions as JSON values with a TTL so that several
// server instances share logins.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

// Dial parses a redis:// URL and verifies the server answers.
func Dial(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis: parse url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: ping: %w", err)
	}
	return client, nil
}

func (r *RedisStore) Get(ctx context.Context, token string) (*domain.Session, error) {
	raw, err := r.client.Get(ctx, keyPrefix+token).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	var s domain.Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("get session: decode: %w", err)
	}
	return &s, nil
}

func (r *RedisStore) Put(ctx context.Context, s *domain.Session) error {
	if s == nil || s.Token == "" {
		return errors.New("put session: token is required")
	}

	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("put session: encode: %w", err)
	}
	if err := r.client.Set(ctx, keyPrefix+s.Token, raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("put session: %w", err)
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, token string) error {
	if err := r.client.Del(ctx, keyPrefix+token).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

package admin

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// TokenKeyPrefix is the fixed storage key of the admin token.
const TokenKeyPrefix = "admin_token"

// TokenKey scopes the storage key to one visitor.
func TokenKey(visitorID string) string {
	return fmt.Sprintf("%s:%s", TokenKeyPrefix, visitorID)
}

// TokenStore is the durable key/value capability behind Sessions.
type TokenStore interface {
	Load(ctx context.Context, key string) (string, error)
	Save(ctx context.Context, key, token string) error
	Delete(ctx context.Context, key string) error
}

// RedisTokenStore keeps tokens in Redis without expiry; they live until logout.
type RedisTokenStore struct {
	redis  *redis.Client
	tracer trace.Tracer
}

func NewRedisTokenStore(client *redis.Client, tracer trace.Tracer) *RedisTokenStore {
	if client == nil {
		panic("admin: redis client cannot be nil")
	}
	if tracer == nil {
		tracer = otel.Tracer("elitecuts.internal.admin.tokens")
	}
	return &RedisTokenStore{redis: client, tracer: tracer}
}

func (s *RedisTokenStore) Load(ctx context.Context, key string) (string, error) {
	ctx, span := s.tracer.Start(ctx, "admin.load_token")
	defer span.End()

	token, err := s.redis.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrTokenNotFound
		}
		span.RecordError(err)
		return "", fmt.Errorf("admin: failed to load token: %w", err)
	}
	return token, nil
}

func (s *RedisTokenStore) Save(ctx context.Context, key, token string) error {
	ctx, span := s.tracer.Start(ctx, "admin.save_token")
	defer span.End()

	if err := s.redis.Set(ctx, key, token, 0).Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("admin: failed to persist token: %w", err)
	}
	return nil
}

func (s *RedisTokenStore) Delete(ctx context.Context, key string) error {
	ctx, span := s.tracer.Start(ctx, "admin.delete_token")
	defer span.End()

	if err := s.redis.Del(ctx, key).Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("admin: failed to delete token: %w", err)
	}
	return nil
}

// Ping checks the Redis connection.
func (s *RedisTokenStore) Ping(ctx context.Context) error {
	return s.redis.Ping(ctx).Err()
}

// MemoryTokenStore is the in-process fallback used when Redis is not configured.
type MemoryTokenStore struct {
	mu     sync.RWMutex
	tokens map[string]string
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{tokens: make(map[string]string)}
}

func (s *MemoryTokenStore) Load(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	token, ok := s.tokens[key]
	if !ok {
		return "", ErrTokenNotFound
	}
	return token, nil
}

func (s *MemoryTokenStore) Save(_ context.Context, key, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[key] = token
	return nil
}

func (s *MemoryTokenStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, key)
	return nil
}

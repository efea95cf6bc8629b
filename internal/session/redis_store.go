package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisStore guarda sesiones en Redis con TTL igual a la vida máxima
// de login. El TTL se fija una sola vez en Login.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisStore{
		client: client,
		ttl:    ttl,
		prefix: "session:",
	}
}

func (s *RedisStore) Login(ctx context.Context, email string) (string, error) {
	sid := uuid.NewString()
	if err := s.client.Set(ctx, s.prefix+sid, email, s.ttl).Err(); err != nil {
		return "", err
	}
	return sid, nil
}

func (s *RedisStore) Current(ctx context.Context, sid string) (string, error) {
	email, err := s.client.Get(ctx, s.prefix+sid).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNoSession
	}
	if err != nil {
		return "", err
	}
	return email, nil
}

func (s *RedisStore) Logout(ctx context.Context, sid string) error {
	deleted, err := s.client.Del(ctx, s.prefix+sid).Result()
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrNoSession
	}
	return nil
}

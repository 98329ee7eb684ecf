package session

import (
	"context"

	"github.com/redis/go-redis/v9"
)

func keySession(token string) string { return "session:" + token }

// RedisStore guarda sessões no Redis, sem TTL
type RedisStore struct{ r *redis.Client }

func NewRedisStore(r *redis.Client) *RedisStore { return &RedisStore{r: r} }

func (s *RedisStore) Create(ctx context.Context, userID string) (string, error) {
	token, err := newToken()
	if err != nil {
		return "", err
	}
	if err := s.r.Set(ctx, keySession(token), userID, 0).Err(); err != nil {
		return "", err
	}
	return token, nil
}

func (s *RedisStore) Resolve(ctx context.Context, token string) (string, error) {
	userID, err := s.r.Get(ctx, keySession(token)).Result()
	if err == redis.Nil {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return userID, nil
}

func (s *RedisStore) Delete(ctx context.Context, token string) error {
	return s.r.Del(ctx, keySession(token)).Err()
}

package sessionstore

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"avenqor/internal/domain"
	"avenqor/pkg/errcodes"
)

const (
	sessionPrefix = "session:"
	resetPrefix   = "reset:"
)

// RedisStore maps opaque session tokens to user IDs. Reset tokens share the
// client but are one-shot: reading one destroys it.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) CreateSession(ctx context.Context, token, userID string, ttl time.Duration) error {
	if err := s.client.Set(ctx, sessionPrefix+token, userID, ttl).Err(); err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to create session")
	}

	return nil
}

func (s *RedisStore) GetSession(ctx context.Context, token string) (string, error) {
	userID, err := s.client.Get(ctx, sessionPrefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", domain.NewError(errcodes.SessionExpired, "session expired")
		}

		return "", domain.WrapError(err, errcodes.InternalServerError, "failed to get session")
	}

	return userID, nil
}

func (s *RedisStore) DeleteSession(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, sessionPrefix+token).Err(); err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to delete session")
	}

	return nil
}

func (s *RedisStore) SetResetToken(ctx context.Context, token, userID string, ttl time.Duration) error {
	if err := s.client.Set(ctx, resetPrefix+token, userID, ttl).Err(); err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to set reset token")
	}

	return nil
}

// ConsumeResetToken reads and deletes the token atomically via GETDEL.
func (s *RedisStore) ConsumeResetToken(ctx context.Context, token string) (string, error) {
	userID, err := s.client.GetDel(ctx, resetPrefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", domain.NewError(errcodes.ResetTokenInvalid, "reset token is invalid or expired")
		}

		return "", domain.WrapError(err, errcodes.InternalServerError, "failed to consume reset token")
	}

	return userID, nil
}

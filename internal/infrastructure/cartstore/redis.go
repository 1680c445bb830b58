package cartstore

import (
	"context"
	"errors"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"

	"avenqor/internal/domain"
	"avenqor/internal/domain/entity"
	"avenqor/pkg/errcodes"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals

const keyPrefix = "cart:"

// RedisStore keeps session carts as JSON blobs with a sliding TTL. An
// abandoned cart simply expires.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Get(ctx context.Context, cartID string) (entity.Cart, error) {
	raw, err := s.client.Get(ctx, keyPrefix+cartID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return entity.Cart{}, domain.NewError(errcodes.CartNotFound, "cart not found")
		}

		return entity.Cart{}, domain.WrapError(err, errcodes.InternalServerError, "failed to get cart")
	}

	var cart entity.Cart
	if err := json.Unmarshal(raw, &cart); err != nil {
		return entity.Cart{}, domain.WrapError(err, errcodes.InternalServerError, "failed to unmarshal cart")
	}

	return cart, nil
}

func (s *RedisStore) Save(ctx context.Context, cart entity.Cart) error {
	raw, err := json.Marshal(cart)
	if err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to marshal cart")
	}

	if err := s.client.Set(ctx, keyPrefix+cart.ID, raw, s.ttl).Err(); err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to save cart")
	}

	return nil
}

func (s *RedisStore) Delete(ctx context.Context, cartID string) error {
	if err := s.client.Del(ctx, keyPrefix+cartID).Err(); err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to delete cart")
	}

	return nil
}

package storage

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/storekit/checkout/internal/core/domain"
)

const (
	shopKey     = "shop:metadata"
	shopTTL     = 1 * time.Hour
	guardKeyTTL = 24 * time.Hour
)

type RedisAdapter struct {
	client *redis.Client
}

func NewRedisAdapter(client *redis.Client) *RedisAdapter {
	return &RedisAdapter{client: client}
}

func (r *RedisAdapter) GetShop(ctx context.Context) (*domain.Shop, error) {
	raw, err := r.client.Get(ctx, shopKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var shop domain.Shop
	if err := json.Unmarshal(raw, &shop); err != nil {
		return nil, err
	}
	return &shop, nil
}

func (r *RedisAdapter) SetShop(ctx context.Context, shop *domain.Shop) error {
	raw, err := json.Marshal(shop)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, shopKey, raw, shopTTL).Err()
}

func (r *RedisAdapter) SetOnce(ctx context.Context, key string) (bool, error) {
	ok, err := r.client.SetNX(ctx, key, 1, guardKeyTTL).Result()
	if err != nil {
		return false, err
	}

	return ok, nil
}

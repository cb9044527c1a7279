package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const reservationTTL = 24 * time.Hour

// KeyReserver fences storage keys with Redis SETNX so a key handed to one
// upload is never handed to another, even while concurrent requests race
// ahead of the registry's unique index. Key format: filekey:<storage key>
type KeyReserver struct {
	client *redis.Client
}

// NewKeyReserver creates a KeyReserver wrapping the given Redis client.
func NewKeyReserver(client *redis.Client) *KeyReserver {
	return &KeyReserver{client: client}
}

// Reserve claims key for the caller. It returns false when the key is
// already taken (reservations expire after reservationTTL, well past the
// millisecond window in which derived keys can collide).
func (k *KeyReserver) Reserve(ctx context.Context, key string) (bool, error) {
	ok, err := k.client.SetNX(ctx, k.redisKey(key), "1", reservationTTL).Result()
	if err != nil {
		return false, fmt.Errorf("reserve key: %w", err)
	}
	return ok, nil
}

func (k *KeyReserver) redisKey(key string) string {
	return fmt.Sprintf("filekey:%s", key)
}

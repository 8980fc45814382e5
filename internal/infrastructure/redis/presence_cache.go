package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Presence entries expire on their own so a crashed realtime node cannot
// leave users pinned online forever.
const presenceTTL = 5 * time.Minute

type RedisPresenceCache struct {
	client *redis.Client
}

func NewRedisPresenceCache(client *redis.Client) *RedisPresenceCache {
	return &RedisPresenceCache{client: client}
}

func presenceKey(userID string) string {
	return fmt.Sprintf("presence:%s", userID)
}

func (r *RedisPresenceCache) SetOnline(ctx context.Context, userID string) error {
	return r.client.Set(ctx, presenceKey(userID), "1", presenceTTL).Err()
}

func (r *RedisPresenceCache) SetOffline(ctx context.Context, userID string) error {
	return r.client.Del(ctx, presenceKey(userID)).Err()
}

func (r *RedisPresenceCache) IsOnline(ctx context.Context, userID string) (bool, error) {
	n, err := r.client.Exists(ctx, presenceKey(userID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

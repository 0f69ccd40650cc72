package utils

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// Class catalog cache keys, one per status filter plus the unfiltered list.
const (
	ClassCacheKeyAll      = "classes:all"
	ClassCacheKeyApproved = "classes:status:approved"
	ClassCacheKeyPending  = "classes:status:pending"
	ClassCacheKeyDenied   = "classes:status:denied"
)

// GetCache retrieves a value from Redis and unmarshals it into dest. The
// first return reports whether the key existed.
func GetCache(ctx context.Context, rdb *redis.Client, key string, dest any) (bool, error) {
	val, err := rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	} else if err != nil {
		return false, err
	}
	return true, json.Unmarshal([]byte(val), dest)
}

// SetCache stores a JSON-encoded value in Redis with a TTL
func SetCache(ctx context.Context, rdb *redis.Client, key string, value any, ttl time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return rdb.Set(ctx, key, b, ttl).Err()
}

// DeleteCache deletes a key from Redis
func DeleteCache(ctx context.Context, rdb *redis.Client, key string) error {
	return rdb.Del(ctx, key).Err()
}

// InvalidateClassCache drops every cached class listing. Called after any
// class mutation, including the seat counter move on enrollment.
func InvalidateClassCache(ctx context.Context, rdb *redis.Client) {
	for _, key := range []string{ClassCacheKeyAll, ClassCacheKeyApproved, ClassCacheKeyPending, ClassCacheKeyDenied} {
		_ = DeleteCache(ctx, rdb, key)
	}
}

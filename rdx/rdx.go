package rdx

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

var Conn *redis.Client

// Init opens the shared Redis connection used for caching, revoked-token
// tracking, and the booking event channel.
func Init(ctx context.Context, addr string) error {
	Conn = redis.NewClient(&redis.Options{Addr: addr})
	return Conn.Ping(ctx).Err()
}

func SetWithExpiry(ctx context.Context, key, value string, ttl time.Duration) error {
	return Conn.Set(ctx, key, value, ttl).Err()
}

// RdxGet returns "" for a missing key; cache readers treat that as a miss.
func RdxGet(ctx context.Context, key string) (string, error) {
	val, err := Conn.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", nil
	}
	return val, err
}

func RdxDel(ctx context.Context, keys ...string) error {
	return Conn.Del(ctx, keys...).Err()
}

func Exists(ctx context.Context, key string) (bool, error) {
	n, err := Conn.Exists(ctx, key).Result()
	return n > 0, err
}

package persist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisOptions configures the Redis connection used by RedisSlot.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
}

// DialRedis creates a Redis client and verifies the connection with PING.
func DialRedis(ctx context.Context, opts RedisOptions) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     4,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return rdb, nil
}

// RedisSlot stores each key as a Redis string named Prefix+key, without
// expiry.
type RedisSlot struct {
	Client *redis.Client
	Prefix string
}

// NewRedisSlot returns a Slot backed by client.
func NewRedisSlot(client *redis.Client, prefix string) *RedisSlot {
	return &RedisSlot{Client: client, Prefix: prefix}
}

// Get implements Slot.
func (r *RedisSlot) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := r.Client.Get(ctx, r.Prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSlotEmpty
		}
		return nil, err
	}
	return b, nil
}

// Put implements Slot.
func (r *RedisSlot) Put(ctx context.Context, key string, value []byte) error {
	return r.Client.Set(ctx, r.Prefix+key, value, 0).Err()
}

// Backend implements Slot.
func (r *RedisSlot) Backend() string { return "redis" }

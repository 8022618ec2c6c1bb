package limiter

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MKhiriev/go-feedback/internal/config"
)

const (
	// attemptsPrefix is the redis key prefix for failed attempt counters.
	attemptsPrefix = "login:attempts:"
	// lockPrefix is the redis key prefix for lockout markers.
	lockPrefix = "login:lock:"
)

// RedisLimiter shares attempt counters between server instances.
type RedisLimiter struct {
	client *redis.Client
	cfg    config.Limiter
}

// NewRedisLimiter connects to cfg.RedisURL and verifies the connection.
func NewRedisLimiter(ctx context.Context, cfg config.Limiter) (*RedisLimiter, error) {
	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	// Connection pool settings
	opt.PoolSize = 10
	opt.MinIdleConns = 2
	opt.PoolTimeout = 4 * time.Second
	opt.ConnMaxIdleTime = 5 * time.Minute

	client := redis.NewClient(opt)

	// Verify connection
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	return &RedisLimiter{client: client, cfg: cfg}, nil
}

func (l *RedisLimiter) Check(ctx context.Context, key string) (time.Duration, error) {
	ttl, err := l.client.PTTL(ctx, lockPrefix+hashKey(key)).Result()
	if err != nil {
		return 0, fmt.Errorf("error reading lockout: %w", err)
	}
	// -2 missing key, -1 no expiry
	if ttl <= 0 {
		return 0, nil
	}
	return ttl, nil
}

func (l *RedisLimiter) RecordFailure(ctx context.Context, key string) (int, error) {
	hashed := hashKey(key)
	attemptsKey := attemptsPrefix + hashed

	var incr *redis.IntCmd
	_, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, attemptsKey)
		pipe.ExpireNX(ctx, attemptsKey, l.cfg.Window)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("error counting attempt: %w", err)
	}

	count := int(incr.Val())
	if count >= l.cfg.MaxAttempts {
		_, err = l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, lockPrefix+hashed, 1, l.cfg.LockDuration)
			pipe.Del(ctx, attemptsKey)
			return nil
		})
		if err != nil {
			return 0, fmt.Errorf("error locking out: %w", err)
		}
	}

	return remaining(l.cfg.MaxAttempts, count), nil
}

func (l *RedisLimiter) Reset(ctx context.Context, key string) error {
	hashed := hashKey(key)
	if err := l.client.Del(ctx, attemptsPrefix+hashed, lockPrefix+hashed).Err(); err != nil {
		return fmt.Errorf("error resetting attempts: %w", err)
	}
	return nil
}

// Close closes the Redis client.
func (l *RedisLimiter) Close() error {
	return l.client.Close()
}

// hashKey creates a truncated SHA256 hash of a client key so raw IP
// addresses are never stored.
func hashKey(key string) string {
	hash := sha256.Sum256([]byte(key))
	return hex.EncodeToString(hash[:8])
}

// Package limiter throttles failed sign-in attempts per client.
//
// A client that fails MaxAttempts times within Window is locked out for
// LockDuration. Attempts are counted in redis when a URL is configured and
// in process memory otherwise.
package limiter

//go:generate mockgen -source=limiter.go -destination=../mock/limiter_mock.go -package=mock

import (
	"context"
	"time"

	"github.com/MKhiriev/go-feedback/internal/config"
	"github.com/MKhiriev/go-feedback/internal/logger"
)

// Limiter counts failed sign-in attempts by key, usually the client IP.
type Limiter interface {
	// Check returns how long key stays locked out, zero when it is not.
	Check(ctx context.Context, key string) (time.Duration, error)
	// RecordFailure counts a failed attempt and returns the attempts left
	// before key is locked out.
	RecordFailure(ctx context.Context, key string) (int, error)
	// Reset forgets the attempts of key after a successful sign-in.
	Reset(ctx context.Context, key string) error
}

// New returns a redis backed Limiter when cfg.RedisURL is set and a
// *MemoryLimiter otherwise.
func New(ctx context.Context, cfg config.Limiter, log *logger.Logger) (Limiter, error) {
	if cfg.RedisURL != "" {
		log.Info().Str("func", "limiter.New").Msg("using redis login limiter")
		return NewRedisLimiter(ctx, cfg)
	}

	log.Info().Str("func", "limiter.New").Msg("using in-memory login limiter")
	return NewMemoryLimiter(cfg), nil
}

func remaining(max, count int) int {
	if left := max - count; left > 0 {
		return left
	}
	return 0
}

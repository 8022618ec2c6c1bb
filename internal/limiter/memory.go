package limiter

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-feedback/internal/config"
)

type attemptState struct {
	count        int
	firstAttempt time.Time
	lockedUntil  time.Time
}

// MemoryLimiter keeps attempts in a mutex guarded map. Expired entries are
// removed by [MemoryLimiter.Prune].
type MemoryLimiter struct {
	cfg config.Limiter

	mu       sync.Mutex
	attempts map[string]*attemptState

	now func() time.Time
}

func NewMemoryLimiter(cfg config.Limiter) *MemoryLimiter {
	return &MemoryLimiter{
		cfg:      cfg,
		attempts: make(map[string]*attemptState),
		now:      time.Now,
	}
}

func (m *MemoryLimiter) Check(_ context.Context, key string) (time.Duration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	state, ok := m.attempts[key]
	if !ok {
		return 0, nil
	}

	now := m.now()
	if !now.Before(state.lockedUntil) {
		return 0, nil
	}
	return state.lockedUntil.Sub(now), nil
}

func (m *MemoryLimiter) RecordFailure(_ context.Context, key string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	state, ok := m.attempts[key]
	// an expired lockout starts a fresh window, like the redis limiter
	// dropping its attempts key on lock
	lockExpired := ok && !state.lockedUntil.IsZero() && !now.Before(state.lockedUntil)
	if !ok || lockExpired || now.Sub(state.firstAttempt) > m.cfg.Window && !now.Before(state.lockedUntil) {
		state = &attemptState{firstAttempt: now}
		m.attempts[key] = state
	}

	state.count++
	if state.count >= m.cfg.MaxAttempts {
		state.lockedUntil = now.Add(m.cfg.LockDuration)
		state.count = m.cfg.MaxAttempts
	}

	return remaining(m.cfg.MaxAttempts, state.count), nil
}

func (m *MemoryLimiter) Reset(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.attempts, key)
	return nil
}

// Prune drops entries whose window and lockout have both passed and
// returns how many were removed.
func (m *MemoryLimiter) Prune(_ context.Context) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	removed := 0
	for key, state := range m.attempts {
		if now.Sub(state.firstAttempt) > m.cfg.Window && !now.Before(state.lockedUntil) {
			delete(m.attempts, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of tracked keys.
func (m *MemoryLimiter) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.attempts)
}

package services

import (
	"sync"
	"time"
)

// AttemptLimiter counts failures per key inside a sliding window and holds
// a lockout once the limit is reached.
type AttemptLimiter struct {
	mu          sync.Mutex
	attempts    map[string][]time.Time
	lockedUntil map[string]time.Time
}

func NewAttemptLimiter() *AttemptLimiter {
	return &AttemptLimiter{
		attempts:    make(map[string][]time.Time),
		lockedUntil: make(map[string]time.Time),
	}
}

// RecentFailures counts the failures for key inside window.
func (limiter *AttemptLimiter) RecentFailures(key string, now time.Time, window time.Duration) int {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	return len(limiter.pruneLocked(key, now, window))
}

// LockedFor returns how long key stays locked out, zero when it is not.
func (limiter *AttemptLimiter) LockedFor(key string, now time.Time) time.Duration {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	until, ok := limiter.lockedUntil[key]
	if !ok {
		return 0
	}
	if !now.Before(until) {
		delete(limiter.lockedUntil, key)
		return 0
	}
	return until.Sub(now)
}

// AddFailure records a failure and reports whether it tripped the lockout.
func (limiter *AttemptLimiter) AddFailure(key string, now time.Time, limit int, window time.Duration, lockout time.Duration) bool {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	pruned := limiter.pruneLocked(key, now, window)
	pruned = append(pruned, now)
	limiter.attempts[key] = pruned

	if limit <= 0 || len(pruned) < limit {
		return false
	}
	limiter.lockedUntil[key] = now.Add(lockout)
	delete(limiter.attempts, key)
	return true
}

func (limiter *AttemptLimiter) Reset(key string) {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	delete(limiter.attempts, key)
	delete(limiter.lockedUntil, key)
}

func (limiter *AttemptLimiter) pruneLocked(key string, now time.Time, window time.Duration) []time.Time {
	values := limiter.attempts[key]
	if len(values) == 0 {
		return []time.Time{}
	}

	threshold := now.Add(-window)
	pruned := make([]time.Time, 0, len(values))
	for _, value := range values {
		if value.After(threshold) {
			pruned = append(pruned, value)
		}
	}

	if len(pruned) == 0 {
		delete(limiter.attempts, key)
		return []time.Time{}
	}

	limiter.attempts[key] = pruned
	return pruned
}

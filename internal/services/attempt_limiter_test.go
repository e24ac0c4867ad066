package services

import (
	"testing"
	"time"
)

func TestAttemptLimiterLocksOutAfterLimit(t *testing.T) {
	t.Parallel()

	limiter := NewAttemptLimiter()
	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	window := 5 * time.Minute

	if limiter.AddFailure("client", now, 3, window, window) {
		t.Fatal("expected first failure not to lock out")
	}
	if limiter.AddFailure("client", now.Add(time.Second), 3, window, window) {
		t.Fatal("expected second failure not to lock out")
	}
	if got := limiter.RecentFailures("client", now.Add(2*time.Second), window); got != 2 {
		t.Fatalf("expected two recent failures, got %d", got)
	}
	if !limiter.AddFailure("client", now.Add(2*time.Second), 3, window, window) {
		t.Fatal("expected third failure to lock out")
	}

	remaining := limiter.LockedFor("client", now.Add(3*time.Second))
	if remaining != window-time.Second {
		t.Fatalf("expected remaining lockout %s, got %s", window-time.Second, remaining)
	}
	if got := limiter.LockedFor("other", now); got != 0 {
		t.Fatalf("expected other keys unaffected, got %s", got)
	}
	if got := limiter.LockedFor("client", now.Add(2*time.Second+window)); got != 0 {
		t.Fatalf("expected lockout to expire, got %s", got)
	}
}

func TestAttemptLimiterPrunesOldFailures(t *testing.T) {
	t.Parallel()

	limiter := NewAttemptLimiter()
	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	window := time.Minute

	limiter.AddFailure("client", now, 3, window, window)
	limiter.AddFailure("client", now.Add(10*time.Second), 3, window, window)
	if limiter.AddFailure("client", now.Add(2*time.Minute), 3, window, window) {
		t.Fatal("expected failures outside the window to be pruned")
	}
	if got := limiter.RecentFailures("client", now.Add(2*time.Minute), window); got != 1 {
		t.Fatalf("expected only one recent failure, got %d", got)
	}
}

func TestAttemptLimiterReset(t *testing.T) {
	t.Parallel()

	limiter := NewAttemptLimiter()
	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	limiter.AddFailure("client", now, 1, time.Minute, time.Minute)
	if limiter.LockedFor("client", now) == 0 {
		t.Fatal("expected lockout before reset")
	}

	limiter.Reset("client")
	if got := limiter.LockedFor("client", now); got != 0 {
		t.Fatalf("expected no lockout after reset, got %s", got)
	}
}

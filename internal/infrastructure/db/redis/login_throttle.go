package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	DefaultMaxFailures    = 5
	DefaultFailureWindow  = 15 * time.Minute
	loginFailureKeyPrefix = "login_failures:"
)

// LoginThrottle counts failed logins per identity in Redis.
// Key format: login_failures:<lower-cased identity>, expiring after the window
// that starts with the first failure.
type LoginThrottle struct {
	client      *redis.Client
	maxFailures int64
	window      time.Duration
}

// NewLoginThrottle creates a LoginThrottle. Non-positive arguments fall back
// to DefaultMaxFailures and DefaultFailureWindow.
func NewLoginThrottle(client *redis.Client, maxFailures int, window time.Duration) *LoginThrottle {
	if maxFailures <= 0 {
		maxFailures = DefaultMaxFailures
	}
	if window <= 0 {
		window = DefaultFailureWindow
	}
	return &LoginThrottle{client: client, maxFailures: int64(maxFailures), window: window}
}

// Allowed reports whether identity is still below the failure limit.
func (t *LoginThrottle) Allowed(ctx context.Context, identity string) (bool, error) {
	n, err := t.client.Get(ctx, t.key(identity)).Int64()
	if errors.Is(err, redis.Nil) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("login throttle check: %w", err)
	}
	return n < t.maxFailures, nil
}

// RecordFailure increments the counter and starts the window on the first failure.
func (t *LoginThrottle) RecordFailure(ctx context.Context, identity string) error {
	key := t.key(identity)
	_, err := t.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, key)
		pipe.ExpireNX(ctx, key, t.window)
		return nil
	})
	if err != nil {
		return fmt.Errorf("login throttle record: %w", err)
	}
	return nil
}

// Reset clears the counter after a successful login.
func (t *LoginThrottle) Reset(ctx context.Context, identity string) error {
	return t.client.Del(ctx, t.key(identity)).Err()
}

func (t *LoginThrottle) key(identity string) string {
	return loginFailureKeyPrefix + strings.ToLower(strings.TrimSpace(identity))
}

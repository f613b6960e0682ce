package service

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const loginAttemptPrefix = "login_attempts:"

// LoginThrottle counts failed login attempts per email in Redis with a decay
// window. It is advisory: Redis faults never block a login, and a throttled
// attempt surfaces as the same failure as a bad password.
type LoginThrottle struct {
	client *redis.Client
	limit  int
	window time.Duration
	logger *zap.Logger
}

// NewLoginThrottle builds a throttle. Returns nil when no client is
// configured so callers can skip throttling entirely.
func NewLoginThrottle(client *redis.Client, limit int, window time.Duration, logger *zap.Logger) *LoginThrottle {
	if client == nil || limit <= 0 {
		return nil
	}
	return &LoginThrottle{client: client, limit: limit, window: window, logger: logger}
}

// TooManyAttempts reports whether the email exhausted its attempt budget.
func (t *LoginThrottle) TooManyAttempts(ctx context.Context, email string) bool {
	count, err := t.client.Get(ctx, loginAttemptPrefix+email).Int()
	if err != nil {
		return false
	}
	return count >= t.limit
}

// RecordFailure bumps the counter and refreshes the decay window.
func (t *LoginThrottle) RecordFailure(ctx context.Context, email string) {
	key := loginAttemptPrefix + email
	if err := t.client.Incr(ctx, key).Err(); err != nil {
		t.logger.Debug("login throttle unavailable", zap.Error(err))
		return
	}
	_ = t.client.Expire(ctx, key, t.window).Err()
}

// Reset clears the counter after a successful login.
func (t *LoginThrottle) Reset(ctx context.Context, email string) {
	_ = t.client.Del(ctx, loginAttemptPrefix+email).Err()
}

package redis

import (
	"context"
	"time"

	apperrors "github.com/sekai-soft/yurikamome/pkg/errors"
)

const loginAttemptPrefix = "login_attempts:"

// LoginLimiter throttles Twitter login attempts per client IP using a
// fixed-window counter in Redis.
type LoginLimiter struct {
	client *Client
	limit  int64
	window time.Duration
}

func NewLoginLimiter(client *Client, limit int, window time.Duration) *LoginLimiter {
	return &LoginLimiter{client: client, limit: int64(limit), window: window}
}

// Allow records an attempt for the given key and reports whether it is
// within the window's budget. The first attempt in a window starts the
// expiry clock.
func (l *LoginLimiter) Allow(ctx context.Context, key string) (bool, error) {
	redisKey := loginAttemptPrefix + key

	count, err := l.client.Incr(ctx, redisKey)
	if err != nil {
		return false, apperrors.Wrap(err, "failed to count login attempt")
	}

	if count == 1 {
		if err := l.client.Expire(ctx, redisKey, l.window); err != nil {
			return false, apperrors.Wrap(err, "failed to set attempt window")
		}
	}

	return count <= l.limit, nil
}

// Reset clears the counter, used after a successful login.
func (l *LoginLimiter) Reset(ctx context.Context, key string) error {
	return l.client.Delete(ctx, loginAttemptPrefix+key)
}

// RetryAfter reports how long until the window resets.
func (l *LoginLimiter) RetryAfter(ctx context.Context, key string) (time.Duration, error) {
	ttl, err := l.client.TTL(ctx, loginAttemptPrefix+key)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to read attempt window")
	}
	if ttl < 0 {
		return 0, nil
	}
	return ttl, nil
}

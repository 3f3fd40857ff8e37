package service

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// INCR + EXPIRE atómico: la ventana arranca con el primer envío.
const redisSubmissionAllowScript = `
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("EXPIRE", KEYS[1], ARGV[1])
end
return current
`

const redisLimiterTimeout = 500 * time.Millisecond

type redisEvaler interface {
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

type redisSubmissionLimiter struct {
	client redisEvaler
	window time.Duration
	max    int
	prefix string
	logger *zap.Logger
}

// NewRedisSubmissionRateLimiter comparte el conteo entre réplicas; si Redis falla deja pasar.
func NewRedisSubmissionRateLimiter(client *redis.Client, window time.Duration, max int, logger *zap.Logger) SubmissionRateLimiter {
	if client == nil {
		return nil
	}
	return newRedisSubmissionLimiter(client, window, max, logger)
}

func newRedisSubmissionLimiter(client redisEvaler, window time.Duration, max int, logger *zap.Logger) *redisSubmissionLimiter {
	if window <= 0 {
		window = time.Minute
	}
	if max <= 0 {
		max = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &redisSubmissionLimiter{
		client: client,
		window: window,
		max:    max,
		prefix: "careerpath:submit:rl:",
		logger: logger,
	}
}

func (l *redisSubmissionLimiter) Allow(ctx context.Context, userID string) bool {
	if l == nil || l.client == nil {
		return true
	}
	key := strings.ToLower(strings.TrimSpace(userID))
	if key == "" {
		return false
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, redisLimiterTimeout)
	defer cancel()

	seconds := int(l.window.Seconds())
	if seconds <= 0 {
		seconds = 60
	}
	count, err := l.client.Eval(ctx, redisSubmissionAllowScript, []string{l.prefix + key}, seconds).Int()
	if err != nil {
		l.logger.Warn("submission limiter unavailable, allowing", zap.Error(err))
		return true
	}
	return count <= l.max
}

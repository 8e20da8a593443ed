package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type RateLimiter struct {
	client *redis.Client
}

type RateLimitConfig struct {
	Requests int           // Number of requests allowed
	Window   time.Duration // Time window
}

type RateLimitInfo struct {
	Limit      int
	Remaining  int
	Reset      time.Time
	RetryAfter time.Duration
	Allowed    bool
}

// Common rate limit configurations
var (
	// Login endpoint - stricter limits
	AuthRateLimit = RateLimitConfig{
		Requests: 5,
		Window:   time.Minute,
	}

	// Mutating ledger operations - moderate limits
	OperationRateLimit = RateLimitConfig{
		Requests: 10,
		Window:   time.Minute,
	}

	// General API - generous limits
	GeneralRateLimit = RateLimitConfig{
		Requests: 100,
		Window:   time.Minute,
	}
)

func NewRateLimiter(redisClient *redis.Client) *RateLimiter {
	return &RateLimiter{
		client: redisClient,
	}
}

// CheckLimit checks if the request is within rate limits
func (rl *RateLimiter) CheckLimit(ctx context.Context, key string, config RateLimitConfig) (bool, error) {
	now := time.Now()
	windowStart := now.Add(-config.Window)

	// Use Redis sorted set to track requests within the time window
	// Score is timestamp, member is unique request ID
	pipe := rl.client.Pipeline()

	// Remove old entries outside the window
	pipe.ZRemRangeByScore(ctx, key, "0", fmt.Sprintf("%d", windowStart.UnixMilli()))

	// Count requests in the current window
	countCmd := pipe.ZCard(ctx, key)

	// Add current request
	pipe.ZAdd(ctx, key, redis.Z{
		Score:  float64(now.UnixMilli()),
		Member: fmt.Sprintf("%d", now.UnixNano()),
	})

	// Set expiration on the key
	pipe.Expire(ctx, key, config.Window+time.Minute)

	_, err := pipe.Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("rate limit check failed: %w", err)
	}

	count := countCmd.Val()

	// Allow if count is less than limit
	return count < int64(config.Requests), nil
}

// CheckLimitWithInfo checks rate limit and returns detailed info
func (rl *RateLimiter) CheckLimitWithInfo(ctx context.Context, key string, config RateLimitConfig) (*RateLimitInfo, error) {
	now := time.Now()
	windowStart := now.Add(-config.Window)

	pipe := rl.client.Pipeline()

	// Remove old entries
	pipe.ZRemRangeByScore(ctx, key, "0", fmt.Sprintf("%d", windowStart.UnixMilli()))

	// Count current requests
	countCmd := pipe.ZCard(ctx, key)

	// Add current request
	pipe.ZAdd(ctx, key, redis.Z{
		Score:  float64(now.UnixMilli()),
		Member: fmt.Sprintf("%d", now.UnixNano()),
	})

	pipe.Expire(ctx, key, config.Window+time.Minute)

	_, err := pipe.Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("rate limit check failed: %w", err)
	}

	count := countCmd.Val()
	allowed := count < int64(config.Requests)

	info := &RateLimitInfo{
		Limit:     config.Requests,
		Remaining: config.Requests - int(count),
		Reset:     now.Add(config.Window),
		Allowed:   allowed,
	}

	if info.Remaining < 0 {
		info.Remaining = 0
	}
	if !allowed {
		info.RetryAfter = config.Window
	}

	return info, nil
}

// Block marks a client as blocked for the given duration
func (rl *RateLimiter) Block(ctx context.Context, clientID string, duration time.Duration) error {
	key := fmt.Sprintf("blocked:%s", clientID)
	return rl.client.Set(ctx, key, "1", duration).Err()
}

// IsBlocked reports whether a client is currently blocked
func (rl *RateLimiter) IsBlocked(ctx context.Context, clientID string) (bool, error) {
	key := fmt.Sprintf("blocked:%s", clientID)
	_, err := rl.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

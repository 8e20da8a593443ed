package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/barbizo19/Bankist/internal/pkg/logger"
	"github.com/barbizo19/Bankist/internal/pkg/ratelimit"
)

// RateLimitMiddleware applies rate limiting based on IP address and endpoint
func RateLimitMiddleware(limiter *ratelimit.RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()

		clientIP := c.ClientIP()
		config := getRateLimitConfig(c.FullPath())
		key := fmt.Sprintf("ratelimit:%s:%s", clientIP, c.FullPath())

		blocked, err := limiter.IsBlocked(ctx, clientIP)
		if err != nil {
			logger.Error("Failed to check block status", zap.Error(err))
		}

		if blocked {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "Too many requests. Your IP has been temporarily blocked.",
				"retry_after": "5 minutes",
			})
			c.Abort()
			return
		}

		info, err := limiter.CheckLimitWithInfo(ctx, key, config)
		if err != nil {
			logger.Error("Rate limit check failed", zap.Error(err))
			// Continue on error (fail open)
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		c.Header("X-RateLimit-Reset", fmt.Sprintf("%d", info.Reset.Unix()))

		if !info.Allowed {
			c.Header("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))

			logger.Warn("Rate limit exceeded",
				zap.String("ip", clientIP),
				zap.String("path", c.FullPath()),
				zap.Int("limit", info.Limit),
			)

			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "Rate limit exceeded",
				"limit":       info.Limit,
				"retry_after": fmt.Sprintf("%d seconds", int(info.RetryAfter.Seconds())),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// getRateLimitConfig returns appropriate rate limit based on endpoint
func getRateLimitConfig(path string) ratelimit.RateLimitConfig {
	switch path {
	case "/api/v1/auth/login":
		return ratelimit.AuthRateLimit
	case "/api/v1/transactions/transfer", "/api/v1/transactions/loan":
		return ratelimit.OperationRateLimit
	default:
		return ratelimit.GeneralRateLimit
	}
}

// SuspiciousActivityMiddleware blocks clients that keep failing login
func SuspiciousActivityMiddleware(limiter *ratelimit.RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()
		clientIP := c.ClientIP()

		c.Next()

		status := c.Writer.Status()

		if status == http.StatusUnauthorized && c.FullPath() == "/api/v1/auth/login" {
			key := fmt.Sprintf("suspicious:login:%s", clientIP)

			allowed, err := limiter.CheckLimit(ctx, key, ratelimit.RateLimitConfig{
				Requests: 5,
				Window:   15 * time.Minute,
			})

			if err != nil {
				logger.Error("Suspicious activity check failed", zap.Error(err))
				return
			}

			if !allowed {
				logger.Warn("Blocking IP due to multiple failed login attempts",
					zap.String("ip", clientIP),
				)

				if err := limiter.Block(ctx, clientIP, time.Hour); err != nil {
					logger.Error("Failed to block IP", zap.Error(err))
				}
			}
		}
	}
}

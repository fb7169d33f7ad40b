package middleware

import (
	"math"
	"strconv"

	"github.com/labstack/echo/v4"

	"gamerverse/internal/infrastructure/ratelimit"
	"gamerverse/pkg/errors"
	"gamerverse/pkg/logger"
	"gamerverse/pkg/response"
)

// RateLimit keys callers by user id when authenticated and by client IP
// otherwise. scope separates buckets of different endpoints.
func RateLimit(limiter *ratelimit.KeyedLimiter, scope string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := CurrentUID(c)
			if key == "" {
				key = "ip:" + c.RealIP()
			}

			ok, wait := limiter.Allow(scope + ":" + key)
			if !ok {
				logger.Warn("RATE LIMIT: %s blocked for %s (retry in %v)", key, scope, wait)
				c.Response().Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
				return response.Error(c, errors.TooManyRequests("Too many requests, please slow down"))
			}

			return next(c)
		}
	}
}

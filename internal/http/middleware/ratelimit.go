package middleware

import (
	"net/http"
	"strconv"
	"time"

	echo "github.com/labstack/echo/v4"
	"github.com/sellerhub/market-mock-api/internal/metrics"
	"github.com/sellerhub/market-mock-api/internal/ratelimit"
)

// RateLimitConfig config for the per-seller per-minute limiter.
type RateLimitConfig struct {
	Limiter        ratelimit.Limiter
	DefaultPerMin  int  // fallback when seller has no limit configured
	RetryAfterHint bool // set Retry-After header when limited
}

// RateLimitMiddleware enforces each seller's rate_limit_per_min using a
// fixed one-minute window. It expects the seller in echo.Context (set by
// APIKeyMiddleware). Limiter errors fail open.
func RateLimitMiddleware(cfg RateLimitConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			s, ok := SellerFromCtx(c)
			if !ok || cfg.Limiter == nil {
				return next(c)
			}

			limit := s.RateLimitPerMin
			if limit <= 0 {
				limit = cfg.DefaultPerMin
			}

			allowed, err := cfg.Limiter.Allow(c.Request().Context(), s.SellerID, limit)
			if err != nil {
				return next(c)
			}
			if !allowed {
				metrics.RequestsTotal.WithLabelValues(s.Platform.String(), "rate_limited").Inc()
				if cfg.RetryAfterHint {
					// seconds until the next minute window
					now := time.Now()
					remain := time.Minute - time.Duration(now.UnixNano()%int64(time.Minute))
					c.Response().Header().Set("Retry-After", strconv.Itoa(int(remain.Round(time.Second)/time.Second)))
				}
				return c.JSON(http.StatusTooManyRequests, map[string]string{"error": "rate limited"})
			}
			return next(c)
		}
	}
}

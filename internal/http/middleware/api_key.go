package middleware

import (
	"net/http"
	"strings"

	echo "github.com/labstack/echo/v4"
	"github.com/sellerhub/market-mock-api/internal/metrics"
	"github.com/sellerhub/market-mock-api/internal/model"
	"github.com/sellerhub/market-mock-api/internal/repository"
)

const ctxSellerKey = "seller"

// SellerFromCtx extracts the authenticated seller set by APIKeyMiddleware.
func SellerFromCtx(c echo.Context) (*model.Seller, bool) {
	s, ok := c.Get(ctxSellerKey).(*model.Seller)
	return s, ok
}

// APIKeyMiddleware authenticates requests using the X-API-Key header. The
// key must belong to an active seller registered for the given platform; a
// valid key used against another platform's endpoint is rejected the same
// way as an unknown key.
func APIKeyMiddleware(sellers repository.SellersRepository, platform model.Platform) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := strings.TrimSpace(c.Request().Header.Get("X-API-Key"))
			if key == "" {
				metrics.RequestsTotal.WithLabelValues(platform.String(), "unauthorized").Inc()
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing api key"})
			}
			s, err := sellers.GetByAPIKey(c.Request().Context(), key)
			if err != nil {
				metrics.RequestsTotal.WithLabelValues(platform.String(), "error").Inc()
				return c.JSON(http.StatusInternalServerError, map[string]string{"error": "auth error"})
			}
			if s == nil || !s.IsActive || s.Platform != platform {
				metrics.RequestsTotal.WithLabelValues(platform.String(), "unauthorized").Inc()
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid api key"})
			}
			c.Set(ctxSellerKey, s)
			return next(c)
		}
	}
}

// AdminKeyMiddleware guards operator endpoints (mock data generation).
// Any active key works regardless of platform.
func AdminKeyMiddleware(sellers repository.SellersRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := strings.TrimSpace(c.Request().Header.Get("X-API-Key"))
			if key == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing api key"})
			}
			s, err := sellers.GetByAPIKey(c.Request().Context(), key)
			if err != nil {
				return c.JSON(http.StatusInternalServerError, map[string]string{"error": "auth error"})
			}
			if s == nil || !s.IsActive {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid api key"})
			}
			return next(c)
		}
	}
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	echo "github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sellerhub/market-mock-api/internal/metrics"
	"github.com/sellerhub/market-mock-api/internal/model"
	"github.com/sellerhub/market-mock-api/internal/ratelimit"
)

func invokeWithSeller(t *testing.T, mw echo.MiddlewareFunc, s *model.Seller) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/zigzag/orders", nil)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	if s != nil {
		c.Set(ctxSellerKey, s)
	}

	h := mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	require.NoError(t, h(c))
	return rec
}

func TestRateLimitMiddleware_EnforcesSellerLimit(t *testing.T) {
	mw := RateLimitMiddleware(RateLimitConfig{
		Limiter:        ratelimit.NewMemoryLimiter(),
		DefaultPerMin:  60,
		RetryAfterHint: true,
	})
	s := activeSeller(5, model.PlatformZigzag)
	s.RateLimitPerMin = 2

	for i := 0; i < 2; i++ {
		rec := invokeWithSeller(t, mw, s)
		assert.Equal(t, http.StatusOK, rec.Code, "request %d", i+1)
	}

	rec := invokeWithSeller(t, mw, s)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
}

func TestRateLimitMiddleware_FallsBackToDefault(t *testing.T) {
	mw := RateLimitMiddleware(RateLimitConfig{
		Limiter:       ratelimit.NewMemoryLimiter(),
		DefaultPerMin: 1,
	})
	s := activeSeller(6, model.PlatformZigzag)
	s.RateLimitPerMin = 0 // not configured: default applies

	rec := invokeWithSeller(t, mw, s)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = invokeWithSeller(t, mw, s)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestRateLimitMiddleware_CountsRateLimited(t *testing.T) {
	counter := metrics.RequestsTotal.WithLabelValues(model.PlatformZigzag.String(), "rate_limited")
	before := testutil.ToFloat64(counter)

	mw := RateLimitMiddleware(RateLimitConfig{Limiter: ratelimit.NewMemoryLimiter(), DefaultPerMin: 60})
	s := activeSeller(8, model.PlatformZigzag)
	s.RateLimitPerMin = 1

	rec := invokeWithSeller(t, mw, s)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = invokeWithSeller(t, mw, s)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)

	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}

func TestRateLimitMiddleware_NoSellerPassesThrough(t *testing.T) {
	mw := RateLimitMiddleware(RateLimitConfig{Limiter: ratelimit.NewMemoryLimiter(), DefaultPerMin: 1})
	rec := invokeWithSeller(t, mw, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

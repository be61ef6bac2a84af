package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	echo "github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sellerhub/market-mock-api/internal/metrics"
	"github.com/sellerhub/market-mock-api/internal/model"
)

type fakeSellersRepo struct {
	sellers map[string]*model.Seller
	err     error
}

func (f *fakeSellersRepo) GetByAPIKey(_ context.Context, apiKey string) (*model.Seller, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.sellers[apiKey], nil
}

func activeSeller(id int64, platform model.Platform) *model.Seller {
	return &model.Seller{
		SellerID:        id,
		APIKey:          "key",
		Platform:        platform,
		RateLimitPerMin: 60,
		IsActive:        true,
	}
}

func invoke(t *testing.T, mw echo.MiddlewareFunc, apiKey string) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/smartstore/orders", nil)
	if apiKey != "" {
		req.Header.Set("X-API-Key", apiKey)
	}
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)

	reached := false
	h := mw(func(c echo.Context) error {
		reached = true
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	return rec, reached
}

func TestAPIKeyMiddleware_MissingKey(t *testing.T) {
	mw := APIKeyMiddleware(&fakeSellersRepo{}, model.PlatformSmartstore)
	rec, reached := invoke(t, mw, "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, reached)
}

func TestAPIKeyMiddleware_UnknownKey(t *testing.T) {
	mw := APIKeyMiddleware(&fakeSellersRepo{sellers: map[string]*model.Seller{}}, model.PlatformSmartstore)
	rec, reached := invoke(t, mw, "nope")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, reached)
}

func TestAPIKeyMiddleware_InactiveSeller(t *testing.T) {
	s := activeSeller(1, model.PlatformSmartstore)
	s.IsActive = false
	mw := APIKeyMiddleware(&fakeSellersRepo{sellers: map[string]*model.Seller{"key": s}}, model.PlatformSmartstore)
	rec, reached := invoke(t, mw, "key")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, reached)
}

func TestAPIKeyMiddleware_WrongPlatform(t *testing.T) {
	// a COUPANG key used against the SMARTSTORE endpoint
	s := activeSeller(1, model.PlatformCoupang)
	mw := APIKeyMiddleware(&fakeSellersRepo{sellers: map[string]*model.Seller{"key": s}}, model.PlatformSmartstore)
	rec, reached := invoke(t, mw, "key")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, reached)
}

func TestAPIKeyMiddleware_ValidKeySetsSeller(t *testing.T) {
	s := activeSeller(42, model.PlatformSmartstore)
	mw := APIKeyMiddleware(&fakeSellersRepo{sellers: map[string]*model.Seller{"key": s}}, model.PlatformSmartstore)

	req := httptest.NewRequest(http.MethodGet, "/smartstore/orders", nil)
	req.Header.Set("X-API-Key", "key")
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)

	h := mw(func(c echo.Context) error {
		got, ok := SellerFromCtx(c)
		require.True(t, ok)
		assert.Equal(t, int64(42), got.SellerID)
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAPIKeyMiddleware_CountsUnauthorized(t *testing.T) {
	counter := metrics.RequestsTotal.WithLabelValues(model.PlatformSmartstore.String(), "unauthorized")
	before := testutil.ToFloat64(counter)

	mw := APIKeyMiddleware(&fakeSellersRepo{sellers: map[string]*model.Seller{}}, model.PlatformSmartstore)
	_, _ = invoke(t, mw, "")     // missing key
	_, _ = invoke(t, mw, "nope") // unknown key

	assert.Equal(t, before+2, testutil.ToFloat64(counter))
}

func TestAdminKeyMiddleware_AnyPlatformAccepted(t *testing.T) {
	s := activeSeller(1, model.PlatformZigzag)
	mw := AdminKeyMiddleware(&fakeSellersRepo{sellers: map[string]*model.Seller{"key": s}})
	rec, reached := invoke(t, mw, "key")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, reached)
}

func TestAdminKeyMiddleware_InactiveRejected(t *testing.T) {
	s := activeSeller(1, model.PlatformZigzag)
	s.IsActive = false
	mw := AdminKeyMiddleware(&fakeSellersRepo{sellers: map[string]*model.Seller{"key": s}})
	rec, reached := invoke(t, mw, "key")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, reached)
}

package http

import (
	"net/http"

	echo "github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/sellerhub/market-mock-api/internal/http/middleware"
	"github.com/sellerhub/market-mock-api/internal/market"
	"github.com/sellerhub/market-mock-api/internal/metrics"
	"github.com/sellerhub/market-mock-api/internal/model"
	"github.com/sellerhub/market-mock-api/internal/repository"
)

// listOrdersHandler serves one platform's order listing: the seller was
// authenticated and rate-limited upstream, so only param validation, the
// repository query and platform rendering remain.
func listOrdersHandler(platform model.Platform, orders repository.OrdersRepository) echo.HandlerFunc {
	return func(c echo.Context) error {
		s, ok := middleware.SellerFromCtx(c)
		if !ok {
			metrics.RequestsTotal.WithLabelValues(platform.String(), "unauthorized").Inc()
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		}

		f, err := parseListQuery(c)
		if err != nil {
			metrics.RequestsTotal.WithLabelValues(platform.String(), "bad_request").Inc()
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}

		rows, err := orders.ListByPlatform(c.Request().Context(), platform, s.SellerID, f)
		if err != nil {
			log.Errorf("list orders failed: %v", err)
			metrics.RequestsTotal.WithLabelValues(platform.String(), "error").Inc()
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "query failed"})
		}

		metrics.RequestsTotal.WithLabelValues(platform.String(), "ok").Inc()
		return c.JSON(http.StatusOK, market.Render(platform, rows))
	}
}

package http

import (
	"net/http"
	"time"

	echo "github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/sellerhub/market-mock-api/internal/mockgen"
)

// Operator endpoints driving the mock generator. Guarded by
// AdminKeyMiddleware; they mutate mock data only, never real seller state.

func adminInitialHandler(gen *mockgen.Generator, startDate, endDate time.Time, perHour int) echo.HandlerFunc {
	return func(c echo.Context) error {
		inserted, err := gen.GenerateInitial(c.Request().Context(), startDate, endDate, perHour)
		if err != nil {
			log.Errorf("initial generation failed: %v", err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "generation failed"})
		}
		return c.JSON(http.StatusOK, map[string]int{"inserted": inserted})
	}
}

func adminHourlyInsertHandler(gen *mockgen.Generator, perPlatform int) echo.HandlerFunc {
	return func(c echo.Context) error {
		inserted, err := gen.GenerateHourly(c.Request().Context(), time.Time{}, perPlatform)
		if err != nil {
			log.Errorf("hourly generation failed: %v", err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "generation failed"})
		}
		return c.JSON(http.StatusOK, map[string]int{"inserted": inserted})
	}
}

func adminHourlyUpdateHandler(gen *mockgen.Generator) echo.HandlerFunc {
	return func(c echo.Context) error {
		updated, err := gen.ProgressStatuses(c.Request().Context(), 200)
		if err != nil {
			log.Errorf("status progression failed: %v", err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "progression failed"})
		}
		return c.JSON(http.StatusOK, map[string]int{"updated": updated})
	}
}

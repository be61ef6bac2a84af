package http

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	echo "github.com/labstack/echo/v4"
	echoMid "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/sellerhub/market-mock-api/internal/config"
	"github.com/sellerhub/market-mock-api/internal/http/middleware"
	"github.com/sellerhub/market-mock-api/internal/logger"
	"github.com/sellerhub/market-mock-api/internal/metrics"
	"github.com/sellerhub/market-mock-api/internal/mockgen"
	"github.com/sellerhub/market-mock-api/internal/model"
	"github.com/sellerhub/market-mock-api/internal/ratelimit"
	"github.com/sellerhub/market-mock-api/internal/repository"
)

type Server struct{ e *echo.Echo }

// NewServer wires repositories, middlewares and the four platform route
// groups. rds and pub may be nil (in-memory rate limiting, no events).
func NewServer(cfg config.Config, mysqlDB *sqlx.DB, rds *redis.Client, pub mockgen.EventPublisher) *Server {
	// repos
	sellersRepo := repository.NewSellersRepository(mysqlDB)
	ordersRepo := repository.NewOrdersRepository(mysqlDB)

	// limiter: Redis when configured, process-local otherwise (dev)
	var limiter ratelimit.Limiter
	if rds != nil {
		limiter = ratelimit.NewRedisLimiter(rds, "rl:seller:")
	} else {
		limiter = ratelimit.NewMemoryLimiter()
	}

	gen := mockgen.New(ordersRepo, pub, 0, logger.Log)

	// echo
	e := echo.New()
	e.HideBanner = true
	e.Use(echoMid.Recover(), echoMid.Logger())

	metrics.MustRegister(prometheus.DefaultRegisterer)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// health
	e.GET("/healthz", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })

	rlMW := middleware.RateLimitMiddleware(middleware.RateLimitConfig{
		Limiter:        limiter,
		DefaultPerMin:  cfg.RateLimit.DefaultPerMin,
		RetryAfterHint: true,
	})

	// platform routes: /smartstore/orders, /coupang/orders, ...
	for _, platform := range model.Platforms() {
		authMW := middleware.APIKeyMiddleware(sellersRepo, platform)
		g := e.Group("/"+strings.ToLower(platform.String()), authMW, rlMW)
		g.GET("/orders", listOrdersHandler(platform, ordersRepo))
	}

	// operator endpoints for mock data generation
	initialStart, initialEnd := initialRange(cfg.Mock)
	admin := e.Group("/admin/mock", middleware.AdminKeyMiddleware(sellersRepo))
	admin.POST("/initial", adminInitialHandler(gen, initialStart, initialEnd, cfg.Mock.OrdersPerHourPerPlatform))
	admin.POST("/hourly-insert", adminHourlyInsertHandler(gen, cfg.Mock.OrdersPerHourPerPlatform))
	admin.POST("/hourly-update", adminHourlyUpdateHandler(gen))

	return &Server{e: e}
}

func initialRange(cfg config.MockConfig) (time.Time, time.Time) {
	start, err := time.ParseInLocation("2006-01-02", cfg.InitialStartDate, time.UTC)
	if err != nil {
		start = time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
	}
	end, err := time.ParseInLocation("2006-01-02", cfg.InitialEndDate, time.UTC)
	if err != nil {
		end = time.Date(2025, 11, 18, 0, 0, 0, 0, time.UTC)
	}
	return start, end
}

func (s *Server) Start(addr string) error {
	log.Printf("http: listening on %s", addr)
	return s.e.Start(addr)
}
func (s *Server) Shutdown(ctx context.Context) error { return s.e.Shutdown(ctx) }

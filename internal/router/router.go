package router // package router builds the echo instance and registers the API routes

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/birds-api/internal/config"
	"github.com/iliyamo/birds-api/internal/handler"
	"github.com/iliyamo/birds-api/internal/middleware"
	"github.com/iliyamo/birds-api/pkg/logger"
)

// Deps are the collaborators the HTTP layer is built from.  Metrics and
// Redis are optional; leave them nil to run without request metrics or
// rate limiting.
type Deps struct {
	Birds     *handler.BirdHandler
	Log       logger.Logger
	Metrics   middleware.RequestObserver
	RateLimit config.RateLimitConfig
	Redis     redis.Scripter
}

// New returns an echo instance with the middleware stack and routes in place.
func New(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(echomw.Recover())
	e.Use(requestLogger(d.Log))
	if d.Metrics != nil {
		e.Use(middleware.Metrics(d.Metrics))
	}
	e.Use(middleware.NewTokenBucket(d.RateLimit, d.Redis, d.Log))

	RegisterRoutes(e, d.Birds)
	return e
}

// RegisterRoutes maps the two public endpoints.  Anything else falls through
// to echo's defaults: 404 for unknown paths, 405 for other methods on these.
func RegisterRoutes(e *echo.Echo, birds *handler.BirdHandler) {
	e.GET("/", handler.Home)
	e.GET("/birds", birds.List)
}

func requestLogger(log logger.Logger) echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			fields := []logger.Field{
				logger.String("method", v.Method),
				logger.String("uri", v.URI),
				logger.Int("status", v.Status),
				logger.String("latency", v.Latency.Round(time.Microsecond).String()),
				logger.String("request_id", v.RequestID),
			}
			ctx := context.WithoutCancel(c.Request().Context())
			if v.Error != nil {
				log.Warn(ctx, "request", append(fields, logger.Error(v.Error))...)
				return nil
			}
			log.Info(ctx, "request", fields...)
			return nil
		},
	})
}

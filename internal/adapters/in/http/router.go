package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
)

// RequestObserver records finished requests, e.g. as Prometheus series.
type RequestObserver interface {
	ObserveHTTPRequest(method, path string, status int, elapsed time.Duration)
}

// RouterConfig collects everything NewRouter needs besides the Server.
type RouterConfig struct {
	// StoreTimeout bounds every /orders request; zero disables the deadline.
	StoreTimeout time.Duration
	// Observer may be nil.
	Observer RequestObserver
	// MetricsHandler is mounted on GET /metrics when not nil.
	MetricsHandler http.Handler
	Logger         *slog.Logger
	// EchoLogLevel controls echo's internal logger.
	EchoLogLevel log.Lvl
}

// NewRouter builds the echo instance with the middleware chain
// request-id → metrics → access log → recover, the OpenAPI validator and
// the store deadline on /orders.
func NewRouter(s *Server, cfg RouterConfig) (*echo.Echo, error) {
	doc, err := LoadOpenAPI()
	if err != nil {
		return nil, err
	}
	validator, err := RequestValidator(doc)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(cfg.EchoLogLevel)
	e.HTTPErrorHandler = ErrorHandler(cfg.Logger)

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	if cfg.Observer != nil {
		e.Use(observeRequests(cfg.Observer))
	}
	e.Use(accessLog(cfg.Logger))
	e.Use(middleware.Recover())

	e.GET("/health", s.Health)
	if cfg.MetricsHandler != nil {
		e.GET("/metrics", echo.WrapHandler(cfg.MetricsHandler))
	}

	orderMiddleware := []echo.MiddlewareFunc{validator}
	if cfg.StoreTimeout > 0 {
		orderMiddleware = append(orderMiddleware, middleware.ContextTimeoutWithConfig(middleware.ContextTimeoutConfig{
			Timeout: cfg.StoreTimeout,
			// Handlers already classify deadline errors; keep them intact.
			ErrorHandler: func(err error, _ echo.Context) error { return err },
		}))
	}
	e.POST("/orders", s.CreateOrder, orderMiddleware...)
	e.GET("/orders/:id", s.GetOrder, orderMiddleware...)
	e.PATCH("/orders/:id", s.UpdateOrderStatus, orderMiddleware...)

	return e, nil
}

// accessLog emits one slog record per request through echo's RequestLogger.
func accessLog(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogRequestID: true,
		LogMethod:    true,
		LogURI:       true,
		LogRoutePath: true,
		LogStatus:    true,
		LogLatency:   true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("request_id", v.RequestID),
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.String("route", v.RoutePath),
				slog.Int("status", v.Status),
				slog.Int64("duration_ms", v.Latency.Milliseconds()),
			}
			level := slog.LevelInfo
			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
				if v.Status >= http.StatusInternalServerError {
					level = slog.LevelError
				}
			}
			logger.LogAttrs(c.Request().Context(), level, "request finished", attrs...)
			return nil
		},
	})
}

// observeRequests reports each request under its route template.
func observeRequests(observer RequestObserver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			path := c.Path()
			if path == "" {
				path = "unmatched"
			}
			observer.ObserveHTTPRequest(c.Request().Method, path, c.Response().Status, time.Since(start))
			return nil
		}
	}
}

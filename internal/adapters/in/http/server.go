// Package http is the echo transport of the order service: routing, request
// validation against the embedded OpenAPI document, error rendering and the
// operational endpoints.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/application/usecases/queries"
	"orders/internal/core/ports"
	"orders/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const (
	HeaderIdempotencyKey = "Idempotency-Key"
	HeaderIfMatch        = "If-Match"

	healthTimeout = 2 * time.Second
)

// Server adapts HTTP requests to the order use cases.
type Server struct {
	createOrderHandler  commands.CreateOrderCommandHandler
	getOrderHandler     queries.GetOrderQueryHandler
	updateStatusHandler commands.UpdateOrderStatusCommandHandler

	health map[string]ports.HealthChecker
	logger *slog.Logger
}

// NewServer wires the handlers. health maps a dependency name ("db",
// "redis") to its checker; every entry is reported by GET /health.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	updateStatusHandler commands.UpdateOrderStatusCommandHandler,
	health map[string]ports.HealthChecker,
	logger *slog.Logger,
) *Server {
	return &Server{
		createOrderHandler:  createOrderHandler,
		getOrderHandler:     getOrderHandler,
		updateStatusHandler: updateStatusHandler,
		health:              health,
		logger:              logger.With("component", "http_server"),
	}
}

// CreateOrder handles POST /orders. A repeated Idempotency-Key answers with
// the status code and body of the first response.
func (s *Server) CreateOrder(c echo.Context) error {
	var req CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	cmd, err := commands.NewCreateOrderCommand(
		req.CustomerID,
		req.Currency,
		req.lines(),
		c.Request().Header.Get(HeaderIdempotencyKey),
	)
	if err != nil {
		return err
	}

	outcome, err := s.createOrderHandler.HandleOutcome(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderLocation, "/orders/"+outcome.Order.ID().String())
	return c.JSON(outcome.StatusCode, newOrderResponse(outcome.Order))
}

// GetOrder handles GET /orders/:id.
func (s *Server) GetOrder(c echo.Context) error {
	query, err := queries.NewGetOrderQuery(c.Param("id"))
	if err != nil {
		return err
	}

	found, err := s.getOrderHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, newOrderResponse(found))
}

// UpdateOrderStatus handles PATCH /orders/:id. The If-Match header carries
// the version the client last read.
func (s *Server) UpdateOrderStatus(c echo.Context) error {
	version, err := parseIfMatch(c.Request().Header.Get(HeaderIfMatch))
	if err != nil {
		return err
	}

	var req UpdateStatusRequest
	if err = c.Bind(&req); err != nil {
		return err
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(c.Param("id"), req.Status, version)
	if err != nil {
		return err
	}

	updated, err := s.updateStatusHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, newOrderResponse(updated))
}

// Health handles GET /health.
func (s *Server) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), healthTimeout)
	defer cancel()

	body := HealthResponse{"status": "ok"}
	status := http.StatusOK
	for name, checker := range s.health {
		if err := checker.Ping(ctx); err != nil {
			s.logger.WarnContext(ctx, "health check failed", "dependency", name, "error", err)
			body[name] = "error"
			body["status"] = "degraded"
			status = http.StatusServiceUnavailable
			continue
		}
		body[name] = "ok"
	}

	return c.JSON(status, body)
}

// parseIfMatch accepts a bare integer, optionally quoted or weak (W/"3"),
// since clients commonly echo ETag syntax back.
func parseIfMatch(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, errs.NewVersionIsInvalidErrorWithCause("If-Match header (version) is required")
	}

	token := strings.Trim(strings.TrimPrefix(raw, "W/"), `"`)
	version, err := strconv.ParseInt(token, 10, 64)
	if err != nil {
		return 0, errs.NewVersionIsInvalidError("If-Match must be an integer version", err)
	}
	return version, nil
}

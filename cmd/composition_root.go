package cmd

import (
	"log/slog"
	"net/http"

	httpadapter "orders/internal/adapters/in/http"
	"orders/internal/adapters/out/postgres"
	"orders/internal/adapters/out/postgres/idempotencyrepo"
	"orders/internal/adapters/out/postgres/orderrepo"
	"orders/internal/adapters/out/redis/idempotencycache"
	"orders/internal/adapters/out/prometheus"
	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/application/usecases/queries"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/ports"
	"orders/internal/jobs"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// CompositionRoot owns the shared dependencies and builds everything else
// from them. The caller opens and closes the connections.
type CompositionRoot struct {
	config         Config
	gormDB         *gorm.DB
	redisClient    redis.UniversalClient
	metrics        *prometheus.Metrics
	metricsHandler http.Handler
	logger         *slog.Logger

	orders ports.OrderRepository
	cache  ports.IdempotencyCache
	clock  ports.Clock
}

// NewCompositionRoot selects the idempotency backend from config. redisClient
// is only used, and must only be non-nil, for the redis backend.
func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	redisClient redis.UniversalClient,
	metrics *prometheus.Metrics,
	metricsHandler http.Handler,
	logger *slog.Logger,
) CompositionRoot {
	clock := kernel.SystemClock{}

	var cache ports.IdempotencyCache
	if config.IdempotencyBackend == IdempotencyBackendRedis && redisClient != nil {
		cache = idempotencycache.NewRedisIdempotencyCache(redisClient, config.ServiceName)
	} else {
		cache = idempotencyrepo.NewGormIdempotencyRepository(gormDB, clock)
	}

	return CompositionRoot{
		config:         config,
		gormDB:         gormDB,
		redisClient:    redisClient,
		metrics:        metrics,
		metricsHandler: metricsHandler,
		logger:         logger,
		orders:         orderrepo.NewGormOrderRepository(gormDB),
		cache:          cache,
		clock:          clock,
	}
}

// CreateCreateOrderCommandHandler builds the creation handler with the
// configured idempotency backend and TTL.
func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(
		c.orders, c.cache, c.clock, kernel.UUIDGenerator{}, c.metrics, c.config.IdempotencyTTL, c.logger,
	)
}

// CreateUpdateOrderStatusCommandHandler builds the status-change handler.
func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	return commands.NewUpdateOrderStatusCommandHandler(c.orders, c.clock, c.metrics, c.logger)
}

// CreatePurgeExpiredIdempotencyRecordsCommandHandler builds the handler run by
// the reaper job. With the redis backend it always removes nothing.
func (c *CompositionRoot) CreatePurgeExpiredIdempotencyRecordsCommandHandler() commands.PurgeExpiredIdempotencyRecordsCommandHandler {
	return commands.NewPurgeExpiredIdempotencyRecordsCommandHandler(c.cache, c.clock)
}

// CreateGetOrderQueryHandler builds the read handler.
func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.orders)
}

// HealthCheckers lists the dependencies reported by GET /health.
func (c *CompositionRoot) HealthCheckers() map[string]ports.HealthChecker {
	checkers := map[string]ports.HealthChecker{"db": postgres.NewHealthChecker(c.gormDB)}
	if c.config.IdempotencyBackend == IdempotencyBackendRedis && c.redisClient != nil {
		checkers["redis"] = idempotencycache.NewHealthChecker(c.redisClient)
	}
	return checkers
}

// CreateServer builds the HTTP handlers on top of the use cases.
func (c *CompositionRoot) CreateServer() *httpadapter.Server {
	return httpadapter.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateGetOrderQueryHandler(),
		c.CreateUpdateOrderStatusCommandHandler(),
		c.HealthCheckers(),
		c.logger,
	)
}

// CreateRouter builds the echo instance. echo's own log level follows
// LOG_LEVEL, clamped to debug, info or error.
func (c *CompositionRoot) CreateRouter() (*echo.Echo, error) {
	echoLevel := log.INFO
	if c.config.LogLevel <= slog.LevelDebug {
		echoLevel = log.DEBUG
	} else if c.config.LogLevel >= slog.LevelError {
		echoLevel = log.ERROR
	}

	var observer httpadapter.RequestObserver
	if c.metrics != nil {
		observer = c.metrics
	}

	return httpadapter.NewRouter(c.CreateServer(), httpadapter.RouterConfig{
		StoreTimeout:   c.config.StoreTimeout,
		Observer:       observer,
		MetricsHandler: c.metricsHandler,
		Logger:         c.logger,
		EchoLogLevel:   echoLevel,
	})
}

// CreateJobManager builds the manager holding the idempotency reaper.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	reaper := jobs.NewIdempotencyReaperJob(
		c.CreatePurgeExpiredIdempotencyRecordsCommandHandler(),
		c.config.ReaperSchedule,
		c.logger,
	)
	return jobs.NewJobManager(c.logger, reaper)
}

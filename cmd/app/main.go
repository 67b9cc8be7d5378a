package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"orders/cmd"
	"orders/internal/adapters/out/postgres"
	prommetrics "orders/internal/adapters/out/prometheus"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("order service stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	config, err := cmd.LoadConfig(".env")
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: config.LogLevel})).
		With("service", config.ServiceName)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gormDB, err := postgres.Open(config.DBSettings())
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := postgres.Close(gormDB); closeErr != nil {
			logger.Error("close database", "error", closeErr)
		}
	}()
	if err = postgres.Migrate(gormDB); err != nil {
		return err
	}

	var redisClient redis.UniversalClient
	if config.IdempotencyBackend == cmd.IdempotencyBackendRedis {
		redisClient = redis.NewClient(&redis.Options{Addr: config.RedisAddr})
		defer func() {
			if closeErr := redisClient.Close(); closeErr != nil {
				logger.Error("close redis", "error", closeErr)
			}
		}()
		if err = redisClient.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("ping redis at %s: %w", config.RedisAddr, err)
		}
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics, err := prommetrics.NewMetrics(registry)
	if err != nil {
		return err
	}

	app := cmd.NewCompositionRoot(
		config,
		gormDB,
		redisClient,
		metrics,
		promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		logger,
	)

	e, err := app.CreateRouter()
	if err != nil {
		return err
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("HTTP server listening", "port", config.HTTPPort, "idempotency_backend", config.IdempotencyBackend)
		if startErr := e.Start(fmt.Sprintf("0.0.0.0:%s", config.HTTPPort)); !errors.Is(startErr, http.ErrServerClosed) {
			return startErr
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

package main // Entry point package

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/iliyamo/birds-api/internal/config"
	"github.com/iliyamo/birds-api/internal/database"
	"github.com/iliyamo/birds-api/internal/handler"
	"github.com/iliyamo/birds-api/internal/repository"
	"github.com/iliyamo/birds-api/internal/router"
	"github.com/iliyamo/birds-api/internal/service"
	"github.com/iliyamo/birds-api/pkg/logger"
	"github.com/iliyamo/birds-api/pkg/metrics"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// .env is optional; real environment variables win over it
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintln(os.Stderr, "failed to read .env:", err)
		os.Exit(1)
	}

	log := logger.Default()
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, config.Load(), log); err != nil {
		log.Error(ctx, "server stopped", logger.Error(err))
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log logger.Logger) error {
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid LOG_LEVEL; falling back to info", logger.String("log_level", cfg.LogLevel))
		_ = logger.SetLevelString("info")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Store: open, create schema, seed.  Any failure here stops startup.  This
	// work is not cut short by a signal; the server shuts down right after.
	setupCtx := context.WithoutCancel(ctx)
	db, dialect, err := database.Open(setupCtx, cfg.DatabaseURI, cfg.DB)
	if err != nil {
		return fmt.Errorf("connect store: %w", err)
	}
	defer db.Close()

	if err := database.EnsureSchema(setupCtx, db, dialect); err != nil {
		return err
	}

	repo := repository.NewBirdRepo(db, dialect)
	m := metrics.NewManager()

	seedOpts := []service.SeederOption{
		service.WithRecorder(m),
		service.WithStoreName(dialect.Name),
	}
	if cfg.RabbitMQ != "" {
		seedOpts = append(seedOpts, service.WithPublisher(service.NewAMQPPublisher(cfg.RabbitMQ)))
	}
	if _, err := service.NewSeeder(repo, log.Named("seeder"), seedOpts...).Run(setupCtx); err != nil {
		return err
	}

	deps := router.Deps{
		Birds:     handler.NewBirdHandler(repo, log.Named("birds")),
		Log:       log.Named("http"),
		Metrics:   m,
		RateLimit: config.LoadRateLimitConfig(),
	}
	if deps.RateLimit.Enabled {
		if rdb := config.NewRedisClient(setupCtx, config.LoadRedisConfig()); rdb != nil {
			defer rdb.Close()
			deps.Redis = rdb
		} else {
			log.Warn(ctx, "redis unreachable; rate limiting disabled")
		}
	}
	e := router.New(deps)

	errCh := make(chan error, 2)
	go func() {
		log.Info(ctx, "listening", logger.String("addr", cfg.Addr()), logger.String("env", cfg.Env), logger.String("store", dialect.Name))
		if err := e.Start(cfg.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	var metricsSrv *http.Server
	if cfg.MetricsAddr != "" {
		metricsSrv = newMetricsServer(cfg.MetricsAddr, m)
		go func() {
			log.Info(ctx, "metrics listening", logger.String("addr", cfg.MetricsAddr))
			if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- fmt.Errorf("metrics server: %w", err)
			}
		}()
	}

	var runErr error
	select {
	case <-ctx.Done():
		log.Info(context.Background(), "shutdown signal received")
	case runErr = <-errCh:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Warn(shutdownCtx, "http shutdown", logger.Error(err))
	}
	if metricsSrv != nil {
		if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
			log.Warn(shutdownCtx, "metrics shutdown", logger.Error(err))
		}
	}
	return runErr
}

func newMetricsServer(addr string, m *metrics.Manager) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

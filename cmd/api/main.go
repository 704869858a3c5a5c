package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"lending-metrics-api/internal/application/readthrough"
	"lending-metrics-api/internal/application/services"
	"lending-metrics-api/internal/domain/entities"
	"lending-metrics-api/internal/domain/interfaces"
	"lending-metrics-api/internal/infrastructure/chain"
	"lending-metrics-api/internal/infrastructure/config"
	"lending-metrics-api/internal/infrastructure/lock"
	"lending-metrics-api/internal/infrastructure/logging"
	"lending-metrics-api/internal/infrastructure/metrics"
	"lending-metrics-api/internal/infrastructure/oracle"
	"lending-metrics-api/internal/infrastructure/ratelimit"
	"lending-metrics-api/internal/infrastructure/repositories/cache"
	"lending-metrics-api/internal/infrastructure/repositories/snapshot"
	"lending-metrics-api/internal/infrastructure/web/handlers"
	"lending-metrics-api/internal/infrastructure/web/server"

	"github.com/jonboulle/clockwork"
)

// @title Lending Metrics API
// @version 1.0
// @description Public read-only reporting API for the lending protocol: metrics, loans, staking and history.
// @BasePath /
// @schemes http https

const version = "1.0.0"

var buildTime = "unknown"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "lending-metrics-api: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	environment := config.GetEnvironment()

	cfg, err := config.NewLoader().LoadForEnvironment(environment)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	if err := config.NewValidator().Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if err := logging.InitializeGlobalLoggers(logging.ForService("lending-metrics-api", version, environment, cfg.Logging)); err != nil {
		return err
	}

	ctx := context.Background()
	clock := clockwork.NewRealClock()

	logging.Info(ctx, "Starting lending metrics API", logging.Fields{
		"version":     version,
		"environment": environment,
		"cache":       cfg.Cache.Backend,
		"oracle":      cfg.Oracle.Provider,
		"chain":       cfg.Chain.Provider,
	})

	backend, err := cache.NewFactory(clock).CreateBackend(ctx, cache.Config{
		Type:        cache.BackendType(cfg.Cache.Backend),
		RedisAddr:   cfg.Cache.Redis.Addr,
		RedisDB:     cfg.Cache.Redis.DB,
		Password:    cfg.Cache.Redis.Password,
		DialTimeout: cfg.Cache.Redis.DialTimeout,
	})
	if err != nil {
		return fmt.Errorf("creating cache store: %w", err)
	}
	defer backend.Close()

	var distributed interfaces.DistributedLocker
	if backend.Client != nil {
		distributed = lock.NewRedsyncLocker(backend.Client, cfg.Lock.RetryDelay)
	} else {
		distributed = lock.NewMemoryLocker(clock)
	}

	engine, err := readthrough.NewEngine(backend.Store, lock.NewLocalLocker(), distributed, readthrough.Options{
		InnerTimeout:  cfg.Lock.InnerTimeout,
		OuterTimeout:  cfg.Lock.OuterTimeout,
		LockLease:     cfg.Lock.Lease,
		AtomicPersist: cfg.Cache.AtomicPersist,
		Clock:         clock,
	})
	if err != nil {
		return fmt.Errorf("creating read-through engine: %w", err)
	}

	prices, err := oracle.NewFactory(clock).CreateProvider(ctx, cfg.Oracle)
	if err != nil {
		return fmt.Errorf("creating price provider: %w", err)
	}
	defer prices.Close()

	chainClient, err := chain.NewClient(cfg.Chain, clock)
	if err != nil {
		return fmt.Errorf("creating chain client: %w", err)
	}

	db, err := snapshot.OpenDatabase(cfg.Database)
	if err != nil {
		return fmt.Errorf("opening snapshot database: %w", err)
	}
	repo := snapshot.NewRepository(db)
	defer repo.Close()

	metricsService := services.NewMetricsService(engine, chainClient, prices, clock)
	snapshotService := services.NewSnapshotService(metricsService, repo, distributed, clock, cfg.Snapshot.Interval)
	freshness := handlers.NewFreshness(engine, cfg.HTTP)

	protocolSettings, err := cfg.Protocol.Settings()
	if err != nil {
		return err
	}

	router := server.NewRouter(server.Handlers{
		Metrics:  handlers.NewMetricsHandler(metricsService, services.NewSupplyService(engine, chainClient, prices), freshness),
		Loans:    handlers.NewLoanHandler(services.NewLoanService(engine, chainClient, prices), freshness),
		Staking:  handlers.NewStakingHandler(services.NewStakingService(engine, metricsService, chainClient, repo, clock), freshness),
		History:  handlers.NewHistoryHandler(services.NewHistoryService(engine, repo, clock), freshness),
		Health:   handlers.NewHealthHandler(services.NewHealthService(backend.Store, repo), version, clock),
		Protocol: handlers.NewProtocolHandler(services.NewProtocolService(protocolSettings), freshness),
	}, ratelimit.NewRateLimitMiddleware(cfg.RateLimit, clock), clock)

	metrics.SetApplicationInfo(version, buildTime, runtime.Version())

	clusters, err := parseClusters(cfg.Snapshot.Clusters)
	if err != nil {
		return err
	}

	jobCtx, stopJobs := context.WithCancel(ctx)
	defer stopJobs()
	go snapshotService.Run(jobCtx, clusters, cfg.Snapshot.Timeout)
	go trackUptime(jobCtx, clock)

	srv := server.NewServer(router, cfg.Server)
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case sig := <-quit:
		logging.Info(ctx, "Shutdown signal received", logging.Fields{"signal": sig.String()})
	}

	stopJobs()

	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		logging.ErrorWithError(ctx, "Server forced to shutdown", err, nil)
		return err
	}

	logging.Info(ctx, "Server shutdown completed", nil)
	return nil
}

func parseClusters(raw []string) ([]entities.Cluster, error) {
	clusters := make([]entities.Cluster, 0, len(raw))
	for _, value := range raw {
		cluster, err := entities.ParseCluster(value)
		if err != nil {
			return nil, fmt.Errorf("snapshot clusters: %w", err)
		}
		clusters = append(clusters, cluster)
	}
	return clusters, nil
}

func trackUptime(ctx context.Context, clock clockwork.Clock) {
	start := clock.Now()
	ticker := clock.NewTicker(15 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			metrics.UpdateUptime(clock.Since(start).Seconds())
		}
	}
}

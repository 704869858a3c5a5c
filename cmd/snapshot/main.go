// Command snapshot captures one metrics snapshot per configured cluster and exits.
// It backfills a missed hour or runs from an external scheduler.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"lending-metrics-api/internal/application/readthrough"
	"lending-metrics-api/internal/application/services"
	"lending-metrics-api/internal/domain/entities"
	"lending-metrics-api/internal/infrastructure/chain"
	"lending-metrics-api/internal/infrastructure/config"
	"lending-metrics-api/internal/infrastructure/lock"
	"lending-metrics-api/internal/infrastructure/logging"
	"lending-metrics-api/internal/infrastructure/oracle"
	"lending-metrics-api/internal/infrastructure/repositories/cache"
	"lending-metrics-api/internal/infrastructure/repositories/snapshot"

	"github.com/jonboulle/clockwork"
)

func main() {
	clusterFlag := flag.String("clusters", "", "comma separated clusters, defaults to snapshot.clusters")
	flag.Parse()

	if err := run(*clusterFlag); err != nil {
		fmt.Fprintf(os.Stderr, "snapshot: %v\n", err)
		os.Exit(1)
	}
}

func run(clusterFlag string) error {
	environment := config.GetEnvironment()

	cfg, err := config.NewLoader().LoadForEnvironment(environment)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	if err := config.NewValidator().Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if err := logging.InitializeGlobalLoggers(logging.ForService("lending-metrics-snapshot", "1.0.0", environment, cfg.Logging)); err != nil {
		return err
	}

	names := cfg.Snapshot.Clusters
	if clusterFlag != "" {
		names = strings.Split(clusterFlag, ",")
	}
	clusters := make([]entities.Cluster, 0, len(names))
	for _, name := range names {
		cluster, err := entities.ParseCluster(name)
		if err != nil {
			return err
		}
		clusters = append(clusters, cluster)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Snapshot.Timeout)
	defer cancel()
	clock := clockwork.NewRealClock()

	// the job computes uncached, a private memory store is enough for the engine.
	// Slots are deduplicated against the database, the process-local locker only
	// guards concurrent clusters of this run.
	locker := lock.NewMemoryLocker(clock)
	engine, err := readthrough.NewEngine(cache.NewMemoryStore(clock), lock.NewLocalLocker(), locker, readthrough.Options{
		InnerTimeout: cfg.Lock.InnerTimeout,
		OuterTimeout: cfg.Lock.OuterTimeout,
		LockLease:    cfg.Lock.Lease,
		Clock:        clock,
	})
	if err != nil {
		return err
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

	start := time.Now()
	svc := services.NewSnapshotService(services.NewMetricsService(engine, chainClient, prices, clock), repo, locker, clock, cfg.Snapshot.Interval)
	if err := svc.Capture(ctx, clusters); err != nil {
		return err
	}

	logging.Info(ctx, "Snapshot run completed", logging.Fields{
		"clusters":             len(clusters),
		logging.FieldDuration: float64(time.Since(start).Milliseconds()),
	})
	return nil
}

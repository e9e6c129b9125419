// Package main provides the world server binary: it builds the region graph
// from static recipes, keeps spawner populations topped up, and optionally
// serves Prometheus metrics.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/cory-johannsen/realm/internal/config"
	"github.com/cory-johannsen/realm/internal/game/spawn"
	"github.com/cory-johannsen/realm/internal/game/world"
	"github.com/cory-johannsen/realm/internal/observability"
	"github.com/cory-johannsen/realm/internal/server"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	regionsDir := flag.String("regions", "", "path to region YAML recipes; overrides world.regions_dir")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if *regionsDir != "" {
		cfg.World.RegionsDir = *regionsDir
	}

	logger, err := observability.NewLogger(cfg.Logging, "gameserver")
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	promReg := prometheus.NewRegistry()
	promReg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics, err := observability.NewWorldMetrics(promReg)
	if err != nil {
		logger.Fatal("registering metrics", zap.Error(err))
	}

	registry := world.NewRegistry(spawn.Factory,
		world.WithNotifier(observability.NewSpawnEventSink(logger, metrics)),
	)

	// Build world
	worldStart := time.Now()
	recipes, err := world.LoadRecipesFromDir(cfg.World.RegionsDir)
	if err != nil {
		logger.Fatal("loading region recipes", zap.Error(err))
	}
	worldMgr, err := world.BuildWorld(ctx, recipes, registry, logger)
	if err != nil {
		logger.Fatal("building world", zap.Error(err))
	}
	metrics.SetWorldSize(worldMgr.RegionCount(), registry.ZoneCount())
	for _, line := range worldMgr.Summary() {
		logger.Debug("region", zap.String("summary", line))
	}
	logger.Info("world loaded",
		zap.Int("regions", worldMgr.RegionCount()),
		zap.Int("spawners", registry.SpawnerCount()),
		zap.Int("zones", registry.ZoneCount()),
		zap.String("start_region", worldMgr.StartRegion().Name()),
		zap.Duration("elapsed", time.Since(worldStart)),
	)

	tick := spawn.NewTickManager(cfg.Spawn.TickInterval, registry,
		spawn.LogPopulator{Logger: logger}, logger,
		spawn.WithTickObserver(func(r spawn.TickResult) {
			metrics.ObserveTick(r.Deficit, r.Spawned)
		}),
	)

	// Wire lifecycle
	lifecycle := server.NewLifecycle(logger)
	lifecycle.Add("spawn-tick", server.NewLoopService(tick.Run))
	if cfg.Metrics.Enabled {
		lifecycle.Add("metrics", server.NewHTTPService(cfg.Metrics.Addr(), observability.MetricsHandler(promReg)))
	}

	logger.Info("world server initialized",
		zap.Duration("startup", time.Since(start)),
		zap.Duration("tick_interval", cfg.Spawn.TickInterval),
		zap.Bool("metrics", cfg.Metrics.Enabled),
	)

	if err := lifecycle.Run(ctx); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}

// Package main provides an offline validator for region recipe directories.
// It builds the world exactly as the server would and prints one line per
// region, exiting non-zero on the first wiring error.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/cory-johannsen/realm/internal/config"
	"github.com/cory-johannsen/realm/internal/game/spawn"
	"github.com/cory-johannsen/realm/internal/game/world"
	"github.com/cory-johannsen/realm/internal/observability"
)

func main() {
	dir := flag.String("regions", "content/regions", "path to region YAML recipes")
	verbose := flag.Bool("v", false, "log each region as it is built")
	flag.Parse()

	level := "warn"
	if *verbose {
		level = "debug"
	}
	logger, err := observability.NewLogger(config.LoggingConfig{Level: level, Format: "console"}, "regioncheck")
	if err != nil {
		fmt.Fprintf(os.Stderr, "initializing logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(context.Background(), *dir, logger); err != nil {
		logger.Error("region check failed", zap.String("dir", *dir), zap.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, dir string, logger *zap.Logger) error {
	recipes, err := world.LoadRecipesFromDir(dir)
	if err != nil {
		return err
	}
	registry := world.NewRegistry(spawn.Factory)
	mgr, err := world.BuildWorld(ctx, recipes, registry, logger)
	if err != nil {
		return err
	}
	for _, line := range mgr.Summary() {
		fmt.Println(line)
	}
	fmt.Printf("%d regions, %d spawners, %d zones; start region %s\n",
		mgr.RegionCount(), registry.SpawnerCount(), registry.ZoneCount(), mgr.StartRegion().Name())
	return nil
}

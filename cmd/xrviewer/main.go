// Package main is the entry point for the midgard-xr desktop viewer.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-xr/internal/assets"
	"github.com/Faultbox/midgard-xr/internal/config"
	"github.com/Faultbox/midgard-xr/internal/engine/scene"
	"github.com/Faultbox/midgard-xr/internal/logger"
	"github.com/Faultbox/midgard-xr/internal/scenefile"
	"github.com/Faultbox/midgard-xr/internal/viewer"
)

func main() {
	flags := config.RegisterFlags(flag.CommandLine)
	flag.Parse()

	cfg, err := config.Load(flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== midgard-xr viewer ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if err := run(cfg); err != nil {
		logger.Error("viewer error", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	logger.Info("viewer closed normally")
}

func run(cfg *config.Config) error {
	mgr := assets.NewManager()
	defer mgr.Close()
	for _, dir := range cfg.Assets.SearchDirs {
		if err := mgr.AddSearchDir(dir); err != nil {
			logger.Warn("skipping asset directory", zap.String("dir", dir), zap.Error(err))
		}
	}

	if len(cfg.Assets.Preload) > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		start := time.Now()
		if err := mgr.Preload(ctx, cfg.Assets.Preload); err != nil {
			return fmt.Errorf("preloading assets: %w", err)
		}
		logger.Info("assets preloaded",
			zap.Int("count", len(cfg.Assets.Preload)),
			zap.Duration("took", time.Since(start)),
		)
	}

	f, err := scenefile.Load(cfg.Scene.File)
	if err != nil {
		return err
	}
	s, ids, err := f.Build(mgr)
	if err != nil {
		return fmt.Errorf("building scene: %w", err)
	}
	names := make(map[scene.ID]string, len(ids))
	for name, id := range ids {
		names[id] = name
	}

	v, err := viewer.New(cfg, s, names)
	if err != nil {
		return err
	}
	defer v.Close()

	return v.Run()
}

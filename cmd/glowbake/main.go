// Package main is the entry point for the glowbake lightmap geometry
// baking tool.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/MkFair/rbfx/internal/bake"
	"github.com/MkFair/rbfx/internal/config"
	"github.com/MkFair/rbfx/internal/logger"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== glowbake ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	app, err := bake.New(cfg)
	if err != nil {
		logger.Error("failed to initialize bake", zap.Error(err))
		os.Exit(1)
	}
	defer app.Close()

	if err := app.Run(); err != nil {
		logger.Error("bake error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("bake finished")
}

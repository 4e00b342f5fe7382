// Package main is the entry point for the animbox rendering sandbox.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/animbox/internal/app"
	"github.com/Faultbox/animbox/internal/config"
	"github.com/Faultbox/animbox/internal/logger"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if path := config.SaveConfigPath(); path != "" {
		if err := cfg.SaveTo(path); err != nil {
			fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Config written to %s\n", path)
		return
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}

	logger.Info("=== animbox ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	os.Exit(run(cfg))
}

// run keeps the deferred cleanup ahead of os.Exit.
func run(cfg *config.Config) int {
	defer logger.Sync()

	a, err := app.New(cfg)
	if err != nil {
		// Missing shader sources and fail-fast build errors end up here
		logger.Error("failed to start", zap.Error(err))
		return 1
	}
	defer a.Close()

	if err := a.Run(); err != nil {
		logger.Error("run error", zap.Error(err))
		return 1
	}

	logger.Info("closed normally")
	return 0
}

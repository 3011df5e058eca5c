// Package main is the entry point for the Midgard scene viewer.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-view/internal/config"
	_ "github.com/Faultbox/midgard-view/internal/engine/renderer" // registers the "gl" backend
	"github.com/Faultbox/midgard-view/internal/logger"
	"github.com/Faultbox/midgard-view/internal/viewer"
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

	logger.Info("=== Midgard View ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	v, err := viewer.New(cfg)
	if err != nil {
		fatal(cfg, "failed to create viewer", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = v.Run(ctx)
	v.Close()
	if err != nil {
		fatal(cfg, "viewer error", err)
	}

	logger.Info("viewer closed normally")
}

// fatal logs err, optionally shows it in a native dialog, and exits.
func fatal(cfg *config.Config, msg string, err error) {
	logger.Error(msg, zap.Error(err))
	if cfg.Window.ErrorDialog {
		dialog.Message("%s: %v", msg, err).Title(cfg.Window.Title).Error()
	}
	logger.Sync()
	os.Exit(1)
}

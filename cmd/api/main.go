package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mock-metrics/internal/config"
	"mock-metrics/internal/router"
	"mock-metrics/internal/util"
)

func LoggerInitialize(cfg config.LogConfig) (*util.MetricsLogger, error) {
	metricsLogger := &util.MetricsLogger{}

	err := metricsLogger.Init(util.LoggerOptions{
		Level:  util.ParseLogLevel(cfg.Level),
		Folder: cfg.Folder,
		File:   cfg.File,
	})
	if err != nil {
		return nil, err
	}

	metricsLogger.LogEvent(util.LOG_LEVEL_INFO, "Service started")

	currentTime := time.Now().Format(time.RFC3339)
	fmt.Fprintf(os.Stderr, "\n%s: MockMetrics API started \n", currentTime)

	return metricsLogger, nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "mock-metrics:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	logger, err := LoggerInitialize(cfg.Log)
	if err != nil {
		return fmt.Errorf("error initializing the logger: %w", err)
	}
	defer logger.DeInit()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc := router.NewService(cfg, logger)
	return router.Run(ctx, cfg.Server, svc)
}

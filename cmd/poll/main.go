package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"mock-metrics/internal/config"
	"mock-metrics/internal/dashboard"
	"mock-metrics/internal/util"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to load config:", err)
		os.Exit(1)
	}

	logger := &util.MetricsLogger{}
	if err := logger.Init(util.LoggerOptions{Level: util.ParseLogLevel(cfg.Log.Level)}); err != nil {
		fmt.Fprintln(os.Stderr, "Failed to initialize logger:", err)
		os.Exit(1)
	}
	defer logger.DeInit()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.LogEvent(util.LOG_LEVEL_INFO, "Polling", cfg.Poll.URL, "every", cfg.Poll.Interval.String())

	window := dashboard.NewWindow(cfg.Poll.Window)
	poller := dashboard.NewPoller(cfg.Poll.URL, cfg.Poll.Interval, window, logger)
	if err := poller.Poll(ctx, cfg.Poll.Count); err != nil {
		logger.LogEvent(util.LOG_LEVEL_ERROR, "Polling stopped:", err)
	}
}

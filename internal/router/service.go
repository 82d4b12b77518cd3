package router

import (
	"mock-metrics/internal/config"
	"mock-metrics/internal/counter"
	"mock-metrics/internal/domain"
	"mock-metrics/internal/generator"
	"mock-metrics/internal/observability"
	"mock-metrics/internal/util"
)

// Service bundles everything one server instance owns. Nothing here is
// shared between instances.
type Service struct {
	Variant        domain.Variant
	Counter        *counter.Counter
	Source         domain.MetricsSource
	Metrics        *observability.Metrics
	Logger         *util.MetricsLogger
	AllowedOrigins []string
	AllowedHeaders []string

	// Ticker is nil for the per-request variant.
	Ticker *counter.Ticker
}

// NewService wires a generator for cfg.Service.Variant with a random
// sampler. Use NewServiceWithSampler to inject a deterministic one.
func NewService(cfg *config.Config, logger *util.MetricsLogger) *Service {
	sampler := generator.NewRandomSampler(generator.ProfileFor(cfg.Service.Variant), cfg.Service.Seed)
	return NewServiceWithSampler(cfg, sampler, logger)
}

func NewServiceWithSampler(cfg *config.Config, sampler domain.Sampler, logger *util.MetricsLogger) *Service {
	c := counter.New()

	svc := &Service{
		Variant:        cfg.Service.Variant,
		Counter:        c,
		Source:         generator.New(cfg.Service.Variant, sampler, c),
		Metrics:        observability.NewMetrics(string(cfg.Service.Variant), c.Value),
		Logger:         logger,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedHeaders: cfg.CORS.AllowedHeaders,
	}

	if cfg.Service.Variant == domain.VariantTicker {
		svc.Ticker = counter.NewTicker(c, cfg.Service.TickInterval)
		svc.Ticker.OnTick(func(v int64) {
			logger.LogEvent(util.LOG_LEVEL_DEBUG, "counter tick", v)
		})
	}
	return svc
}

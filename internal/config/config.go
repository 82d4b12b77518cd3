package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"mock-metrics/internal/domain"
)

const EnvPrefix = "MOCK_METRICS"

// DefaultAllowedHeaders are accepted in CORS preflights on top of the
// request id header and the CORS-safelisted ones.
var DefaultAllowedHeaders = []string{"Content-Type", "Authorization", "X-Requested-With", "Cache-Control"}

var (
	ErrInvalidVariant  = errors.New("unknown service variant")
	ErrInvalidInterval = errors.New("intervals and timeouts must be positive")
	ErrInvalidLogLevel = errors.New("unknown log level")
	ErrInvalidAddr     = errors.New("address must not be empty")
)

type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type ServiceConfig struct {
	Variant      domain.Variant `mapstructure:"variant"`
	TickInterval time.Duration  `mapstructure:"tick_interval"`
	Seed         uint64         `mapstructure:"seed"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	AllowedHeaders []string `mapstructure:"allowed_headers"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Folder string `mapstructure:"folder"`
	File   string `mapstructure:"file"`
}

// PollConfig drives the terminal dashboard poller.
type PollConfig struct {
	URL      string        `mapstructure:"url"`
	Interval time.Duration `mapstructure:"interval"`
	Window   int           `mapstructure:"window"`
	Count    int           `mapstructure:"count"`
}

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Service ServiceConfig `mapstructure:"service"`
	CORS    CORSConfig    `mapstructure:"cors"`
	Log     LogConfig     `mapstructure:"log"`
	Poll    PollConfig    `mapstructure:"poll"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8000")
	v.SetDefault("server.read_timeout", 5*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("server.idle_timeout", 120*time.Second)
	v.SetDefault("server.shutdown_timeout", 25*time.Second)

	v.SetDefault("service.variant", string(domain.VariantTicker))
	v.SetDefault("service.tick_interval", time.Second)
	v.SetDefault("service.seed", 0)

	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("cors.allowed_headers", DefaultAllowedHeaders)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.folder", "")
	v.SetDefault("log.file", "webService.log")

	v.SetDefault("poll.url", "http://localhost:8000")
	v.SetDefault("poll.interval", 10*time.Second)
	v.SetDefault("poll.window", 30)
	v.SetDefault("poll.count", 0)
}

// Load reads defaults, then an optional mock-metrics.yaml, then
// MOCK_METRICS_* environment variables.
func Load(paths ...string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("mock-metrics")
	v.SetConfigType("yaml")
	if len(paths) == 0 {
		paths = []string{"/etc/mock-metrics/", "."}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return ErrInvalidAddr
	}
	if !c.Service.Variant.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidVariant, c.Service.Variant)
	}
	for name, d := range map[string]time.Duration{
		"server.read_timeout":     c.Server.ReadTimeout,
		"server.write_timeout":    c.Server.WriteTimeout,
		"server.idle_timeout":     c.Server.IdleTimeout,
		"server.shutdown_timeout": c.Server.ShutdownTimeout,
		"service.tick_interval":   c.Service.TickInterval,
		"poll.interval":           c.Poll.Interval,
	} {
		if d <= 0 {
			return fmt.Errorf("%w: %s", ErrInvalidInterval, name)
		}
	}
	switch strings.ToLower(c.Log.Level) {
	case "error", "warn", "info", "debug":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.Log.Level)
	}
	return nil
}

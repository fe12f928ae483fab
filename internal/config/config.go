package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config captures the settings required to boot the dashboard engine.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
	Stream  StreamConfig  `yaml:"stream"`
	Alerts  AlertsConfig  `yaml:"alerts"`
	Charts  ChartsConfig  `yaml:"charts"`
}

// ServerConfig controls the gRPC and HTTP listeners.
type ServerConfig struct {
	Address         string        `yaml:"address"`
	HTTPAddress     string        `yaml:"httpAddress"`
	GracefulTimeout time.Duration `yaml:"gracefulTimeout"`
	Reflection      bool          `yaml:"reflection"`
}

// LoggingConfig controls structured logging.
type LoggingConfig struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

// StreamConfig controls the simulated feed.
type StreamConfig struct {
	TickInterval time.Duration `yaml:"tickInterval"`
	LoadDelay    time.Duration `yaml:"loadDelay"`
	SeedPath     string        `yaml:"seedPath"`
	// WatchBuffer is how many views a slow watcher may fall behind before
	// older ones are dropped.
	WatchBuffer int `yaml:"watchBuffer"`
}

// AlertsConfig holds the threshold rule limits.
type AlertsConfig struct {
	AvgDeliveryTimeDays float64 `yaml:"avgDeliveryTimeDays"`
	OnTimeRatePercent   float64 `yaml:"onTimeRatePercent"`
}

// ChartsConfig sizes the chart surfaces.
type ChartsConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Format string `yaml:"format"`
}

// Load initialises Config from a YAML file and optional environment overrides.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("PULSE_CONFIG")
	}

	cfg := defaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("config file %s not found: %w", path, err)
			}
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnvOverrides(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the engine cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Stream.TickInterval <= 0 {
		errs = append(errs, fmt.Errorf("stream.tickInterval must be positive, got %s", c.Stream.TickInterval))
	}
	if c.Stream.LoadDelay < 0 {
		errs = append(errs, fmt.Errorf("stream.loadDelay must not be negative, got %s", c.Stream.LoadDelay))
	}
	if c.Stream.WatchBuffer < 1 {
		errs = append(errs, fmt.Errorf("stream.watchBuffer must be at least 1, got %d", c.Stream.WatchBuffer))
	}
	if c.Charts.Width <= 0 || c.Charts.Height <= 0 {
		errs = append(errs, fmt.Errorf("charts size must be positive, got %dx%d", c.Charts.Width, c.Charts.Height))
	}
	switch strings.ToLower(c.Charts.Format) {
	case "png", "svg":
	default:
		errs = append(errs, fmt.Errorf("charts.format must be png or svg, got %q", c.Charts.Format))
	}
	return errors.Join(errs...)
}

func defaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Address:         ":50051",
			HTTPAddress:     ":2112",
			GracefulTimeout: 10 * time.Second,
			Reflection:      true,
		},
		Logging: LoggingConfig{Level: "info", JSON: false},
		Stream: StreamConfig{
			TickInterval: 5 * time.Second,
			LoadDelay:    1500 * time.Millisecond,
			WatchBuffer:  4,
		},
		Alerts: AlertsConfig{AvgDeliveryTimeDays: 3, OnTimeRatePercent: 90},
		Charts: ChartsConfig{Width: 800, Height: 400, Format: "png"},
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PULSE_SERVER_ADDRESS"); v != "" {
		cfg.Server.Address = v
	}
	if v := os.Getenv("PULSE_HTTP_ADDRESS"); v != "" {
		cfg.Server.HTTPAddress = v
	}
	if v := os.Getenv("PULSE_GRACEFUL_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Server.GracefulTimeout = d
		}
	}
	if v := os.Getenv("PULSE_REFLECTION"); v != "" {
		cfg.Server.Reflection = strings.EqualFold(v, "true") || v == "1"
	}
	if v := os.Getenv("PULSE_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("PULSE_LOG_FORMAT"); v == "json" {
		cfg.Logging.JSON = true
	}
	if v := os.Getenv("PULSE_TICK_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Stream.TickInterval = d
		}
	}
	if v := os.Getenv("PULSE_LOAD_DELAY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Stream.LoadDelay = d
		}
	}
	if v := os.Getenv("PULSE_SEED_PATH"); v != "" {
		cfg.Stream.SeedPath = v
	}
	if v := os.Getenv("PULSE_WATCH_BUFFER"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Stream.WatchBuffer = n
		}
	}
	if v := os.Getenv("PULSE_ALERT_AVG_DELIVERY_DAYS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Alerts.AvgDeliveryTimeDays = f
		}
	}
	if v := os.Getenv("PULSE_ALERT_ON_TIME_PERCENT"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Alerts.OnTimeRatePercent = f
		}
	}
	if v := os.Getenv("PULSE_CHART_WIDTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Charts.Width = n
		}
	}
	if v := os.Getenv("PULSE_CHART_HEIGHT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Charts.Height = n
		}
	}
	if v := os.Getenv("PULSE_CHART_FORMAT"); v != "" {
		cfg.Charts.Format = v
	}
}

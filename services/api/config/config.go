package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/bantaybaha/floodwatch/services/api/waterlevel"
)

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config holds the settings of the API service.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Display   DisplayConfig   `mapstructure:"display"`
	Threshold ThresholdConfig `mapstructure:"threshold"`
	Freshness FreshnessConfig `mapstructure:"freshness"`
	Query     QueryConfig     `mapstructure:"query"`
	Ingest    IngestConfig    `mapstructure:"ingest"`
	Retention RetentionConfig `mapstructure:"retention"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	BehindProxy     bool          `mapstructure:"behind_proxy"`
	CORSOrigin      string        `mapstructure:"cors_origin"`
}

type DatabaseConfig struct {
	URL    string `mapstructure:"url"`
	Driver string `mapstructure:"driver"`
}

type DisplayConfig struct {
	Timezone string `mapstructure:"timezone"`
	Layout   string `mapstructure:"layout"`
}

// ThresholdConfig holds the classifier cut points in meters.
type ThresholdConfig struct {
	WarningM float64 `mapstructure:"warning_m"`
	DangerM  float64 `mapstructure:"danger_m"`
}

type FreshnessConfig struct {
	MaxAge time.Duration `mapstructure:"max_age"`
}

type QueryConfig struct {
	DefaultWindow time.Duration `mapstructure:"default_window"`
	MaxWindow     time.Duration `mapstructure:"max_window"`
}

type IngestConfig struct {
	APIKeys        []string `mapstructure:"api_keys"`
	RateLimitRPS   float64  `mapstructure:"rate_limit_rps"`
	RateLimitBurst int      `mapstructure:"rate_limit_burst"`
}

type RetentionConfig struct {
	MaxAge    time.Duration `mapstructure:"max_age"`
	Interval  time.Duration `mapstructure:"interval"`
	BatchSize int           `mapstructure:"batch_size"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Channel  string `mapstructure:"channel"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load reads configuration from defaults, an optional config.yaml and the
// environment (optionally seeded from .env). SERVER_PORT style names map to
// server.port; PORT is honored as well.
func Load() (*Config, error) {
	_ = godotenv.Load() // ignore missing file

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		v.AddConfigPath(path)
	}
	v.AddConfigPath("./config")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil || port <= 0 {
			return nil, fmt.Errorf("invalid PORT: %s", portStr)
		}
		cfg.Server.Port = port
	}
	cfg.Ingest.APIKeys = cleanKeys(cfg.Ingest.APIKeys)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("config validation error: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("server.behind_proxy", false)
	v.SetDefault("server.cors_origin", "*")

	v.SetDefault("database.url", "")
	v.SetDefault("database.driver", DriverPostgres)

	v.SetDefault("display.timezone", "Asia/Manila")
	v.SetDefault("display.layout", time.RFC3339)

	v.SetDefault("threshold.warning_m", waterlevel.DefaultWarningM)
	v.SetDefault("threshold.danger_m", waterlevel.DefaultDangerM)

	v.SetDefault("freshness.max_age", waterlevel.DefaultFreshness.String())

	v.SetDefault("query.default_window", "24h")
	v.SetDefault("query.max_window", "168h")

	v.SetDefault("ingest.api_keys", []string{})
	v.SetDefault("ingest.rate_limit_rps", 0)
	v.SetDefault("ingest.rate_limit_burst", 5)

	// zero keeps samples forever
	v.SetDefault("retention.max_age", "0s")
	v.SetDefault("retention.interval", "1h")
	v.SetDefault("retention.batch_size", 500)

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.channel", "waterlevel.samples")

	v.SetDefault("log.level", "info")
}

func validateConfig(cfg *Config) error {
	switch cfg.Database.Driver {
	case DriverPostgres:
		if cfg.Database.URL == "" {
			return errors.New("DATABASE_URL is required for the postgres driver")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown database driver %q", cfg.Database.Driver)
	}

	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", cfg.Server.Port)
	}

	if err := cfg.Classifier().Validate(); err != nil {
		return err
	}
	if cfg.Freshness.MaxAge <= 0 {
		return errors.New("freshness max_age must be positive")
	}
	if cfg.Query.DefaultWindow <= 0 || cfg.Query.MaxWindow <= 0 {
		return errors.New("query windows must be positive")
	}
	if cfg.Query.DefaultWindow > cfg.Query.MaxWindow {
		return errors.New("query default_window must not exceed max_window")
	}
	if _, err := waterlevel.LoadLocation(cfg.Display.Timezone); err != nil {
		return err
	}
	if cfg.Ingest.RateLimitRPS < 0 {
		return errors.New("ingest rate_limit_rps must not be negative")
	}
	if cfg.Ingest.RateLimitRPS > 0 && cfg.Ingest.RateLimitBurst <= 0 {
		return errors.New("ingest rate_limit_burst must be positive when rate limiting is enabled")
	}
	if cfg.Retention.MaxAge < 0 {
		return errors.New("retention max_age must not be negative")
	}
	return nil
}

func cleanKeys(keys []string) []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		for _, part := range strings.Split(k, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// ListenAddr returns the host:port string for the HTTP server.
func (c Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// Classifier builds the threshold classifier from the configured cut points.
func (c Config) Classifier() waterlevel.Classifier {
	return waterlevel.Classifier{WarningM: c.Threshold.WarningM, DangerM: c.Threshold.DangerM}
}

// Normalizer builds the display-time normalizer. Validation has already
// checked that the timezone resolves.
func (c Config) Normalizer() waterlevel.Normalizer {
	loc, err := waterlevel.LoadLocation(c.Display.Timezone)
	if err != nil {
		loc = time.UTC
	}
	return waterlevel.Normalizer{Location: loc, Layout: c.Display.Layout}
}

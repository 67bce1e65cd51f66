package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultIngestURL      = "http://localhost:8080/ingest"
	defaultInterval       = 30 * time.Second
	defaultMinInterval    = 5 * time.Minute
	defaultRequestTimeout = 15 * time.Second
	defaultValueEpsilon   = 0.5
	defaultStartCM        = 100
	defaultStepCM         = 5
	defaultMaxCM          = 300
)

// Config holds runtime configuration for the sensor simulator.
type Config struct {
	IngestURL      string
	APIKey         string
	Interval       time.Duration
	MinInterval    time.Duration
	RequestTimeout time.Duration
	ValueEpsilon   float64
	CSVPath        string
	StartCM        float64
	StepCM         float64
	MaxCM          float64
	Seed           int64
	LogLevel       string
	DryRun         bool
}

// Load reads configuration from environment variables (optionally .env).
func Load() (Config, error) {
	_ = godotenv.Load(".env")

	cfg := Config{
		IngestURL:      defaultIngestURL,
		Interval:       defaultInterval,
		MinInterval:    defaultMinInterval,
		RequestTimeout: defaultRequestTimeout,
		ValueEpsilon:   defaultValueEpsilon,
		StartCM:        defaultStartCM,
		StepCM:         defaultStepCM,
		MaxCM:          defaultMaxCM,
		Seed:           time.Now().UnixNano(),
		LogLevel:       "info",
	}

	if v := env("INGEST_URL"); v != "" {
		cfg.IngestURL = v
	}
	cfg.APIKey = env("SENSORSIM_API_KEY")
	cfg.CSVPath = env("SENSORSIM_CSV")
	if v := env("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	var err error
	if cfg.Interval, err = durationEnv("SENSORSIM_INTERVAL", cfg.Interval); err != nil {
		return cfg, err
	}
	if cfg.MinInterval, err = durationEnv("SENSORSIM_MIN_INTERVAL", cfg.MinInterval); err != nil {
		return cfg, err
	}
	if cfg.RequestTimeout, err = durationEnv("SENSORSIM_REQUEST_TIMEOUT", cfg.RequestTimeout); err != nil {
		return cfg, err
	}
	if cfg.ValueEpsilon, err = floatEnv("SENSORSIM_VALUE_EPSILON", cfg.ValueEpsilon); err != nil {
		return cfg, err
	}
	if cfg.StartCM, err = floatEnv("SENSORSIM_START_CM", cfg.StartCM); err != nil {
		return cfg, err
	}
	if cfg.StepCM, err = floatEnv("SENSORSIM_STEP_CM", cfg.StepCM); err != nil {
		return cfg, err
	}
	if cfg.MaxCM, err = floatEnv("SENSORSIM_MAX_CM", cfg.MaxCM); err != nil {
		return cfg, err
	}
	if v := env("SENSORSIM_SEED"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("invalid SENSORSIM_SEED: %w", err)
		}
		cfg.Seed = seed
	}

	dryRun := env("DRY_RUN")
	cfg.DryRun = dryRun == "1" || strings.EqualFold(dryRun, "true")

	if cfg.Interval <= 0 {
		return cfg, errors.New("SENSORSIM_INTERVAL must be positive")
	}
	if cfg.MinInterval <= 0 {
		return cfg, errors.New("SENSORSIM_MIN_INTERVAL must be positive")
	}
	if cfg.RequestTimeout <= 0 {
		return cfg, errors.New("SENSORSIM_REQUEST_TIMEOUT must be positive")
	}
	if cfg.ValueEpsilon < 0 {
		return cfg, errors.New("SENSORSIM_VALUE_EPSILON must not be negative")
	}
	if cfg.StartCM < 0 || cfg.MaxCM <= 0 || cfg.StartCM > cfg.MaxCM {
		return cfg, fmt.Errorf("invalid walk bounds: start=%v max=%v", cfg.StartCM, cfg.MaxCM)
	}
	return cfg, nil
}

func env(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v := env(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func floatEnv(key string, def float64) (float64, error) {
	v := env(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}

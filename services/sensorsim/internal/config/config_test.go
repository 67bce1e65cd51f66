package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdirTemp(t *testing.T) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)
	for _, k := range []string{"INGEST_URL", "SENSORSIM_INTERVAL", "SENSORSIM_CSV", "SENSORSIM_SEED", "DRY_RUN"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/ingest", cfg.IngestURL)
	assert.Equal(t, 30*time.Second, cfg.Interval)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
	assert.False(t, cfg.DryRun)
}

func TestLoadOverrides(t *testing.T) {
	chdirTemp(t)
	t.Setenv("INGEST_URL", "http://api:8080/iot_proj/connect.php")
	t.Setenv("SENSORSIM_INTERVAL", "5s")
	t.Setenv("SENSORSIM_SEED", "42")
	t.Setenv("SENSORSIM_VALUE_EPSILON", "0.1")
	t.Setenv("DRY_RUN", "TRUE")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://api:8080/iot_proj/connect.php", cfg.IngestURL)
	assert.Equal(t, 5*time.Second, cfg.Interval)
	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, 0.1, cfg.ValueEpsilon)
	assert.True(t, cfg.DryRun)
}

func TestLoadErrors(t *testing.T) {
	cases := map[string]map[string]string{
		"bad interval":          {"SENSORSIM_INTERVAL": "soon"},
		"zero interval":         {"SENSORSIM_INTERVAL": "0s"},
		"zero min interval":     {"SENSORSIM_MIN_INTERVAL": "0s"},
		"negative min interval": {"SENSORSIM_MIN_INTERVAL": "-1m"},
		"zero request timeout":  {"SENSORSIM_REQUEST_TIMEOUT": "0s"},
		"bad seed":              {"SENSORSIM_SEED": "x"},
		"inverted walk":         {"SENSORSIM_START_CM": "500", "SENSORSIM_MAX_CM": "100"},
		"bad epsilon":           {"SENSORSIM_VALUE_EPSILON": "tiny"},
		"negative epsilon":      {"SENSORSIM_VALUE_EPSILON": "-0.5"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			chdirTemp(t)
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

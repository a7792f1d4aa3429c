package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_PrefixedVariables(t *testing.T) {
	t.Setenv("PEAKSIGHT_APP_VERSION", "1.2.3")
	t.Setenv("PEAKSIGHT_ANALYSIS_MIN_ELEVATION_FEET", "12000")
	t.Setenv("PEAKSIGHT_ANALYSIS_MIN_DISTANCE_KM", "100")
	t.Setenv("PEAKSIGHT_ANALYSIS_MAX_DISTANCE_KM", "400")
	t.Setenv("PEAKSIGHT_FETCH_TIMEOUT", "25s")
	t.Setenv("PEAKSIGHT_FETCH_BATCH_SIZE", "250")
	t.Setenv("PEAKSIGHT_STORAGE_DB_DRIVER", "postgres")
	t.Setenv("PEAKSIGHT_STORAGE_DB_DATABASE_URI", "postgres://localhost:5432/peaksight")
	t.Setenv("PEAKSIGHT_SERVER_ADDRESS", "0.0.0.0:8080")
	t.Setenv("PEAKSIGHT_WORKERS_CONCURRENCY", "16")
	t.Setenv("PEAKSIGHT_CONFIG", "/etc/peaksight.json")

	var cfg StructuredConfig
	require.NoError(t, parseEnv(&cfg))

	assert.Equal(t, "1.2.3", cfg.App.Version)
	assert.Equal(t, 12000.0, cfg.Analysis.MinElevationFeet)
	assert.Equal(t, 100.0, cfg.Analysis.MinDistanceKM)
	assert.Equal(t, 400.0, cfg.Analysis.MaxDistanceKM)
	assert.Equal(t, 25*time.Second, cfg.Fetch.Timeout)
	assert.Equal(t, 250, cfg.Fetch.BatchSize)
	assert.Equal(t, "postgres", cfg.Storage.DB.Driver)
	assert.Equal(t, "postgres://localhost:5432/peaksight", cfg.Storage.DB.DSN)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.HTTPAddress)
	assert.Equal(t, 16, cfg.Workers.Concurrency)
	assert.Equal(t, "/etc/peaksight.json", cfg.JSONFilePath)
}

func TestParseEnv_UnprefixedVariablesIgnored(t *testing.T) {
	t.Setenv("APP_VERSION", "9.9.9")

	var cfg StructuredConfig
	require.NoError(t, parseEnv(&cfg))

	assert.Empty(t, cfg.App.Version)
}

func TestParseEnv_InvalidDuration(t *testing.T) {
	t.Setenv("PEAKSIGHT_FETCH_TIMEOUT", "not-a-duration")

	var cfg StructuredConfig
	assert.Error(t, parseEnv(&cfg))
}

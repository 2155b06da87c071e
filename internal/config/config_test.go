package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.False(t, cfg.Redis.Enabled)

	assert.Equal(t, 0.75, cfg.Arbitrage.SimilarityThreshold)
	assert.Equal(t, 1.0, cfg.Arbitrage.MinROI)
	assert.Equal(t, 0.0001, cfg.Arbitrage.MinRateSpread)
	assert.Equal(t, 1000.0, cfg.Arbitrage.MinNotional)
	assert.Equal(t, "Yes", cfg.Arbitrage.Outcome)
	assert.Equal(t, 0.0002, cfg.Arbitrage.FeeRates["dydx"])
	assert.Equal(t, 0.001, cfg.Arbitrage.DefaultFeeRate)

	assert.Equal(t, 30, cfg.Venues.Polymarket.Timeout)
	assert.Equal(t, 30*time.Second, cfg.SnapshotTTL())
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("ARBITRAGE_MIN_ROI", "2.5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 2.5, cfg.Arbitrage.MinROI)
}

func TestLoadRejectsInvalidThreshold(t *testing.T) {
	t.Setenv("ARBITRAGE_SIMILARITY_THRESHOLD", "1.5")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "similarity threshold")
}

func TestLoadRejectsNegativeSpread(t *testing.T) {
	t.Setenv("ARBITRAGE_MIN_RATE_SPREAD", "-0.01")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "min rate spread")
}

func TestLoadRejectsBadSnapshotTTL(t *testing.T) {
	t.Setenv("CACHE_SNAPSHOT_TTL", "soon")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "snapshot TTL")
}

func TestSnapshotTTL(t *testing.T) {
	cfg := &Config{Cache: CacheConfig{SnapshotTTL: "45s"}}
	assert.Equal(t, 45*time.Second, cfg.SnapshotTTL())

	cfg.Cache.SnapshotTTL = ""
	assert.Equal(t, time.Duration(0), cfg.SnapshotTTL())
}

func TestEnvironmentNormalized(t *testing.T) {
	t.Setenv("ENVIRONMENT", "PRODUCTION")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "production", cfg.Environment)
}

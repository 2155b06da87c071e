package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Environment string          `mapstructure:"environment"`
	LogLevel    string          `mapstructure:"log_level"`
	Server      ServerConfig    `mapstructure:"server"`
	Redis       RedisConfig     `mapstructure:"redis"`
	Cache       CacheConfig     `mapstructure:"cache"`
	Venues      VenuesConfig    `mapstructure:"venues"`
	Arbitrage   ArbitrageConfig `mapstructure:"arbitrage"`
}

type ServerConfig struct {
	Port           int      `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type CacheConfig struct {
	SnapshotTTL string `mapstructure:"snapshot_ttl"`
}

// VenueConfig carries the per-venue transport settings. Timeout is in
// seconds; an empty base URL selects the venue's public endpoint.
type VenueConfig struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
	Timeout int    `mapstructure:"timeout"`
}

type VenuesConfig struct {
	Polymarket  VenueConfig `mapstructure:"polymarket"`
	Kalshi      VenueConfig `mapstructure:"kalshi"`
	Manifold    VenueConfig `mapstructure:"manifold"`
	DYDX        VenueConfig `mapstructure:"dydx"`
	Hyperliquid VenueConfig `mapstructure:"hyperliquid"`
}

// ArbitrageConfig holds the tunable thresholds of both pipelines plus the
// venue fee schedule used by the funding-rate scorer.
type ArbitrageConfig struct {
	SimilarityThreshold float64            `mapstructure:"similarity_threshold"`
	MinROI              float64            `mapstructure:"min_roi"`
	MinRateSpread       float64            `mapstructure:"min_rate_spread"`
	MinNotional         float64            `mapstructure:"min_notional"`
	Outcome             string             `mapstructure:"outcome"`
	FeeRates            map[string]float64 `mapstructure:"fee_rates"`
	DefaultFeeRate      float64            `mapstructure:"default_fee_rate"`
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath(".")

	setDefaults()

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// Config file not found, use defaults and environment variables
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}
	config.Environment = strings.ToLower(config.Environment)

	if err := config.validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) validate() error {
	if c.Arbitrage.SimilarityThreshold < 0 || c.Arbitrage.SimilarityThreshold > 1 {
		return fmt.Errorf("similarity threshold must be within [0,1], got %v", c.Arbitrage.SimilarityThreshold)
	}
	if c.Arbitrage.MinRateSpread < 0 {
		return fmt.Errorf("min rate spread must be non-negative, got %v", c.Arbitrage.MinRateSpread)
	}
	if c.Arbitrage.MinNotional < 0 {
		return fmt.Errorf("min notional must be non-negative, got %v", c.Arbitrage.MinNotional)
	}
	if c.Cache.SnapshotTTL != "" {
		if _, err := time.ParseDuration(c.Cache.SnapshotTTL); err != nil {
			return fmt.Errorf("invalid snapshot TTL: %w", err)
		}
	}
	return nil
}

// SnapshotTTL returns the parsed cache TTL, or zero to select the cache
// package default.
func (c *Config) SnapshotTTL() time.Duration {
	if c.Cache.SnapshotTTL == "" {
		return 0
	}
	ttl, err := time.ParseDuration(c.Cache.SnapshotTTL)
	if err != nil {
		return 0
	}
	return ttl
}

func setDefaults() {
	viper.SetDefault("environment", "development")
	viper.SetDefault("log_level", "info")

	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.allowed_origins", []string{"*"})

	viper.SetDefault("redis.enabled", false)
	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)

	viper.SetDefault("cache.snapshot_ttl", "30s")

	viper.SetDefault("venues.polymarket.base_url", "")
	viper.SetDefault("venues.polymarket.timeout", 30)
	viper.SetDefault("venues.kalshi.base_url", "")
	viper.SetDefault("venues.kalshi.timeout", 30)
	viper.SetDefault("venues.manifold.base_url", "")
	viper.SetDefault("venues.manifold.timeout", 30)
	viper.SetDefault("venues.dydx.base_url", "")
	viper.SetDefault("venues.dydx.timeout", 30)
	viper.SetDefault("venues.hyperliquid.base_url", "")
	viper.SetDefault("venues.hyperliquid.timeout", 30)

	viper.SetDefault("arbitrage.similarity_threshold", 0.75)
	viper.SetDefault("arbitrage.min_roi", 1.0)
	viper.SetDefault("arbitrage.min_rate_spread", 0.0001)
	viper.SetDefault("arbitrage.min_notional", 1000.0)
	viper.SetDefault("arbitrage.outcome", "Yes")
	viper.SetDefault("arbitrage.fee_rates", map[string]float64{
		"dydx":      0.0002,
		"gmx":       0.001,
		"perpetual": 0.0003,
	})
	viper.SetDefault("arbitrage.default_fee_rate", 0.001)
}

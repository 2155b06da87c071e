package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/arbscan/arbscan-go/internal/api"
	"github.com/arbscan/arbscan-go/internal/api/handlers"
	"github.com/arbscan/arbscan-go/internal/cache"
	"github.com/arbscan/arbscan-go/internal/config"
	"github.com/arbscan/arbscan-go/internal/exchange"
	"github.com/arbscan/arbscan-go/internal/logging"
	"github.com/arbscan/arbscan-go/internal/middleware"
	"github.com/arbscan/arbscan-go/internal/services"
)

const version = "1.0.0"

func main() {
	// Optional .env for local development; the file is absent in production.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := logging.New(cfg.LogLevel, cfg.Environment)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.WithError(err).Warn("Redis unreachable, snapshot caching disabled")
			redisClient = nil
		}
		cancel()
	}

	aggregator := buildAggregator(cfg, logger)
	defer func() {
		if err := aggregator.Close(); err != nil {
			logger.WithError(err).Warn("venue client shutdown failed")
		}
	}()

	snapshotCache := cache.NewSnapshotCache(redisClient, cfg.SnapshotTTL(), logger)
	snapshots := handlers.NewSnapshots(aggregator, snapshotCache)

	fees := services.NewStaticFeeProvider(cfg.Arbitrage.FeeRates, cfg.Arbitrage.DefaultFeeRate)
	marketArb := services.NewMarketArbitrageService(cfg.Arbitrage.Outcome)
	fundingArb := services.NewFundingArbitrageService(fees, logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.Server.AllowedOrigins))

	api.SetupRoutes(router, api.Handlers{
		Health:    handlers.NewHealthHandler(aggregator, version),
		Markets:   handlers.NewMarketHandler(snapshots, logger),
		Funding:   handlers.NewFundingRateHandler(snapshots, logger),
		Arbitrage: handlers.NewArbitrageHandler(snapshots, marketArb, fundingArb, cfg.Arbitrage, logger),
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		logger.WithField("port", cfg.Server.Port).Info("Server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited")
}

func buildAggregator(cfg *config.Config, logger *logrus.Logger) *exchange.Aggregator {
	venues := cfg.Venues

	markets := []exchange.MarketClient{
		exchange.NewPolymarketClient(venues.Polymarket.BaseURL, venues.Polymarket.APIKey, venueTimeout(venues.Polymarket), logger),
		exchange.NewKalshiClient(venues.Kalshi.BaseURL, venues.Kalshi.APIKey, venueTimeout(venues.Kalshi), logger),
		exchange.NewManifoldClient(venues.Manifold.BaseURL, venueTimeout(venues.Manifold), logger),
	}
	funding := []exchange.FundingClient{
		exchange.NewDYDXClient(venues.DYDX.BaseURL, venueTimeout(venues.DYDX), logger),
		exchange.NewHyperliquidClient(venues.Hyperliquid.BaseURL, venueTimeout(venues.Hyperliquid), logger),
	}

	return exchange.NewAggregator(markets, funding, logger)
}

func venueTimeout(v config.VenueConfig) time.Duration {
	if v.Timeout <= 0 {
		return 0
	}
	return time.Duration(v.Timeout) * time.Second
}

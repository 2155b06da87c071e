package api

import (
	"github.com/gin-gonic/gin"

	"github.com/arbscan/arbscan-go/internal/api/handlers"
)

// Handlers aggregates everything the router registers.
type Handlers struct {
	Health    *handlers.HealthHandler
	Markets   *handlers.MarketHandler
	Funding   *handlers.FundingRateHandler
	Arbitrage *handlers.ArbitrageHandler
}

// SetupRoutes registers the API surface on the router.
func SetupRoutes(router *gin.Engine, h Handlers) {
	router.GET("/", h.Health.Root)
	router.GET("/health", h.Health.Check)

	router.GET("/markets", h.Markets.GetMarkets)
	router.GET("/funding-rates", h.Funding.GetFundingRates)

	arbitrage := router.Group("/arbitrage")
	{
		arbitrage.GET("", h.Arbitrage.GetMarketOpportunities)
		arbitrage.GET("/funding", h.Arbitrage.GetFundingOpportunities)
	}
}

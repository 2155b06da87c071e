package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/arbscan/arbscan-go/internal/exchange"
)

// HealthHandler serves the service banner and health probe.
type HealthHandler struct {
	aggregator *exchange.Aggregator
	version    string
}

func NewHealthHandler(aggregator *exchange.Aggregator, version string) *HealthHandler {
	return &HealthHandler{aggregator: aggregator, version: version}
}

type HealthVenues struct {
	Markets []string `json:"markets"`
	Funding []string `json:"funding"`
}

type HealthResponse struct {
	Status    string       `json:"status"`
	Timestamp time.Time    `json:"timestamp"`
	Version   string       `json:"version"`
	Venues    HealthVenues `json:"venues"`
}

// Check reports service liveness and the configured venues.
func (h *HealthHandler) Check(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   h.version,
		Venues: HealthVenues{
			Markets: h.aggregator.MarketVenues(),
			Funding: h.aggregator.FundingVenues(),
		},
	})
}

// Root returns the service banner with the endpoint listing.
func (h *HealthHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Cross-venue arbitrage API",
		"endpoints": gin.H{
			"/markets":           "Prediction-market snapshots from all venues",
			"/funding-rates":     "Funding-rate snapshots from all venues",
			"/arbitrage":         "Prediction-market arbitrage opportunities",
			"/arbitrage/funding": "Funding-rate arbitrage opportunities",
			"/health":            "Health check",
		},
	})
}

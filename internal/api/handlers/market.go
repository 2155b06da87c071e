package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/arbscan/arbscan-go/internal/models"
)

// MarketHandler serves raw per-venue prediction-market snapshots.
type MarketHandler struct {
	snapshots *Snapshots
	logger    *logrus.Logger
}

func NewMarketHandler(snapshots *Snapshots, logger *logrus.Logger) *MarketHandler {
	return &MarketHandler{snapshots: snapshots, logger: logger}
}

type MarketsResponse struct {
	Venues     map[string][]models.Market     `json:"venues"`
	PerpVenues map[string][]models.PerpMarket `json:"perp_venues"`
	Total      int                            `json:"total"`
}

// GetMarkets returns the current listing snapshot from every configured
// venue: prediction markets keyed under venues, perpetual instruments under
// perp_venues. The total counts both families.
func (h *MarketHandler) GetMarkets(c *gin.Context) {
	limit, ok := queryInt(c, "limit", "50")
	if !ok {
		return
	}

	snapshot := h.snapshots.Markets(c.Request.Context(), limit)
	perps := h.snapshots.PerpMarkets(c.Request.Context(), limit)

	total := 0
	for _, markets := range snapshot {
		total += len(markets)
	}
	for _, listings := range perps {
		total += len(listings)
	}

	c.JSON(http.StatusOK, MarketsResponse{
		Venues:     snapshot,
		PerpVenues: perps,
		Total:      total,
	})
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/arbscan/arbscan-go/internal/config"
	"github.com/arbscan/arbscan-go/internal/matcher"
	"github.com/arbscan/arbscan-go/internal/models"
	"github.com/arbscan/arbscan-go/internal/services"
)

// ArbitrageHandler serves ranked opportunities for both pipelines.
type ArbitrageHandler struct {
	snapshots *Snapshots
	markets   *services.MarketArbitrageService
	funding   *services.FundingArbitrageService
	defaults  config.ArbitrageConfig
	logger    *logrus.Logger
}

// NewArbitrageHandler wires both scorers behind the snapshot provider.
// Zero-valued threshold defaults fall back to the package defaults so an
// empty config section still yields a working handler.
func NewArbitrageHandler(
	snapshots *Snapshots,
	markets *services.MarketArbitrageService,
	funding *services.FundingArbitrageService,
	defaults config.ArbitrageConfig,
	logger *logrus.Logger,
) *ArbitrageHandler {
	if defaults.SimilarityThreshold <= 0 {
		defaults.SimilarityThreshold = matcher.DefaultSimilarityThreshold
	}
	if defaults.MinROI <= 0 {
		defaults.MinROI = services.DefaultMinROI
	}
	if defaults.MinRateSpread <= 0 {
		defaults.MinRateSpread = services.DefaultMinRateSpread
	}
	if defaults.MinNotional <= 0 {
		defaults.MinNotional = services.DefaultMinNotional
	}
	return &ArbitrageHandler{
		snapshots: snapshots,
		markets:   markets,
		funding:   funding,
		defaults:  defaults,
		logger:    logger,
	}
}

type MarketArbitrageResponse struct {
	Opportunities   []models.MarketArbitrageOpportunity `json:"opportunities"`
	Count           int                                 `json:"count"`
	MarketsAnalyzed map[string]int                      `json:"markets_analyzed"`
}

type FundingFilters struct {
	MinRateSpread float64 `json:"min_rate_spread"`
	MinNotional   float64 `json:"min_notional"`
}

type FundingArbitrageResponse struct {
	Opportunities   []models.FundingArbitrageOpportunity `json:"opportunities"`
	Count           int                                  `json:"count"`
	MarketsAnalyzed map[string]int                       `json:"markets_analyzed"`
	FiltersUsed     FundingFilters                       `json:"filters_used"`
}

// GetMarketOpportunities runs the prediction-market pipeline: fetch, match
// by question similarity, score both cross strategies, filter by min_roi and
// rank by ROI.
func (h *ArbitrageHandler) GetMarketOpportunities(c *gin.Context) {
	limit, ok := queryInt(c, "limit", "50")
	if !ok {
		return
	}
	minROI, ok := queryFloat(c, "min_roi", h.defaults.MinROI)
	if !ok {
		return
	}
	threshold, ok := queryFloat(c, "similarity_threshold", h.defaults.SimilarityThreshold)
	if !ok {
		return
	}

	snapshot := h.snapshots.Markets(c.Request.Context(), limit)

	opportunities := h.markets.FindOpportunities(snapshot, threshold, minROI, 0)
	count := len(opportunities)
	if count > limit {
		opportunities = opportunities[:limit]
	}

	c.JSON(http.StatusOK, MarketArbitrageResponse{
		Opportunities:   opportunities,
		Count:           count,
		MarketsAnalyzed: venueCounts(snapshot),
	})
}

// GetFundingOpportunities runs the funding-rate pipeline: fetch, group by
// normalized symbol, score every venue pair and rank by daily profit.
func (h *ArbitrageHandler) GetFundingOpportunities(c *gin.Context) {
	limit, ok := queryInt(c, "limit", "20")
	if !ok {
		return
	}
	minRateSpread, ok := queryFloat(c, "min_rate_spread", h.defaults.MinRateSpread)
	if !ok {
		return
	}
	minNotional, ok := queryFloat(c, "min_notional", h.defaults.MinNotional)
	if !ok {
		return
	}

	snapshot := h.snapshots.FundingRates(c.Request.Context())

	opportunities := h.funding.FindOpportunities(snapshot, minRateSpread, minNotional, 0)
	count := len(opportunities)
	if count > limit {
		opportunities = opportunities[:limit]
	}

	analyzed := make(map[string]int, len(snapshot))
	for venue, rates := range snapshot {
		analyzed[venue] = len(rates)
	}

	c.JSON(http.StatusOK, FundingArbitrageResponse{
		Opportunities:   opportunities,
		Count:           count,
		MarketsAnalyzed: analyzed,
		FiltersUsed: FundingFilters{
			MinRateSpread: minRateSpread,
			MinNotional:   minNotional,
		},
	})
}

func venueCounts(snapshot map[string][]models.Market) map[string]int {
	counts := make(map[string]int, len(snapshot))
	for venue, markets := range snapshot {
		counts[venue] = len(markets)
	}
	return counts
}

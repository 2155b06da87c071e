package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/arbscan/arbscan-go/internal/models"
)

// FundingRateHandler serves raw per-venue funding-rate snapshots.
type FundingRateHandler struct {
	snapshots *Snapshots
	logger    *logrus.Logger
}

func NewFundingRateHandler(snapshots *Snapshots, logger *logrus.Logger) *FundingRateHandler {
	return &FundingRateHandler{snapshots: snapshots, logger: logger}
}

type FundingRatesResponse struct {
	Venues map[string][]models.FundingRateResponse `json:"venues"`
	Total  int                                     `json:"total"`
}

// GetFundingRates returns the current funding-rate snapshot from every
// configured perpetuals venue. The limit truncates each venue's list; the
// total counts everything fetched.
func (h *FundingRateHandler) GetFundingRates(c *gin.Context) {
	limit, ok := queryInt(c, "limit", "50")
	if !ok {
		return
	}

	snapshot := h.snapshots.FundingRates(c.Request.Context())

	total := 0
	venues := make(map[string][]models.FundingRateResponse, len(snapshot))
	for venue, rates := range snapshot {
		total += len(rates)
		if len(rates) > limit {
			rates = rates[:limit]
		}
		projected := make([]models.FundingRateResponse, 0, len(rates))
		for _, rate := range rates {
			projected = append(projected, rate.ToResponse())
		}
		venues[venue] = projected
	}

	c.JSON(http.StatusOK, FundingRatesResponse{Venues: venues, Total: total})
}

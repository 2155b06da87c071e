package services

import (
	"fmt"
	"math"
	"sort"

	"github.com/google/uuid"

	"github.com/arbscan/arbscan-go/internal/matcher"
	"github.com/arbscan/arbscan-go/internal/models"
)

const (
	// DefaultOutcome is the primary outcome label scored when none is
	// configured; its complement is the other label of the binary pair.
	DefaultOutcome = "Yes"

	// DefaultMinROI is the minimum ROI percentage an opportunity must reach
	// to be reported.
	DefaultMinROI = 1.0

	// StrategyPrimaryFirst buys the primary outcome on the first market and
	// its complement on the second.
	StrategyPrimaryFirst = "strategy1"
	// StrategyComplementFirst buys the complement on the first market and
	// the primary outcome on the second.
	StrategyComplementFirst = "strategy2"
)

// MarketArbitrageService scores matched prediction-market pairs for
// cross-venue arbitrage. Stateless between calls; safe for concurrent use.
type MarketArbitrageService struct {
	outcome string
}

// NewMarketArbitrageService creates a scorer for the given primary outcome
// label. An empty label selects DefaultOutcome.
func NewMarketArbitrageService(outcome string) *MarketArbitrageService {
	if outcome == "" {
		outcome = DefaultOutcome
	}
	return &MarketArbitrageService{outcome: outcome}
}

// CalculateArbitrage evaluates both cross strategies for a matched pair and
// returns the better one. Profit per dollar is max(0, 1−cost); ROI is
// profit/cost×100 with a zero-cost guard. Ties go to strategy 1.
func (s *MarketArbitrageService) CalculateArbitrage(m1, m2 models.Market) models.MarketArbitrageOpportunity {
	outcome := s.outcome
	complement := oppositeOutcome(outcome)

	// Strategy 1: buy outcome on m1, complement on m2.
	cost1 := m1.Price(outcome) + m2.Price(complement)
	profit1 := crossProfit(cost1)
	roi1 := crossROI(profit1, cost1)

	// Strategy 2: buy complement on m1, outcome on m2.
	cost2 := m1.Price(complement) + m2.Price(outcome)
	profit2 := crossProfit(cost2)
	roi2 := crossROI(profit2, cost2)

	bestROI, bestProfit, strategy := roi1, profit1, StrategyPrimaryFirst
	description := fmt.Sprintf("Buy '%s' on %s and '%s' on %s", outcome, m1.Venue, complement, m2.Venue)
	if roi2 > roi1 {
		bestROI, bestProfit, strategy = roi2, profit2, StrategyComplementFirst
		description = fmt.Sprintf("Buy '%s' on %s and '%s' on %s", complement, m1.Venue, outcome, m2.Venue)
	}

	return models.MarketArbitrageOpportunity{
		ID:      uuid.NewString(),
		Market1: m1.Side(),
		Market2: m2.Side(),
		Arbitrage: models.MarketArbitrage{
			Exists:          bestROI > 0,
			ROIPercentage:   round2(bestROI),
			ProfitPerDollar: round4(bestProfit),
			Strategy:        strategy,
			Description:     description,
		},
	}
}

// FindOpportunities runs the full prediction-market pipeline: match listings
// across venues, score every matched pair, keep opportunities at or above
// minROI, and rank by ROI descending (stable on ties). A positive limit caps
// the result length.
func (s *MarketArbitrageService) FindOpportunities(
	marketsByVenue map[string][]models.Market,
	similarityThreshold float64,
	minROI float64,
	limit int,
) []models.MarketArbitrageOpportunity {
	pairs := matcher.FindMatchingMarkets(marketsByVenue, similarityThreshold)

	opportunities := make([]models.MarketArbitrageOpportunity, 0, len(pairs))
	for _, pair := range pairs {
		opp := s.CalculateArbitrage(pair.First, pair.Second)
		if opp.Arbitrage.Exists && opp.Arbitrage.ROIPercentage >= minROI {
			opportunities = append(opportunities, opp)
		}
	}

	sort.SliceStable(opportunities, func(i, j int) bool {
		return opportunities[i].Arbitrage.ROIPercentage > opportunities[j].Arbitrage.ROIPercentage
	})

	if limit > 0 && len(opportunities) > limit {
		opportunities = opportunities[:limit]
	}
	return opportunities
}

func oppositeOutcome(outcome string) string {
	if outcome == "Yes" {
		return "No"
	}
	return "Yes"
}

func crossProfit(cost float64) float64 {
	if profit := 1 - cost; profit > 0 {
		return profit
	}
	return 0
}

func crossROI(profit, cost float64) float64 {
	if cost <= 0 {
		return 0
	}
	return profit / cost * 100
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func round4(v float64) float64 { return math.Round(v*10000) / 10000 }

package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/arbscan/arbscan-go/internal/matcher"
	"github.com/arbscan/arbscan-go/internal/models"
)

const (
	// DefaultMinRateSpread is the minimum funding-rate spread a venue pair
	// must show before it is scored.
	DefaultMinRateSpread = 0.0001

	// DefaultMinNotional is the smallest notional accepted from callers.
	DefaultMinNotional = 1000.0

	// projectionNotional floors the notional used for profit projection.
	// Display simplification, not a position size.
	projectionNotional = 10000.0

	// slippageMultiplier pads the base taker fee for spread and slippage.
	slippageMultiplier = 1.5

	hoursPerDay  = 24.0
	daysPerYear  = 365.0
	daysPerWeek  = 7
	daysPerMonth = 30
)

// FundingArbitrageService scores funding-rate spreads between venues that
// list the same perpetual instrument. Stateless between calls.
type FundingArbitrageService struct {
	fees   FeeProvider
	logger *logrus.Logger
}

// NewFundingArbitrageService creates a scorer backed by the given fee table.
func NewFundingArbitrageService(fees FeeProvider, logger *logrus.Logger) *FundingArbitrageService {
	if fees == nil {
		fees = NewStaticFeeProvider(DefaultFeeRates(), DefaultFeeRate)
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &FundingArbitrageService{fees: fees, logger: logger}
}

// FindOpportunities runs the full funding-rate pipeline: group rates by
// normalized symbol, score every venue pair within each group, and rank by
// estimated daily profit descending (stable on ties). A positive limit caps
// the result length. Fewer than two venues yields an empty result.
func (s *FundingArbitrageService) FindOpportunities(
	ratesByVenue map[string][]models.FundingRate,
	minRateSpread float64,
	minNotional float64,
	limit int,
) []models.FundingArbitrageOpportunity {
	if len(ratesByVenue) < 2 {
		return nil
	}
	if minRateSpread <= 0 {
		minRateSpread = DefaultMinRateSpread
	}
	if minNotional <= 0 {
		minNotional = DefaultMinNotional
	}

	groups := matcher.GroupRatesBySymbol(ratesByVenue)

	var opportunities []models.FundingArbitrageOpportunity
	for _, group := range groups {
		venues := group.Venues()
		for i := 0; i < len(venues); i++ {
			for j := i + 1; j < len(venues); j++ {
				opp, ok := s.scorePair(group.Symbol,
					venues[i], group.Rates[venues[i]],
					venues[j], group.Rates[venues[j]],
					minRateSpread, minNotional)
				if ok {
					opportunities = append(opportunities, opp)
				}
			}
		}
	}

	sort.SliceStable(opportunities, func(i, j int) bool {
		return opportunities[i].EstimatedDailyProfit > opportunities[j].EstimatedDailyProfit
	})

	if limit > 0 && len(opportunities) > limit {
		opportunities = opportunities[:limit]
	}
	return opportunities
}

// scorePair evaluates one venue pair for a symbol. The higher-rate venue is
// the short side: going short there collects the richer funding stream while
// the long leg on the cheaper venue hedges the price exposure.
func (s *FundingArbitrageService) scorePair(
	symbol string,
	venueA string, rateA models.FundingRate,
	venueB string, rateB models.FundingRate,
	minRateSpread float64,
	minNotional float64,
) (models.FundingArbitrageOpportunity, bool) {
	spread := rateA.FundingRate.Sub(rateB.FundingRate).Abs()
	if spread.LessThan(decimal.NewFromFloat(minRateSpread)) {
		return models.FundingArbitrageOpportunity{}, false
	}

	shortVenue, shortRate, shortSnap := venueA, rateA.FundingRate, rateA
	longVenue, longRate, longSnap := venueB, rateB.FundingRate, rateB
	if !rateA.FundingRate.GreaterThan(rateB.FundingRate) {
		shortVenue, shortRate, shortSnap = venueB, rateB.FundingRate, rateB
		longVenue, longRate, longSnap = venueA, rateA.FundingRate, rateA
	}

	notional := decimal.NewFromFloat(minNotional)
	floor := decimal.NewFromFloat(projectionNotional)
	if notional.LessThan(floor) {
		notional = floor
	}

	totalFees := s.legFee(shortVenue, notional).Add(s.legFee(longVenue, notional))

	// Fees are informational only: the headline profit figures deliberately
	// exclude them, they feed the APR figure alone.
	dailyProfit := shortRate.Sub(longRate).Mul(notional)
	if !dailyProfit.GreaterThan(decimal.Zero) {
		return models.FundingArbitrageOpportunity{}, false
	}
	weeklyProfit := dailyProfit.Mul(decimal.NewFromInt(daysPerWeek))
	monthlyProfit := dailyProfit.Mul(decimal.NewFromInt(daysPerMonth))

	hoursToFunding := hoursUntilFunding(shortSnap.NextFundingTime, longSnap.NextFundingTime)

	// Amortizes the entry fees over a single funding gap, as if every future
	// period had the same spacing.
	netAPR := 0.0
	if hoursToFunding > 0 {
		feeFactor := totalFees.Div(notional).InexactFloat64()
		rateSpread := shortRate.Sub(longRate).InexactFloat64()
		netAPR = rateSpread*daysPerYear - feeFactor*daysPerYear/(hoursToFunding/hoursPerDay)
	}

	opp := models.FundingArbitrageOpportunity{
		ID:                     fmt.Sprintf("%s_%s_%s", symbol, shortVenue, longVenue),
		Symbol:                 symbol,
		LongVenue:              longVenue,
		ShortVenue:             shortVenue,
		LongFundingRate:        longRate.InexactFloat64(),
		ShortFundingRate:       shortRate.InexactFloat64(),
		FundingRateSpread:      spread.InexactFloat64(),
		EstimatedDailyProfit:   dailyProfit.Round(2).InexactFloat64(),
		EstimatedWeeklyProfit:  weeklyProfit.Round(2).InexactFloat64(),
		EstimatedMonthlyProfit: monthlyProfit.Round(2).InexactFloat64(),
		TimeToNextFunding:      fmt.Sprintf("%.1f hours", hoursToFunding),
		MinNotionalValue:       notional.InexactFloat64(),
		TradingFees:            totalFees.Round(2).InexactFloat64(),
		NetDailyAPR:            round2(netAPR * 100),
	}

	s.logger.WithFields(logrus.Fields{
		"symbol": symbol,
		"short":  shortVenue,
		"long":   longVenue,
		"spread": spread.InexactFloat64(),
	}).Debug("funding arbitrage opportunity scored")

	return opp, true
}

func (s *FundingArbitrageService) legFee(venue string, notional decimal.Decimal) decimal.Decimal {
	return notional.Mul(s.fees.TakerFeeRate(venue)).Mul(decimal.NewFromFloat(slippageMultiplier))
}

// hoursUntilFunding returns the hours until the earlier of the two venues'
// next funding settlements, floored at zero when both are already past.
func hoursUntilFunding(a, b time.Time) float64 {
	next := a
	if b.Before(a) {
		next = b
	}
	hours := time.Until(next).Hours()
	if hours < 0 {
		return 0
	}
	return hours
}

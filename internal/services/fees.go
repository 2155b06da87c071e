package services

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FeeProvider exposes venue-specific taker fee rates used when estimating
// the cost of opening both legs of a funding arbitrage position.
type FeeProvider interface {
	TakerFeeRate(venue string) decimal.Decimal
}

// DefaultFeeRate applies to venues without an entry in the fee table.
const DefaultFeeRate = 0.001

// DefaultFeeRates is the built-in venue fee schedule.
func DefaultFeeRates() map[string]float64 {
	return map[string]float64{
		"dYdX":      0.0002, // 0.02%
		"GMX":       0.001,  // 0.1%
		"Perpetual": 0.0003, // 0.03%
	}
}

// StaticFeeProvider serves fee rates from a fixed table with a default for
// unlisted venues. Lookups are case-insensitive since venue name casing
// varies across data sources and config loaders.
type StaticFeeProvider struct {
	rates       map[string]decimal.Decimal
	defaultRate decimal.Decimal
}

// NewStaticFeeProvider builds a provider from a venue→rate table. A zero or
// negative default falls back to DefaultFeeRate.
func NewStaticFeeProvider(rates map[string]float64, defaultRate float64) *StaticFeeProvider {
	if defaultRate <= 0 {
		defaultRate = DefaultFeeRate
	}
	p := &StaticFeeProvider{
		rates:       make(map[string]decimal.Decimal, len(rates)),
		defaultRate: decimal.NewFromFloat(defaultRate),
	}
	for venue, rate := range rates {
		p.rates[strings.ToLower(venue)] = decimal.NewFromFloat(rate)
	}
	return p
}

// TakerFeeRate returns the fee rate for a venue, or the default when the
// venue is not in the table.
func (p *StaticFeeProvider) TakerFeeRate(venue string) decimal.Decimal {
	if rate, ok := p.rates[strings.ToLower(venue)]; ok {
		return rate
	}
	return p.defaultRate
}

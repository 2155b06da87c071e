package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FundingRate represents a perpetual-futures funding rate snapshot from one
// venue. All fields are sourced independently from the venue API; nothing
// links them beyond the snapshot itself.
type FundingRate struct {
	MarketID        string          `json:"market_id"`
	Symbol          string          `json:"symbol"`
	FundingRate     decimal.Decimal `json:"funding_rate"`
	NextFundingTime time.Time       `json:"next_funding_time"`
	Venue           string          `json:"venue"`
	Price           decimal.Decimal `json:"price"`
	Volume24h       decimal.Decimal `json:"volume_24h"`
	OpenInterest    decimal.Decimal `json:"open_interest"`
}

// FundingRateResponse is the API projection of a FundingRate with plain
// floats and ISO-8601 timestamps.
type FundingRateResponse struct {
	MarketID        string  `json:"market_id"`
	Symbol          string  `json:"symbol"`
	FundingRate     float64 `json:"funding_rate"`
	NextFundingTime string  `json:"next_funding_time"`
	Venue           string  `json:"venue"`
	Price           float64 `json:"price"`
	Volume24h       float64 `json:"volume_24h"`
	OpenInterest    float64 `json:"open_interest"`
}

// ToResponse converts the snapshot into its API projection.
func (r FundingRate) ToResponse() FundingRateResponse {
	return FundingRateResponse{
		MarketID:        r.MarketID,
		Symbol:          r.Symbol,
		FundingRate:     r.FundingRate.InexactFloat64(),
		NextFundingTime: r.NextFundingTime.UTC().Format(time.RFC3339),
		Venue:           r.Venue,
		Price:           r.Price.InexactFloat64(),
		Volume24h:       r.Volume24h.InexactFloat64(),
		OpenInterest:    r.OpenInterest.InexactFloat64(),
	}
}

// FundingArbitrageOpportunity is the scored result of pairing one symbol's
// funding rates on two venues. Profit figures are display values for the
// assumed notional; trading fees are reported separately and are not
// subtracted from the estimated profits.
type FundingArbitrageOpportunity struct {
	ID                     string  `json:"id"`
	Symbol                 string  `json:"symbol"`
	LongVenue              string  `json:"long_venue"`
	ShortVenue             string  `json:"short_venue"`
	LongFundingRate        float64 `json:"long_funding_rate"`
	ShortFundingRate       float64 `json:"short_funding_rate"`
	FundingRateSpread      float64 `json:"funding_rate_spread"`
	EstimatedDailyProfit   float64 `json:"estimated_daily_profit"`
	EstimatedWeeklyProfit  float64 `json:"estimated_weekly_profit"`
	EstimatedMonthlyProfit float64 `json:"estimated_monthly_profit"`
	TimeToNextFunding      string  `json:"time_to_next_funding"`
	MinNotionalValue       float64 `json:"min_notional_value"`
	TradingFees            float64 `json:"trading_fees"`
	NetDailyAPR            float64 `json:"net_daily_apr"`
}

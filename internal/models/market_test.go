package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMarketPrice(t *testing.T) {
	market := Market{
		Prices: map[string]float64{"Yes": 0.62, "No": 0.38},
	}

	assert.Equal(t, 0.62, market.Price("Yes"))
	assert.Equal(t, 0.38, market.Price("No"))
	assert.Equal(t, NeutralPrice, market.Price("Maybe"))
}

func TestMarketPriceNilMap(t *testing.T) {
	var market Market
	assert.Equal(t, NeutralPrice, market.Price("Yes"))
}

func TestMarketSide(t *testing.T) {
	market := Market{
		ID:       "pm-1",
		Question: "Will BTC reach $100k?",
		Prices:   map[string]float64{"Yes": 0.62},
		Venue:    "polymarket",
		URL:      "https://polymarket.com/event/btc-100k",
	}

	side := market.Side()
	assert.Equal(t, "polymarket", side.Venue)
	assert.Equal(t, market.Question, side.Question)
	assert.Equal(t, market.URL, side.URL)
	assert.Equal(t, market.Prices, side.Prices)
}

func TestFundingRateToResponse(t *testing.T) {
	next := time.Date(2025, 6, 1, 16, 0, 0, 0, time.UTC)
	rate := FundingRate{
		MarketID:        "BTC-USD",
		Symbol:          "BTC/USD",
		FundingRate:     decimal.NewFromFloat(0.0000125),
		NextFundingTime: next,
		Venue:           "dYdX",
		Price:           decimal.NewFromFloat(97250.5),
		Volume24h:       decimal.NewFromInt(1000000),
		OpenInterest:    decimal.NewFromInt(500),
	}

	resp := rate.ToResponse()
	assert.Equal(t, "BTC-USD", resp.MarketID)
	assert.Equal(t, "BTC/USD", resp.Symbol)
	assert.InDelta(t, 0.0000125, resp.FundingRate, 1e-12)
	assert.Equal(t, "2025-06-01T16:00:00Z", resp.NextFundingTime)
	assert.Equal(t, "dYdX", resp.Venue)
	assert.Equal(t, 97250.5, resp.Price)
	assert.Equal(t, 1000000.0, resp.Volume24h)
	assert.Equal(t, 500.0, resp.OpenInterest)
}

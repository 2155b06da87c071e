package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestStaticFeeProvider(t *testing.T) {
	provider := NewStaticFeeProvider(DefaultFeeRates(), DefaultFeeRate)

	tests := []struct {
		name     string
		venue    string
		expected float64
	}{
		{"known venue", "dYdX", 0.0002},
		{"case insensitive", "DYDX", 0.0002},
		{"lowercase", "gmx", 0.001},
		{"unknown venue falls back", "Hyperliquid", DefaultFeeRate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rate := provider.TakerFeeRate(tt.venue)
			assert.True(t, rate.Equal(decimal.NewFromFloat(tt.expected)),
				"got %s, want %v", rate, tt.expected)
		})
	}
}

func TestStaticFeeProviderZeroDefault(t *testing.T) {
	provider := NewStaticFeeProvider(nil, 0)

	rate := provider.TakerFeeRate("anything")
	assert.True(t, rate.Equal(decimal.NewFromFloat(DefaultFeeRate)))
}

func TestStaticFeeProviderCustomTable(t *testing.T) {
	provider := NewStaticFeeProvider(map[string]float64{"perpetual": 0.0003}, 0.002)

	assert.True(t, provider.TakerFeeRate("Perpetual").Equal(decimal.NewFromFloat(0.0003)))
	assert.True(t, provider.TakerFeeRate("dYdX").Equal(decimal.NewFromFloat(0.002)))
}

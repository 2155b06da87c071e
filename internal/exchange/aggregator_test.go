package exchange

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arbscan/arbscan-go/internal/models"
)

type stubMarketClient struct {
	venue   string
	markets []models.Market
	err     error
	closed  bool
}

func (s *stubMarketClient) Venue() string { return s.venue }

func (s *stubMarketClient) GetMarkets(ctx context.Context, limit int) ([]models.Market, error) {
	return s.markets, s.err
}

func (s *stubMarketClient) Close() error {
	s.closed = true
	return nil
}

type stubFundingClient struct {
	venue  string
	perps  []models.PerpMarket
	rates  []models.FundingRate
	err    error
	closed bool
}

func (s *stubFundingClient) Venue() string { return s.venue }

func (s *stubFundingClient) GetMarkets(ctx context.Context, limit int) ([]models.PerpMarket, error) {
	return s.perps, s.err
}

func (s *stubFundingClient) GetFundingRates(ctx context.Context) ([]models.FundingRate, error) {
	return s.rates, s.err
}

func (s *stubFundingClient) Close() error {
	s.closed = true
	return nil
}

func TestCollectMarkets(t *testing.T) {
	polymarket := &stubMarketClient{
		venue:   "polymarket",
		markets: []models.Market{{ID: "pm-1", Venue: "polymarket"}},
	}
	kalshi := &stubMarketClient{
		venue:   "kalshi",
		markets: []models.Market{{ID: "k-1", Venue: "kalshi"}, {ID: "k-2", Venue: "kalshi"}},
	}

	agg := NewAggregator([]MarketClient{polymarket, kalshi}, nil, testLogger())

	snapshot := agg.CollectMarkets(context.Background(), 10)

	require.Len(t, snapshot, 2)
	assert.Len(t, snapshot["polymarket"], 1)
	assert.Len(t, snapshot["kalshi"], 2)
}

func TestCollectMarketsFailSoft(t *testing.T) {
	healthy := &stubMarketClient{
		venue:   "kalshi",
		markets: []models.Market{{ID: "k-1", Venue: "kalshi"}},
	}
	broken := &stubMarketClient{
		venue: "polymarket",
		err:   errors.New("gateway timeout"),
	}

	agg := NewAggregator([]MarketClient{healthy, broken}, nil, testLogger())

	snapshot := agg.CollectMarkets(context.Background(), 10)

	// The failed venue still appears, with an empty listing set.
	require.Len(t, snapshot, 2)
	assert.Len(t, snapshot["kalshi"], 1)
	assert.NotNil(t, snapshot["polymarket"])
	assert.Empty(t, snapshot["polymarket"])
}

func TestCollectPerpMarketsFailSoft(t *testing.T) {
	healthy := &stubFundingClient{
		venue: "dYdX",
		perps: []models.PerpMarket{
			{ID: "BTC-USD", Symbol: "BTC/USD", Venue: "dYdX", IsActive: true},
			{ID: "ETH-USD", Symbol: "ETH/USD", Venue: "dYdX", IsActive: true},
		},
	}
	broken := &stubFundingClient{
		venue: "Hyperliquid",
		err:   errors.New("connection refused"),
	}

	agg := NewAggregator(nil, []FundingClient{healthy, broken}, testLogger())

	snapshot := agg.CollectPerpMarkets(context.Background(), 10)

	require.Len(t, snapshot, 2)
	assert.Len(t, snapshot["dYdX"], 2)
	assert.NotNil(t, snapshot["Hyperliquid"])
	assert.Empty(t, snapshot["Hyperliquid"])
}

func TestCollectFundingRatesFailSoft(t *testing.T) {
	healthy := &stubFundingClient{
		venue: "dYdX",
		rates: []models.FundingRate{{Symbol: "BTC-USD", FundingRate: decimal.NewFromFloat(0.001)}},
	}
	broken := &stubFundingClient{
		venue: "Hyperliquid",
		err:   errors.New("connection refused"),
	}

	agg := NewAggregator(nil, []FundingClient{healthy, broken}, testLogger())

	snapshot := agg.CollectFundingRates(context.Background())

	require.Len(t, snapshot, 2)
	assert.Len(t, snapshot["dYdX"], 1)
	assert.NotNil(t, snapshot["Hyperliquid"])
	assert.Empty(t, snapshot["Hyperliquid"])
}

func TestAggregatorVenueListings(t *testing.T) {
	agg := NewAggregator(
		[]MarketClient{
			&stubMarketClient{venue: "polymarket"},
			&stubMarketClient{venue: "kalshi"},
		},
		[]FundingClient{&stubFundingClient{venue: "dYdX"}},
		testLogger(),
	)

	assert.Equal(t, []string{"polymarket", "kalshi"}, agg.MarketVenues())
	assert.Equal(t, []string{"dYdX"}, agg.FundingVenues())
}

func TestAggregatorClose(t *testing.T) {
	market := &stubMarketClient{venue: "polymarket"}
	funding := &stubFundingClient{venue: "dYdX"}

	agg := NewAggregator([]MarketClient{market}, []FundingClient{funding}, testLogger())

	require.NoError(t, agg.Close())
	assert.True(t, market.closed)
	assert.True(t, funding.closed)
}

package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arbscan/arbscan-go/internal/exchange"
	"github.com/arbscan/arbscan-go/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubMarketClient struct {
	venue   string
	markets []models.Market
	err     error
}

func (s *stubMarketClient) Venue() string { return s.venue }

func (s *stubMarketClient) GetMarkets(ctx context.Context, limit int) ([]models.Market, error) {
	return s.markets, s.err
}

func (s *stubMarketClient) Close() error { return nil }

type stubFundingClient struct {
	venue string
	perps []models.PerpMarket
	rates []models.FundingRate
	err   error
}

func (s *stubFundingClient) Venue() string { return s.venue }

func (s *stubFundingClient) GetMarkets(ctx context.Context, limit int) ([]models.PerpMarket, error) {
	return s.perps, s.err
}

func (s *stubFundingClient) GetFundingRates(ctx context.Context) ([]models.FundingRate, error) {
	return s.rates, s.err
}

func (s *stubFundingClient) Close() error { return nil }

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func stubSnapshots(markets []exchange.MarketClient, funding []exchange.FundingClient) *Snapshots {
	return NewSnapshots(exchange.NewAggregator(markets, funding, quietLogger()), nil)
}

func binaryMarket(id, venue, question string, yes, no float64) models.Market {
	return models.Market{
		ID:       id,
		Question: question,
		Outcomes: []string{"Yes", "No"},
		Prices:   map[string]float64{"Yes": yes, "No": no},
		Venue:    venue,
	}
}

func performRequest(router *gin.Engine, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestGetMarkets(t *testing.T) {
	snapshots := stubSnapshots([]exchange.MarketClient{
		&stubMarketClient{venue: "polymarket", markets: []models.Market{
			binaryMarket("pm-1", "polymarket", "Will BTC reach $100k?", 0.62, 0.38),
		}},
		&stubMarketClient{venue: "kalshi", markets: []models.Market{
			binaryMarket("k-1", "kalshi", "Will BTC reach $100k?", 0.60, 0.40),
			binaryMarket("k-2", "kalshi", "Fed cuts in March?", 0.30, 0.70),
		}},
	}, []exchange.FundingClient{
		&stubFundingClient{venue: "dYdX", perps: []models.PerpMarket{
			{
				ID:            "BTC-USD",
				Symbol:        "BTC/USD",
				BaseCurrency:  "BTC",
				QuoteCurrency: "USD",
				Venue:         "dYdX",
				IsActive:      true,
				MinOrderSize:  0.001,
				MaxLeverage:   20,
			},
		}},
	})

	handler := NewMarketHandler(snapshots, quietLogger())
	router := gin.New()
	router.GET("/markets", handler.GetMarkets)

	w := performRequest(router, "/markets")
	require.Equal(t, http.StatusOK, w.Code)

	var resp MarketsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 4, resp.Total)
	assert.Len(t, resp.Venues["polymarket"], 1)
	assert.Len(t, resp.Venues["kalshi"], 2)
	require.Len(t, resp.PerpVenues["dYdX"], 1)
	assert.Equal(t, "BTC/USD", resp.PerpVenues["dYdX"][0].Symbol)
}

func TestGetMarketsFailedVenueContributesEmpty(t *testing.T) {
	snapshots := stubSnapshots([]exchange.MarketClient{
		&stubMarketClient{venue: "polymarket", err: errors.New("gateway timeout")},
		&stubMarketClient{venue: "kalshi", markets: []models.Market{
			binaryMarket("k-1", "kalshi", "Will BTC reach $100k?", 0.60, 0.40),
		}},
	}, nil)

	handler := NewMarketHandler(snapshots, quietLogger())
	router := gin.New()
	router.GET("/markets", handler.GetMarkets)

	w := performRequest(router, "/markets")
	require.Equal(t, http.StatusOK, w.Code)

	var resp MarketsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Total)
	assert.Contains(t, resp.Venues, "polymarket")
	assert.Empty(t, resp.Venues["polymarket"])
}

func TestGetMarketsInvalidLimit(t *testing.T) {
	handler := NewMarketHandler(stubSnapshots(nil, nil), quietLogger())
	router := gin.New()
	router.GET("/markets", handler.GetMarkets)

	for _, target := range []string{"/markets?limit=abc", "/markets?limit=0", "/markets?limit=-5"} {
		w := performRequest(router, target)
		assert.Equal(t, http.StatusBadRequest, w.Code, target)
		assert.Contains(t, w.Body.String(), "Invalid limit parameter")
	}
}

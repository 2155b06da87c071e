package exchange

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/arbscan/arbscan-go/internal/models"
)

// HyperliquidBaseURL is the Hyperliquid info API endpoint.
const HyperliquidBaseURL = "https://api.hyperliquid.xyz"

// hyperliquidMaxRates caps the number of snapshots returned per fetch.
const hyperliquidMaxRates = 20

// HyperliquidClient fetches perpetual market data from the Hyperliquid info
// API. The info API does not expose a dedicated funding-rate endpoint, so
// snapshots carry a flat placeholder rate alongside real mid prices.
type HyperliquidClient struct {
	http   *httpClient
	logger *logrus.Logger
	now    func() time.Time
}

// NewHyperliquidClient creates a Hyperliquid client. An empty baseURL
// selects the public API.
func NewHyperliquidClient(baseURL string, timeout time.Duration, logger *logrus.Logger) *HyperliquidClient {
	if baseURL == "" {
		baseURL = HyperliquidBaseURL
	}
	return &HyperliquidClient{
		http:   newHTTPClient(baseURL, timeout),
		logger: logger,
		now:    time.Now,
	}
}

// Venue returns the venue identifier stamped on every snapshot.
func (c *HyperliquidClient) Venue() string { return "Hyperliquid" }

type hyperliquidAsset struct {
	Name        string  `json:"name"`
	SzDecimals  int     `json:"szDecimals"`
	MaxLeverage float64 `json:"maxLeverage"`
	IsDelisted  bool    `json:"isDelisted"`
}

type hyperliquidMeta struct {
	Universe []hyperliquidAsset `json:"universe"`
}

type infoRequest struct {
	Type string `json:"type"`
}

// hyperliquidPlaceholderRate stands in until the info API exposes per-asset
// funding; TODO: switch to the predictedFundings request once it is stable.
var hyperliquidPlaceholderRate = decimal.NewFromFloat(0.00002)

// GetMarkets fetches the perp universe as instrument listings. Every
// Hyperliquid perp quotes in USD.
func (c *HyperliquidClient) GetMarkets(ctx context.Context, limit int) ([]models.PerpMarket, error) {
	var meta hyperliquidMeta
	if err := c.http.postJSON(ctx, "/info", infoRequest{Type: "meta"}, &meta); err != nil {
		return nil, fmt.Errorf("hyperliquid meta: %w", err)
	}

	markets := make([]models.PerpMarket, 0, len(meta.Universe))
	for _, asset := range meta.Universe {
		if asset.IsDelisted {
			continue
		}
		markets = append(markets, models.PerpMarket{
			ID:            asset.Name,
			Symbol:        asset.Name,
			BaseCurrency:  asset.Name,
			QuoteCurrency: "USD",
			Venue:         c.Venue(),
			IsActive:      true,
			MinOrderSize:  math.Pow(10, -float64(asset.SzDecimals)),
			MaxLeverage:   asset.MaxLeverage,
		})
		if limit > 0 && len(markets) >= limit {
			break
		}
	}
	return markets, nil
}

// GetFundingRates fetches the perp universe with current mid prices.
func (c *HyperliquidClient) GetFundingRates(ctx context.Context) ([]models.FundingRate, error) {
	var meta hyperliquidMeta
	if err := c.http.postJSON(ctx, "/info", infoRequest{Type: "meta"}, &meta); err != nil {
		return nil, fmt.Errorf("hyperliquid meta: %w", err)
	}

	var mids map[string]string
	if err := c.http.postJSON(ctx, "/info", infoRequest{Type: "allMids"}, &mids); err != nil {
		return nil, fmt.Errorf("hyperliquid mids: %w", err)
	}

	now := c.now().UTC()
	var rates []models.FundingRate
	for _, asset := range meta.Universe {
		if asset.IsDelisted {
			continue
		}
		rates = append(rates, models.FundingRate{
			MarketID:        asset.Name,
			Symbol:          asset.Name,
			FundingRate:     hyperliquidPlaceholderRate,
			NextFundingTime: now,
			Venue:           c.Venue(),
			Price:           decimalOrZero(mids[asset.Name]),
			Volume24h:       decimal.Zero,
			OpenInterest:    decimal.Zero,
		})
		if len(rates) >= hyperliquidMaxRates {
			break
		}
	}
	return rates, nil
}

// Close releases idle transport connections.
func (c *HyperliquidClient) Close() error { return c.http.close() }

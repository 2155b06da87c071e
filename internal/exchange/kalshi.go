package exchange

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/arbscan/arbscan-go/internal/models"
)

// KalshiBaseURL is the Kalshi trade API endpoint.
const KalshiBaseURL = "https://api.elections.kalshi.com/trade-api/v2"

// KalshiClient fetches open markets from the Kalshi trade API. Every Kalshi
// market is a Yes/No contract, so the outcome set is fixed.
type KalshiClient struct {
	http   *httpClient
	apiKey string
	logger *logrus.Logger
}

// NewKalshiClient creates a Kalshi client. An empty baseURL selects the
// public API; apiKey is optional.
func NewKalshiClient(baseURL, apiKey string, timeout time.Duration, logger *logrus.Logger) *KalshiClient {
	if baseURL == "" {
		baseURL = KalshiBaseURL
	}
	return &KalshiClient{
		http:   newHTTPClient(baseURL, timeout),
		apiKey: apiKey,
		logger: logger,
	}
}

// Venue returns the venue identifier stamped on every listing.
func (c *KalshiClient) Venue() string { return "kalshi" }

type kalshiMarket struct {
	Ticker string   `json:"ticker"`
	Title  string   `json:"title"`
	YesBid *float64 `json:"yes_bid"`
	NoBid  *float64 `json:"no_bid"`
	Volume float64  `json:"volume"`
}

type kalshiMarketsResponse struct {
	Markets []kalshiMarket `json:"markets"`
}

// GetMarkets fetches open markets, normalized into listing snapshots.
func (c *KalshiClient) GetMarkets(ctx context.Context, limit int) ([]models.Market, error) {
	query := url.Values{
		"limit":  {strconv.Itoa(limit)},
		"status": {"open"},
	}
	headers := http.Header{}
	if c.apiKey != "" {
		headers.Set("Authorization", "Bearer "+c.apiKey)
	}

	var resp kalshiMarketsResponse
	if err := c.http.getJSON(ctx, "/markets", query, headers, &resp); err != nil {
		return nil, fmt.Errorf("kalshi markets: %w", err)
	}

	markets := make([]models.Market, 0, len(resp.Markets))
	for _, m := range resp.Markets {
		markets = append(markets, models.Market{
			ID:       m.Ticker,
			Question: m.Title,
			Outcomes: []string{"Yes", "No"},
			Prices: map[string]float64{
				"Yes": priceOrNeutral(m.YesBid),
				"No":  priceOrNeutral(m.NoBid),
			},
			Volume: m.Volume,
			Venue:  c.Venue(),
			URL:    "https://kalshi.com/markets/" + m.Ticker,
		})
	}
	return markets, nil
}

// Close releases idle transport connections.
func (c *KalshiClient) Close() error { return c.http.close() }

func priceOrNeutral(p *float64) float64 {
	if p == nil {
		return models.NeutralPrice
	}
	return *p
}

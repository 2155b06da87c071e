package exchange

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/arbscan/arbscan-go/internal/models"
)

// DYDXBaseURL is the dYdX v3 REST API endpoint.
const DYDXBaseURL = "https://api.dydx.exchange"

// dYdX settles funding every 8 hours at 00:00, 08:00 and 16:00 UTC.
const dydxFundingInterval = 8

// DYDXClient fetches perpetual funding rates from the dYdX v3 API.
type DYDXClient struct {
	http   *httpClient
	logger *logrus.Logger
	now    func() time.Time
}

// NewDYDXClient creates a dYdX client. An empty baseURL selects the public
// API.
func NewDYDXClient(baseURL string, timeout time.Duration, logger *logrus.Logger) *DYDXClient {
	if baseURL == "" {
		baseURL = DYDXBaseURL
	}
	return &DYDXClient{
		http:   newHTTPClient(baseURL, timeout),
		logger: logger,
		now:    time.Now,
	}
}

// Venue returns the venue identifier stamped on every snapshot.
func (c *DYDXClient) Venue() string { return "dYdX" }

// dYdX quotes every numeric field as a JSON string.
type dydxMarket struct {
	ID                 string `json:"id"`
	Market             string `json:"market"`
	Type               string `json:"type"`
	Status             string `json:"status"`
	BaseAsset          string `json:"baseAsset"`
	QuoteAsset         string `json:"quoteAsset"`
	MinOrderSize       string `json:"minOrderSize"`
	MaxLeverage        string `json:"maxLeverage"`
	NextFundingRate    string `json:"nextFundingRate"`
	CurrentFundingRate string `json:"currentFundingRate"`
	OraclePrice        string `json:"oraclePrice"`
	IndexPrice         string `json:"indexPrice"`
	Volume24H          string `json:"volume24H"`
	OpenInterest       string `json:"openInterest"`
}

type dydxMarketsResponse struct {
	Markets map[string]dydxMarket `json:"markets"`
}

// GetMarkets fetches the perpetual instrument listings.
func (c *DYDXClient) GetMarkets(ctx context.Context, limit int) ([]models.PerpMarket, error) {
	var resp dydxMarketsResponse
	if err := c.http.getJSON(ctx, "/v3/markets", nil, nil, &resp); err != nil {
		return nil, fmt.Errorf("dydx markets: %w", err)
	}

	markets := make([]models.PerpMarket, 0, len(resp.Markets))
	for _, name := range sortedMarketNames(resp.Markets) {
		m := resp.Markets[name]
		if m.Type != "PERPETUAL" {
			continue
		}
		base, quote := splitDYDXPair(m.Market)
		if m.BaseAsset != "" {
			base = m.BaseAsset
		}
		if m.QuoteAsset != "" {
			quote = m.QuoteAsset
		}
		markets = append(markets, models.PerpMarket{
			ID:            m.ID,
			Symbol:        strings.ReplaceAll(m.Market, "-", "/"),
			BaseCurrency:  base,
			QuoteCurrency: quote,
			Venue:         c.Venue(),
			IsActive:      m.Status == "ONLINE",
			MinOrderSize:  floatOrZero(m.MinOrderSize),
			MaxLeverage:   floatOrZero(m.MaxLeverage),
		})
		if limit > 0 && len(markets) >= limit {
			break
		}
	}
	return markets, nil
}

// splitDYDXPair derives base/quote currencies from a BTC-USD style pair
// name; a name without a separator quotes in USD.
func splitDYDXPair(pair string) (string, string) {
	parts := strings.SplitN(pair, "-", 2)
	if len(parts) == 2 {
		return parts[0], parts[1]
	}
	return pair, "USD"
}

func sortedMarketNames(markets map[string]dydxMarket) []string {
	names := make([]string, 0, len(markets))
	for name := range markets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func floatOrZero(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// GetFundingRates fetches current funding rates for all perpetual markets.
func (c *DYDXClient) GetFundingRates(ctx context.Context) ([]models.FundingRate, error) {
	var resp dydxMarketsResponse
	if err := c.http.getJSON(ctx, "/v3/markets", nil, nil, &resp); err != nil {
		return nil, fmt.Errorf("dydx markets: %w", err)
	}

	now := c.now().UTC()
	nextFunding := nextFundingWindow(now)

	rates := make([]models.FundingRate, 0, len(resp.Markets))
	for marketID, m := range resp.Markets {
		if m.Type != "PERPETUAL" {
			continue
		}

		rate := decimalOrZero(m.NextFundingRate)
		if current := decimalOrZero(m.CurrentFundingRate); !current.IsZero() {
			rate = current
		}

		price := decimalOrZero(m.OraclePrice)
		if price.IsZero() {
			price = decimalOrZero(m.IndexPrice)
		}

		rates = append(rates, models.FundingRate{
			MarketID:        marketID,
			Symbol:          strings.ReplaceAll(m.Market, "-", "/"),
			FundingRate:     rate,
			NextFundingTime: nextFunding,
			Venue:           c.Venue(),
			Price:           price,
			Volume24h:       decimalOrZero(m.Volume24H),
			OpenInterest:    decimalOrZero(m.OpenInterest),
		})
	}
	return rates, nil
}

// Close releases idle transport connections.
func (c *DYDXClient) Close() error { return c.http.close() }

// nextFundingWindow returns the next 8-hour UTC funding boundary after now.
func nextFundingWindow(now time.Time) time.Time {
	hour := ((now.Hour() / dydxFundingInterval) + 1) * dydxFundingInterval
	day := now
	if hour >= 24 {
		hour = 0
		day = now.Add(24 * time.Hour)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, time.UTC)
}

func decimalOrZero(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

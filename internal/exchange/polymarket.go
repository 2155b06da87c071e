package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/arbscan/arbscan-go/internal/models"
)

// PolymarketBaseURL is the Polymarket gamma API endpoint.
const PolymarketBaseURL = "https://gamma-api.polymarket.com"

// PolymarketClient fetches active markets from the Polymarket gamma API. The
// events endpoint is tried first since it is the more stable surface; the
// flat markets endpoint serves as fallback.
type PolymarketClient struct {
	http   *httpClient
	apiKey string
	logger *logrus.Logger
}

// NewPolymarketClient creates a Polymarket client. An empty baseURL selects
// the public gamma API; apiKey is optional.
func NewPolymarketClient(baseURL, apiKey string, timeout time.Duration, logger *logrus.Logger) *PolymarketClient {
	if baseURL == "" {
		baseURL = PolymarketBaseURL
	}
	return &PolymarketClient{
		http:   newHTTPClient(baseURL, timeout),
		apiKey: apiKey,
		logger: logger,
	}
}

// Venue returns the venue identifier stamped on every listing.
func (c *PolymarketClient) Venue() string { return "polymarket" }

type gammaMarket struct {
	ID            string        `json:"id"`
	ConditionID   string        `json:"condition_id"`
	Question      string        `json:"question"`
	Slug          string        `json:"slug"`
	Outcomes      []string      `json:"outcomes"`
	OutcomePrices []json.Number `json:"outcomePrices"`
	Volume        json.Number   `json:"volume"`
}

type gammaEvent struct {
	Slug    string        `json:"slug"`
	Title   string        `json:"title"`
	Markets []gammaMarket `json:"markets"`
}

// GetMarkets fetches open markets, normalized into listing snapshots.
func (c *PolymarketClient) GetMarkets(ctx context.Context, limit int) ([]models.Market, error) {
	query := url.Values{
		"limit":  {strconv.Itoa(limit)},
		"closed": {"false"},
	}

	var events []gammaEvent
	if err := c.http.getJSON(ctx, "/events", query, c.headers(), &events); err == nil && len(events) > 0 {
		return c.fromEvents(events), nil
	} else if err != nil {
		c.logger.WithError(err).Warn("polymarket events endpoint failed, trying markets endpoint")
	}

	var raw []gammaMarket
	if err := c.http.getJSON(ctx, "/markets", query, c.headers(), &raw); err != nil {
		return nil, fmt.Errorf("polymarket markets: %w", err)
	}

	markets := make([]models.Market, 0, len(raw))
	for _, m := range raw {
		markets = append(markets, models.Market{
			ID:       m.ConditionID,
			Question: m.Question,
			Outcomes: m.Outcomes,
			Prices:   extractPrices(m.Outcomes, m.OutcomePrices),
			Volume:   numberOrZero(m.Volume),
			Venue:    c.Venue(),
			URL:      "https://polymarket.com/event/" + m.Slug,
		})
	}
	return markets, nil
}

func (c *PolymarketClient) fromEvents(events []gammaEvent) []models.Market {
	var markets []models.Market
	for _, event := range events {
		for _, m := range event.Markets {
			prices := extractPrices(m.Outcomes, m.OutcomePrices)
			if len(prices) == 0 {
				continue
			}
			question := m.Question
			if question == "" {
				question = event.Title
			}
			markets = append(markets, models.Market{
				ID:       m.ID,
				Question: question,
				Outcomes: m.Outcomes,
				Prices:   prices,
				Volume:   numberOrZero(m.Volume),
				Venue:    c.Venue(),
				URL:      "https://polymarket.com/event/" + event.Slug,
			})
		}
	}
	return markets
}

// Close releases idle transport connections.
func (c *PolymarketClient) Close() error { return c.http.close() }

func (c *PolymarketClient) headers() http.Header {
	headers := http.Header{"User-Agent": {"arbscan/1.0"}}
	if c.apiKey != "" {
		headers.Set("Authorization", "Bearer "+c.apiKey)
	}
	return headers
}

// extractPrices aligns outcome labels with their quoted prices. Missing or
// unparseable quotes default to the neutral price; a market without any
// labels gets the neutral Yes/No book.
func extractPrices(outcomes []string, quoted []json.Number) map[string]float64 {
	if len(outcomes) == 0 {
		return map[string]float64{"Yes": models.NeutralPrice, "No": models.NeutralPrice}
	}
	prices := make(map[string]float64, len(outcomes))
	for i, outcome := range outcomes {
		price := models.NeutralPrice
		if i < len(quoted) {
			if v, err := quoted[i].Float64(); err == nil {
				price = v
			}
		}
		prices[outcome] = price
	}
	return prices
}

func numberOrZero(n json.Number) float64 {
	v, err := n.Float64()
	if err != nil {
		return 0
	}
	return v
}

package exchange

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/arbscan/arbscan-go/internal/models"
)

// ManifoldBaseURL is the Manifold Markets public API endpoint.
const ManifoldBaseURL = "https://api.manifold.markets/v0"

// ManifoldClient fetches markets from the Manifold API. Only unresolved
// binary markets are kept; Manifold quotes a single probability so the No
// price is its complement.
type ManifoldClient struct {
	http   *httpClient
	logger *logrus.Logger
}

// NewManifoldClient creates a Manifold client. An empty baseURL selects the
// public API.
func NewManifoldClient(baseURL string, timeout time.Duration, logger *logrus.Logger) *ManifoldClient {
	if baseURL == "" {
		baseURL = ManifoldBaseURL
	}
	return &ManifoldClient{
		http:   newHTTPClient(baseURL, timeout),
		logger: logger,
	}
}

// Venue returns the venue identifier stamped on every listing.
func (c *ManifoldClient) Venue() string { return "manifold" }

type manifoldMarket struct {
	ID          string   `json:"id"`
	Question    string   `json:"question"`
	OutcomeType string   `json:"outcomeType"`
	IsResolved  bool     `json:"isResolved"`
	Probability *float64 `json:"probability"`
	Volume      float64  `json:"volume"`
	URL         string   `json:"url"`
}

// GetMarkets fetches open binary markets, normalized into listing snapshots.
func (c *ManifoldClient) GetMarkets(ctx context.Context, limit int) ([]models.Market, error) {
	query := url.Values{"limit": {strconv.Itoa(limit)}}

	var raw []manifoldMarket
	if err := c.http.getJSON(ctx, "/markets", query, nil, &raw); err != nil {
		return nil, fmt.Errorf("manifold markets: %w", err)
	}

	var markets []models.Market
	for _, m := range raw {
		if m.OutcomeType != "BINARY" || m.IsResolved {
			continue
		}
		probability := priceOrNeutral(m.Probability)
		markets = append(markets, models.Market{
			ID:       m.ID,
			Question: m.Question,
			Outcomes: []string{"Yes", "No"},
			Prices: map[string]float64{
				"Yes": probability,
				"No":  1 - probability,
			},
			Volume: m.Volume,
			Venue:  c.Venue(),
			URL:    m.URL,
		})
	}
	return markets, nil
}

// Close releases idle transport connections.
func (c *ManifoldClient) Close() error { return c.http.close() }

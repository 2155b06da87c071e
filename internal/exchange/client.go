package exchange

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/arbscan/arbscan-go/internal/models"
)

// MarketClient fetches binary-outcome prediction markets from one venue.
// Implementations normalize venue payloads into models.Market and own their
// transport resources.
type MarketClient interface {
	Venue() string
	GetMarkets(ctx context.Context, limit int) ([]models.Market, error)
	Close() error
}

// FundingClient fetches perpetual instrument listings and funding-rate
// snapshots from one venue.
type FundingClient interface {
	Venue() string
	GetMarkets(ctx context.Context, limit int) ([]models.PerpMarket, error)
	GetFundingRates(ctx context.Context) ([]models.FundingRate, error)
	Close() error
}

const defaultTimeout = 30 * time.Second

// httpClient is the shared REST transport for venue clients.
type httpClient struct {
	client  *http.Client
	baseURL string
}

func newHTTPClient(baseURL string, timeout time.Duration) *httpClient {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &httpClient{
		client:  &http.Client{Timeout: timeout},
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

func (c *httpClient) getJSON(ctx context.Context, path string, query url.Values, headers http.Header, out interface{}) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	for key, values := range headers {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	return c.do(req, out)
}

func (c *httpClient) postJSON(ctx context.Context, path string, body interface{}, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out)
}

func (c *httpClient) do(req *http.Request, out interface{}) error {
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *httpClient) close() error {
	c.client.CloseIdleConnections()
	return nil
}

package exchange

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKalshiGetMarkets(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/markets", r.URL.Path)
		assert.Equal(t, "open", r.URL.Query().Get("status"))
		assert.Equal(t, "25", r.URL.Query().Get("limit"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"markets": [
				{
					"ticker": "BTC-100K-DEC",
					"title": "Will BTC reach $100k by December?",
					"yes_bid": 0.62,
					"no_bid": 0.36,
					"volume": 4200
				},
				{
					"ticker": "FED-CUT-MAR",
					"title": "Fed cuts rates in March?",
					"volume": 100
				}
			]
		}`))
	}))
	defer server.Close()

	client := NewKalshiClient(server.URL, "", 0, testLogger())
	defer func() { _ = client.Close() }()

	markets, err := client.GetMarkets(context.Background(), 25)
	require.NoError(t, err)
	require.Len(t, markets, 2)

	first := markets[0]
	assert.Equal(t, "BTC-100K-DEC", first.ID)
	assert.Equal(t, "kalshi", first.Venue)
	assert.Equal(t, []string{"Yes", "No"}, first.Outcomes)
	assert.Equal(t, 0.62, first.Prices["Yes"])
	assert.Equal(t, 0.36, first.Prices["No"])
	assert.Equal(t, 4200.0, first.Volume)
	assert.Equal(t, "https://kalshi.com/markets/BTC-100K-DEC", first.URL)

	// Missing bids fall back to the neutral price.
	second := markets[1]
	assert.Equal(t, 0.5, second.Prices["Yes"])
	assert.Equal(t, 0.5, second.Prices["No"])
}

func TestKalshiSendsAPIKey(t *testing.T) {
	var authHeader string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"markets": []}`))
	}))
	defer server.Close()

	client := NewKalshiClient(server.URL, "key-123", 0, testLogger())
	defer func() { _ = client.Close() }()

	markets, err := client.GetMarkets(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, markets)
	assert.Equal(t, "Bearer key-123", authHeader)
}

func TestKalshiGetMarketsServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewKalshiClient(server.URL, "", 0, testLogger())
	defer func() { _ = client.Close() }()

	_, err := client.GetMarkets(context.Background(), 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

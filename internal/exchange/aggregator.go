package exchange

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/arbscan/arbscan-go/internal/models"
)

// Aggregator fans snapshot fetches out across venue clients and collects
// them into the per-venue maps the matchers consume. The contract is fail
// soft: a venue whose fetch errors contributes an empty set and aggregation
// itself never fails.
type Aggregator struct {
	markets []MarketClient
	funding []FundingClient
	logger  *logrus.Logger
}

// NewAggregator wires the configured venue clients together.
func NewAggregator(markets []MarketClient, funding []FundingClient, logger *logrus.Logger) *Aggregator {
	if logger == nil {
		logger = logrus.New()
	}
	return &Aggregator{markets: markets, funding: funding, logger: logger}
}

// MarketVenues lists the configured prediction-market venue names.
func (a *Aggregator) MarketVenues() []string {
	names := make([]string, 0, len(a.markets))
	for _, client := range a.markets {
		names = append(names, client.Venue())
	}
	return names
}

// FundingVenues lists the configured funding-rate venue names.
func (a *Aggregator) FundingVenues() []string {
	names := make([]string, 0, len(a.funding))
	for _, client := range a.funding {
		names = append(names, client.Venue())
	}
	return names
}

// CollectMarkets fetches every prediction-market venue concurrently and
// returns the venue→listings map. Matching needs all venues at once, so the
// call blocks until every fetch settles.
func (a *Aggregator) CollectMarkets(ctx context.Context, limit int) map[string][]models.Market {
	results := make(map[string][]models.Market, len(a.markets))
	var mu sync.Mutex

	var g errgroup.Group
	for _, client := range a.markets {
		client := client
		g.Go(func() error {
			markets, err := client.GetMarkets(ctx, limit)
			if err != nil {
				a.logger.WithError(err).WithField("venue", client.Venue()).
					Warn("market fetch failed, venue contributes no listings")
				markets = nil
			}
			if markets == nil {
				markets = []models.Market{}
			}
			mu.Lock()
			results[client.Venue()] = markets
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// CollectPerpMarkets fetches every perpetuals venue's instrument listings
// concurrently, with the same fail-soft contract as CollectMarkets.
func (a *Aggregator) CollectPerpMarkets(ctx context.Context, limit int) map[string][]models.PerpMarket {
	results := make(map[string][]models.PerpMarket, len(a.funding))
	var mu sync.Mutex

	var g errgroup.Group
	for _, client := range a.funding {
		client := client
		g.Go(func() error {
			markets, err := client.GetMarkets(ctx, limit)
			if err != nil {
				a.logger.WithError(err).WithField("venue", client.Venue()).
					Warn("perp market fetch failed, venue contributes no listings")
				markets = nil
			}
			if markets == nil {
				markets = []models.PerpMarket{}
			}
			mu.Lock()
			results[client.Venue()] = markets
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// CollectFundingRates fetches every funding-rate venue concurrently and
// returns the venue→rates map, with the same fail-soft contract as
// CollectMarkets.
func (a *Aggregator) CollectFundingRates(ctx context.Context) map[string][]models.FundingRate {
	results := make(map[string][]models.FundingRate, len(a.funding))
	var mu sync.Mutex

	var g errgroup.Group
	for _, client := range a.funding {
		client := client
		g.Go(func() error {
			rates, err := client.GetFundingRates(ctx)
			if err != nil {
				a.logger.WithError(err).WithField("venue", client.Venue()).
					Warn("funding rate fetch failed, venue contributes no rates")
				rates = nil
			}
			if rates == nil {
				rates = []models.FundingRate{}
			}
			mu.Lock()
			results[client.Venue()] = rates
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// Close shuts down every venue client, returning the first error seen.
func (a *Aggregator) Close() error {
	var firstErr error
	for _, client := range a.markets {
		if err := client.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	for _, client := range a.funding {
		if err := client.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

package handlers

import (
	"context"
	"fmt"

	"github.com/arbscan/arbscan-go/internal/cache"
	"github.com/arbscan/arbscan-go/internal/exchange"
	"github.com/arbscan/arbscan-go/internal/models"
)

// Snapshots mediates venue fetches through the snapshot cache so concurrent
// requests within the TTL share one round of venue calls.
type Snapshots struct {
	aggregator *exchange.Aggregator
	cache      *cache.SnapshotCache
}

// NewSnapshots wires the aggregator behind the cache. A nil cache disables
// caching without changing behavior.
func NewSnapshots(aggregator *exchange.Aggregator, snapshotCache *cache.SnapshotCache) *Snapshots {
	return &Snapshots{aggregator: aggregator, cache: snapshotCache}
}

// Aggregator exposes the underlying aggregator for venue listings.
func (s *Snapshots) Aggregator() *exchange.Aggregator { return s.aggregator }

// Markets returns the per-venue prediction-market snapshot for a limit,
// cached for the configured TTL.
func (s *Snapshots) Markets(ctx context.Context, limit int) map[string][]models.Market {
	key := fmt.Sprintf("limit=%d", limit)
	if snapshot, ok := s.cache.GetMarkets(ctx, key); ok {
		return snapshot
	}
	snapshot := s.aggregator.CollectMarkets(ctx, limit)
	s.cache.SetMarkets(ctx, key, snapshot)
	return snapshot
}

// PerpMarkets returns the per-venue perpetual instrument listings for a
// limit, cached for the configured TTL.
func (s *Snapshots) PerpMarkets(ctx context.Context, limit int) map[string][]models.PerpMarket {
	key := fmt.Sprintf("limit=%d", limit)
	if snapshot, ok := s.cache.GetPerpMarkets(ctx, key); ok {
		return snapshot
	}
	snapshot := s.aggregator.CollectPerpMarkets(ctx, limit)
	s.cache.SetPerpMarkets(ctx, key, snapshot)
	return snapshot
}

// FundingRates returns the per-venue funding-rate snapshot, cached for the
// configured TTL.
func (s *Snapshots) FundingRates(ctx context.Context) map[string][]models.FundingRate {
	const key = "all"
	if snapshot, ok := s.cache.GetFundingRates(ctx, key); ok {
		return snapshot
	}
	snapshot := s.aggregator.CollectFundingRates(ctx)
	s.cache.SetFundingRates(ctx, key, snapshot)
	return snapshot
}

package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/arbscan/arbscan-go/internal/models"
)

// DefaultSnapshotTTL keeps venue snapshots just long enough to absorb a
// burst of identical requests.
const DefaultSnapshotTTL = 30 * time.Second

// SnapshotCache keeps recent venue snapshots in Redis so bursts of requests
// do not hammer the venue APIs. Entries are short-lived by design: this is a
// request-cycle cache, not a price history store. A nil cache (or nil redis
// client) is a valid no-op cache.
type SnapshotCache struct {
	redis  *redis.Client
	ttl    time.Duration
	prefix string
	logger *logrus.Logger
}

// NewSnapshotCache creates a snapshot cache on the given client. A nil
// client disables caching; a non-positive ttl selects DefaultSnapshotTTL.
func NewSnapshotCache(client *redis.Client, ttl time.Duration, logger *logrus.Logger) *SnapshotCache {
	if ttl <= 0 {
		ttl = DefaultSnapshotTTL
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &SnapshotCache{
		redis:  client,
		ttl:    ttl,
		prefix: "snapshot:",
		logger: logger,
	}
}

// GetMarkets returns a cached prediction-market snapshot, if present.
func (c *SnapshotCache) GetMarkets(ctx context.Context, key string) (map[string][]models.Market, bool) {
	var snapshot map[string][]models.Market
	if !c.get(ctx, "markets:"+key, &snapshot) {
		return nil, false
	}
	return snapshot, true
}

// SetMarkets stores a prediction-market snapshot under the given key.
func (c *SnapshotCache) SetMarkets(ctx context.Context, key string, snapshot map[string][]models.Market) {
	c.set(ctx, "markets:"+key, snapshot)
}

// GetPerpMarkets returns a cached perp-listing snapshot, if present.
func (c *SnapshotCache) GetPerpMarkets(ctx context.Context, key string) (map[string][]models.PerpMarket, bool) {
	var snapshot map[string][]models.PerpMarket
	if !c.get(ctx, "perps:"+key, &snapshot) {
		return nil, false
	}
	return snapshot, true
}

// SetPerpMarkets stores a perp-listing snapshot under the given key.
func (c *SnapshotCache) SetPerpMarkets(ctx context.Context, key string, snapshot map[string][]models.PerpMarket) {
	c.set(ctx, "perps:"+key, snapshot)
}

// GetFundingRates returns a cached funding-rate snapshot, if present.
func (c *SnapshotCache) GetFundingRates(ctx context.Context, key string) (map[string][]models.FundingRate, bool) {
	var snapshot map[string][]models.FundingRate
	if !c.get(ctx, "rates:"+key, &snapshot) {
		return nil, false
	}
	return snapshot, true
}

// SetFundingRates stores a funding-rate snapshot under the given key.
func (c *SnapshotCache) SetFundingRates(ctx context.Context, key string, snapshot map[string][]models.FundingRate) {
	c.set(ctx, "rates:"+key, snapshot)
}

func (c *SnapshotCache) get(ctx context.Context, key string, out interface{}) bool {
	if c == nil || c.redis == nil {
		return false
	}
	data, err := c.redis.Get(ctx, c.prefix+key).Bytes()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		c.logger.WithError(err).WithField("key", key).Warn("snapshot cache read failed")
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		c.logger.WithError(err).WithField("key", key).Warn("snapshot cache entry corrupt, ignoring")
		return false
	}
	return true
}

func (c *SnapshotCache) set(ctx context.Context, key string, value interface{}) {
	if c == nil || c.redis == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		c.logger.WithError(err).WithField("key", key).Warn("snapshot cache encode failed")
		return
	}
	if err := c.redis.Set(ctx, c.prefix+key, data, c.ttl).Err(); err != nil {
		c.logger.WithError(err).WithField("key", key).Warn("snapshot cache write failed")
	}
}

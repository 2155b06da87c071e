package matcher

import (
	"sort"
	"strings"

	"github.com/arbscan/arbscan-go/internal/models"
)

// NormalizeSymbol maps a raw venue ticker onto the canonical form used for
// cross-venue matching: uppercase with hyphens, underscores and surrounding
// whitespace removed. "BTC-USD", "btc_usd" and " BTCUSD " all normalize to
// "BTCUSD". Two tickers name the same instrument iff their normalized forms
// are identical.
func NormalizeSymbol(symbol string) string {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	s = strings.ReplaceAll(s, "-", "")
	return strings.ReplaceAll(s, "_", "")
}

// RateGroup holds one funding-rate snapshot per venue for a single
// normalized symbol.
type RateGroup struct {
	Symbol string
	Rates  map[string]models.FundingRate // keyed by venue name
}

// Venues returns the group's venue names in lexicographic order.
func (g RateGroup) Venues() []string {
	venues := make([]string, 0, len(g.Rates))
	for venue := range g.Rates {
		venues = append(venues, venue)
	}
	sort.Strings(venues)
	return venues
}

// GroupRatesBySymbol buckets per-venue funding rates by normalized symbol.
// When a venue reports the same normalized symbol more than once the later
// snapshot wins. Groups listed on fewer than two venues are discarded, so
// every returned group yields at least one candidate venue pair. Groups come
// back sorted by symbol for deterministic downstream iteration.
func GroupRatesBySymbol(ratesByVenue map[string][]models.FundingRate) []RateGroup {
	grouped := make(map[string]map[string]models.FundingRate)
	for _, venue := range sortedVenueNames(ratesByVenue) {
		for _, rate := range ratesByVenue[venue] {
			symbol := NormalizeSymbol(rate.Symbol)
			if symbol == "" {
				continue
			}
			if grouped[symbol] == nil {
				grouped[symbol] = make(map[string]models.FundingRate)
			}
			grouped[symbol][venue] = rate
		}
	}

	symbols := make([]string, 0, len(grouped))
	for symbol, byVenue := range grouped {
		if len(byVenue) >= 2 {
			symbols = append(symbols, symbol)
		}
	}
	sort.Strings(symbols)

	groups := make([]RateGroup, 0, len(symbols))
	for _, symbol := range symbols {
		groups = append(groups, RateGroup{Symbol: symbol, Rates: grouped[symbol]})
	}
	return groups
}

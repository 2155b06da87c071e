package matcher

import (
	"sort"
	"strings"

	"github.com/adrg/strutil/metrics"

	"github.com/arbscan/arbscan-go/internal/models"
)

// DefaultSimilarityThreshold is the minimum question-text similarity for two
// listings to be considered the same event.
const DefaultSimilarityThreshold = 0.75

var ratcliffObershelp = metrics.NewRatcliffObershelp()

// Similarity returns the Ratcliff/Obershelp ratio between two strings after
// case folding: the fraction of characters covered by matching contiguous
// blocks relative to the combined length. Symmetric, in [0,1], 1.0 for
// identical text.
func Similarity(a, b string) float64 {
	return ratcliffObershelp.Compare(strings.ToLower(a), strings.ToLower(b))
}

// MarketPair couples two listings from different venues judged to describe
// the same event.
type MarketPair struct {
	First  models.Market
	Second models.Market
}

// FindMatchingMarkets pairs listings across distinct venues whose question
// text similarity meets the threshold. The scan is exhaustive: every
// venue-pair combination, every listing-pair within it; a listing may appear
// in multiple pairs. Venues are visited in lexicographic order so output is
// deterministic for a given input. Fewer than two venues yields no pairs.
// A zero threshold is honored and matches every cross-venue pair; only a
// negative value selects the default.
func FindMatchingMarkets(marketsByVenue map[string][]models.Market, threshold float64) []MarketPair {
	if threshold < 0 {
		threshold = DefaultSimilarityThreshold
	}

	venues := sortedVenueNames(marketsByVenue)

	var pairs []MarketPair
	for i := 0; i < len(venues); i++ {
		for j := i + 1; j < len(venues); j++ {
			for _, m1 := range marketsByVenue[venues[i]] {
				for _, m2 := range marketsByVenue[venues[j]] {
					if Similarity(m1.Question, m2.Question) >= threshold {
						pairs = append(pairs, MarketPair{First: m1, Second: m2})
					}
				}
			}
		}
	}
	return pairs
}

func sortedVenueNames[T any](byVenue map[string][]T) []string {
	venues := make([]string, 0, len(byVenue))
	for venue := range byVenue {
		venues = append(venues, venue)
	}
	sort.Strings(venues)
	return venues
}

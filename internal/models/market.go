package models

// Market represents a snapshot of one binary-outcome prediction market
// listed on a venue. Snapshots are immutable once fetched; every pipeline
// stage works on copies.
type Market struct {
	ID       string             `json:"id"`
	Question string             `json:"question"`
	Outcomes []string           `json:"outcomes"`
	Prices   map[string]float64 `json:"prices"`
	Volume   float64            `json:"volume"`
	Venue    string             `json:"venue"`
	URL      string             `json:"url"`
}

// NeutralPrice is the price assumed for an outcome the venue did not quote.
const NeutralPrice = 0.5

// Price returns the quoted price for an outcome, falling back to the
// neutral 0.5 when the venue did not report one.
func (m Market) Price(outcome string) float64 {
	if price, ok := m.Prices[outcome]; ok {
		return price
	}
	return NeutralPrice
}

package models

// PerpMarket is a perpetual-futures instrument listing from one venue.
// Listing metadata only; the funding-rate snapshot for the same instrument
// is carried separately by FundingRate.
type PerpMarket struct {
	ID            string  `json:"id"`
	Symbol        string  `json:"symbol"`
	BaseCurrency  string  `json:"base_currency"`
	QuoteCurrency string  `json:"quote_currency"`
	Venue         string  `json:"venue"`
	IsActive      bool    `json:"is_active"`
	MinOrderSize  float64 `json:"min_order_size"`
	MaxLeverage   float64 `json:"max_leverage"`
}

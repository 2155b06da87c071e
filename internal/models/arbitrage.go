package models

// MarketSide is the venue/question/price projection of one leg of a matched
// prediction-market pair, embedded in the opportunity output.
type MarketSide struct {
	Venue    string             `json:"venue"`
	Question string             `json:"question"`
	URL      string             `json:"url"`
	Prices   map[string]float64 `json:"prices"`
}

// MarketArbitrage carries the computed figures for a matched pair.
type MarketArbitrage struct {
	Exists          bool    `json:"exists"`
	ROIPercentage   float64 `json:"roi_percentage"`
	ProfitPerDollar float64 `json:"profit_per_dollar"`
	Strategy        string  `json:"strategy"`
	Description     string  `json:"description"`
}

// MarketArbitrageOpportunity is the scored result of a matched
// prediction-market pair. Constructed once per scoring pass and never
// mutated afterwards.
type MarketArbitrageOpportunity struct {
	ID        string          `json:"id"`
	Market1   MarketSide      `json:"market1"`
	Market2   MarketSide      `json:"market2"`
	Arbitrage MarketArbitrage `json:"arbitrage"`
}

// Side projects a market snapshot into its opportunity representation.
func (m Market) Side() MarketSide {
	return MarketSide{
		Venue:    m.Venue,
		Question: m.Question,
		URL:      m.URL,
		Prices:   m.Prices,
	}
}

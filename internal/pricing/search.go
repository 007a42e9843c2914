package pricing

import (
	"math"

	"warehouse-pricing/internal/model"
)

// candidatePrices builds the fixed ten-candidate set around the current price
// and the competitor price. Order matters: when candidates score equally the
// earliest one wins, so the list must stay exactly as declared.
func candidatePrices(market model.MarketState, adjRange float64) []float64 {
	base := market.CurrentPrice
	comp := market.CompetitorPrice
	return []float64{
		base,
		base * (1 - adjRange*0.25),
		base * (1 - adjRange*0.50),
		base * (1 - adjRange*0.75),
		base * (1 + adjRange*0.25),
		base * (1 + adjRange*0.50),
		base * (1 + adjRange*0.75),
		comp,
		comp * 0.98,
		comp * 1.02,
	}
}

// SuggestPrice runs the gradient-free search: each candidate is floored at
// 0.01, rounded to cents, scored with the current price as the old price, and
// the strictly highest total reward wins. Repeated calls with the same inputs
// return the same price.
func (e *Engine) SuggestPrice(rec model.CatalogRecord, market model.MarketState) float64 {
	base := market.CurrentPrice
	best := base
	bestReward := math.Inf(-1)
	for _, cand := range candidatePrices(market, e.settings.PriceAdjustmentRange) {
		price := round2(math.Max(0.01, cand))
		if r := Reward(base, price, market, e.settings).Total; r > bestReward {
			bestReward = r
			best = price
		}
	}
	return round2(best)
}

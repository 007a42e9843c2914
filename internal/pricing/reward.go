// Package pricing implements the dynamic pricing engine: a multi-component
// reward function, a gradient-free candidate search, and a stochastic
// multi-step market rollout.
package pricing

import (
	"math"

	"warehouse-pricing/internal/model"
)

// costRatio is the fixed cost assumption: unit cost ≈ 60% of the current
// list price. Preserved as-is; no better-evidenced ratio exists.
const costRatio = 0.60

// baseDemand anchors the constant-elasticity demand curve.
const baseDemand = 100.0

// Healthy inventory band; outside it the inventory penalty grows
// quadratically toward stockout or overstock.
const (
	lowInventory  = 20
	highInventory = 400
)

// Breakdown carries the weighted total and the four raw reward components.
type Breakdown struct {
	Total       float64 `json:"total"`
	Profit      float64 `json:"profit"`
	Competitive float64 `json:"competitive"`
	Stability   float64 `json:"stability"`
	Inventory   float64 `json:"inventory"`
}

// Reward scores a candidate price against a market state:
//
//	R = α·profit − β·competitive − γ·stability − δ·inventory
//
// The profit component is normalized by max(1, current_price·100) to keep its
// magnitude comparable to the penalty terms.
func Reward(oldPrice, newPrice float64, market model.MarketState, s model.Settings) Breakdown {
	cost := market.CurrentPrice * costRatio

	d := demand(newPrice, market.CurrentPrice, market.DemandElasticity,
		market.SeasonalFactor, market.UserEngagement)
	profit := (newPrice - cost) * d
	rProfit := profit / math.Max(1, market.CurrentPrice*100)

	compDiff := math.Max(0, newPrice-market.CompetitorPrice)
	pCompetitive := sq(compDiff / math.Max(1, market.CompetitorPrice))

	pStability := sq(math.Abs(newPrice-oldPrice) / math.Max(1, oldPrice))

	pInventory := inventoryPenalty(market.InventoryLevel)

	total := s.Alpha*rProfit - s.Beta*pCompetitive - s.Gamma*pStability - s.Delta*pInventory
	return Breakdown{
		Total:       total,
		Profit:      rProfit,
		Competitive: pCompetitive,
		Stability:   pStability,
		Inventory:   pInventory,
	}
}

// demand models constant-elasticity demand scaled by season and engagement,
// floored at zero. Non-positive prices kill demand entirely.
func demand(price, basePrice, elasticity, seasonal, engagement float64) float64 {
	if basePrice <= 0 || price <= 0 {
		return 0
	}
	d := baseDemand * math.Pow(price/basePrice, elasticity) * seasonal * engagement
	return math.Max(0, d)
}

func inventoryPenalty(inv int) float64 {
	switch {
	case inv < lowInventory:
		return sq(float64(lowInventory-inv) / lowInventory)
	case inv > highInventory:
		return sq(float64(inv-highInventory) / highInventory)
	default:
		return 0
	}
}

func sq(x float64) float64 { return x * x }

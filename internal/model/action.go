package model

import "time"

// PricingAction records one simulation step's decision: the price move and
// the reward that justified it. Immutable once appended to a result.
type PricingAction struct {
	ProductID            int       `json:"product_id"`
	ProductName          string    `json:"product_name"`
	OldPrice             float64   `json:"old_price"`
	NewPrice             float64   `json:"new_price"`
	Reward               float64   `json:"reward"`
	ProfitComponent      float64   `json:"profit_component"`
	CompetitiveComponent float64   `json:"competitive_component"`
	StabilityComponent   float64   `json:"stability_component"`
	InventoryComponent   float64   `json:"inventory_component"`
	Step                 int       `json:"step"`
	Timestamp            time.Time `json:"timestamp"`
}

// PriceChangePct is the signed percentage move of this step.
func (a PricingAction) PriceChangePct() float64 {
	if a.OldPrice == 0 {
		return 0
	}
	return (a.NewPrice - a.OldPrice) / a.OldPrice * 100
}

// Direction is a display glyph for the price move.
func (a PricingAction) Direction() string {
	switch {
	case a.NewPrice > a.OldPrice:
		return "▲"
	case a.NewPrice < a.OldPrice:
		return "▼"
	default:
		return "━"
	}
}

// SimulationResult aggregates a full rollout. Price extrema cover the whole
// trace including the initial price.
type SimulationResult struct {
	ProductID    int             `json:"product_id"`
	ProductName  string          `json:"product_name"`
	Actions      []PricingAction `json:"actions"`
	TotalReward  float64         `json:"total_reward"`
	AvgReward    float64         `json:"avg_reward"`
	FinalPrice   float64         `json:"final_price"`
	InitialPrice float64         `json:"initial_price"`
	MaxPrice     float64         `json:"max_price"`
	MinPrice     float64         `json:"min_price"`
	Steps        int             `json:"steps"`
}

// PriceChangePct is the signed percentage move over the whole rollout.
func (r SimulationResult) PriceChangePct() float64 {
	if r.InitialPrice == 0 {
		return 0
	}
	return (r.FinalPrice - r.InitialPrice) / r.InitialPrice * 100
}

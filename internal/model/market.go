package model

import (
	"errors"
	"math"
	"math/rand"
	"time"
)

// MarketState describes the simulated market context a pricing decision
// reacts to. States are replaced, never mutated: each simulation step derives
// a fresh state from the previous one.
type MarketState struct {
	ProductID        int       `json:"product_id"`
	CurrentPrice     float64   `json:"current_price"`
	CompetitorPrice  float64   `json:"competitor_price"`
	InventoryLevel   int       `json:"inventory_level"`
	UserEngagement   float64   `json:"user_engagement"`   // 0..1
	SeasonalFactor   float64   `json:"seasonal_factor"`   // 0.3..2.5
	DemandElasticity float64   `json:"demand_elasticity"` // -3.0..-0.5
	Timestamp        time.Time `json:"timestamp"`
}

// ErrNonPositivePrice marks a market the pricing engine must not see:
// callers validate the base price before invoking a simulation.
var ErrNonPositivePrice = errors.New("market current price must be > 0")

func (m MarketState) Validate() error {
	if m.CurrentPrice <= 0 {
		return ErrNonPositivePrice
	}
	if m.InventoryLevel < 0 {
		return errors.New("inventory level must be >= 0")
	}
	if m.UserEngagement < 0 || m.UserEngagement > 1 {
		return errors.New("user engagement must be in [0, 1]")
	}
	if m.SeasonalFactor < 0.3 || m.SeasonalFactor > 2.5 {
		return errors.New("seasonal factor must be in [0.3, 2.5]")
	}
	if m.DemandElasticity < -3.0 || m.DemandElasticity > -0.5 {
		return errors.New("demand elasticity must be in [-3.0, -0.5]")
	}
	return nil
}

// NewMarketState generates the initial market for a record, seeded from the
// record's sample id so the same product always starts from the same market.
func NewMarketState(rec CatalogRecord) MarketState {
	return NewMarketStateSeeded(rec, int64(rec.SampleID))
}

// NewMarketStateSeeded generates the initial market from an explicit seed.
// Generation is deterministic: equal seeds produce equal states.
func NewMarketStateSeeded(rec CatalogRecord, seed int64) MarketState {
	rng := rand.New(rand.NewSource(seed))
	base := rec.Price
	if base <= 0 {
		base = 10.0
	}
	uniform := func(lo, hi float64) float64 { return lo + rng.Float64()*(hi-lo) }
	return MarketState{
		ProductID:        rec.SampleID,
		CurrentPrice:     base,
		CompetitorPrice:  round2(base * (1 + uniform(-0.20, 0.20))),
		InventoryLevel:   5 + rng.Intn(496), // 5..500
		UserEngagement:   round2(uniform(0.1, 1.0)),
		SeasonalFactor:   round2(uniform(0.5, 2.0)),
		DemandElasticity: round2(uniform(-3.0, -0.5)),
		Timestamp:        time.Now(),
	}
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

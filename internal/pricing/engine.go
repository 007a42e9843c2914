package pricing

import (
	"math"
	"math/rand"
	"time"
	"unicode/utf8"

	"warehouse-pricing/internal/model"
)

// DefaultSeed seeds the engine's generator. Rollouts are reproducible by
// construction: two engines built with the same seed produce identical traces
// for the same inputs, which the tests rely on.
const DefaultSeed = 42

// Engine evaluates candidate prices and evolves market state across
// simulation steps. All randomness flows through the single constructor-owned
// generator, never ambient rand. The engine is used sequentially, so no
// locking is needed.
//
// Precondition: markets handed to the engine have a positive current price.
// Callers validate at the edge (model.MarketState.Validate); behavior on a
// non-positive base price is undefined.
type Engine struct {
	settings model.Settings
	rng      *rand.Rand
}

// NewEngine builds an engine with the fixed default seed.
func NewEngine(settings model.Settings) *Engine {
	return NewEngineSeeded(settings, DefaultSeed)
}

// NewEngineSeeded builds an engine with an explicit seed.
func NewEngineSeeded(settings model.Settings, seed int64) *Engine {
	return &Engine{
		settings: settings,
		rng:      rand.New(rand.NewSource(seed)),
	}
}

// Settings returns the reward settings the engine was built with.
func (e *Engine) Settings() model.Settings { return e.settings }

// SimulateStep runs one step: search for the best candidate price, score it
// against oldPrice to build the action record, then derive the next market
// state by bounded random drift.
func (e *Engine) SimulateStep(rec model.CatalogRecord, market model.MarketState, oldPrice float64) (model.PricingAction, model.MarketState) {
	newPrice := e.SuggestPrice(rec, market)
	b := Reward(oldPrice, newPrice, market, e.settings)

	action := model.PricingAction{
		ProductID:            rec.SampleID,
		ProductName:          truncateName(rec.Name),
		OldPrice:             round2(oldPrice),
		NewPrice:             round2(newPrice),
		Reward:               round4(b.Total),
		ProfitComponent:      round4(b.Profit),
		CompetitiveComponent: round4(b.Competitive),
		StabilityComponent:   round4(b.Stability),
		InventoryComponent:   round4(b.Inventory),
		Timestamp:            time.Now(),
	}

	// The draw order below is fixed; reordering would change every seeded
	// trace. Elasticity carries over unchanged.
	inventory := market.InventoryLevel + e.rng.Intn(61) - 30
	if inventory < 0 {
		inventory = 0
	}
	engagement := clamp(market.UserEngagement+e.uniform(-0.05, 0.05), 0.05, 1.0)
	seasonal := clamp(market.SeasonalFactor+e.uniform(-0.1, 0.1), 0.3, 2.5)
	competitor := math.Max(0.01, market.CompetitorPrice*(1+e.uniform(-0.03, 0.03)))

	next := model.MarketState{
		ProductID:        rec.SampleID,
		CurrentPrice:     newPrice,
		CompetitorPrice:  round2(competitor),
		InventoryLevel:   inventory,
		UserEngagement:   round2(engagement),
		SeasonalFactor:   round2(seasonal),
		DemandElasticity: market.DemandElasticity,
		Timestamp:        time.Now(),
	}
	return action, next
}

// RunSimulation rolls the market forward, feeding each step's new price in as
// the next step's old price. Steps are 1-based in the trace; price extrema
// include the initial price. Zero steps yields an empty trace with zero
// rewards and the price unchanged.
func (e *Engine) RunSimulation(rec model.CatalogRecord, market model.MarketState, steps int) model.SimulationResult {
	if steps < 0 {
		steps = 0
	}

	actions := make([]model.PricingAction, 0, steps)
	current := market.CurrentPrice
	initial := current
	minPrice, maxPrice := current, current
	totalReward := 0.0

	for step := 1; step <= steps; step++ {
		action, next := e.SimulateStep(rec, market, current)
		action.Step = step
		actions = append(actions, action)
		market = next
		current = action.NewPrice
		totalReward += action.Reward
		if current < minPrice {
			minPrice = current
		}
		if current > maxPrice {
			maxPrice = current
		}
	}

	avgReward := 0.0
	if len(actions) > 0 {
		avgReward = totalReward / float64(len(actions))
	}

	return model.SimulationResult{
		ProductID:    rec.SampleID,
		ProductName:  truncateName(rec.Name),
		Actions:      actions,
		TotalReward:  round4(totalReward),
		AvgReward:    round4(avgReward),
		FinalPrice:   round2(current),
		InitialPrice: round2(initial),
		MaxPrice:     round2(maxPrice),
		MinPrice:     round2(minPrice),
		Steps:        steps,
	}
}

func (e *Engine) uniform(lo, hi float64) float64 {
	return lo + e.rng.Float64()*(hi-lo)
}

func truncateName(name string) string {
	if len(name) <= 60 {
		return name
	}
	cut := 60
	for cut > 0 && !utf8.RuneStart(name[cut]) {
		cut--
	}
	return name[:cut]
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

func round2(x float64) float64 { return math.Round(x*100) / 100 }

func round4(x float64) float64 { return math.Round(x*10000) / 10000 }

package pricing

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"warehouse-pricing/internal/model"
)

func testRecord() model.CatalogRecord {
	return model.CatalogRecord{
		SampleID: 7,
		Name:     "Colombian Dark Roast Coffee Beans",
		Price:    18.99,
		Category: "Coffee & Tea",
	}
}

func TestRunSimulation_StepCountAndNumbering(t *testing.T) {
	rec := testRecord()
	m := model.NewMarketStateSeeded(rec, 1)
	e := NewEngine(model.DefaultSettings())

	result := e.RunSimulation(rec, m, 12)
	require.Len(t, result.Actions, 12)
	assert.Equal(t, 12, result.Steps)
	for i, act := range result.Actions {
		assert.Equal(t, i+1, act.Step)
		assert.Equal(t, rec.SampleID, act.ProductID)
	}
}

func TestRunSimulation_Reproducible(t *testing.T) {
	rec := testRecord()
	m := model.NewMarketStateSeeded(rec, 1)

	a := NewEngineSeeded(model.DefaultSettings(), 99).RunSimulation(rec, m, 20)
	b := NewEngineSeeded(model.DefaultSettings(), 99).RunSimulation(rec, m, 20)

	require.Len(t, b.Actions, len(a.Actions))
	for i := range a.Actions {
		assert.Equal(t, a.Actions[i].OldPrice, b.Actions[i].OldPrice, "step %d", i+1)
		assert.Equal(t, a.Actions[i].NewPrice, b.Actions[i].NewPrice, "step %d", i+1)
		assert.Equal(t, a.Actions[i].Reward, b.Actions[i].Reward, "step %d", i+1)
	}
	assert.Equal(t, a.TotalReward, b.TotalReward)
	assert.Equal(t, a.FinalPrice, b.FinalPrice)
}

func TestRunSimulation_SeedsDiverge(t *testing.T) {
	rec := testRecord()
	m := model.NewMarketStateSeeded(rec, 1)

	a := NewEngineSeeded(model.DefaultSettings(), 1).RunSimulation(rec, m, 20)
	b := NewEngineSeeded(model.DefaultSettings(), 2).RunSimulation(rec, m, 20)

	diverged := false
	for i := range a.Actions {
		if a.Actions[i].NewPrice != b.Actions[i].NewPrice || a.Actions[i].Reward != b.Actions[i].Reward {
			diverged = true
			break
		}
	}
	assert.True(t, diverged, "different engine seeds should produce different traces")
}

func TestRunSimulation_ZeroSteps(t *testing.T) {
	rec := testRecord()
	m := model.NewMarketStateSeeded(rec, 1)
	e := NewEngine(model.DefaultSettings())

	for _, steps := range []int{0, -5} {
		result := e.RunSimulation(rec, m, steps)
		assert.Empty(t, result.Actions)
		assert.Zero(t, result.TotalReward)
		assert.Zero(t, result.AvgReward)
		assert.Equal(t, result.InitialPrice, result.FinalPrice)
		assert.Equal(t, result.InitialPrice, result.MinPrice)
		assert.Equal(t, result.InitialPrice, result.MaxPrice)
	}
}

func TestRunSimulation_ExtremaBracketInitial(t *testing.T) {
	rec := testRecord()
	m := model.NewMarketStateSeeded(rec, 1)
	e := NewEngine(model.DefaultSettings())

	result := e.RunSimulation(rec, m, 30)
	assert.LessOrEqual(t, result.MinPrice, result.InitialPrice)
	assert.GreaterOrEqual(t, result.MaxPrice, result.InitialPrice)
	assert.LessOrEqual(t, result.MinPrice, result.FinalPrice)
	assert.GreaterOrEqual(t, result.MaxPrice, result.FinalPrice)
	for _, act := range result.Actions {
		assert.LessOrEqual(t, result.MinPrice, act.NewPrice)
		assert.GreaterOrEqual(t, result.MaxPrice, act.NewPrice)
	}
}

func TestRunSimulation_RewardAccounting(t *testing.T) {
	rec := testRecord()
	m := model.NewMarketStateSeeded(rec, 1)
	e := NewEngine(model.DefaultSettings())

	result := e.RunSimulation(rec, m, 10)
	sum := 0.0
	for _, act := range result.Actions {
		sum += act.Reward
	}
	assert.InDelta(t, sum, result.TotalReward, 1e-4)
	assert.InDelta(t, sum/10, result.AvgReward, 1e-4)
}

func TestSimulateStep_DriftStaysBounded(t *testing.T) {
	rec := testRecord()
	m := model.NewMarketStateSeeded(rec, 1)
	e := NewEngine(model.DefaultSettings())

	elasticity := m.DemandElasticity
	current := m.CurrentPrice
	for i := 0; i < 100; i++ {
		action, next := e.SimulateStep(rec, m, current)

		assert.GreaterOrEqual(t, next.InventoryLevel, 0)
		assert.GreaterOrEqual(t, next.UserEngagement, 0.05)
		assert.LessOrEqual(t, next.UserEngagement, 1.0)
		assert.GreaterOrEqual(t, next.SeasonalFactor, 0.3)
		assert.LessOrEqual(t, next.SeasonalFactor, 2.5)
		assert.GreaterOrEqual(t, next.CompetitorPrice, 0.01)
		assert.Equal(t, elasticity, next.DemandElasticity, "elasticity never drifts")
		assert.Equal(t, action.NewPrice, next.CurrentPrice)

		m = next
		current = action.NewPrice
	}
}

func TestSimulateStep_TruncatesLongNames(t *testing.T) {
	rec := testRecord()
	rec.Name = strings.Repeat("N", 90)
	m := model.NewMarketStateSeeded(rec, 1)
	e := NewEngine(model.DefaultSettings())

	action, _ := e.SimulateStep(rec, m, m.CurrentPrice)
	assert.Len(t, action.ProductName, 60)
}

func TestSimulateStep_TruncationKeepsValidUTF8(t *testing.T) {
	rec := testRecord()
	// 61 bytes: "a" plus 30 two-byte runes; a byte cut at 60 would split the
	// last rune.
	rec.Name = "a" + strings.Repeat("é", 30)
	m := model.NewMarketStateSeeded(rec, 1)
	e := NewEngine(model.DefaultSettings())

	action, _ := e.SimulateStep(rec, m, m.CurrentPrice)
	assert.True(t, utf8.ValidString(action.ProductName))
	assert.Equal(t, "a"+strings.Repeat("é", 29), action.ProductName)
}

func TestRoundingHelpers(t *testing.T) {
	assert.Equal(t, 1.23, round2(1.2345))
	assert.Equal(t, 7.89, round2(7.891))
	assert.Equal(t, 1.2346, round4(1.23456))
	assert.Equal(t, -1.23, round2(-1.2304))
}

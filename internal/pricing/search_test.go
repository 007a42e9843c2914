package pricing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"warehouse-pricing/internal/model"
)

func TestCandidatePrices(t *testing.T) {
	m := testMarket()
	m.CurrentPrice = 20.0
	m.CompetitorPrice = 18.0

	got := candidatePrices(m, 0.20)
	want := []float64{
		20.0,
		19.0, // -5%
		18.0, // -10%
		17.0, // -15%
		21.0, // +5%
		22.0, // +10%
		23.0, // +15%
		18.0,
		17.64, // comp * 0.98
		18.36, // comp * 1.02
	}
	require.Len(t, got, 10)
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-9, "candidate %d", i)
	}
}

func TestSuggestPrice_Deterministic(t *testing.T) {
	rec := model.CatalogRecord{SampleID: 1, Name: "Colombian Coffee", Price: 10.0}
	m := testMarket()
	e := NewEngine(model.DefaultSettings())

	first := e.SuggestPrice(rec, m)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, e.SuggestPrice(rec, m))
	}
}

func TestSuggestPrice_ReturnsACandidate(t *testing.T) {
	rec := model.CatalogRecord{SampleID: 1, Name: "Colombian Coffee", Price: 10.0}
	m := testMarket()
	e := NewEngine(model.DefaultSettings())

	got := e.SuggestPrice(rec, m)
	found := false
	for _, cand := range candidatePrices(m, e.settings.PriceAdjustmentRange) {
		if math.Abs(math.Round(math.Max(0.01, cand)*100)/100-got) < 1e-9 {
			found = true
		}
	}
	assert.True(t, found, "suggested price %v not in the candidate set", got)
}

func TestSuggestPrice_FirstCandidateWinsTies(t *testing.T) {
	// With all weights zeroed every candidate scores 0, so the strictly-better
	// comparison keeps the first candidate: the current price.
	s := model.Settings{DefaultSteps: 30, PriceAdjustmentRange: 0.15, MaxCatalogRows: 500}
	rec := model.CatalogRecord{SampleID: 1, Price: 10.0}
	m := testMarket()

	e := NewEngine(s)
	assert.Equal(t, 10.0, e.SuggestPrice(rec, m))
}

func TestSuggestPrice_FloorsAtOneCent(t *testing.T) {
	rec := model.CatalogRecord{SampleID: 1, Price: 0.01}
	m := testMarket()
	m.CurrentPrice = 0.01
	m.CompetitorPrice = 0.01

	e := NewEngine(model.DefaultSettings())
	assert.GreaterOrEqual(t, e.SuggestPrice(rec, m), 0.01)
}

func TestSuggestPrice_AvoidsOvershootingCompetitor(t *testing.T) {
	// A heavy competitive weight with a competitor far below the current
	// price must pull the suggestion below the current price.
	s := model.DefaultSettings()
	s.Beta = 5.0
	rec := model.CatalogRecord{SampleID: 1, Price: 20.0}
	m := testMarket()
	m.CurrentPrice = 20.0
	m.CompetitorPrice = 12.0

	e := NewEngine(s)
	assert.Less(t, e.SuggestPrice(rec, m), 20.0)
}

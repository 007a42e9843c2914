package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"warehouse-pricing/internal/model"
)

func TestFormatStep(t *testing.T) {
	act := model.PricingAction{
		Step:                 3,
		OldPrice:             18.99,
		NewPrice:             19.56,
		Reward:               0.1234,
		ProfitComponent:      0.5678,
		CompetitiveComponent: 0.0100,
		StabilityComponent:   0.0009,
		InventoryComponent:   0.2500,
	}

	got := formatStep(act)
	assert.Contains(t, got, "step  3")
	assert.Contains(t, got, "$ 18.99 -> $ 19.56")
	assert.Contains(t, got, "reward= 0.1234")
	assert.Contains(t, got, "profit=0.5678")
	assert.Contains(t, got, "comp=0.0100")
	assert.Contains(t, got, "stab=0.0009")
	assert.Contains(t, got, "inv=0.2500")
}

func TestFirstPriced(t *testing.T) {
	records := []model.CatalogRecord{
		{SampleID: 0, Price: 0},
		{SampleID: 1, Price: 4.29},
		{SampleID: 2, Price: 9.49},
	}

	rec, ok := firstPriced(records)
	assert.True(t, ok)
	assert.Equal(t, 1, rec.SampleID)

	_, ok = firstPriced([]model.CatalogRecord{{Price: 0}})
	assert.False(t, ok)
}

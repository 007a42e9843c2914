// Package analysis precomputes the aggregate statistics a snapshot carries so
// the presentation layer never recomputes anything.
package analysis

import (
	"math"
	"sort"

	"warehouse-pricing/internal/model"
)

// BuildSnapshot computes every snapshot aggregate in a single sweep over the
// sampled records. Records with price <= 0 count toward totals and category
// buckets but are excluded from all price statistics.
func BuildSnapshot(records []model.CatalogRecord, totalSeen int) *model.Snapshot {
	snap := &model.Snapshot{
		Records:          records,
		TotalSampled:     len(records),
		TotalSeen:        totalSeen,
		CategoryAvgPrice: make(map[string]float64),
		CategoryMinPrice: make(map[string]float64),
		CategoryMaxPrice: make(map[string]float64),
	}

	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	sums := make(map[string]float64)
	priced := make(map[string]int)
	prices := make([]float64, 0, len(records))

	for _, rec := range records {
		c := rec.Category
		if _, ok := counts[c]; !ok {
			firstSeen[c] = len(firstSeen)
		}
		counts[c]++
		if rec.Price <= 0 {
			continue
		}
		prices = append(prices, rec.Price)
		sums[c] += rec.Price
		priced[c]++
		if cur, ok := snap.CategoryMinPrice[c]; !ok || rec.Price < cur {
			snap.CategoryMinPrice[c] = rec.Price
		}
		if cur, ok := snap.CategoryMaxPrice[c]; !ok || rec.Price > cur {
			snap.CategoryMaxPrice[c] = rec.Price
		}
	}

	snap.CategoryCounts = make([]model.CategoryCount, 0, len(counts))
	for c, n := range counts {
		snap.CategoryCounts = append(snap.CategoryCounts, model.CategoryCount{Category: c, Count: n})
	}
	// Count descending; ties keep the order categories first appeared in the
	// record sweep.
	sort.Slice(snap.CategoryCounts, func(i, j int) bool {
		a, b := snap.CategoryCounts[i], snap.CategoryCounts[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return firstSeen[a.Category] < firstSeen[b.Category]
	})

	for c, n := range priced {
		snap.CategoryAvgPrice[c] = sums[c] / float64(n)
	}

	snap.PricedCount = len(prices)
	snap.ZeroPriceCount = snap.TotalSampled - snap.PricedCount
	if len(prices) == 0 {
		return snap
	}

	sort.Float64s(prices)
	sum := 0.0
	for _, p := range prices {
		sum += p
	}
	snap.AvgPrice = sum / float64(len(prices))
	// Upper median: the middle index of the sorted list, even lengths round up.
	snap.MedianPrice = prices[len(prices)/2]
	snap.MinPrice = prices[0]
	snap.MaxPrice = prices[len(prices)-1]

	variance := 0.0
	for _, p := range prices {
		d := p - snap.AvgPrice
		variance += d * d
	}
	// Population standard deviation, not sample.
	snap.StdPrice = math.Sqrt(variance / float64(len(prices)))

	return snap
}

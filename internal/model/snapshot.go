package model

// CategoryCount is one bucket of the category breakdown. The snapshot keeps
// these ordered by count descending, ties in first-seen order.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// Snapshot is the sampled-and-aggregated representation of a catalog source.
// It is built once by the pipeline and aggregator, cached to disk, and
// replaced wholesale on reload.
//
// Invariants: TotalSampled == len(Records); TotalSeen >= TotalSampled; every
// record is counted in exactly one category bucket; PricedCount is the number
// of records with price > 0. Price statistics cover positive prices only.
type Snapshot struct {
	Records          []CatalogRecord    `json:"records"`
	CategoryCounts   []CategoryCount    `json:"category_counts"`
	CategoryAvgPrice map[string]float64 `json:"category_avg_price"`
	CategoryMinPrice map[string]float64 `json:"category_min_price"`
	CategoryMaxPrice map[string]float64 `json:"category_max_price"`
	TotalSampled     int                `json:"total_sampled"`
	TotalSeen        int                `json:"total_seen"`
	PricedCount      int                `json:"priced_count"`
	ZeroPriceCount   int                `json:"zero_price_count"`
	AvgPrice         float64            `json:"avg_price"`
	MedianPrice      float64            `json:"median_price"`
	MinPrice         float64            `json:"min_price"`
	MaxPrice         float64            `json:"max_price"`
	StdPrice         float64            `json:"std_price"`
}

// FindRecord returns the sampled record with the given sample id.
func (s *Snapshot) FindRecord(sampleID int) (CatalogRecord, bool) {
	for _, rec := range s.Records {
		if rec.SampleID == sampleID {
			return rec, true
		}
	}
	return CatalogRecord{}, false
}

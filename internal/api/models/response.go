package models

import (
	"time"

	"warehouse-pricing/internal/model"
	"warehouse-pricing/internal/pricing"
)

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SnapshotSummary is the snapshot minus its record list: everything the
// dashboard needs without shipping ten thousand rows.
type SnapshotSummary struct {
	TotalSampled     int                   `json:"total_sampled"`
	TotalSeen        int                   `json:"total_seen"`
	PricedCount      int                   `json:"priced_count"`
	ZeroPriceCount   int                   `json:"zero_price_count"`
	AvgPrice         float64               `json:"avg_price"`
	MedianPrice      float64               `json:"median_price"`
	MinPrice         float64               `json:"min_price"`
	MaxPrice         float64               `json:"max_price"`
	StdPrice         float64               `json:"std_price"`
	CategoryCounts   []model.CategoryCount `json:"category_counts"`
	CategoryAvgPrice map[string]float64    `json:"category_avg_price"`
	CategoryMinPrice map[string]float64    `json:"category_min_price"`
	CategoryMaxPrice map[string]float64    `json:"category_max_price"`
}

// SnapshotResponse answers GET /api/v1/snapshot. Records are capped by the
// configured display limit.
type SnapshotResponse struct {
	Source  string                `json:"source"`
	Summary SnapshotSummary       `json:"summary"`
	Records []model.CatalogRecord `json:"records,omitempty"`
}

// SummaryFromSnapshot flattens a snapshot into its summary view.
func SummaryFromSnapshot(s *model.Snapshot) SnapshotSummary {
	return SnapshotSummary{
		TotalSampled:     s.TotalSampled,
		TotalSeen:        s.TotalSeen,
		PricedCount:      s.PricedCount,
		ZeroPriceCount:   s.ZeroPriceCount,
		AvgPrice:         s.AvgPrice,
		MedianPrice:      s.MedianPrice,
		MinPrice:         s.MinPrice,
		MaxPrice:         s.MaxPrice,
		StdPrice:         s.StdPrice,
		CategoryCounts:   s.CategoryCounts,
		CategoryAvgPrice: s.CategoryAvgPrice,
		CategoryMinPrice: s.CategoryMinPrice,
		CategoryMaxPrice: s.CategoryMaxPrice,
	}
}

// SimulateResponse answers POST /api/v1/simulate.
type SimulateResponse struct {
	HistoryID     string                 `json:"history_id,omitempty"`
	InitialMarket model.MarketState      `json:"initial_market"`
	Result        model.SimulationResult `json:"result"`
}

// SuggestResponse answers POST /api/v1/suggest.
type SuggestResponse struct {
	ProductID      int               `json:"product_id"`
	CurrentPrice   float64           `json:"current_price"`
	SuggestedPrice float64           `json:"suggested_price"`
	Breakdown      pricing.Breakdown `json:"breakdown"`
	Market         model.MarketState `json:"market"`
}

// SourcesResponse answers GET /api/v1/sources.
type SourcesResponse struct {
	Sources []SourceInfo `json:"sources"`
	Count   int          `json:"count"`
}

type SourceInfo struct {
	Name      string    `json:"name"`
	Path      string    `json:"path"`
	SizeBytes int64     `json:"size_bytes"`
	ModTime   time.Time `json:"mod_time"`
}

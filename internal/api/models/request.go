package models

// SimulateRequest is the body for POST /api/v1/simulate. Steps of 0 means
// "use the configured default"; the handler clamps the final value to the
// supported window before invoking the engine.
type SimulateRequest struct {
	ProductID int    `json:"product_id" binding:"required"`
	Source    string `json:"source,omitempty"`
	Steps     int    `json:"steps,omitempty"`
	Seed      *int64 `json:"seed,omitempty"` // market generation seed override
}

// SuggestRequest is the body for POST /api/v1/suggest.
type SuggestRequest struct {
	ProductID int    `json:"product_id" binding:"required"`
	Source    string `json:"source,omitempty"`
	Seed      *int64 `json:"seed,omitempty"`
}

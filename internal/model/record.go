package model

import (
	"fmt"
	"unicode/utf8"
)

// CatalogRecord is one product sampled from a catalog source.
// Records are immutable once constructed; the owning Snapshot replaces them
// wholesale on reload rather than mutating in place.
type CatalogRecord struct {
	SampleID     int     `json:"sample_id"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	Category     string  `json:"category"`
	Unit         string  `json:"unit,omitempty"`
	Value        string  `json:"value,omitempty"`
	ImageLink    string  `json:"image_link,omitempty"`
	BulletPoints string  `json:"bullet_points,omitempty"`
	Description  string  `json:"description,omitempty"`
}

// DisplayName returns a name truncated for table display. The cut backs up
// to a rune boundary so multi-byte names stay valid UTF-8.
func (r CatalogRecord) DisplayName() string {
	if len(r.Name) <= 55 {
		return r.Name
	}
	cut := 52
	for cut > 0 && !utf8.RuneStart(r.Name[cut]) {
		cut--
	}
	return r.Name[:cut] + "..."
}

// PriceDisplay formats the price for table display.
func (r CatalogRecord) PriceDisplay() string {
	return fmt.Sprintf("$%.2f", r.Price)
}

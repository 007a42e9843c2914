package model

import "errors"

// Settings holds the reward-function weights and simulation defaults. The
// weights are not required to sum to 1. Loaded once, replaced wholesale on
// save.
type Settings struct {
	// Reward weights.
	Alpha float64 `yaml:"alpha" json:"alpha"` // profit
	Beta  float64 `yaml:"beta" json:"beta"`   // competitive penalty
	Gamma float64 `yaml:"gamma" json:"gamma"` // stability penalty
	Delta float64 `yaml:"delta" json:"delta"` // inventory penalty

	// Simulation defaults.
	DefaultSteps         int     `yaml:"default_steps" json:"default_steps"`
	PriceAdjustmentRange float64 `yaml:"price_adjustment_range" json:"price_adjustment_range"`

	// Display caps for the presentation layer.
	MaxCatalogRows int `yaml:"max_catalog_rows" json:"max_catalog_rows"`
}

// DefaultSettings returns the documented defaults.
func DefaultSettings() Settings {
	return Settings{
		Alpha:                0.40,
		Beta:                 0.25,
		Gamma:                0.20,
		Delta:                0.15,
		DefaultSteps:         30,
		PriceAdjustmentRange: 0.15,
		MaxCatalogRows:       500,
	}
}

func (s Settings) Validate() error {
	if s.Alpha < 0 || s.Beta < 0 || s.Gamma < 0 || s.Delta < 0 {
		return errors.New("reward weights must be >= 0")
	}
	if s.DefaultSteps <= 0 {
		return errors.New("default_steps must be > 0")
	}
	if s.PriceAdjustmentRange <= 0 || s.PriceAdjustmentRange > 1 {
		return errors.New("price_adjustment_range must be in (0, 1]")
	}
	if s.MaxCatalogRows <= 0 {
		return errors.New("max_catalog_rows must be > 0")
	}
	return nil
}

package config

import (
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"warehouse-pricing/internal/model"
)

// LoadSettings reads the persisted reward settings document. An absent,
// unreadable or invalid file falls back to the documented defaults; unknown
// fields are ignored and missing fields keep their defaults.
func LoadSettings(path string) model.Settings {
	s := model.DefaultSettings()
	raw, err := os.ReadFile(path)
	if err != nil {
		return s
	}
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return model.DefaultSettings()
	}
	if err := s.Validate(); err != nil {
		return model.DefaultSettings()
	}
	return s
}

// SaveSettings replaces the settings document wholesale.
func SaveSettings(path string, s model.Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return eris.Wrap(err, "settings: create state dir")
	}
	raw, err := yaml.Marshal(s)
	if err != nil {
		return eris.Wrap(err, "settings: marshal")
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return eris.Wrapf(err, "settings: write %s", path)
	}
	return nil
}

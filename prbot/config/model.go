package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// ModelSettings tunes the model call. Zero fields in
// an overlay file keep their defaults.
type ModelSettings struct {
	// Model is the model identifier.
	Model string `yaml:"model"`
	// MaxTokens caps the reply length.
	MaxTokens int64 `yaml:"max_tokens"`
	// Temperature is the sampling temperature.
	Temperature float64 `yaml:"temperature"`
	// ThinkingBudgetTokens caps the extended
	// thinking budget. Zero disables thinking.
	ThinkingBudgetTokens int64 `yaml:"thinking_budget_tokens"`
}

// DefaultModelSettings returns the built-in model
// settings.
func DefaultModelSettings() ModelSettings {
	return ModelSettings{
		Model:                "claude-sonnet-4-20250514",
		MaxTokens:            32000,
		Temperature:          1.0,
		ThinkingBudgetTokens: 8192,
	}
}

// LoadModelSettings overlays the YAML file at path on
// the defaults. An empty path returns the defaults
// untouched.
func LoadModelSettings(
	path string,
) (ModelSettings, error) {
	const errCtx = "loading model settings"

	settings := DefaultModelSettings()

	if path == "" {
		return settings, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return ModelSettings{}, fmt.Errorf(
			"%s: %w", errCtx, err,
		)
	}

	var overlay ModelSettings

	if err := yaml.Unmarshal(raw, &overlay); err != nil {
		return ModelSettings{}, fmt.Errorf(
			"%s: parsing %q: %w", errCtx, path, err,
		)
	}

	if overlay.Model != "" {
		settings.Model = overlay.Model
	}

	if overlay.MaxTokens > 0 {
		settings.MaxTokens = overlay.MaxTokens
	}

	if overlay.Temperature > 0 {
		settings.Temperature = overlay.Temperature
	}

	if overlay.ThinkingBudgetTokens > 0 {
		settings.ThinkingBudgetTokens = overlay.ThinkingBudgetTokens
	}

	return settings, nil
}

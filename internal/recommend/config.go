// ParPass ML API - Collaborative-Filtering Course Recommendations
// Copyright 2026 ParPass
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/parpass/caddie

package recommend

import "fmt"

// Config contains the scoring engine's tunable parameters.
type Config struct {
	// SimilarityThreshold is the minimum similarity another member must
	// have for their name to appear in a "Played by" explanation.
	SimilarityThreshold float64 `json:"similarity_threshold"`

	// ExplanationNames is the maximum number of display names rendered
	// in a "Played by" explanation.
	ExplanationNames int `json:"explanation_names"`
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() Config {
	return Config{
		SimilarityThreshold: 0.3,
		ExplanationNames:    2,
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.SimilarityThreshold < 0 || c.SimilarityThreshold > 1 {
		return fmt.Errorf("similarity_threshold must be in [0, 1], got %v", c.SimilarityThreshold)
	}
	if c.ExplanationNames < 1 {
		return fmt.Errorf("explanation_names must be at least 1, got %d", c.ExplanationNames)
	}
	return nil
}

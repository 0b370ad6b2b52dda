// ParPass ML API - Collaborative-Filtering Course Recommendations
// Copyright 2026 ParPass
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/parpass/caddie

// Package config provides layered configuration for the recommendation
// service: built-in defaults, an optional YAML file, and environment
// variable overrides, in that order of precedence (env wins).
package config

import (
	"fmt"
	"time"

	"github.com/parpass/caddie/internal/validation"
)

// Config is the root configuration for the service.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Model     ModelConfig     `koanf:"model"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
	Recommend RecommendConfig `koanf:"recommend"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host    string        `koanf:"host"`
	Port    int           `koanf:"port" validate:"min=1,max=65535"`
	Timeout time.Duration `koanf:"timeout"`

	// ShutdownTimeout bounds graceful shutdown on SIGINT/SIGTERM.
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// ModelConfig holds model artifact settings.
type ModelConfig struct {
	// Path is the location of the recommendation model artifact.
	// A missing artifact is not fatal: the service starts unloaded and
	// answers 503 on recommendation requests until an artifact is present
	// at the next restart.
	Path string `koanf:"path" validate:"required"`
}

// SecurityConfig holds CORS settings. The API is designed to sit behind
// the loyalty program's app gateway, so CORS defaults to permissive.
type SecurityConfig struct {
	CORSOrigins []string `koanf:"cors_origins"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn warning error fatal disabled"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// RecommendConfig holds scoring engine settings.
type RecommendConfig struct {
	// DefaultLimit is the number of recommendations returned when the
	// request does not specify a limit.
	DefaultLimit int `koanf:"default_limit" validate:"min=1"`

	// MaxLimit caps the limit query parameter.
	MaxLimit int `koanf:"max_limit" validate:"min=1"`

	// SimilarityThreshold is the minimum similarity for a member to be
	// named in a "Played by" explanation.
	SimilarityThreshold float64 `koanf:"similarity_threshold" validate:"gte=0,lte=1"`

	// ExplanationNames is the maximum number of member names rendered in
	// a "Played by" explanation.
	ExplanationNames int `koanf:"explanation_names" validate:"min=1"`
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c); err != nil {
		return err
	}

	if c.Recommend.DefaultLimit > c.Recommend.MaxLimit {
		return fmt.Errorf("recommend.default_limit (%d) must not exceed recommend.max_limit (%d)",
			c.Recommend.DefaultLimit, c.Recommend.MaxLimit)
	}

	return nil
}

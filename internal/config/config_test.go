// ParPass ML API - Collaborative-Filtering Course Recommendations
// Copyright 2026 ParPass
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/parpass/caddie

package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 8000 {
		t.Errorf("server.port = %d, want 8000", cfg.Server.Port)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("server.host = %q, want 0.0.0.0", cfg.Server.Host)
	}
	if cfg.Model.Path != "recommendation_model.json" {
		t.Errorf("model.path = %q, want recommendation_model.json", cfg.Model.Path)
	}
	if !reflect.DeepEqual(cfg.Security.CORSOrigins, []string{"*"}) {
		t.Errorf("security.cors_origins = %v, want [*]", cfg.Security.CORSOrigins)
	}
	if cfg.Recommend.DefaultLimit != 5 {
		t.Errorf("recommend.default_limit = %d, want 5", cfg.Recommend.DefaultLimit)
	}
	if cfg.Recommend.MaxLimit != 100 {
		t.Errorf("recommend.max_limit = %d, want 100", cfg.Recommend.MaxLimit)
	}
	if cfg.Recommend.SimilarityThreshold != 0.3 {
		t.Errorf("recommend.similarity_threshold = %v, want 0.3", cfg.Recommend.SimilarityThreshold)
	}
	if cfg.Recommend.ExplanationNames != 2 {
		t.Errorf("recommend.explanation_names = %d, want 2", cfg.Recommend.ExplanationNames)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("logging.level = %q, want info", cfg.Logging.Level)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("MODEL_PATH", "/data/model.json")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("RECOMMEND_DEFAULT_LIMIT", "3")
	t.Setenv("CORS_ORIGINS", "https://app.parpass.io, https://admin.parpass.io")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("server.port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Model.Path != "/data/model.json" {
		t.Errorf("model.path = %q, want /data/model.json", cfg.Model.Path)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("logging.level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Recommend.DefaultLimit != 3 {
		t.Errorf("recommend.default_limit = %d, want 3", cfg.Recommend.DefaultLimit)
	}

	wantOrigins := []string{"https://app.parpass.io", "https://admin.parpass.io"}
	if !reflect.DeepEqual(cfg.Security.CORSOrigins, wantOrigins) {
		t.Errorf("security.cors_origins = %v, want %v", cfg.Security.CORSOrigins, wantOrigins)
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	content := `
server:
  port: 8080
model:
  path: /models/rec.json
recommend:
  default_limit: 10
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("server.port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Model.Path != "/models/rec.json" {
		t.Errorf("model.path = %q, want /models/rec.json", cfg.Model.Path)
	}
	if cfg.Recommend.DefaultLimit != 10 {
		t.Errorf("recommend.default_limit = %d, want 10", cfg.Recommend.DefaultLimit)
	}
	// Untouched sections keep their defaults.
	if cfg.Recommend.MaxLimit != 100 {
		t.Errorf("recommend.max_limit = %d, want 100", cfg.Recommend.MaxLimit)
	}
}

func TestLoad_EnvBeatsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 8080\n"), 0o600); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("HTTP_PORT", "9999")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 9999 {
		t.Errorf("server.port = %d, want env override 9999", cfg.Server.Port)
	}
}

func TestLoad_ValidationFailure(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "bad_log_level", key: "LOG_LEVEL", value: "verbose"},
		{name: "port_out_of_range", key: "HTTP_PORT", value: "99999"},
		{name: "default_limit_over_max", key: "RECOMMEND_DEFAULT_LIMIT", value: "500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			if _, err := Load(); err == nil {
				t.Errorf("Expected validation error for %s=%s", tt.key, tt.value)
			}
		})
	}
}

func TestEnvTransformFunc(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "server_port", in: "HTTP_PORT", want: "server.port"},
		{name: "model_path", in: "MODEL_PATH", want: "model.path"},
		{name: "cors", in: "CORS_ORIGINS", want: "security.cors_origins"},
		{name: "threshold", in: "RECOMMEND_SIMILARITY_THRESHOLD", want: "recommend.similarity_threshold"},
		{name: "unmapped_skipped", in: "HOME", want: ""},
		{name: "unmapped_path_skipped", in: "PATH", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := envTransformFunc(tt.in); got != tt.want {
				t.Errorf("envTransformFunc(%s) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestConfigValidate_DefaultLimitOverMax(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	cfg.Recommend.DefaultLimit = 50
	cfg.Recommend.MaxLimit = 10

	if err := cfg.Validate(); err == nil {
		t.Error("Expected error when default_limit exceeds max_limit")
	}
}

// Paperwise - Academic Paper Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/paperwise

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the config file locations tried in order when
// CONFIG_PATH is unset.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/paperwise/config.yaml",
	"/etc/paperwise/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// EnvPrefix prefixes the nested environment variable form.
const EnvPrefix = "PAPERWISE_"

// DefaultConfig returns the built-in defaults, the lowest-precedence layer of Load.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			Environment:     "development",
		},
		Features: FeaturesConfig{
			Path:            "/data/features.npz",
			RefreshInterval: 15 * time.Minute,
		},
		Database: DatabaseConfig{
			Path:               "/data/paperwise.duckdb",
			MaxMemory:          "1GB",
			CheckpointInterval: 10 * time.Minute,
		},
		Recommend: RecommendConfig{
			SingleThreshold:    0.3,
			GroupThreshold:     0.2,
			MinClusterSize:     5,
			DoubleBolsterBelow: 9,
			BolsterBelow:       15,
			MinK:               2,
			MaxK:               4,
			MaxIterations:      300,
			NInit:              10,
			ClusterTimeout:     5 * time.Second,
			Seed:               42,
			DefaultSimilar:     5,
			MaxSimilar:         50,
			DefaultDaily:       5,
			MaxDaily:           50,
			CacheEnabled:       true,
			CacheTTL:           time.Hour,
			CacheMaxEntries:    10000,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		API: APIConfig{
			CORSOrigins:       []string{"*"},
			RateLimitRequests: 100,
			RateLimitWindow:   time.Minute,
			RequestTimeout:    30 * time.Second,
			MaxSearchResults:  200,
		},
	}
}

// Load builds the configuration from defaults, the optional config file and
// the environment, in that order of precedence, and validates it.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(DefaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// findConfigFile returns the first existing config file, or "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// sliceConfigPaths are parsed from comma-separated strings.
var sliceConfigPaths = []string{
	"api.cors_origins",
}

// processSliceFields splits comma-separated env values for slice fields.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps short environment variable names to config paths.
var envMappings = map[string]string{
	"http_host":                 "server.host",
	"http_port":                 "server.port",
	"environment":               "server.environment",
	"duckdb_path":               "database.path",
	"duckdb_max_memory":         "database.max_memory",
	"duckdb_threads":            "database.threads",
	"duckdb_checkpoint":         "database.checkpoint_interval",
	"features_path":             "features.path",
	"features_refresh_interval": "features.refresh_interval",
	"log_level":                 "logging.level",
	"log_format":                "logging.format",
	"log_caller":                "logging.caller",
	"cors_origins":              "api.cors_origins",
	"rate_limit_requests":       "api.rate_limit_requests",
	"rate_limit_window":         "api.rate_limit_window",
	"disable_rate_limit":        "api.rate_limit_disabled",
}

// envTransformFunc maps an environment variable to a config path, or ""
// to skip it.
//
//   - PAPERWISE_RECOMMEND__CACHE_TTL -> recommend.cache_ttl
//   - HTTP_PORT -> server.port
func envTransformFunc(key string) string {
	if rest, ok := strings.CutPrefix(key, EnvPrefix); ok {
		if !strings.Contains(rest, "__") {
			return ""
		}
		return strings.ReplaceAll(strings.ToLower(rest), "__", ".")
	}
	return envMappings[strings.ToLower(key)]
}

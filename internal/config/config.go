// Paperwise - Academic Paper Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/paperwise

package config

import (
	"net"
	"strconv"
	"time"

	"github.com/tomtom215/paperwise/internal/logging"
	"github.com/tomtom215/paperwise/internal/recommend"
)

// Config is the complete application configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Features  FeaturesConfig  `koanf:"features"`
	Database  DatabaseConfig  `koanf:"database"`
	Recommend RecommendConfig `koanf:"recommend"`
	Logging   LoggingConfig   `koanf:"logging"`
	API       APIConfig       `koanf:"api"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `koanf:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `koanf:"write_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`
	Environment     string        `koanf:"environment" validate:"oneof=development staging production"`
}

// FeaturesConfig locates the TF-IDF artifact.
type FeaturesConfig struct {
	// Path is the scipy CSR .npz file.
	Path string `koanf:"path" validate:"required"`

	// RefreshInterval is how often the artifact is re-read for appended rows.
	// Zero disables the refresh service.
	RefreshInterval time.Duration `koanf:"refresh_interval" validate:"gte=0"`

	// AllowMissing starts with an empty store when Path does not exist yet.
	AllowMissing bool `koanf:"allow_missing"`
}

// DatabaseConfig holds DuckDB settings
type DatabaseConfig struct {
	Path      string `koanf:"path" validate:"required"`
	MaxMemory string `koanf:"max_memory"`
	Threads   int    `koanf:"threads" validate:"gte=0"` // 0 = DuckDB default

	// CheckpointInterval is how often the WAL is flushed. Zero disables it.
	CheckpointInterval time.Duration `koanf:"checkpoint_interval" validate:"gte=0"`
}

// RecommendConfig holds the recommendation engine settings. Thresholds are
// exclusive lower bounds on cosine similarity.
type RecommendConfig struct {
	SingleThreshold float64 `koanf:"single_threshold" validate:"gte=0,lt=1"`
	GroupThreshold  float64 `koanf:"group_threshold" validate:"gte=0,lt=1"`

	MinClusterSize     int           `koanf:"min_cluster_size" validate:"min=1"`
	DoubleBolsterBelow int           `koanf:"double_bolster_below"`
	BolsterBelow       int           `koanf:"bolster_below"`
	MinK               int           `koanf:"min_k" validate:"min=2"`
	MaxK               int           `koanf:"max_k" validate:"gtefield=MinK"`
	MaxIterations      int           `koanf:"max_iterations" validate:"min=1"`
	NInit              int           `koanf:"n_init" validate:"min=1"`
	ClusterTimeout     time.Duration `koanf:"cluster_timeout" validate:"gte=0"`
	Seed               int64         `koanf:"seed"`

	DefaultSimilar int `koanf:"default_similar" validate:"min=1"`
	MaxSimilar     int `koanf:"max_similar" validate:"gtefield=DefaultSimilar"`
	DefaultDaily   int `koanf:"default_daily" validate:"min=1"`
	MaxDaily       int `koanf:"max_daily" validate:"gtefield=DefaultDaily"`

	CacheEnabled    bool          `koanf:"cache_enabled"`
	CacheTTL        time.Duration `koanf:"cache_ttl"`
	CacheMaxEntries int           `koanf:"cache_max_entries"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// APIConfig holds HTTP API settings.
type APIConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitRequests int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	RequestTimeout    time.Duration `koanf:"request_timeout" validate:"gt=0"`
	MaxSearchResults  int           `koanf:"max_search_results" validate:"min=1,max=1000"`
}

// Address returns host:port for the HTTP listener.
func (s ServerConfig) Address() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// EngineConfig converts the recommend section to the engine configuration.
func (c *Config) EngineConfig() *recommend.Config {
	r := c.Recommend
	return &recommend.Config{
		Thresholds: recommend.ThresholdConfig{
			Single: r.SingleThreshold,
			Group:  r.GroupThreshold,
		},
		Clustering: recommend.ClusteringConfig{
			MinSize:            r.MinClusterSize,
			DoubleBolsterBelow: r.DoubleBolsterBelow,
			BolsterBelow:       r.BolsterBelow,
			MinK:               r.MinK,
			MaxK:               r.MaxK,
			MaxIterations:      r.MaxIterations,
			NInit:              r.NInit,
			Timeout:            r.ClusterTimeout,
		},
		Limits: recommend.LimitsConfig{
			DefaultSimilar: r.DefaultSimilar,
			MaxSimilar:     r.MaxSimilar,
			DefaultDaily:   r.DefaultDaily,
			MaxDaily:       r.MaxDaily,
		},
		Cache: recommend.CacheConfig{
			Enabled:    r.CacheEnabled,
			TTL:        r.CacheTTL,
			MaxEntries: r.CacheMaxEntries,
		},
		Seed: r.Seed,
	}
}

// LoggingSettings converts the logging section for logging.Init.
func (c *Config) LoggingSettings() logging.Config {
	out := logging.DefaultConfig()
	out.Level = c.Logging.Level
	out.Format = c.Logging.Format
	out.Caller = c.Logging.Caller
	return out
}

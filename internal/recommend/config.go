// Paperwise - Academic Paper Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/paperwise

package recommend

import (
	"fmt"
	"time"

	"github.com/tomtom215/paperwise/internal/cluster"
	"github.com/tomtom215/paperwise/internal/similarity"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Thresholds are the exclusive minimum similarity scores.
	Thresholds ThresholdConfig `json:"thresholds"`

	// Clustering controls favorites clustering for daily recommendations.
	Clustering ClusteringConfig `json:"clustering"`

	// Limits bounds result sizes.
	Limits LimitsConfig `json:"limits"`

	// Cache controls the daily result cache.
	Cache CacheConfig `json:"cache"`

	// Seed is the k-means seed. Zero means 42.
	Seed int64 `json:"seed"`
}

// ThresholdConfig holds the similarity cut-offs.
type ThresholdConfig struct {
	// Single applies to "similar papers" and to bolstering neighbors.
	// Default: 0.3.
	Single float64 `json:"single"`

	// Group applies to the daily pipeline.
	// Default: 0.2.
	Group float64 `json:"group"`
}

// ClusteringConfig contains the favorites clustering parameters.
type ClusteringConfig struct {
	// MinSize is the largest favorites count scored without clustering.
	// Default: 5.
	MinSize int `json:"min_size"`

	// DoubleBolsterBelow: sets larger than MinSize and smaller than this get
	// two neighbors per favorite. Default: 9.
	DoubleBolsterBelow int `json:"double_bolster_below"`

	// BolsterBelow: sets smaller than this get one neighbor per favorite.
	// Default: 15.
	BolsterBelow int `json:"bolster_below"`

	MinK int `json:"min_k"`
	MaxK int `json:"max_k"`

	MaxIterations int `json:"max_iterations"`
	NInit         int `json:"n_init"`

	// Timeout bounds the k sweep. Default: 5s.
	Timeout time.Duration `json:"timeout"`
}

// LimitsConfig bounds result sizes.
type LimitsConfig struct {
	DefaultSimilar int `json:"default_similar"`
	MaxSimilar     int `json:"max_similar"`
	DefaultDaily   int `json:"default_daily"`
	MaxDaily       int `json:"max_daily"`
}

// CacheConfig contains caching parameters.
type CacheConfig struct {
	Enabled    bool          `json:"enabled"`
	TTL        time.Duration `json:"ttl"`
	MaxEntries int           `json:"max_entries"`
}

const defaultSeed = 42

// DefaultConfig returns the production defaults.
func DefaultConfig() *Config {
	return &Config{
		Thresholds: ThresholdConfig{
			Single: similarity.SingleThreshold,
			Group:  similarity.GroupThreshold,
		},
		Clustering: ClusteringConfig{
			MinSize:            5,
			DoubleBolsterBelow: 9,
			BolsterBelow:       15,
			MinK:               2,
			MaxK:               4,
			MaxIterations:      300,
			NInit:              10,
			Timeout:            5 * time.Second,
		},
		Limits: LimitsConfig{
			DefaultSimilar: similarity.DefaultTopN,
			MaxSimilar:     50,
			DefaultDaily:   5,
			MaxDaily:       50,
		},
		Cache: CacheConfig{
			Enabled:    true,
			TTL:        time.Hour,
			MaxEntries: 10000,
		},
		Seed: defaultSeed,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Thresholds.Single < 0 || c.Thresholds.Single >= 1 {
		return fmt.Errorf("thresholds.single must be in [0, 1), got %f", c.Thresholds.Single)
	}
	if c.Thresholds.Group < 0 || c.Thresholds.Group >= 1 {
		return fmt.Errorf("thresholds.group must be in [0, 1), got %f", c.Thresholds.Group)
	}

	if c.Limits.DefaultSimilar < 1 || c.Limits.MaxSimilar < c.Limits.DefaultSimilar {
		return fmt.Errorf("limits.default_similar must be in [1, max_similar], got %d (max %d)",
			c.Limits.DefaultSimilar, c.Limits.MaxSimilar)
	}
	if c.Limits.DefaultDaily < 1 || c.Limits.MaxDaily < c.Limits.DefaultDaily {
		return fmt.Errorf("limits.default_daily must be in [1, max_daily], got %d (max %d)",
			c.Limits.DefaultDaily, c.Limits.MaxDaily)
	}

	if c.Cache.Enabled {
		if c.Cache.TTL <= 0 {
			return fmt.Errorf("cache.ttl must be positive, got %v", c.Cache.TTL)
		}
		if c.Cache.MaxEntries < 1 {
			return fmt.Errorf("cache.max_entries must be positive, got %d", c.Cache.MaxEntries)
		}
	}

	return c.ClusterConfig().Validate()
}

// ClusterConfig derives the clusterer configuration. Bolstering neighbors
// use the single-paper threshold.
func (c *Config) ClusterConfig() cluster.Config {
	seed := c.Seed
	if seed == 0 {
		seed = defaultSeed
	}
	return cluster.Config{
		MinSizeForClustering: c.Clustering.MinSize,
		DoubleBolsterBelow:   c.Clustering.DoubleBolsterBelow,
		BolsterBelow:         c.Clustering.BolsterBelow,
		NeighborThreshold:    c.Thresholds.Single,
		MinK:                 c.Clustering.MinK,
		MaxK:                 c.Clustering.MaxK,
		Seed:                 seed,
		MaxIterations:        c.Clustering.MaxIterations,
		NInit:                c.Clustering.NInit,
		Timeout:              c.Clustering.Timeout,
	}
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	// All nested structs hold value types only.
	clone := *c
	return &clone
}

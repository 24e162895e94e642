// Paperwise - Academic Paper Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/paperwise

package cluster

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/paperwise/internal/features"
	"github.com/tomtom215/paperwise/internal/similarity"
)

// Config holds the clustering parameters.
type Config struct {
	// MinSizeForClustering is the largest favorites count returned unclustered.
	MinSizeForClustering int

	// DoubleBolsterBelow: counts above MinSizeForClustering and below this get
	// two neighbors per favorite.
	DoubleBolsterBelow int

	// BolsterBelow: counts below this (and at least DoubleBolsterBelow) get one
	// neighbor per favorite. Larger sets are not bolstered.
	BolsterBelow int

	// NeighborThreshold is the exclusive minimum score of a bolstering neighbor.
	NeighborThreshold float64

	MinK int
	MaxK int

	// Seed makes fits reproducible. Each k uses Seed+k.
	Seed int64

	MaxIterations int
	NInit         int

	// Timeout bounds the whole k sweep. Zero disables it.
	Timeout time.Duration
}

// DefaultConfig returns the production clustering parameters.
func DefaultConfig() Config {
	return Config{
		MinSizeForClustering: 5,
		DoubleBolsterBelow:   9,
		BolsterBelow:         15,
		NeighborThreshold:    similarity.SingleThreshold,
		MinK:                 2,
		MaxK:                 4,
		Seed:                 42,
		MaxIterations:        300,
		NInit:                10,
		Timeout:              5 * time.Second,
	}
}

// Validate checks the cross-field constraints.
func (c Config) Validate() error {
	if c.MinSizeForClustering < 1 {
		return fmt.Errorf("cluster.min_size must be >= 1, got %d", c.MinSizeForClustering)
	}
	if c.DoubleBolsterBelow <= c.MinSizeForClustering || c.BolsterBelow < c.DoubleBolsterBelow {
		return fmt.Errorf("cluster bolster bounds must satisfy min_size < double_bolster_below <= bolster_below, got %d, %d, %d",
			c.MinSizeForClustering, c.DoubleBolsterBelow, c.BolsterBelow)
	}
	if c.MinK < 2 || c.MaxK < c.MinK {
		return fmt.Errorf("cluster k range must satisfy 2 <= min_k <= max_k, got [%d, %d]", c.MinK, c.MaxK)
	}
	if c.MaxIterations < 1 || c.NInit < 1 {
		return fmt.Errorf("cluster.max_iterations and cluster.n_init must be >= 1")
	}
	if c.Timeout < 0 {
		return fmt.Errorf("cluster.timeout must be >= 0, got %v", c.Timeout)
	}
	return nil
}

// BolsterCount returns how many neighbors each favorite gets for a set of n.
func (c Config) BolsterCount(n int) int {
	switch {
	case n <= c.MinSizeForClustering:
		return 0
	case n < c.DoubleBolsterBelow:
		return 2
	case n < c.BolsterBelow:
		return 1
	default:
		return 0
	}
}

// Candidate is the outcome of fitting one k.
type Candidate struct {
	K          int     `json:"k"`
	Silhouette float64 `json:"silhouette"`
	Err        error   `json:"-"`
}

// Result is the outcome of ClusterFavorites.
type Result struct {
	// Vectors are the query vectors for the pipeline: one aggregate per
	// non-empty cluster, or the original favorites when unclustered.
	Vectors []features.Vector

	// K is the selected cluster count, 0 when unclustered.
	K int

	// Labels holds the cluster of each original favorite, nil when unclustered.
	Labels []int

	Silhouette float64
	Clustered  bool

	// Bolstered is the number of neighbor vectors added before fitting.
	Bolstered int

	// TimedOut reports that the sweep hit Config.Timeout.
	TimedOut bool

	Candidates []Candidate
}

// Clusterer runs the favorites clustering sweep.
type Clusterer struct {
	cfg    Config
	logger zerolog.Logger
}

// NewClusterer validates cfg and returns a clusterer.
func NewClusterer(cfg Config, logger zerolog.Logger) (*Clusterer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid cluster config: %w", err)
	}
	return &Clusterer{
		cfg:    cfg,
		logger: logger.With().Str("component", "cluster").Logger(),
	}, nil
}

// ClusterFavorites turns a favorites set into query vectors. snapshot is the
// matrix the favorites were resolved from and supplies bolstering neighbors.
// favoriteIDs[i] is the paper id of vectors[i].
func (c *Clusterer) ClusterFavorites(ctx context.Context, snapshot *features.Matrix, favoriteIDs []int, vectors []features.Vector) (*Result, error) {
	n := len(vectors)
	if len(favoriteIDs) != n {
		return nil, fmt.Errorf("cluster: %d favorite ids for %d vectors", len(favoriteIDs), n)
	}
	unclustered := &Result{Vectors: vectors}
	if n <= c.cfg.MinSizeForClustering {
		return unclustered, nil
	}

	points, err := c.bolster(snapshot, favoriteIDs, vectors)
	if err != nil {
		return nil, err
	}
	unclustered.Bolstered = len(points) - n

	candidates, models, err := c.sweep(ctx, points, vectors)
	if err != nil {
		if ctx.Err() == nil && errors.Is(err, context.DeadlineExceeded) {
			c.logger.Warn().
				Int("favorites", n).
				Dur("timeout", c.cfg.Timeout).
				Msg("Cluster sweep timed out, using unclustered favorites")
			unclustered.TimedOut = true
			return unclustered, nil
		}
		return nil, err
	}
	unclustered.Candidates = candidates

	var chosen *Model
	best := 0.0
	for i := range candidates {
		cand := candidates[i]
		if cand.Err != nil {
			c.logger.Debug().Err(cand.Err).Int("k", cand.K).Msg("Skipping k")
			continue
		}
		if cand.Silhouette > best {
			best = cand.Silhouette
			chosen = models[i]
		}
	}
	if chosen == nil {
		c.logger.Debug().Int("favorites", n).Msg("No k with positive silhouette, using unclustered favorites")
		return unclustered, nil
	}

	labels := append([]int(nil), chosen.Labels[:n]...)
	aggregates := make([]features.Vector, 0, chosen.K)
	for label := 0; label < chosen.K; label++ {
		var members []features.Vector
		for i, l := range labels {
			if l == label {
				members = append(members, vectors[i])
			}
		}
		if len(members) == 0 {
			continue
		}
		sum, err := features.Sum(snapshot.Cols(), members...)
		if err != nil {
			return nil, err
		}
		aggregates = append(aggregates, sum)
	}

	return &Result{
		Vectors:    aggregates,
		K:          chosen.K,
		Labels:     labels,
		Silhouette: best,
		Clustered:  true,
		Bolstered:  unclustered.Bolstered,
		Candidates: candidates,
	}, nil
}

// bolster appends each favorite's nearest neighbors to the favorites.
func (c *Clusterer) bolster(snapshot *features.Matrix, favoriteIDs []int, vectors []features.Vector) ([]features.Vector, error) {
	points := append([]features.Vector(nil), vectors...)
	adds := c.cfg.BolsterCount(len(vectors))
	if adds == 0 {
		return points, nil
	}

	for i, id := range favoriteIDs {
		opts := similarity.Options{TopN: adds, Threshold: c.cfg.NeighborThreshold, ExcludeIndex: id - 1}
		matches, err := similarity.FindSimilar([]features.Vector{vectors[i]}, snapshot, opts)
		if err != nil {
			return nil, fmt.Errorf("bolster paper %d: %w", id, err)
		}
		for _, m := range matches {
			points = append(points, snapshot.Row(m.Index))
		}
	}
	return points, nil
}

// sweep fits every k concurrently. Per-k numeric failures are recorded on
// the candidate; only context errors abort the sweep.
func (c *Clusterer) sweep(ctx context.Context, points, favorites []features.Vector) ([]Candidate, []*Model, error) {
	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	span := c.cfg.MaxK - c.cfg.MinK + 1
	candidates := make([]Candidate, span)
	models := make([]*Model, span)
	kcfg := KMeansConfig{MaxIterations: c.cfg.MaxIterations, NInit: c.cfg.NInit}

	var g errgroup.Group
	for i := 0; i < span; i++ {
		k := c.cfg.MinK + i
		g.Go(func() error {
			candidates[i].K = k
			//nolint:gosec // G404: math/rand is acceptable for ML initialization (not security)
			rng := rand.New(rand.NewSource(c.cfg.Seed + int64(k)))
			model, err := Fit(ctx, points, k, kcfg, rng)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				candidates[i].Err = err
				return nil
			}
			sil, err := Silhouette(favorites, model.Labels[:len(favorites)])
			if err != nil {
				candidates[i].Err = err
				return nil
			}
			candidates[i].Silhouette = sil
			models[i] = model
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return candidates, models, nil
}

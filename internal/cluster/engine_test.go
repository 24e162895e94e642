// Paperwise - Academic Paper Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/paperwise

package cluster

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomtom215/paperwise/internal/features"
)

// topicMatrix returns 30 papers over 6 terms: ids 1-15 lean on terms 0-1,
// ids 16-30 lean on terms 4-5.
func topicMatrix(t *testing.T) *features.Matrix {
	t.Helper()
	rows := make([]features.Vector, 0, 30)
	for i := 0; i < 15; i++ {
		w := float64(i) / 20
		rows = append(rows, features.DenseVector([]float64{1, 0.2 + w, 0.05, 0, 0, 0}))
	}
	for i := 0; i < 15; i++ {
		w := float64(i) / 20
		rows = append(rows, features.DenseVector([]float64{0, 0, 0, 0.05, 1, 0.2 + w}))
	}
	m, err := features.FromRows(6, rows)
	require.NoError(t, err)
	return m
}

func newTestClusterer(t *testing.T, mutate func(*Config)) *Clusterer {
	t.Helper()
	cfg := DefaultConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	c, err := NewClusterer(cfg, zerolog.Nop())
	require.NoError(t, err)
	return c
}

func resolve(t *testing.T, m *features.Matrix, ids []int) []features.Vector {
	t.Helper()
	vs, err := m.Papers(ids)
	require.NoError(t, err)
	return vs
}

func distinctLabels(labels []int) int {
	seen := make(map[int]struct{})
	for _, l := range labels {
		seen[l] = struct{}{}
	}
	return len(seen)
}

func TestConfig_BolsterCount(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		n    int
		want int
	}{
		{0, 0}, {1, 0}, {5, 0},
		{6, 2}, {7, 2}, {8, 2},
		{9, 1}, {12, 1}, {14, 1},
		{15, 0}, {40, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, cfg.BolsterCount(tt.n), "n=%d", tt.n)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"min size zero", func(c *Config) { c.MinSizeForClustering = 0 }},
		{"bolster bounds inverted", func(c *Config) { c.DoubleBolsterBelow = 20 }},
		{"double bound not above min size", func(c *Config) { c.DoubleBolsterBelow = 5 }},
		{"k below two", func(c *Config) { c.MinK = 1 }},
		{"k range inverted", func(c *Config) { c.MaxK = 1 }},
		{"no iterations", func(c *Config) { c.MaxIterations = 0 }},
		{"negative timeout", func(c *Config) { c.Timeout = -time.Second }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
			_, err := NewClusterer(cfg, zerolog.Nop())
			assert.Error(t, err)
		})
	}
	assert.NoError(t, DefaultConfig().Validate())
}

func TestClusterFavorites_SmallSetUnchanged(t *testing.T) {
	m := topicMatrix(t)
	c := newTestClusterer(t, nil)

	for n := 0; n <= 5; n++ {
		ids := make([]int, n)
		for i := range ids {
			ids[i] = i*5 + 1
		}
		vs := resolve(t, m, ids)

		res, err := c.ClusterFavorites(context.Background(), m, ids, vs)
		require.NoError(t, err)
		assert.False(t, res.Clustered)
		assert.Len(t, res.Vectors, n, "one vector per favorite")
		for i := range vs {
			assert.Equal(t, vs[i], res.Vectors[i])
		}
	}
}

func TestClusterFavorites_RecoversTopics(t *testing.T) {
	m := topicMatrix(t)
	c := newTestClusterer(t, nil)

	// 12 favorites: bolstering adds one neighbor each.
	ids := []int{1, 2, 3, 4, 5, 6, 16, 17, 18, 19, 20, 21}
	res, err := c.ClusterFavorites(context.Background(), m, ids, resolve(t, m, ids))
	require.NoError(t, err)

	require.True(t, res.Clustered)
	assert.Equal(t, 12, res.Bolstered)
	assert.GreaterOrEqual(t, res.K, 2)
	assert.LessOrEqual(t, res.K, 4)
	assert.Greater(t, res.Silhouette, 0.0)
	require.Len(t, res.Labels, len(ids))
	assert.Len(t, res.Vectors, distinctLabels(res.Labels))

	// The winner has the highest silhouette among successful candidates.
	require.Len(t, res.Candidates, 3)
	for _, cand := range res.Candidates {
		if cand.Err == nil {
			assert.LessOrEqual(t, cand.Silhouette, res.Silhouette)
		}
	}

	// The two topics never share a cluster.
	for i := 0; i < 6; i++ {
		for j := 6; j < 12; j++ {
			assert.NotEqual(t, res.Labels[i], res.Labels[j])
		}
	}
	assert.Equal(t, 2, res.K)
}

func TestClusterFavorites_AggregatesAreSums(t *testing.T) {
	m := topicMatrix(t)
	c := newTestClusterer(t, nil)

	ids := []int{1, 3, 5, 16, 18, 20, 22}
	vs := resolve(t, m, ids)
	res, err := c.ClusterFavorites(context.Background(), m, ids, vs)
	require.NoError(t, err)
	require.True(t, res.Clustered)

	total := 0.0
	for _, v := range vs {
		for _, x := range v.Values {
			total += x
		}
	}
	aggTotal := 0.0
	for _, v := range res.Vectors {
		for _, x := range v.Values {
			aggTotal += x
		}
	}
	assert.InDelta(t, total, aggTotal, 1e-9)
}

func TestClusterFavorites_Deterministic(t *testing.T) {
	m := topicMatrix(t)
	c := newTestClusterer(t, nil)
	ids := []int{2, 4, 6, 8, 10, 17, 19, 21, 23}

	a, err := c.ClusterFavorites(context.Background(), m, ids, resolve(t, m, ids))
	require.NoError(t, err)
	b, err := c.ClusterFavorites(context.Background(), m, ids, resolve(t, m, ids))
	require.NoError(t, err)

	assert.Equal(t, a.K, b.K)
	assert.Equal(t, a.Labels, b.Labels)
	assert.Equal(t, a.Vectors, b.Vectors)
}

func TestClusterFavorites_DegenerateFallsBack(t *testing.T) {
	// Every paper is identical, so no k can be fitted.
	rows := make([]features.Vector, 10)
	for i := range rows {
		rows[i] = features.DenseVector([]float64{1, 1, 0})
	}
	m, err := features.FromRows(3, rows)
	require.NoError(t, err)

	c := newTestClusterer(t, nil)
	ids := []int{1, 2, 3, 4, 5, 6}
	vs := resolve(t, m, ids)

	res, err := c.ClusterFavorites(context.Background(), m, ids, vs)
	require.NoError(t, err)
	assert.False(t, res.Clustered)
	assert.Nil(t, res.Labels)
	assert.Len(t, res.Vectors, len(ids))
	for _, cand := range res.Candidates {
		assert.ErrorIs(t, cand.Err, ErrTooFewPoints)
	}
}

func TestClusterFavorites_TimeoutFallsBack(t *testing.T) {
	m := topicMatrix(t)
	c := newTestClusterer(t, func(cfg *Config) {
		cfg.NInit = 1_000_000
		cfg.Timeout = time.Millisecond
	})

	ids := []int{1, 2, 3, 4, 5, 6, 16, 17, 18, 19, 20, 21}
	res, err := c.ClusterFavorites(context.Background(), m, ids, resolve(t, m, ids))
	require.NoError(t, err)
	assert.True(t, res.TimedOut)
	assert.False(t, res.Clustered)
	assert.Len(t, res.Vectors, len(ids))
}

func TestClusterFavorites_CallerCancelled(t *testing.T) {
	m := topicMatrix(t)
	c := newTestClusterer(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ids := []int{1, 2, 3, 4, 5, 6, 16}
	_, err := c.ClusterFavorites(ctx, m, ids, resolve(t, m, ids))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClusterFavorites_LengthMismatch(t *testing.T) {
	m := topicMatrix(t)
	c := newTestClusterer(t, nil)
	_, err := c.ClusterFavorites(context.Background(), m, []int{1, 2}, resolve(t, m, []int{1}))
	assert.Error(t, err)
}

// Paperwise - Academic Paper Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/paperwise

package cluster

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"github.com/tomtom215/paperwise/internal/features"
)

// KMeansConfig controls a single k-means fit.
type KMeansConfig struct {
	// MaxIterations bounds Lloyd iterations per initialization.
	MaxIterations int

	// NInit is the number of k-means++ initializations; the lowest inertia wins.
	NInit int
}

// Model is a fitted k-means partition.
type Model struct {
	K         int
	Centroids [][]float64
	Labels    []int
	Inertia   float64
}

// Predict returns the label of the nearest centroid to v.
func (m *Model) Predict(v features.Vector) int {
	label, _ := nearest(v, v.SquaredNorm(), m.Centroids, centroidNorms(m.Centroids))
	return label
}

// Fit partitions points into k clusters with Lloyd's algorithm and
// k-means++ seeding. The rng drives every random choice, so equal seeds
// give equal models.
func Fit(ctx context.Context, points []features.Vector, k int, cfg KMeansConfig, rng *rand.Rand) (*Model, error) {
	if k < 1 {
		return nil, fmt.Errorf("k must be >= 1, got %d", k)
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("%w: no points", ErrTooFewPoints)
	}
	dim := points[0].Dim
	for i, p := range points {
		if p.Dim != dim {
			return nil, fmt.Errorf("%w: point %d has %d columns, want %d", features.ErrDimensionMismatch, i, p.Dim, dim)
		}
	}
	if d := distinctCount(points, k); d < k {
		return nil, fmt.Errorf("%w: %d distinct points for k=%d", ErrTooFewPoints, d, k)
	}

	maxIter := cfg.MaxIterations
	if maxIter <= 0 {
		maxIter = 300
	}
	nInit := cfg.NInit
	if nInit <= 0 {
		nInit = 1
	}

	sq := make([]float64, len(points))
	for i, p := range points {
		sq[i] = p.SquaredNorm()
	}

	var best *Model
	for run := 0; run < nInit; run++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		centroids := seedPlusPlus(points, sq, k, rng)
		model, err := lloyd(ctx, points, sq, centroids, maxIter)
		if err != nil {
			return nil, err
		}
		if best == nil || model.Inertia < best.Inertia {
			best = model
		}
	}
	return best, nil
}

// seedPlusPlus picks k initial centroids with D^2 sampling.
func seedPlusPlus(points []features.Vector, sq []float64, k int, rng *rand.Rand) [][]float64 {
	n := len(points)
	centroids := make([][]float64, 0, k)
	centroids = append(centroids, points[rng.Intn(n)].Dense())

	d2 := make([]float64, n)
	for i := range d2 {
		d2[i] = math.Inf(1)
	}
	for len(centroids) < k {
		last := centroids[len(centroids)-1]
		lastSq := squaredNorm(last)
		total := 0.0
		for i, p := range points {
			if d := sqDistance(p, sq[i], last, lastSq); d < d2[i] {
				d2[i] = d
			}
			total += d2[i]
		}

		pick := -1
		r := rng.Float64() * total
		cum := 0.0
		for i, d := range d2 {
			if d <= 0 {
				continue
			}
			pick = i
			cum += d
			if cum > r {
				break
			}
		}
		if pick < 0 {
			// Unreachable when there are at least k distinct points.
			pick = rng.Intn(n)
		}
		centroids = append(centroids, points[pick].Dense())
	}
	return centroids
}

// lloyd runs assignment/update rounds until labels stop changing.
func lloyd(ctx context.Context, points []features.Vector, sq []float64, centroids [][]float64, maxIter int) (*Model, error) {
	n, k := len(points), len(centroids)
	dim := len(centroids[0])
	labels := make([]int, n)
	dists := make([]float64, n)
	for i := range labels {
		labels[i] = -1
	}

	for iter := 0; iter < maxIter; iter++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		cn := centroidNorms(centroids)
		changed := false
		for i, p := range points {
			label, d := nearest(p, sq[i], centroids, cn)
			dists[i] = d
			if labels[i] != label {
				labels[i] = label
				changed = true
			}
		}
		if !changed {
			break
		}

		counts := make([]int, k)
		sums := make([][]float64, k)
		for j := range sums {
			sums[j] = make([]float64, dim)
		}
		for i, p := range points {
			p.AddTo(sums[labels[i]])
			counts[labels[i]]++
		}
		for j := range centroids {
			if counts[j] == 0 {
				// Reseed an empty cluster with the point farthest from its centroid.
				far := 0
				for i := range dists {
					if dists[i] > dists[far] {
						far = i
					}
				}
				centroids[j] = points[far].Dense()
				dists[far] = 0
				continue
			}
			inv := 1 / float64(counts[j])
			for d := range sums[j] {
				sums[j][d] *= inv
			}
			centroids[j] = sums[j]
		}
	}

	cn := centroidNorms(centroids)
	inertia := 0.0
	for i, p := range points {
		label, d := nearest(p, sq[i], centroids, cn)
		labels[i] = label
		inertia += d
	}
	return &Model{K: k, Centroids: centroids, Labels: labels, Inertia: inertia}, nil
}

// nearest returns the closest centroid index (lowest index on ties) and
// the squared distance to it.
func nearest(p features.Vector, pSq float64, centroids [][]float64, cn []float64) (int, float64) {
	best, bestDist := 0, math.Inf(1)
	for j, c := range centroids {
		if d := sqDistance(p, pSq, c, cn[j]); d < bestDist {
			best, bestDist = j, d
		}
	}
	return best, bestDist
}

// sqDistance is ||p - c||^2 expanded so the sparse side stays sparse.
func sqDistance(p features.Vector, pSq float64, c []float64, cSq float64) float64 {
	d := pSq - 2*p.DotDense(c) + cSq
	if d < 0 {
		return 0
	}
	return d
}

func squaredNorm(c []float64) float64 {
	var s float64
	for _, x := range c {
		s += x * x
	}
	return s
}

func centroidNorms(centroids [][]float64) []float64 {
	out := make([]float64, len(centroids))
	for j, c := range centroids {
		out[j] = squaredNorm(c)
	}
	return out
}

// distinctCount counts distinct points, stopping once limit is reached.
func distinctCount(points []features.Vector, limit int) int {
	var uniq []features.Vector
	for _, p := range points {
		dup := false
		for _, u := range uniq {
			if equalVectors(p, u) {
				dup = true
				break
			}
		}
		if !dup {
			uniq = append(uniq, p)
			if len(uniq) >= limit {
				break
			}
		}
	}
	return len(uniq)
}

func equalVectors(a, b features.Vector) bool {
	if a.NNZ() != b.NNZ() {
		return false
	}
	for k := range a.Indices {
		if a.Indices[k] != b.Indices[k] || a.Values[k] != b.Values[k] {
			return false
		}
	}
	return true
}

// Paperwise - Academic Paper Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/paperwise

package cluster

import (
	"fmt"
	"math"

	"github.com/tomtom215/paperwise/internal/features"
)

// Silhouette returns the mean silhouette coefficient of points under labels
// using Euclidean distance. Points alone in their cluster score 0.
func Silhouette(points []features.Vector, labels []int) (float64, error) {
	n := len(points)
	if len(labels) != n {
		return 0, fmt.Errorf("silhouette: %d labels for %d points", len(labels), n)
	}

	sizes := make(map[int]int)
	for _, l := range labels {
		sizes[l]++
	}
	if len(sizes) < 2 || len(sizes) > n-1 {
		return 0, fmt.Errorf("%w: %d clusters over %d points", ErrDegenerateLabels, len(sizes), n)
	}

	sq := make([]float64, n)
	for i, p := range points {
		sq[i] = p.SquaredNorm()
	}
	dist := make([][]float64, n)
	for i := range dist {
		dist[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := sq[i] + sq[j] - 2*points[i].Dot(points[j])
			if d < 0 {
				d = 0
			}
			d = math.Sqrt(d)
			dist[i][j], dist[j][i] = d, d
		}
	}

	total := 0.0
	for i := 0; i < n; i++ {
		own := labels[i]
		if sizes[own] == 1 {
			continue
		}

		sums := make(map[int]float64, len(sizes))
		for j := 0; j < n; j++ {
			if j != i {
				sums[labels[j]] += dist[i][j]
			}
		}

		a := sums[own] / float64(sizes[own]-1)
		b := math.Inf(1)
		for l, size := range sizes {
			if l == own {
				continue
			}
			if mean := sums[l] / float64(size); mean < b {
				b = mean
			}
		}

		if m := math.Max(a, b); m > 0 {
			total += (b - a) / m
		}
	}
	return total / float64(n), nil
}

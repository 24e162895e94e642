// Paperwise - Academic Paper Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/paperwise

package recommend

import (
	"math"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/paperwise/internal/features"
)

const scenarioDim = 5

// scenarioRows returns 119 papers: favorites A, B, C are papers 1-3, paper
// 107 scores 0.85 against A, paper 110 scores 0.5 against B, every other row
// is orthogonal to all three favorites.
func scenarioRows() []features.Vector {
	rows := make([]features.Vector, 119)
	for i := range rows {
		rows[i] = features.DenseVector([]float64{0, 0, 0, 0, 1})
	}
	rows[0] = features.DenseVector([]float64{1, 0, 0, 0, 0})
	rows[1] = features.DenseVector([]float64{0, 0, 1, 0, 0})
	rows[2] = features.DenseVector([]float64{0, 0, 0, 1, 0})
	rows[106] = features.DenseVector([]float64{0.85, math.Sqrt(1 - 0.85*0.85), 0, 0, 0})
	rows[109] = features.DenseVector([]float64{0, 0, 0.5, 0, math.Sqrt(0.75)})
	return rows
}

func matrixOf(t *testing.T, cols int, rows []features.Vector) *features.Matrix {
	t.Helper()
	m, err := features.FromRows(cols, rows)
	if err != nil {
		t.Fatalf("FromRows() error = %v", err)
	}
	return m
}

func denseRows(dense ...[]float64) []features.Vector {
	out := make([]features.Vector, len(dense))
	for i, d := range dense {
		out[i] = features.DenseVector(d)
	}
	return out
}

func scenarioStore(t *testing.T) *features.Store {
	t.Helper()
	return features.NewStore(matrixOf(t, scenarioDim, scenarioRows()))
}

// topicStore returns 50 papers in two topics: 1-20 and 41-45 lean on columns
// 0-1, 21-40 and 46-50 on columns 3-4.
func topicStore(t *testing.T) *features.Store {
	t.Helper()
	rows := make([]features.Vector, 50)
	for i := range rows {
		id := i + 1
		w := 0.1 * float64(i%5)
		topicA := id <= 20 || (id >= 41 && id <= 45)
		if topicA {
			rows[i] = features.DenseVector([]float64{1, w, 0, 0, 0, 0.05})
		} else {
			rows[i] = features.DenseVector([]float64{0, 0, 0.05, 1, w, 0})
		}
	}
	return features.NewStore(matrixOf(t, 6, rows))
}

func newTestEngine(t *testing.T, cfg *Config, src FeatureSource) *Engine {
	t.Helper()
	e, err := NewEngine(cfg, src, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return e
}

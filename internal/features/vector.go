// Paperwise - Academic Paper Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/paperwise

package features

import (
	"fmt"
	"math"
	"sort"
)

// Vector is a sparse feature vector. Indices are strictly ascending and
// every index is in [0, Dim). Values[i] is the weight of term Indices[i].
//
// Vectors returned by Matrix.Row share storage with the matrix and must
// not be modified.
type Vector struct {
	Dim     int
	Indices []int32
	Values  []float64
}

// NewVector validates and returns a sparse vector. The slices are not copied.
func NewVector(dim int, indices []int32, values []float64) (Vector, error) {
	if dim < 0 {
		return Vector{}, fmt.Errorf("%w: negative dimension %d", ErrMalformedMatrix, dim)
	}
	if len(indices) != len(values) {
		return Vector{}, fmt.Errorf("%w: %d indices but %d values", ErrMalformedMatrix, len(indices), len(values))
	}
	prev := int32(-1)
	for _, idx := range indices {
		if idx <= prev || int(idx) >= dim {
			return Vector{}, fmt.Errorf("%w: index %d not ascending or outside [0,%d)", ErrMalformedMatrix, idx, dim)
		}
		prev = idx
	}
	return Vector{Dim: dim, Indices: indices, Values: values}, nil
}

// DenseVector builds a sparse vector from dense weights, dropping zeros.
func DenseVector(dense []float64) Vector {
	v := Vector{Dim: len(dense)}
	for i, x := range dense {
		if x != 0 {
			v.Indices = append(v.Indices, int32(i)) //nolint:gosec // G115: len(dense) bounded by vocabulary size
			v.Values = append(v.Values, x)
		}
	}
	return v
}

// NNZ returns the number of stored entries.
func (v Vector) NNZ() int {
	return len(v.Indices)
}

// Dot returns the inner product of two sparse vectors.
func (v Vector) Dot(o Vector) float64 {
	var sum float64
	i, j := 0, 0
	for i < len(v.Indices) && j < len(o.Indices) {
		switch {
		case v.Indices[i] == o.Indices[j]:
			sum += v.Values[i] * o.Values[j]
			i++
			j++
		case v.Indices[i] < o.Indices[j]:
			i++
		default:
			j++
		}
	}
	return sum
}

// DotDense returns the inner product with a dense vector of length Dim.
func (v Vector) DotDense(d []float64) float64 {
	var sum float64
	for k, idx := range v.Indices {
		sum += v.Values[k] * d[idx]
	}
	return sum
}

// AddTo adds v element-wise into the dense accumulator d.
func (v Vector) AddTo(d []float64) {
	for k, idx := range v.Indices {
		d[idx] += v.Values[k]
	}
}

// SquaredNorm returns the squared Euclidean norm.
func (v Vector) SquaredNorm() float64 {
	var sum float64
	for _, x := range v.Values {
		sum += x * x
	}
	return sum
}

// Norm returns the Euclidean norm.
func (v Vector) Norm() float64 {
	return math.Sqrt(v.SquaredNorm())
}

// Dense expands v into a freshly allocated dense slice of length Dim.
func (v Vector) Dense() []float64 {
	d := make([]float64, v.Dim)
	v.AddTo(d)
	return d
}

// Clone returns a deep copy of v.
func (v Vector) Clone() Vector {
	return Vector{
		Dim:     v.Dim,
		Indices: append([]int32(nil), v.Indices...),
		Values:  append([]float64(nil), v.Values...),
	}
}

// Sum returns the element-wise sum of vs. All vectors must have dimension dim.
func Sum(dim int, vs ...Vector) (Vector, error) {
	touched := make(map[int32]float64)
	for _, v := range vs {
		if v.Dim != dim {
			return Vector{}, fmt.Errorf("%w: vector has %d columns, want %d", ErrDimensionMismatch, v.Dim, dim)
		}
		for k, idx := range v.Indices {
			touched[idx] += v.Values[k]
		}
	}

	out := Vector{Dim: dim, Indices: make([]int32, 0, len(touched))}
	for idx, x := range touched {
		if x != 0 {
			out.Indices = append(out.Indices, idx)
		}
	}
	sort.Slice(out.Indices, func(a, b int) bool { return out.Indices[a] < out.Indices[b] })
	out.Values = make([]float64, len(out.Indices))
	for k, idx := range out.Indices {
		out.Values[k] = touched[idx]
	}
	return out, nil
}

// Paperwise - Academic Paper Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/paperwise

package features

import (
	"fmt"
	"sort"
)

// Matrix is an immutable CSR matrix. Row i holds paper id i+1.
//
// indptr offsets are absolute positions in indices/data, so a range view
// can share the parent's arrays by re-slicing indptr alone.
type Matrix struct {
	rows, cols int
	indptr     []int
	indices    []int32
	data       []float64
	norms      []float64
}

// NewMatrix validates CSR arrays and returns a matrix that takes ownership
// of them. Column indices inside a row are sorted if needed; duplicate
// column indices within a row are rejected.
func NewMatrix(rows, cols int, indptr []int, indices []int32, data []float64) (*Matrix, error) {
	if rows < 0 || cols < 0 {
		return nil, fmt.Errorf("%w: negative shape (%d, %d)", ErrMalformedMatrix, rows, cols)
	}
	if len(indptr) != rows+1 {
		return nil, fmt.Errorf("%w: indptr has %d entries, want %d", ErrMalformedMatrix, len(indptr), rows+1)
	}
	if len(indices) != len(data) {
		return nil, fmt.Errorf("%w: %d indices but %d values", ErrMalformedMatrix, len(indices), len(data))
	}
	if indptr[0] < 0 || indptr[rows] > len(indices) {
		return nil, fmt.Errorf("%w: indptr bounds [%d, %d] exceed %d entries", ErrMalformedMatrix, indptr[0], indptr[rows], len(indices))
	}

	m := &Matrix{rows: rows, cols: cols, indptr: indptr, indices: indices, data: data}
	for i := 0; i < rows; i++ {
		start, end := indptr[i], indptr[i+1]
		if end < start {
			return nil, fmt.Errorf("%w: indptr decreases at row %d", ErrMalformedMatrix, i)
		}
		seg := rowSegment{indices: indices[start:end], data: data[start:end]}
		if !sort.IsSorted(seg) {
			sort.Sort(seg)
		}
		for k, idx := range seg.indices {
			if idx < 0 || int(idx) >= cols {
				return nil, fmt.Errorf("%w: row %d column %d outside [0,%d)", ErrMalformedMatrix, i, idx, cols)
			}
			if k > 0 && seg.indices[k-1] == idx {
				return nil, fmt.Errorf("%w: row %d repeats column %d", ErrMalformedMatrix, i, idx)
			}
		}
	}
	m.computeNorms()
	return m, nil
}

// FromRows builds a matrix from sparse row vectors, copying their contents.
func FromRows(cols int, rows []Vector) (*Matrix, error) {
	nnz := 0
	for i, r := range rows {
		if r.Dim != cols {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrDimensionMismatch, i, r.Dim, cols)
		}
		nnz += r.NNZ()
	}
	indptr := make([]int, 1, len(rows)+1)
	indices := make([]int32, 0, nnz)
	data := make([]float64, 0, nnz)
	for _, r := range rows {
		indices = append(indices, r.Indices...)
		data = append(data, r.Values...)
		indptr = append(indptr, len(indices))
	}
	return NewMatrix(len(rows), cols, indptr, indices, data)
}

// Empty returns a matrix with no rows and the given column count.
func Empty(cols int) *Matrix {
	return &Matrix{cols: cols, indptr: []int{0}}
}

// Rows returns the number of rows (papers).
func (m *Matrix) Rows() int {
	return m.rows
}

// Cols returns the number of columns (vocabulary terms).
func (m *Matrix) Cols() int {
	return m.cols
}

// NNZ returns the number of stored entries.
func (m *Matrix) NNZ() int {
	return m.indptr[m.rows] - m.indptr[0]
}

// Row returns row i as a read-only vector view. It panics if i is out of bounds,
// like a slice index.
func (m *Matrix) Row(i int) Vector {
	start, end := m.indptr[i], m.indptr[i+1]
	return Vector{
		Dim:     m.cols,
		Indices: m.indices[start:end:end],
		Values:  m.data[start:end:end],
	}
}

// Norm returns the Euclidean norm of row i.
func (m *Matrix) Norm(i int) float64 {
	return m.norms[i]
}

// Paper returns the feature row of a paper id.
func (m *Matrix) Paper(id int) (Vector, error) {
	if id < 1 || id > m.rows {
		return Vector{}, fmt.Errorf("paper %d (have %d): %w", id, m.rows, ErrOutOfRange)
	}
	return m.Row(id - 1), nil
}

// Papers resolves several paper ids in order.
func (m *Matrix) Papers(ids []int) ([]Vector, error) {
	out := make([]Vector, len(ids))
	for i, id := range ids {
		v, err := m.Paper(id)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// PaperRange returns a view over paper ids [minID, maxID] inclusive. Row 0 of
// the view is paper minID.
func (m *Matrix) PaperRange(minID, maxID int) (*Matrix, error) {
	if minID > maxID {
		return nil, fmt.Errorf("range [%d, %d]: %w", minID, maxID, ErrInvalidRange)
	}
	if minID < 1 {
		return nil, fmt.Errorf("paper %d (have %d): %w", minID, m.rows, ErrOutOfRange)
	}
	if maxID > m.rows {
		return nil, fmt.Errorf("paper %d (have %d): %w", maxID, m.rows, ErrOutOfRange)
	}
	return m.slice(minID-1, maxID), nil
}

// slice returns rows [lo, hi) sharing storage with m.
func (m *Matrix) slice(lo, hi int) *Matrix {
	return &Matrix{
		rows:    hi - lo,
		cols:    m.cols,
		indptr:  m.indptr[lo : hi+1 : hi+1],
		indices: m.indices,
		data:    m.data,
		norms:   m.norms[lo:hi:hi],
	}
}

// appendRows returns a new matrix holding m's rows followed by tail's rows.
// Neither input is modified.
func (m *Matrix) appendRows(tail *Matrix) (*Matrix, error) {
	cols := m.cols
	if m.rows == 0 && cols == 0 {
		cols = tail.cols
	}
	if tail.cols != cols {
		return nil, fmt.Errorf("%w: appending %d columns to %d", ErrDimensionMismatch, tail.cols, cols)
	}

	nnz := m.NNZ() + tail.NNZ()
	rows := m.rows + tail.rows
	out := &Matrix{
		rows:    rows,
		cols:    cols,
		indptr:  make([]int, 0, rows+1),
		indices: make([]int32, 0, nnz),
		data:    make([]float64, 0, nnz),
		norms:   make([]float64, 0, rows),
	}
	out.indptr = append(out.indptr, 0)
	for _, src := range []*Matrix{m, tail} {
		base := src.indptr[0]
		offset := len(out.indices) - base
		out.indices = append(out.indices, src.indices[base:src.indptr[src.rows]]...)
		out.data = append(out.data, src.data[base:src.indptr[src.rows]]...)
		for i := 1; i <= src.rows; i++ {
			out.indptr = append(out.indptr, src.indptr[i]+offset)
		}
		out.norms = append(out.norms, src.norms...)
	}
	return out, nil
}

// compact returns the CSR arrays with indptr rebased to 0, copying only when
// m is a view.
func (m *Matrix) compact() (indptr []int, indices []int32, data []float64) {
	base := m.indptr[0]
	end := m.indptr[m.rows]
	if base == 0 && end == len(m.indices) {
		return m.indptr, m.indices, m.data
	}
	indptr = make([]int, m.rows+1)
	for i := range indptr {
		indptr[i] = m.indptr[i] - base
	}
	return indptr, m.indices[base:end], m.data[base:end]
}

func (m *Matrix) computeNorms() {
	m.norms = make([]float64, m.rows)
	for i := 0; i < m.rows; i++ {
		m.norms[i] = m.Row(i).Norm()
	}
}

// rowSegment sorts one CSR row by column index, keeping values aligned.
type rowSegment struct {
	indices []int32
	data    []float64
}

func (s rowSegment) Len() int           { return len(s.indices) }
func (s rowSegment) Less(i, j int) bool { return s.indices[i] < s.indices[j] }
func (s rowSegment) Swap(i, j int) {
	s.indices[i], s.indices[j] = s.indices[j], s.indices[i]
	s.data[i], s.data[j] = s.data[j], s.data[i]
}

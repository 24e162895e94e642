// Paperwise - Academic Paper Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/paperwise

package features

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// Store publishes the current feature matrix. Reads are lock-free; appends
// are serialized and copy the CSR arrays into a new snapshot.
type Store struct {
	current atomic.Pointer[Matrix]
	mu      sync.Mutex
}

// NewStore returns a store serving m. A nil m starts an empty store whose
// column count is fixed by the first append.
func NewStore(m *Matrix) *Store {
	if m == nil {
		m = Empty(0)
	}
	s := &Store{}
	s.current.Store(m)
	return s
}

// Snapshot returns the matrix in effect now. Callers should take one
// snapshot per computation and resolve every row through it.
func (s *Store) Snapshot() *Matrix {
	return s.current.Load()
}

// Len returns the current row count.
func (s *Store) Len() int {
	return s.Snapshot().Rows()
}

// Row returns the feature row of a paper id from the current snapshot.
func (s *Store) Row(id int) (Vector, error) {
	return s.Snapshot().Paper(id)
}

// RowsInRange returns paper ids [minID, maxID] from the current snapshot.
func (s *Store) RowsInRange(minID, maxID int) (*Matrix, error) {
	return s.Snapshot().PaperRange(minID, maxID)
}

// Append publishes a new snapshot with rows appended and returns the new row
// count. Snapshots taken earlier are unaffected.
func (s *Store) Append(rows *Matrix) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.appendLocked(rows)
}

// AppendAt is Append conditioned on the store still holding base rows. It
// fails with ErrStaleAppend, leaving the store untouched, when another
// append got there first.
func (s *Store) AppendAt(base int, rows *Matrix) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if have := s.current.Load().Rows(); have != base {
		return have, fmt.Errorf("%w: base %d, store %d", ErrStaleAppend, base, have)
	}
	return s.appendLocked(rows)
}

func (s *Store) appendLocked(rows *Matrix) (int, error) {
	cur := s.current.Load()
	if rows.Rows() == 0 {
		return cur.Rows(), nil
	}
	next, err := cur.appendRows(rows)
	if err != nil {
		return cur.Rows(), err
	}
	s.current.Store(next)
	return next.Rows(), nil
}

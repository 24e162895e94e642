// Paperwise - Academic Paper Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/paperwise

package features

import "errors"

var (
	// ErrOutOfRange is returned for paper ids <= 0 or beyond the matrix row count.
	ErrOutOfRange = errors.New("paper id out of range")

	// ErrInvalidRange is returned when a range has MinID > MaxID.
	ErrInvalidRange = errors.New("invalid paper id range")

	// ErrDimensionMismatch is returned when vectors or matrices disagree on column count.
	ErrDimensionMismatch = errors.New("feature dimension mismatch")

	// ErrMalformedMatrix is returned when CSR arrays are inconsistent.
	ErrMalformedMatrix = errors.New("malformed feature matrix")

	// ErrStaleAppend is returned by Store.AppendAt when rows were appended
	// after the caller read the base row count.
	ErrStaleAppend = errors.New("feature store changed since base row count was read")

	// ErrMatrixShrunk is returned by Refresher when the artifact has fewer rows than the store.
	ErrMatrixShrunk = errors.New("feature artifact has fewer rows than the loaded matrix")
)

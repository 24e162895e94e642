// Paperwise - Academic Paper Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/paperwise

package cluster

import "errors"

var (
	// ErrTooFewPoints is returned when there are fewer distinct points than clusters.
	ErrTooFewPoints = errors.New("fewer distinct points than clusters")

	// ErrDegenerateLabels is returned when a silhouette cannot be computed
	// because the labels form one cluster or every point is its own cluster.
	ErrDegenerateLabels = errors.New("silhouette needs between 2 and n-1 clusters")
)

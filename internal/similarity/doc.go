// Paperwise - Academic Paper Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/paperwise

// Package similarity scores feature vectors against a feature matrix with
// cosine similarity and returns thresholded, ranked matches.
//
// Two thresholds are used across the service: SingleThreshold (0.3) when
// looking for papers similar to one paper, and GroupThreshold (0.2) when a
// set of favorites is matched against a daily batch. A match must score
// strictly above the threshold.
//
// Ties are ordered by ascending candidate index. The index travels with its
// score through a stable sort, so equal scores never get mapped back to the
// wrong row.
//
// All functions are pure and safe for concurrent use.
package similarity

// Paperwise - Academic Paper Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/paperwise

/*
Package cluster groups a user's favorite papers into thematic clusters so
that one dominant interest does not drown out the others in daily
recommendations.

A favorites set larger than Config.MinSizeForClustering is first bolstered
with each favorite's nearest neighbors from the feature matrix, then fitted
with k-means for every k in [Config.MinK, Config.MaxK]. Each fit is scored
by the mean silhouette of the original favorites under their predicted
labels; the k with the strictly highest positive silhouette wins and each of
its non-empty clusters is summed into one query vector.

When no k scores above zero, or the sweep exceeds Config.Timeout, the
favorites are returned unclustered and Result.Clustered is false.

Fits are seeded per k from Config.Seed, so results are reproducible even
though the sweep runs the fits concurrently.
*/
package cluster

// Paperwise - Academic Paper Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/paperwise

// Package recommend produces the two recommendation lists Paperwise serves:
// papers similar to one paper, and a user's daily picks from the papers
// ingested on a given date.
//
// # Architecture
//
// Recommend is the daily pipeline itself. It scores every query vector
// against every row of the daily batch, pools the scores, and walks the pool
// from the top, mapping each pool position back to a batch paper id and
// skipping favorites and repeats until enough ids are collected or the score
// falls to the group threshold.
//
// Engine wraps the pipeline for the API:
//
//   - takes one feature store snapshot per call so an append during the call
//     cannot shift row indices
//   - resolves favorites to vectors and clusters them with the cluster package
//   - caches daily results per (batch, favorites, limit) in a TTL LRU
//   - records Prometheus metrics and structured logs with the request id
//
// # Usage
//
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), store, logger)
//	resp, err := engine.Daily(ctx, recommend.DailyRequest{
//	    UserID:      "u-1",
//	    FavoriteIDs: []int{12, 48, 301},
//	    Batch:       models.BatchRange{MinID: 900, MaxID: 960},
//	})
//
// # Determinism
//
// Given the same snapshot, request and seed, Daily returns the same ids in
// the same order. Score ties resolve to the lowest pool position.
package recommend

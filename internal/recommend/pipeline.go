// Paperwise - Academic Paper Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/paperwise

package recommend

import (
	"math"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/tomtom215/paperwise/internal/features"
	"github.com/tomtom215/paperwise/internal/similarity"
)

// DefaultMaxResults is the daily list length when none is requested.
const DefaultMaxResults = 5

// Recommend returns up to maxResults paper ids from batch, best first.
//
// Row r of batch is paper batchStartID+r. Every query is scored against every
// row and the scores are pooled by position query*rows+row. Walking the pool
// in descending score order (ties by position), each position maps back to
// paper batchStartID+position%rows; ids in exclude or already taken are
// skipped. The walk stops at maxResults ids or at the first score <= threshold.
//
// An empty query set or batch yields an empty, non-nil slice.
func Recommend(queries []features.Vector, batch *features.Matrix, batchStartID int, exclude []int, maxResults int, threshold float64) ([]int, error) {
	if len(queries) == 0 || batch == nil || batch.Rows() == 0 {
		return []int{}, nil
	}
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	scores, err := similarity.ScoreAll(queries, batch)
	if err != nil {
		return nil, err
	}

	rows := batch.Rows()
	pool := make([]similarity.Match, 0, rows)
	for q, s := range scores {
		for r, score := range s {
			// Scores at or below the threshold would end the walk anyway.
			if score > threshold {
				pool = append(pool, similarity.Match{Index: q*rows + r, Score: score})
			}
		}
	}
	similarity.Rank(pool)

	excluded := idSet(exclude)
	taken := roaring.New()
	out := make([]int, 0, maxResults)
	for _, m := range pool {
		id := batchStartID + m.Index%rows
		key, ok := bitmapKey(id)
		if !ok || excluded.Contains(key) || taken.Contains(key) {
			continue
		}
		taken.Add(key)
		out = append(out, id)
		if len(out) == maxResults {
			break
		}
	}
	return out, nil
}

// idSet builds a bitmap of the representable ids in ids.
func idSet(ids []int) *roaring.Bitmap {
	b := roaring.New()
	for _, id := range ids {
		if key, ok := bitmapKey(id); ok {
			b.Add(key)
		}
	}
	return b
}

func bitmapKey(id int) (uint32, bool) {
	if id < 0 || int64(id) > math.MaxUint32 {
		return 0, false
	}
	return uint32(id), true
}

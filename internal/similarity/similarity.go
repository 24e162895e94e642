// Paperwise - Academic Paper Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/paperwise

package similarity

import (
	"fmt"
	"sort"

	"github.com/tomtom215/paperwise/internal/features"
)

const (
	// DefaultTopN caps the number of matches when Options.TopN is unset.
	DefaultTopN = 5

	// SingleThreshold is the minimum (exclusive) score for single-paper matching.
	SingleThreshold = 0.3

	// GroupThreshold is the minimum (exclusive) score for group and daily matching.
	GroupThreshold = 0.2

	// NoExclude disables self-similarity exclusion.
	NoExclude = -1
)

// Match is one candidate row and its cosine similarity to the query.
type Match struct {
	Index int     `json:"index"`
	Score float64 `json:"score"`
}

// Options controls FindSimilar.
type Options struct {
	// TopN caps the result length. Values <= 0 use DefaultTopN.
	TopN int

	// Threshold is the exclusive lower bound on returned scores.
	Threshold float64

	// ExcludeIndex is a candidate row never returned, normally the query's
	// own row. NoExclude disables it.
	ExcludeIndex int
}

// SingleOptions returns options for "papers similar to row idx".
func SingleOptions(idx, topN int) Options {
	return Options{TopN: topN, Threshold: SingleThreshold, ExcludeIndex: idx}
}

// GroupOptions returns options for matching a set of queries with no self row.
func GroupOptions(topN int) Options {
	return Options{TopN: topN, Threshold: GroupThreshold, ExcludeIndex: NoExclude}
}

// Cosine returns the cosine similarity of a and b, or 0 if either is a zero vector.
func Cosine(a, b features.Vector) float64 {
	na, nb := a.Norm(), b.Norm()
	if na == 0 || nb == 0 {
		return 0
	}
	return a.Dot(b) / (na * nb)
}

// Scores returns the cosine similarity of query against every row of m.
func Scores(query features.Vector, m *features.Matrix) ([]float64, error) {
	if query.Dim != m.Cols() {
		return nil, fmt.Errorf("%w: query has %d columns, matrix %d", features.ErrDimensionMismatch, query.Dim, m.Cols())
	}

	out := make([]float64, m.Rows())
	qn := query.Norm()
	if qn == 0 || m.Rows() == 0 {
		return out, nil
	}

	dense := query.Dense()
	for i := range out {
		rn := m.Norm(i)
		if rn == 0 {
			continue
		}
		out[i] = m.Row(i).DotDense(dense) / (qn * rn)
	}
	return out, nil
}

// ScoreAll returns Scores for each query, one slice per query.
func ScoreAll(queries []features.Vector, m *features.Matrix) ([][]float64, error) {
	out := make([][]float64, len(queries))
	for q, query := range queries {
		s, err := Scores(query, m)
		if err != nil {
			return nil, fmt.Errorf("query %d: %w", q, err)
		}
		out[q] = s
	}
	return out, nil
}

// FindSimilar ranks the rows of candidates by cosine similarity to queries.
// With several queries each candidate takes its best score across them.
// Results are sorted by descending score, ties by ascending index, filtered
// to scores strictly above opts.Threshold and capped at opts.TopN.
func FindSimilar(queries []features.Vector, candidates *features.Matrix, opts Options) ([]Match, error) {
	topN := opts.TopN
	if topN <= 0 {
		topN = DefaultTopN
	}
	if len(queries) == 0 || candidates.Rows() == 0 {
		return []Match{}, nil
	}

	all, err := ScoreAll(queries, candidates)
	if err != nil {
		return nil, err
	}

	best := all[0]
	for _, s := range all[1:] {
		for i, score := range s {
			if score > best[i] {
				best[i] = score
			}
		}
	}

	matches := make([]Match, 0, topN)
	for i, score := range best {
		if i == opts.ExcludeIndex || score <= opts.Threshold {
			continue
		}
		matches = append(matches, Match{Index: i, Score: score})
	}
	Rank(matches)

	if len(matches) > topN {
		matches = matches[:topN]
	}
	return matches, nil
}

// Rank sorts matches by descending score with ties in ascending index order.
func Rank(matches []Match) {
	sort.SliceStable(matches, func(a, b int) bool {
		if matches[a].Score != matches[b].Score {
			return matches[a].Score > matches[b].Score
		}
		return matches[a].Index < matches[b].Index
	})
}

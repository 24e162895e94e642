// Paperwise - Academic Paper Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/paperwise

package recommend

import (
	"time"

	"github.com/tomtom215/paperwise/internal/cluster"
	"github.com/tomtom215/paperwise/internal/models"
)

// ScoredPaper is a paper id with its similarity score.
type ScoredPaper struct {
	ID    int     `json:"id"`
	Score float64 `json:"score"`
}

// DailyRequest asks for one user's daily recommendations.
type DailyRequest struct {
	// RequestID is optional; the context's request id or a new UUID is used
	// when empty.
	RequestID string `json:"request_id,omitempty"`

	UserID string `json:"user_id,omitempty"`

	// FavoriteIDs are the user's favorite paper ids. Duplicates are ignored.
	FavoriteIDs []int `json:"favorite_ids"`

	Batch models.BatchRange `json:"batch"`

	// MaxResults defaults to Limits.DefaultDaily and is capped at
	// Limits.MaxDaily.
	MaxResults int `json:"max_results,omitempty"`
}

// DailyResponse is the result of Engine.Daily.
type DailyResponse struct {
	// PaperIDs are ordered best first. Never nil.
	PaperIDs []int `json:"paper_ids"`

	Clustering ClusterSummary `json:"clustering"`

	Metadata ResponseMetadata `json:"metadata"`
}

// ClusterSummary describes how the favorites were turned into queries.
type ClusterSummary struct {
	Clustered    bool                `json:"clustered"`
	K            int                 `json:"k"`
	Silhouette   float64             `json:"silhouette"`
	Bolstered    int                 `json:"bolstered"`
	TimedOut     bool                `json:"timed_out"`
	QueryVectors int                 `json:"query_vectors"`
	Candidates   []cluster.Candidate `json:"candidates,omitempty"`
}

// ResponseMetadata contains timing and diagnostic information.
type ResponseMetadata struct {
	RequestID    string            `json:"request_id"`
	UserID       string            `json:"user_id,omitempty"`
	Batch        models.BatchRange `json:"batch"`
	Favorites    int               `json:"favorites"`
	SnapshotRows int               `json:"snapshot_rows"`
	LatencyMS    int64             `json:"latency_ms"`
	CacheHit     bool              `json:"cache_hit"`
	Timestamp    time.Time         `json:"timestamp"`
}

// Metrics are the engine's running counters.
type Metrics struct {
	SimilarRequests int64 `json:"similar_requests"`
	DailyRequests   int64 `json:"daily_requests"`
	EmptyResults    int64 `json:"empty_results"`
	CacheHits       int64 `json:"cache_hits"`
	CacheMisses     int64 `json:"cache_misses"`
	CacheEntries    int   `json:"cache_entries"`
	ErrorCount      int64 `json:"error_count"`
}

// Paperwise - Academic Paper Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/paperwise

package models

import (
	"time"
)

// APIResponse is the envelope every JSON endpoint returns.
//
// Status is "success" with Data populated, or "error" with Error populated:
//
//	{
//	  "status": "success",
//	  "data": {"paper_ids": [107, 110]},
//	  "metadata": {"timestamp": "2026-10-16T12:00:00Z", "query_time_ms": 12}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata carries timing and cache information for a response.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	RequestID   string    `json:"request_id,omitempty"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	Cached      bool      `json:"cached,omitempty"`
}

// APIError is the structured error body.
//
// Common codes:
//   - VALIDATION_ERROR: invalid query or body parameters
//   - NOT_FOUND: unknown paper id or favorite
//   - DATABASE_ERROR: metadata store failure
//   - RECOMMEND_ERROR: recommendation engine failure
//   - RATE_LIMIT_EXCEEDED: too many requests
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// SimilarResponse lists papers similar to one paper.
type SimilarResponse struct {
	PaperID int            `json:"paper_id"`
	Similar []PaperSummary `json:"similar"`
}

// DailyResponse is the daily recommendation list for one user and batch.
type DailyResponse struct {
	UserID     string         `json:"user_id,omitempty"`
	Date       string         `json:"date,omitempty"`
	BatchSize  int            `json:"batch_size"`
	PaperIDs   []int          `json:"paper_ids"`
	Papers     []PaperSummary `json:"papers"`
	Clustered  bool           `json:"clustered"`
	Clusters   int            `json:"clusters,omitempty"`
	Silhouette float64        `json:"silhouette,omitempty"`
}

// PaperDetail is one paper with the requesting user's favorite flag.
type PaperDetail struct {
	Paper
	Favorite *bool `json:"favorite,omitempty"`
}

// SearchResponse is a page of search hits.
type SearchResponse struct {
	Query  string         `json:"query"`
	Total  int            `json:"total"`
	Papers []PaperSummary `json:"papers"`
}

// JournalsResponse lists journal names matching a search.
type JournalsResponse struct {
	Query    string   `json:"query"`
	Journals []string `json:"journals"`
}

// FavoriteChange reports the result of adding or removing a favorite.
type FavoriteChange struct {
	UserID   string `json:"user_id"`
	PaperID  int    `json:"paper_id"`
	Favorite bool   `json:"favorite"`
	Changed  bool   `json:"changed"`
}

// DailyCount is the number of papers published on one date.
type DailyCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// FavoritesResponse lists a user's saved papers.
type FavoritesResponse struct {
	UserID string         `json:"user_id"`
	Papers []PaperSummary `json:"papers"`
}

// HealthStatus reports service liveness.
type HealthStatus struct {
	Status        string `json:"status"`
	Database      bool   `json:"database"`
	FeatureRows   int    `json:"feature_rows"`
	FeatureCols   int    `json:"feature_cols"`
	Version       string `json:"version,omitempty"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}

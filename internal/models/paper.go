// Paperwise - Academic Paper Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/paperwise

package models

import "time"

// Paper is the metadata record for one ingested paper.
//
// ID is dense and assigned in ingestion order; row ID-1 of the feature matrix
// holds the paper's TF-IDF vector. Published is an ISO date (YYYY-MM-DD) and
// groups papers into daily batches.
type Paper struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Abstract  string `json:"abstract,omitempty"`
	Authors   string `json:"authors,omitempty"`
	Journal   string `json:"journal"`
	Link      string `json:"link,omitempty"`
	Published string `json:"published" validate:"omitempty,isodate"`
}

// Summary returns the short form used in result lists.
func (p *Paper) Summary() PaperSummary {
	return PaperSummary{ID: p.ID, Title: p.Title, Journal: p.Journal, Published: p.Published}
}

// PaperSummary is a paper as listed in recommendation and search results.
// Score is set only for similarity results.
type PaperSummary struct {
	ID        int     `json:"id"`
	Title     string  `json:"title"`
	Journal   string  `json:"journal"`
	Published string  `json:"published"`
	Score     float64 `json:"score,omitempty"`
}

// Favorite links a user to a saved paper.
type Favorite struct {
	UserID    string    `json:"user_id"`
	PaperID   int       `json:"paper_id"`
	CreatedAt time.Time `json:"created_at"`
}

// BatchRange is the inclusive paper id range of one day's ingestion. The zero
// value means no papers were ingested.
type BatchRange struct {
	MinID int `json:"min_id"`
	MaxID int `json:"max_id"`
}

// Empty reports whether the range holds no papers.
func (b BatchRange) Empty() bool {
	return b.MinID == 0 && b.MaxID == 0
}

// Len returns the number of ids in the range.
func (b BatchRange) Len() int {
	if b.Empty() || b.MaxID < b.MinID {
		return 0
	}
	return b.MaxID - b.MinID + 1
}

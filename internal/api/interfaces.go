// Paperwise - Academic Paper Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/paperwise

package api

import (
	"context"

	"github.com/tomtom215/paperwise/internal/database"
	"github.com/tomtom215/paperwise/internal/features"
	"github.com/tomtom215/paperwise/internal/models"
	"github.com/tomtom215/paperwise/internal/recommend"
)

// Recommender is the recommendation engine surface used by the handlers.
// *recommend.Engine implements it.
type Recommender interface {
	Similar(ctx context.Context, paperID, topN int) ([]recommend.ScoredPaper, error)
	Daily(ctx context.Context, req recommend.DailyRequest) (*recommend.DailyResponse, error)
	Metrics() recommend.Metrics
}

// MetadataStore is the paper and favorites store. *database.DB implements it.
type MetadataStore interface {
	Ping(ctx context.Context) error
	DailyBatchRange(ctx context.Context, date string) (models.BatchRange, error)
	CountByDate(ctx context.Context, date string) (int, error)
	GetPaper(ctx context.Context, id int) (*models.Paper, error)
	GetPapers(ctx context.Context, ids []int) ([]models.Paper, error)
	ListFavorites(ctx context.Context, userID string) ([]int, error)
	AddFavorite(ctx context.Context, userID string, paperID int) (bool, error)
	RemoveFavorite(ctx context.Context, userID string, paperID int) error
	IsFavorite(ctx context.Context, userID string, paperID int) (bool, error)
	SearchPapers(ctx context.Context, q database.SearchQuery, limit int) ([]int, error)
	SearchJournals(ctx context.Context, terms []string) ([]string, error)
	PapersByJournal(ctx context.Context, journal string, limit int) ([]int, error)
}

// FeatureSource exposes the current feature matrix snapshot.
type FeatureSource interface {
	Snapshot() *features.Matrix
}

var (
	_ Recommender   = (*recommend.Engine)(nil)
	_ MetadataStore = (*database.DB)(nil)
	_ FeatureSource = (*features.Store)(nil)
)

// Paperwise - Academic Paper Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/paperwise

package api

import (
	"context"
	"time"

	"github.com/tomtom215/paperwise/internal/models"
	"github.com/tomtom215/paperwise/internal/validation"
)

// HandlerConfig holds handler settings.
type HandlerConfig struct {
	// MaxSearchResults caps search and journal listings.
	MaxSearchResults int

	// Version is reported by the health endpoint.
	Version string
}

// Handler holds the HTTP handlers and their dependencies.
type Handler struct {
	engine    Recommender
	store     MetadataStore
	source    FeatureSource
	config    HandlerConfig
	startTime time.Time

	// now is the clock used for the default daily batch date.
	now func() time.Time
}

// NewHandler creates a Handler.
func NewHandler(engine Recommender, store MetadataStore, source FeatureSource, cfg HandlerConfig) *Handler {
	if cfg.MaxSearchResults <= 0 {
		cfg.MaxSearchResults = 200
	}
	return &Handler{
		engine:    engine,
		store:     store,
		source:    source,
		config:    cfg,
		startTime: time.Now(),
		now:       time.Now,
	}
}

// yesterday returns the previous calendar day in the server's local time.
// Papers collected overnight are published under that date.
func (h *Handler) yesterday() string {
	return h.now().AddDate(0, 0, -1).Format(validation.DateLayout)
}

// summaries loads the papers for ids in order. Ids without metadata are
// skipped.
func (h *Handler) summaries(ctx context.Context, ids []int) ([]models.PaperSummary, error) {
	out := make([]models.PaperSummary, 0, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	papers, err := h.store.GetPapers(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range papers {
		out = append(out, papers[i].Summary())
	}
	return out, nil
}

func (h *Handler) searchLimit(requested int) int {
	if requested <= 0 || requested > h.config.MaxSearchResults {
		return h.config.MaxSearchResults
	}
	return requested
}

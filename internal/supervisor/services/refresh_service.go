// Paperwise - Academic Paper Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/paperwise

package services

import (
	"context"
	"errors"
	"io/fs"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/paperwise/internal/metrics"
)

// FeatureRefresher appends newly ingested rows to the feature store.
// *features.Refresher implements it.
type FeatureRefresher interface {
	Refresh(ctx context.Context) (int, error)
}

// CacheInvalidator drops cached recommendation results.
// *recommend.Engine implements it.
type CacheInvalidator interface {
	InvalidateCache()
}

// RowCounter reports the feature store size. *features.Store implements it.
type RowCounter interface {
	Len() int
}

// FeatureRefreshConfig holds configuration for the feature refresh service.
type FeatureRefreshConfig struct {
	// Interval between refreshes. Default: 15m.
	Interval time.Duration

	// Timeout bounds a single refresh. Default: 5m.
	Timeout time.Duration

	// RefreshOnStartup runs a refresh as soon as the service starts.
	RefreshOnStartup bool
}

// FeatureRefreshService periodically re-reads the feature artifact. When
// rows were appended it invalidates the recommendation cache, since cached
// daily results may predate the new papers.
type FeatureRefreshService struct {
	refresher FeatureRefresher
	rows      RowCounter
	cache     CacheInvalidator
	config    FeatureRefreshConfig
	logger    zerolog.Logger
	name      string
}

// NewFeatureRefreshService creates the service. cache may be nil.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewFeatureRefreshService(refresher FeatureRefresher, rows RowCounter, cache CacheInvalidator, cfg FeatureRefreshConfig, logger zerolog.Logger) *FeatureRefreshService {
	if cfg.Interval <= 0 {
		cfg.Interval = 15 * time.Minute
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Minute
	}
	return &FeatureRefreshService{
		refresher: refresher,
		rows:      rows,
		cache:     cache,
		config:    cfg,
		logger:    logger.With().Str("service", "feature_refresh").Logger(),
		name:      "feature-refresh",
	}
}

// Serve implements suture.Service.
func (s *FeatureRefreshService) Serve(ctx context.Context) error {
	s.logger.Info().
		Dur("interval", s.config.Interval).
		Bool("refresh_on_startup", s.config.RefreshOnStartup).
		Msg("feature refresh service starting")

	if s.config.RefreshOnStartup {
		s.refresh(ctx)
	}

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("feature refresh service shutting down")
			return ctx.Err()
		case <-ticker.C:
			s.refresh(ctx)
		}
	}
}

// refresh runs one refresh. Failures are logged; the next tick retries.
func (s *FeatureRefreshService) refresh(ctx context.Context) int {
	refreshCtx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	added, err := s.refresher.Refresh(refreshCtx)
	metrics.RecordFeatureRefresh(added, s.rows.Len(), err)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		s.logger.Warn().Err(err).Msg("feature artifact not found")
		return 0
	case err != nil:
		if ctx.Err() == nil {
			s.logger.Error().Err(err).Msg("feature refresh failed")
		}
		return 0
	}

	if added > 0 && s.cache != nil {
		s.cache.InvalidateCache()
	}
	return added
}

// String names the service in supervisor logs.
func (s *FeatureRefreshService) String() string {
	return s.name
}

// Paperwise - Academic Paper Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/paperwise

package features

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// Refresher re-reads the feature artifact and appends rows the ingestion job
// added since the last load.
type Refresher struct {
	store  *Store
	path   string
	logger zerolog.Logger
}

// NewRefresher returns a refresher that keeps store in sync with the artifact at path.
func NewRefresher(store *Store, path string, logger zerolog.Logger) *Refresher {
	return &Refresher{
		store:  store,
		path:   path,
		logger: logger.With().Str("component", "feature_refresh").Logger(),
	}
}

// Path returns the artifact path.
func (r *Refresher) Path() string {
	return r.path
}

// Refresh loads the artifact and appends any new tail rows to the store.
// It returns the number of rows added. An artifact with fewer rows than the
// store fails with ErrMatrixShrunk and leaves the store untouched.
func (r *Refresher) Refresh(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	loaded, err := LoadNPZ(r.path)
	if err != nil {
		return 0, err
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	var have, total int
	for {
		have = r.store.Len()
		switch {
		case loaded.Rows() < have:
			return 0, fmt.Errorf("%w: artifact %d rows, store %d", ErrMatrixShrunk, loaded.Rows(), have)
		case loaded.Rows() == have:
			r.logger.Debug().Int("rows", have).Msg("Feature artifact unchanged")
			return 0, nil
		}

		total, err = r.store.AppendAt(have, loaded.slice(have, loaded.Rows()))
		if errors.Is(err, ErrStaleAppend) {
			// A concurrent refresh moved the store; recompute the tail.
			continue
		}
		if err != nil {
			return 0, fmt.Errorf("append refreshed rows: %w", err)
		}
		break
	}
	added := total - have
	r.logger.Info().
		Int("added", added).
		Int("rows", total).
		Str("path", r.path).
		Msg("Feature store refreshed")
	return added, nil
}

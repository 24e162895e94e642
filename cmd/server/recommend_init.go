// Paperwise - Academic Paper Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/paperwise

package main

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/tomtom215/paperwise/internal/config"
	"github.com/tomtom215/paperwise/internal/features"
	"github.com/tomtom215/paperwise/internal/logging"
	"github.com/tomtom215/paperwise/internal/recommend"
)

// recommenderComponents holds the feature store and the engine built on it.
type recommenderComponents struct {
	store     *features.Store
	refresher *features.Refresher
	engine    *recommend.Engine
}

// initRecommender loads the feature artifact and builds the engine.
func initRecommender(cfg *config.Config) (*recommenderComponents, error) {
	matrix, err := loadFeatures(cfg.Features)
	if err != nil {
		return nil, err
	}
	logging.Info().
		Int("rows", matrix.Rows()).
		Int("cols", matrix.Cols()).
		Int("nnz", matrix.NNZ()).
		Msg("Feature matrix loaded")

	store := features.NewStore(matrix)
	engine, err := recommend.NewEngine(cfg.EngineConfig(), store, logging.WithComponent("recommend"))
	if err != nil {
		return nil, fmt.Errorf("create engine: %w", err)
	}

	return &recommenderComponents{
		store:     store,
		refresher: features.NewRefresher(store, cfg.Features.Path, logging.Logger()),
		engine:    engine,
	}, nil
}

// loadFeatures reads the artifact. With AllowMissing, a missing file gives
// an empty matrix so the server can start before the first ingestion run.
func loadFeatures(cfg config.FeaturesConfig) (*features.Matrix, error) {
	matrix, err := features.LoadNPZ(cfg.Path)
	switch {
	case err == nil:
		return matrix, nil
	case cfg.AllowMissing && errors.Is(err, fs.ErrNotExist):
		logging.Warn().Str("path", cfg.Path).Msg("Feature artifact not found, starting with an empty matrix")
		return features.Empty(0), nil
	default:
		return nil, fmt.Errorf("load features: %w", err)
	}
}

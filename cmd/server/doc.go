// Paperwise - Academic Paper Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/paperwise

// Package main is the entry point for the Paperwise server.
//
// Paperwise recommends newly published academic papers. Each paper has a
// TF-IDF row in a sparse feature matrix produced by the ingestion job; the
// server scores each day's batch against a user's favorite papers.
//
// # Startup
//
//  1. Configuration: defaults, config.yaml, then environment (Koanf v2)
//  2. Logging: zerolog with the configured level and format
//  3. Features: load the CSR .npz artifact into the feature store
//  4. Engine: similarity scorer, clustering and daily pipeline
//  5. Database: DuckDB paper metadata and favorites
//  6. Supervisor tree: HTTP server, feature refresh, checkpoints
//
// # Configuration
//
// Common environment variables:
//
//	HTTP_PORT=8080
//	FEATURES_PATH=/data/features.npz
//	FEATURES_REFRESH_INTERVAL=15m
//	DUCKDB_PATH=/data/paperwise.duckdb
//	LOG_LEVEL=info
//	PAPERWISE_RECOMMEND__MAX_K=4
//
// Any setting can be given as PAPERWISE_<SECTION>__<KEY>.
//
// # Signal Handling
//
// SIGINT and SIGTERM cancel the supervisor tree. The HTTP server drains
// in-flight requests for server.shutdown_timeout, then the database is
// checkpointed and closed.
package main

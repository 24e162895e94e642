// Paperwise - Academic Paper Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/paperwise

/*
Package middleware provides HTTP middleware components for the API router.

Key Components:

  - RequestID: request and correlation ids in the context and X-Request-ID header
  - AccessLog: one structured log line per completed request
  - PrometheusMetrics: request counters, latency and in-flight gauge, labelled
    by chi route pattern
  - Compression: gzip responses for clients that accept it

All middleware has the chi signature func(http.Handler) http.Handler:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog)
	r.Use(middleware.PrometheusMetrics)
	r.Use(middleware.Compression)
*/
package middleware

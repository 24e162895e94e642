// Paperwise - Academic Paper Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/paperwise

/*
Package metrics provides Prometheus metrics collection and export for observability.

Collectors are registered on the default registry with promauto at package
init and exposed by the API router at /metrics:

	curl http://localhost:8080/metrics

# Available Metrics

Database:
  - duckdb_query_duration_seconds{operation, table}
  - duckdb_query_errors_total{operation, table}

API:
  - api_requests_total{method, endpoint, status_code}
  - api_request_duration_seconds{method, endpoint}
  - api_active_requests

Recommendations:
  - recommend_requests_total{kind, outcome}
  - recommend_duration_seconds{kind}
  - recommend_cluster_selected_total{k}
  - recommend_cluster_fallbacks_total{reason}
  - recommend_cache_hits_total, recommend_cache_misses_total

Feature store:
  - feature_store_rows
  - feature_store_refreshes_total{outcome}

Callers use the Record* helpers rather than touching collectors directly.
*/
package metrics

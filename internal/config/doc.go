// Paperwise - Academic Paper Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/paperwise

/*
Package config loads and validates Paperwise configuration.

# Configuration Sources

Load layers three koanf sources, later ones winning:

 1. Defaults built into the Config struct
 2. An optional YAML file: $CONFIG_PATH, then config.yaml, config.yml,
    /etc/paperwise/config.yaml, /etc/paperwise/config.yml
 3. Environment variables

# Environment Variables

Every key can be set as PAPERWISE_<SECTION>__<KEY>, for example:

  - PAPERWISE_SERVER__PORT=9000
  - PAPERWISE_RECOMMEND__CLUSTER_TIMEOUT=2s
  - PAPERWISE_API__CORS_ORIGINS=https://a.example,https://b.example

The common settings also have short names:

  - HTTP_HOST, HTTP_PORT
  - DUCKDB_PATH, DUCKDB_MAX_MEMORY
  - FEATURES_PATH, FEATURES_REFRESH_INTERVAL
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER
  - CORS_ORIGINS, RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT
  - ENVIRONMENT

Unknown variables are ignored.

# Validation

Struct tags are checked with the validation package, then cross-field rules
(limits, bolster bounds, k range) are checked by building the recommendation
engine configuration. Load fails on the first invalid section.
*/
package config

// Paperwise - Academic Paper Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/paperwise

/*
Package api provides the JSON HTTP API using the chi router.

Every response uses the models.APIResponse envelope with status "success" or
"error". Errors carry a machine-readable code:

	VALIDATION_ERROR     400  bad query parameters or body
	NOT_FOUND            404  unknown paper id or favorite
	CONFLICT             409  duplicate resource
	RATE_LIMIT_EXCEEDED  429  httprate limit hit
	TIMEOUT              504  request deadline exceeded
	DATABASE_ERROR       500  metadata store failure
	RECOMMEND_ERROR      500  recommendation engine failure

# Endpoints

Health (permissive rate limit):

	GET  /api/v1/health
	GET  /api/v1/health/live
	GET  /api/v1/health/ready

Papers and recommendations:

	GET  /api/v1/papers/{paperID}?user_id=
	GET  /api/v1/papers/{paperID}/similar?limit=
	GET  /api/v1/recommendations/daily?user_id=&favorites=&date=&limit=
	POST /api/v1/recommendations/daily
	GET  /api/v1/recommendations/stats
	GET  /api/v1/stats/daily?date=

Favorites:

	GET    /api/v1/users/{userID}/favorites
	GET    /api/v1/users/{userID}/favorites/{paperID}
	PUT    /api/v1/users/{userID}/favorites/{paperID}
	DELETE /api/v1/users/{userID}/favorites/{paperID}

Search:

	GET  /api/v1/search?q=&limit=
	GET  /api/v1/journals?q=
	GET  /api/v1/journals/{journal}/papers?limit=

Prometheus metrics are served at /metrics.

The daily batch defaults to papers published yesterday on the server clock.
When no favorites are passed explicitly, the user's stored favorites are used.
*/
package api

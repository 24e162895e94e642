// Paperwise - Academic Paper Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/paperwise

/*
Package models defines the data structures shared by the metadata store and
the HTTP API.

  - Paper, PaperSummary: paper metadata rows and their list form
  - Favorite: a user's saved paper
  - APIResponse, Metadata, APIError: the JSON envelope of every endpoint
  - PaperDetail, SimilarResponse, DailyResponse, SearchResponse,
    JournalsResponse, FavoritesResponse, FavoriteChange, DailyCount,
    HealthStatus: endpoint payloads
*/
package models

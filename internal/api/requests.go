// Paperwise - Academic Paper Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/paperwise

package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

const (
	maxFavoriteCount = 10000
	maxRequestBody   = 1 << 20
)

// SimilarParams are the query parameters of the similar papers endpoint.
type SimilarParams struct {
	PaperID int `json:"paper_id" validate:"min=1"`
	Limit   int `json:"limit" validate:"gte=0,lte=1000"`
}

// DailyParams select a user's daily recommendations. It is read from the
// query string on GET and from the JSON body on POST.
type DailyParams struct {
	UserID    string `json:"user_id" validate:"required_without=Favorites,omitempty,max=128"`
	Favorites []int  `json:"favorites" validate:"omitempty,max=10000,dive,min=1"`
	Date      string `json:"date" validate:"omitempty,isodate"`
	Limit     int    `json:"limit" validate:"gte=0,lte=1000"`
}

// FavoriteParams identify one favorite.
type FavoriteParams struct {
	UserID  string `json:"user_id" validate:"required,max=128"`
	PaperID int    `json:"paper_id" validate:"min=1"`
}

// SearchParams are the query parameters of the search endpoint.
type SearchParams struct {
	Query string `json:"q" validate:"required,max=1000"`
	Limit int    `json:"limit" validate:"gte=0"`
}

// DateParams carry an optional ISO date.
type DateParams struct {
	Date string `json:"date" validate:"omitempty,isodate"`
}

// parseIntParam parses an optional integer query parameter.
func parseIntParam(r *http.Request, name string) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", name)
	}
	return n, nil
}

// parsePathInt parses an integer chi URL parameter.
func parsePathInt(r *http.Request, name string) (int, error) {
	raw := chi.URLParam(r, name)
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", name)
	}
	return n, nil
}

// parseIDList parses a comma-separated id list such as "3,17,42".
// Blank entries are skipped.
func parseIDList(raw string) ([]int, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	if len(parts) > maxFavoriteCount {
		return nil, fmt.Errorf("at most %d favorites are allowed", maxFavoriteCount)
	}
	ids := make([]int, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("favorites: %q is not a paper id", part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

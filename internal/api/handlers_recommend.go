// Paperwise - Academic Paper Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/paperwise

package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/paperwise/internal/logging"
	"github.com/tomtom215/paperwise/internal/models"
	"github.com/tomtom215/paperwise/internal/recommend"
	"github.com/tomtom215/paperwise/internal/validation"
)

// SimilarPapers returns the papers most similar to one paper.
//
// @Summary Get similar papers
// @Tags Recommendations
// @Produce json
// @Param paperID path int true "Paper ID"
// @Param limit query int false "Maximum results"
// @Success 200 {object} models.APIResponse{data=models.SimilarResponse}
// @Router /papers/{paperID}/similar [get]
func (h *Handler) SimilarPapers(w http.ResponseWriter, r *http.Request) {
	paperID, err := parsePathInt(r, "paperID")
	if err != nil {
		respondBadRequest(w, r, err.Error())
		return
	}
	limit, err := parseIntParam(r, "limit")
	if err != nil {
		respondBadRequest(w, r, err.Error())
		return
	}
	params := SimilarParams{PaperID: paperID, Limit: limit}
	if verr := validation.ValidateStruct(&params); verr != nil {
		respondValidationError(w, r, verr)
		return
	}

	ctx := r.Context()
	start := time.Now()
	scored, err := h.engine.Similar(ctx, params.PaperID, params.Limit)
	if err != nil {
		respondFailure(w, r, err, ErrCodeRecommend)
		return
	}

	ids := make([]int, len(scored))
	scores := make(map[int]float64, len(scored))
	for i, s := range scored {
		ids[i] = s.ID
		scores[s.ID] = s.Score
	}
	summaries, err := h.summaries(ctx, ids)
	if err != nil {
		respondFailure(w, r, err, ErrCodeDatabase)
		return
	}
	for i := range summaries {
		summaries[i].Score = scores[summaries[i].ID]
	}

	respondSuccess(w, r, http.StatusOK, models.SimilarResponse{
		PaperID: params.PaperID,
		Similar: summaries,
	}, models.Metadata{QueryTimeMS: time.Since(start).Milliseconds()})
}

// DailyRecommendations returns a user's recommendations from one day's batch.
// Favorites are read from the favorites parameter, or from the user's saved
// favorites when it is absent.
//
// @Summary Get daily recommendations
// @Tags Recommendations
// @Produce json
// @Param user_id query string false "User ID"
// @Param favorites query string false "Comma-separated favorite paper IDs"
// @Param date query string false "Batch date (YYYY-MM-DD), defaults to yesterday"
// @Param limit query int false "Maximum results"
// @Success 200 {object} models.APIResponse{data=models.DailyResponse}
// @Router /recommendations/daily [get]
func (h *Handler) DailyRecommendations(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	favorites, err := parseIDList(query.Get("favorites"))
	if err != nil {
		respondBadRequest(w, r, err.Error())
		return
	}
	limit, err := parseIntParam(r, "limit")
	if err != nil {
		respondBadRequest(w, r, err.Error())
		return
	}

	h.daily(w, r, DailyParams{
		UserID:    strings.TrimSpace(query.Get("user_id")),
		Favorites: favorites,
		Date:      strings.TrimSpace(query.Get("date")),
		Limit:     limit,
	})
}

// DailyRecommendationsPost is DailyRecommendations with a JSON body.
//
// @Summary Get daily recommendations for a favorites list
// @Tags Recommendations
// @Accept json
// @Produce json
// @Param request body DailyParams true "Daily request"
// @Success 200 {object} models.APIResponse{data=models.DailyResponse}
// @Router /recommendations/daily [post]
func (h *Handler) DailyRecommendationsPost(w http.ResponseWriter, r *http.Request) {
	var params DailyParams
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&params); err != nil {
		respondBadRequest(w, r, "Invalid JSON body")
		return
	}
	params.UserID = strings.TrimSpace(params.UserID)
	h.daily(w, r, params)
}

func (h *Handler) daily(w http.ResponseWriter, r *http.Request, params DailyParams) {
	if verr := validation.ValidateStruct(&params); verr != nil {
		respondValidationError(w, r, verr)
		return
	}

	ctx := r.Context()
	start := time.Now()
	date := params.Date
	if date == "" {
		date = h.yesterday()
	}

	favorites := params.Favorites
	if len(favorites) == 0 && params.UserID != "" {
		stored, err := h.store.ListFavorites(ctx, params.UserID)
		if err != nil {
			respondFailure(w, r, err, ErrCodeDatabase)
			return
		}
		favorites = stored
	}

	batch, err := h.store.DailyBatchRange(ctx, date)
	if err != nil {
		respondFailure(w, r, err, ErrCodeDatabase)
		return
	}

	result, err := h.engine.Daily(ctx, recommend.DailyRequest{
		RequestID:   logging.RequestIDFromContext(ctx),
		UserID:      params.UserID,
		FavoriteIDs: favorites,
		Batch:       batch,
		MaxResults:  params.Limit,
	})
	if err != nil {
		respondFailure(w, r, err, ErrCodeRecommend)
		return
	}

	papers, err := h.summaries(ctx, result.PaperIDs)
	if err != nil {
		respondFailure(w, r, err, ErrCodeDatabase)
		return
	}

	out := models.DailyResponse{
		UserID:    params.UserID,
		Date:      date,
		BatchSize: batch.Len(),
		PaperIDs:  result.PaperIDs,
		Papers:    papers,
		Clustered: result.Clustering.Clustered,
	}
	if result.Clustering.Clustered {
		out.Clusters = result.Clustering.K
		out.Silhouette = result.Clustering.Silhouette
	}

	respondSuccess(w, r, http.StatusOK, out, models.Metadata{
		QueryTimeMS: time.Since(start).Milliseconds(),
		Cached:      result.Metadata.CacheHit,
	})
}

// RecommendationStats returns the engine's running counters.
//
// @Summary Get recommendation engine counters
// @Tags Recommendations
// @Produce json
// @Success 200 {object} models.APIResponse{data=recommend.Metrics}
// @Router /recommendations/stats [get]
func (h *Handler) RecommendationStats(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, http.StatusOK, h.engine.Metrics(), models.Metadata{})
}

// DailyStats returns the number of papers published on a date, yesterday by
// default.
func (h *Handler) DailyStats(w http.ResponseWriter, r *http.Request) {
	params := DateParams{Date: strings.TrimSpace(r.URL.Query().Get("date"))}
	if verr := validation.ValidateStruct(&params); verr != nil {
		respondValidationError(w, r, verr)
		return
	}
	if params.Date == "" {
		params.Date = h.yesterday()
	}

	count, err := h.store.CountByDate(r.Context(), params.Date)
	if err != nil {
		respondFailure(w, r, err, ErrCodeDatabase)
		return
	}
	respondSuccess(w, r, http.StatusOK, models.DailyCount{Date: params.Date, Count: count}, models.Metadata{})
}

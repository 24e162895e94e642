// Paperwise - Academic Paper Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/paperwise

package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/paperwise/internal/models"
	"github.com/tomtom215/paperwise/internal/validation"
)

// UserParams identify a user.
type UserParams struct {
	UserID string `json:"user_id" validate:"required,max=128"`
}

// GetPaper returns one paper's metadata. With user_id set, the response
// also says whether the paper is that user's favorite.
//
// @Summary Get a paper
// @Tags Papers
// @Produce json
// @Param paperID path int true "Paper ID"
// @Param user_id query string false "User ID"
// @Success 200 {object} models.APIResponse{data=models.PaperDetail}
// @Router /papers/{paperID} [get]
func (h *Handler) GetPaper(w http.ResponseWriter, r *http.Request) {
	paperID, err := parsePathInt(r, "paperID")
	if err != nil {
		respondBadRequest(w, r, err.Error())
		return
	}
	if paperID < 1 {
		respondBadRequest(w, r, "paperID must be at least 1")
		return
	}

	ctx := r.Context()
	paper, err := h.store.GetPaper(ctx, paperID)
	if err != nil {
		respondFailure(w, r, err, ErrCodeDatabase)
		return
	}

	detail := models.PaperDetail{Paper: *paper}
	if userID := strings.TrimSpace(r.URL.Query().Get("user_id")); userID != "" {
		params := UserParams{UserID: userID}
		if verr := validation.ValidateStruct(&params); verr != nil {
			respondValidationError(w, r, verr)
			return
		}
		favorite, err := h.store.IsFavorite(ctx, userID, paperID)
		if err != nil {
			respondFailure(w, r, err, ErrCodeDatabase)
			return
		}
		detail.Favorite = &favorite
	}

	respondSuccess(w, r, http.StatusOK, detail, models.Metadata{})
}

// UserFavorites lists a user's saved papers, oldest first.
func (h *Handler) UserFavorites(w http.ResponseWriter, r *http.Request) {
	params := UserParams{UserID: chi.URLParam(r, "userID")}
	if verr := validation.ValidateStruct(&params); verr != nil {
		respondValidationError(w, r, verr)
		return
	}

	ctx := r.Context()
	ids, err := h.store.ListFavorites(ctx, params.UserID)
	if err != nil {
		respondFailure(w, r, err, ErrCodeDatabase)
		return
	}
	papers, err := h.summaries(ctx, ids)
	if err != nil {
		respondFailure(w, r, err, ErrCodeDatabase)
		return
	}
	respondSuccess(w, r, http.StatusOK, models.FavoritesResponse{UserID: params.UserID, Papers: papers}, models.Metadata{})
}

// favoriteParams reads and validates the user and paper path parameters.
func favoriteParams(w http.ResponseWriter, r *http.Request) (FavoriteParams, bool) {
	paperID, err := parsePathInt(r, "paperID")
	if err != nil {
		respondBadRequest(w, r, err.Error())
		return FavoriteParams{}, false
	}
	params := FavoriteParams{UserID: chi.URLParam(r, "userID"), PaperID: paperID}
	if verr := validation.ValidateStruct(&params); verr != nil {
		respondValidationError(w, r, verr)
		return FavoriteParams{}, false
	}
	return params, true
}

// GetFavorite reports whether a paper is one of the user's favorites.
func (h *Handler) GetFavorite(w http.ResponseWriter, r *http.Request) {
	params, ok := favoriteParams(w, r)
	if !ok {
		return
	}
	favorite, err := h.store.IsFavorite(r.Context(), params.UserID, params.PaperID)
	if err != nil {
		respondFailure(w, r, err, ErrCodeDatabase)
		return
	}
	respondSuccess(w, r, http.StatusOK, models.FavoriteChange{
		UserID:   params.UserID,
		PaperID:  params.PaperID,
		Favorite: favorite,
	}, models.Metadata{})
}

// PutFavorite saves a paper as a favorite. It responds 201 when the
// favorite is new and 200 when it already existed.
//
// @Summary Add a favorite
// @Tags Favorites
// @Produce json
// @Param userID path string true "User ID"
// @Param paperID path int true "Paper ID"
// @Success 201 {object} models.APIResponse{data=models.FavoriteChange}
// @Router /users/{userID}/favorites/{paperID} [put]
func (h *Handler) PutFavorite(w http.ResponseWriter, r *http.Request) {
	params, ok := favoriteParams(w, r)
	if !ok {
		return
	}
	added, err := h.store.AddFavorite(r.Context(), params.UserID, params.PaperID)
	if err != nil {
		respondFailure(w, r, err, ErrCodeDatabase)
		return
	}

	status := http.StatusOK
	if added {
		status = http.StatusCreated
	}
	respondSuccess(w, r, status, models.FavoriteChange{
		UserID:   params.UserID,
		PaperID:  params.PaperID,
		Favorite: true,
		Changed:  added,
	}, models.Metadata{})
}

// DeleteFavorite removes a favorite. Removing an unknown favorite is a 404.
func (h *Handler) DeleteFavorite(w http.ResponseWriter, r *http.Request) {
	params, ok := favoriteParams(w, r)
	if !ok {
		return
	}
	if err := h.store.RemoveFavorite(r.Context(), params.UserID, params.PaperID); err != nil {
		respondFailure(w, r, err, ErrCodeDatabase)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Paperwise - Academic Paper Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/paperwise

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/tomtom215/paperwise/internal/database"
	"github.com/tomtom215/paperwise/internal/features"
)

// respondFailure maps a store or engine error to an HTTP error response.
// code is used for errors that match no known sentinel.
func respondFailure(w http.ResponseWriter, r *http.Request, err error, code string) {
	switch {
	case errors.Is(err, features.ErrOutOfRange), errors.Is(err, database.ErrNotFound):
		respondError(w, r, http.StatusNotFound, ErrCodeNotFound, err.Error(), err)
	case errors.Is(err, features.ErrInvalidRange),
		errors.Is(err, database.ErrInvalidDate),
		errors.Is(err, database.ErrInvalidQuery):
		respondError(w, r, http.StatusBadRequest, ErrCodeValidation, err.Error(), err)
	case errors.Is(err, database.ErrConflict):
		respondError(w, r, http.StatusConflict, ErrCodeConflict, err.Error(), err)
	case errors.Is(err, context.DeadlineExceeded):
		respondError(w, r, http.StatusGatewayTimeout, ErrCodeTimeout, "Request timed out", err)
	case errors.Is(err, context.Canceled):
		respondError(w, r, http.StatusServiceUnavailable, ErrCodeTimeout, "Request canceled", err)
	case code == ErrCodeDatabase:
		respondError(w, r, http.StatusInternalServerError, code, "Failed to query paper metadata", err)
	default:
		respondError(w, r, http.StatusInternalServerError, code, "Failed to compute recommendations", err)
	}
}

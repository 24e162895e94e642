// Paperwise - Academic Paper Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/paperwise

package api

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/paperwise/internal/database"
	"github.com/tomtom215/paperwise/internal/models"
	"github.com/tomtom215/paperwise/internal/validation"
)

// Search finds papers by date, journal and abstract terms.
//
// The query is a list of words and filters:
//
//	date:2026-10-16 journal:nature quantum sensor
//	from:2026-10-01 to:2026-10-15 protein
//
// @Summary Search papers
// @Tags Search
// @Produce json
// @Param q query string true "Search query"
// @Param limit query int false "Maximum results"
// @Success 200 {object} models.APIResponse{data=models.SearchResponse}
// @Router /search [get]
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	limit, err := parseIntParam(r, "limit")
	if err != nil {
		respondBadRequest(w, r, err.Error())
		return
	}
	params := SearchParams{Query: strings.TrimSpace(r.URL.Query().Get("q")), Limit: limit}
	if verr := validation.ValidateStruct(&params); verr != nil {
		respondValidationError(w, r, verr)
		return
	}

	query, err := database.ParseSearchQuery(params.Query)
	if err != nil {
		respondFailure(w, r, err, ErrCodeDatabase)
		return
	}

	ctx := r.Context()
	start := time.Now()
	ids, err := h.store.SearchPapers(ctx, query, h.searchLimit(params.Limit))
	if err != nil {
		respondFailure(w, r, err, ErrCodeDatabase)
		return
	}
	papers, err := h.summaries(ctx, ids)
	if err != nil {
		respondFailure(w, r, err, ErrCodeDatabase)
		return
	}

	respondSuccess(w, r, http.StatusOK, models.SearchResponse{
		Query:  params.Query,
		Total:  len(papers),
		Papers: papers,
	}, models.Metadata{QueryTimeMS: time.Since(start).Milliseconds()})
}

// Journals lists journal names containing every word of q.
func (h *Handler) Journals(w http.ResponseWriter, r *http.Request) {
	params := SearchParams{Query: strings.TrimSpace(r.URL.Query().Get("q"))}
	if verr := validation.ValidateStruct(&params); verr != nil {
		respondValidationError(w, r, verr)
		return
	}

	journals, err := h.store.SearchJournals(r.Context(), strings.Fields(params.Query))
	if err != nil {
		respondFailure(w, r, err, ErrCodeDatabase)
		return
	}
	if len(journals) > h.config.MaxSearchResults {
		journals = journals[:h.config.MaxSearchResults]
	}
	respondSuccess(w, r, http.StatusOK, models.JournalsResponse{Query: params.Query, Journals: journals}, models.Metadata{})
}

// JournalPapers lists one journal's papers, newest first. The journal name
// must match exactly.
func (h *Handler) JournalPapers(w http.ResponseWriter, r *http.Request) {
	journal := chi.URLParam(r, "journal")
	if unescaped, err := url.PathUnescape(journal); err == nil {
		journal = unescaped
	}
	journal = strings.TrimSpace(journal)
	if journal == "" {
		respondBadRequest(w, r, "journal is required")
		return
	}
	limit, err := parseIntParam(r, "limit")
	if err != nil {
		respondBadRequest(w, r, err.Error())
		return
	}

	ctx := r.Context()
	ids, err := h.store.PapersByJournal(ctx, journal, h.searchLimit(limit))
	if err != nil {
		respondFailure(w, r, err, ErrCodeDatabase)
		return
	}
	papers, err := h.summaries(ctx, ids)
	if err != nil {
		respondFailure(w, r, err, ErrCodeDatabase)
		return
	}
	respondSuccess(w, r, http.StatusOK, models.SearchResponse{
		Query:  journal,
		Total:  len(papers),
		Papers: papers,
	}, models.Metadata{})
}

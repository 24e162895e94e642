// Paperwise - Academic Paper Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/paperwise

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/paperwise/internal/models"
)

// Health reports database connectivity and the feature matrix shape. It
// always responds 200; Status is "degraded" when the database is down.
//
// @Summary Get service health
// @Tags Health
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.HealthStatus}
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	dbConnected := h.store != nil && h.store.Ping(r.Context()) == nil

	health := models.HealthStatus{
		Status:        "healthy",
		Database:      dbConnected,
		Version:       h.config.Version,
		UptimeSeconds: int64(time.Since(h.startTime).Seconds()),
	}
	if !dbConnected {
		health.Status = "degraded"
	}
	if snapshot := h.source.Snapshot(); snapshot != nil {
		health.FeatureRows = snapshot.Rows()
		health.FeatureCols = snapshot.Cols()
	}

	respondSuccess(w, r, http.StatusOK, health, models.Metadata{})
}

// HealthLive is the liveness probe. It only proves the process serves HTTP.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, http.StatusOK, map[string]string{"status": "alive"}, models.Metadata{})
}

// HealthReady is the readiness probe: the database must answer and a feature
// matrix must be loaded.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	if h.store == nil || h.store.Ping(r.Context()) != nil {
		respondError(w, r, http.StatusServiceUnavailable, "NOT_READY", "Database not available", nil)
		return
	}
	if h.source.Snapshot() == nil {
		respondError(w, r, http.StatusServiceUnavailable, "NOT_READY", "Feature matrix not loaded", nil)
		return
	}
	respondSuccess(w, r, http.StatusOK, map[string]string{"status": "ready"}, models.Metadata{})
}

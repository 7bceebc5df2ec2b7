// PlanAdvisor - Mobile and Broadband Plan Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/planadvisor

package api

import (
	"net/http"
	"time"
)

// HealthStatus is the body of the health endpoints.
type HealthStatus struct {
	Status     string  `json:"status"`
	Uptime     float64 `json:"uptime_seconds"`
	Classifier string  `json:"classifier,omitempty"`
	Regions    int     `json:"regions,omitempty"`
	Categories int     `json:"categories,omitempty"`
}

// HealthLive handles GET /api/v1/health/live.
// The process answering is the only liveness condition.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, r, HealthStatus{
		Status: "alive",
		Uptime: time.Since(h.startTime).Seconds(),
	})
}

// HealthReady handles GET /api/v1/health/ready.
// Catalogs and models are loaded before the server starts, so readiness only
// drops while the classifier circuit breaker is open.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	if !h.engine.ClassifierAvailable() {
		NewResponseWriter(w, r).ServiceUnavailable("classifier unavailable: circuit breaker open")
		return
	}
	WriteSuccess(w, r, HealthStatus{
		Status:     "ready",
		Uptime:     time.Since(h.startTime).Seconds(),
		Classifier: h.engine.ClassifierName(),
		Regions:    len(h.engine.Regions()),
		Categories: len(h.engine.Categories()),
	})
}

// PlanAdvisor - Mobile and Broadband Plan Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/planadvisor

package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/tomtom215/planadvisor/internal/catalog"
	"github.com/tomtom215/planadvisor/internal/isp"
	"github.com/tomtom215/planadvisor/internal/logging"
	"github.com/tomtom215/planadvisor/internal/recommend"
	"github.com/tomtom215/planadvisor/internal/validation"
)

// ISPsResponse lists the ISP directory.
type ISPsResponse struct {
	ISPs []isp.Provider `json:"isps"`
	Best *isp.Provider  `json:"best,omitempty"`
}

// MobileResponse is a successful mobile recommendation.
type MobileResponse struct {
	Outcome           recommend.Outcome     `json:"outcome"`
	Message           string                `json:"message"`
	PredictedCategory string                `json:"predicted_category,omitempty"`
	Query             recommend.MobileQuery `json:"query"`
	ISPSpeedInfo      *isp.Speed            `json:"isp_speed_info,omitempty"`
	RecommendedISP    string                `json:"recommended_isp,omitempty"`
	Count             int                   `json:"count"`
	Plans             []catalog.Record      `json:"plans"`
}

// BroadbandResponse is a successful broadband recommendation.
type BroadbandResponse struct {
	Outcome recommend.Outcome        `json:"outcome"`
	Message string                   `json:"message"`
	Query   recommend.BroadbandQuery `json:"query"`
	Count   int                      `json:"count"`
	Plans   []catalog.Record         `json:"plans"`
}

// ListISPs returns the ISP directory and the best ISP.
func (h *Handler) ListISPs(w http.ResponseWriter, r *http.Request) {
	dir := h.engine.ISPs()
	resp := ISPsResponse{ISPs: dir.Providers()}
	if best, ok := dir.Best(); ok {
		resp.Best = &best
	}
	WriteSuccess(w, r, resp)
}

// ListRegions returns the sorted broadband regions.
func (h *Handler) ListRegions(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, r, map[string][]string{"regions": h.engine.Regions()})
}

// ListCategories returns the mobile plan classes.
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, r, map[string][]string{"categories": h.engine.Categories()})
}

// SpeedTestQuery compares ?isp= with the best ISP. Unknown ISPs are a 200 with status "unknown".
func (h *Handler) SpeedTestQuery(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, r, h.engine.SpeedTest(r.URL.Query().Get("isp")))
}

// SpeedTestJSON compares the ISP in the JSON body with the best ISP.
func (h *Handler) SpeedTestJSON(w http.ResponseWriter, r *http.Request) {
	var req SpeedTestRequest
	if err := decodeJSON(w, r, &req); err != nil {
		NewResponseWriter(w, r).BadRequest(err.Error())
		return
	}
	WriteSuccess(w, r, h.engine.SpeedTest(strings.TrimSpace(req.ISP)))
}

// MobileQuery runs the mobile flow for form-style query parameters.
func (h *Handler) MobileQuery(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	res := h.engine.MobileFromInput(r.Context(), mobileInputFrom(r.URL.Query()))
	h.writeMobile(rw, r, res)
}

// MobileJSON runs the mobile flow for a JSON body.
func (h *Handler) MobileJSON(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	var req MobileRequest
	if err := decodeJSON(w, r, &req); err != nil {
		rw.BadRequest(err.Error())
		return
	}
	res := h.engine.Mobile(r.Context(), req.Query())
	h.writeMobile(rw, r, res)
}

func (h *Handler) writeMobile(rw *ResponseWriter, r *http.Request, res *recommend.MobileResult) {
	h.logOutcome(r, recommend.FlowMobile, res.Outcome, len(res.Plans), res.Err)

	if res.Outcome.Failed() {
		details := map[string]interface{}{"outcome": res.Outcome}
		if res.ISPSpeedInfo != nil {
			details["isp_speed_info"] = res.ISPSpeedInfo
		}
		if res.RecommendedISP != "" {
			details["recommended_isp"] = res.RecommendedISP
		}
		writeFailure(rw, res.Outcome, res.Err, details)
		return
	}

	rw.Success(MobileResponse{
		Outcome:           res.Outcome,
		Message:           res.Message,
		PredictedCategory: res.PredictedCategory,
		Query:             res.Query,
		ISPSpeedInfo:      res.ISPSpeedInfo,
		RecommendedISP:    res.RecommendedISP,
		Count:             len(res.Plans),
		Plans:             catalog.MobileRecords(res.Plans),
	})
}

// BroadbandQuery runs the broadband flow for form-style query parameters.
func (h *Handler) BroadbandQuery(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	res := h.engine.BroadbandFromInput(r.Context(), broadbandInputFrom(r.URL.Query()))
	h.writeBroadband(rw, r, res)
}

// BroadbandJSON runs the broadband flow for a JSON body.
func (h *Handler) BroadbandJSON(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	var req BroadbandRequest
	if err := decodeJSON(w, r, &req); err != nil {
		rw.BadRequest(err.Error())
		return
	}
	res := h.engine.Broadband(r.Context(), req.Query())
	h.writeBroadband(rw, r, res)
}

func (h *Handler) writeBroadband(rw *ResponseWriter, r *http.Request, res *recommend.BroadbandResult) {
	h.logOutcome(r, recommend.FlowBroadband, res.Outcome, len(res.Plans), res.Err)

	if res.Outcome.Failed() {
		writeFailure(rw, res.Outcome, res.Err, map[string]interface{}{"outcome": res.Outcome})
		return
	}

	rw.Success(BroadbandResponse{
		Outcome: res.Outcome,
		Message: res.Message,
		Query:   res.Query,
		Count:   len(res.Plans),
		Plans:   catalog.BroadbandRecords(res.Plans),
	})
}

// writeFailure maps a failed outcome to 400 VALIDATION_ERROR or 500 PREDICTION_FAILED.
func writeFailure(rw *ResponseWriter, outcome recommend.Outcome, err error, details map[string]interface{}) {
	message := "recommendation failed"
	if err != nil {
		message = err.Error()
	}

	if outcome == recommend.OutcomeBadInput {
		var verr *validation.RequestValidationError
		if errors.As(err, &verr) {
			if apiErr := verr.ToAPIError(); apiErr.Details != nil {
				for k, v := range apiErr.Details {
					details[k] = v
				}
			}
		}
		rw.ValidationError(message, details)
		return
	}
	rw.PredictionFailed(message, details)
}

// NotFound answers unknown routes: enveloped JSON under /api, plain text otherwise.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		WriteError(w, r, http.StatusNotFound, ErrCodeNotFound, "Endpoint not found")
		return
	}
	http.NotFound(w, r)
}

// MethodNotAllowed answers a known route with the wrong method.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		WriteError(w, r, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "Method not allowed")
		return
	}
	http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
}

// logOutcome records one served recommendation. Predictor failures are warnings.
func (h *Handler) logOutcome(r *http.Request, flow string, outcome recommend.Outcome, plans int, err error) {
	var event *zerolog.Event
	switch outcome {
	case recommend.OutcomePredictorFailure:
		event = h.logger.Warn().Err(err)
	case recommend.OutcomeBadInput:
		event = h.logger.Info().Err(err)
	default:
		event = h.logger.Debug()
	}
	event.
		Str("request_id", requestID(r)).
		Str("flow", flow).
		Str("outcome", string(outcome)).
		Int("plans", plans).
		Msg("Recommendation served")
}

func requestID(r *http.Request) string {
	return logging.RequestIDFromContext(r.Context())
}

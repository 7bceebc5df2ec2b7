// PlanAdvisor - Mobile and Broadband Plan Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/planadvisor

package recommend

import (
	"errors"

	"github.com/tomtom215/planadvisor/internal/catalog"
	"github.com/tomtom215/planadvisor/internal/isp"
)

var (
	// ErrBadInput marks a query that could not be parsed or failed validation.
	ErrBadInput = errors.New("bad input")

	// ErrPredictor marks a classifier, scaler or neighbour index failure.
	ErrPredictor = errors.New("predictor failure")
)

// Outcome tags the result of a recommendation flow.
type Outcome string

const (
	// OutcomeOK means plans were selected for the query.
	OutcomeOK Outcome = "ok"
	// OutcomeNoMatch means the query was valid but nothing matched.
	OutcomeNoMatch Outcome = "no_match"
	// OutcomeShowAll means the broadband query carried no signal and the full catalog is returned.
	OutcomeShowAll Outcome = "show_all"
	// OutcomeBadInput means the query was rejected.
	OutcomeBadInput Outcome = "bad_input"
	// OutcomePredictorFailure means a model call failed.
	OutcomePredictorFailure Outcome = "predictor_failure"
)

// Failed reports whether the outcome carries an error.
func (o Outcome) Failed() bool {
	return o == OutcomeBadInput || o == OutcomePredictorFailure
}

// Flow names used in metrics and cache keys.
const (
	FlowSpeedTest = "speedtest"
	FlowMobile    = "mobile"
	FlowBroadband = "broadband"
)

// Messages shown with recommendation results.
const (
	MsgBestAvailable      = "Showing best available plans."
	MsgNoMobileMatch      = "No plans found matching your criteria."
	MsgBroadbandPrompt    = "Fill in any combination of inputs to get recommendations."
	MsgBroadbandShowAll   = "No input provided. Showing all broadband plans."
	MsgBroadbandMatched   = "Showing recommended broadband plans based on your input."
	mobileErrorPrefix     = "Error: "
	broadbandErrorPrefix  = "An error occurred: "
	mobileCategoryMessage = "Showing best %s plans"
	mobilePredictMessage  = "Predicted Category: %s"
)

// MobileInput is a mobile query as submitted by a form; every field is raw text.
type MobileInput struct {
	Price    string
	Validity string
	Data     string
	Category string
	ISP      string
	Pincode  string
}

// MobileQuery is a parsed mobile query. Nil numerics are absent; a zero is a real value.
type MobileQuery struct {
	Price    *float64 `json:"price,omitempty" validate:"omitempty,finite,gte=0"`
	Validity *float64 `json:"validity,omitempty" validate:"omitempty,finite,gte=0"`
	Data     *float64 `json:"data,omitempty" validate:"omitempty,finite,gte=0"`
	Category string   `json:"category,omitempty" validate:"max=64"`
	ISP      string   `json:"isp,omitempty" validate:"max=64"`
	Pincode  string   `json:"pincode,omitempty" validate:"max=12"`
}

// complete reports whether all three numerics are present.
func (q MobileQuery) complete() bool {
	return q.Price != nil && q.Validity != nil && q.Data != nil
}

// BroadbandInput is a broadband query as submitted by a form.
type BroadbandInput struct {
	Price    string
	Validity string
	Speed    string
	Region   string
}

// BroadbandQuery is a parsed broadband query. Nil numerics are absent.
type BroadbandQuery struct {
	Price    *float64 `json:"price,omitempty" validate:"omitempty,finite,gte=0"`
	Validity *float64 `json:"validity,omitempty" validate:"omitempty,finite,gte=0"`
	Speed    *float64 `json:"speed,omitempty" validate:"omitempty,finite,gte=0"`
	Region   string   `json:"region,omitempty" validate:"max=128"`
}

// MobileResult is the outcome of the mobile flow.
type MobileResult struct {
	Outcome           Outcome              `json:"outcome"`
	Message           string               `json:"message"`
	Plans             []catalog.MobilePlan `json:"-"`
	PredictedCategory string               `json:"predicted_category,omitempty"`
	Query             MobileQuery          `json:"query"`

	// ISPSpeedInfo is set when the selected ISP is in the directory.
	ISPSpeedInfo *isp.Speed `json:"isp_speed_info,omitempty"`
	// RecommendedISP is the best ISP when the selected one is known but slower.
	RecommendedISP string `json:"recommended_isp,omitempty"`

	Err error `json:"-"`
}

// BroadbandResult is the outcome of the broadband flow.
type BroadbandResult struct {
	Outcome Outcome                 `json:"outcome"`
	Message string                  `json:"message"`
	Plans   []catalog.BroadbandPlan `json:"-"`
	Query   BroadbandQuery          `json:"query"`

	Err error `json:"-"`
}

// PlanAdvisor - Mobile and Broadband Plan Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/planadvisor

// Package validation provides struct validation using go-playground/validator v10.
//
// A thread-safe singleton validator checks parsed recommendation queries
// before they reach the engine. Field names in messages come from json tags,
// so a failure reads "price must be greater than or equal to 0" rather than
// naming the Go field.
//
// # Custom Tags
//
//   - finite: the float (or pointed-to float) is neither NaN nor ±Inf
//
// # Usage
//
//	type MobileQuery struct {
//	    Price    *float64 `json:"price" validate:"omitempty,finite,gte=0"`
//	    Category string   `json:"category" validate:"max=64"`
//	}
//
//	if verr := validation.ValidateStruct(&q); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
//	    return
//	}
//
// Optional numerics are pointers; omitempty skips nil so that an explicit 0
// is still validated.
package validation

// PlanAdvisor - Mobile and Broadband Plan Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/planadvisor

package validation

import (
	"math"
	"strings"
	"testing"
)

func TestGetValidator_Singleton(t *testing.T) {
	v1 := GetValidator()
	v2 := GetValidator()

	if v1 != v2 {
		t.Error("GetValidator() should return the same singleton instance")
	}
	if v1 == nil {
		t.Error("GetValidator() should not return nil")
	}
}

type queryStruct struct {
	Price    *float64 `json:"price" validate:"omitempty,finite,gte=0"`
	Speed    *float64 `json:"speed,omitempty" validate:"omitempty,finite,gte=0"`
	Category string   `json:"category" validate:"max=8"`
	Pincode  string   `json:"pincode" validate:"omitempty,numeric,max=6"`
	Internal int      `json:"-" validate:"min=0"`
	Plain    int      `validate:"lte=10"`
}

func ptr(v float64) *float64 { return &v }

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name      string
		input     queryStruct
		wantField string
		wantMsg   string
	}{
		{name: "empty is valid", input: queryStruct{}},
		{name: "explicit zero is valid", input: queryStruct{Price: ptr(0)}},
		{name: "negative price", input: queryStruct{Price: ptr(-1)}, wantField: "price", wantMsg: "price must be greater than or equal to 0"},
		{name: "NaN price", input: queryStruct{Price: ptr(math.NaN())}, wantField: "price", wantMsg: "price must be a finite number"},
		{name: "infinite speed", input: queryStruct{Speed: ptr(math.Inf(1))}, wantField: "speed", wantMsg: "speed must be a finite number"},
		{name: "long category", input: queryStruct{Category: "Unlimited+"}, wantField: "category", wantMsg: "category must be at most 8 characters"},
		{name: "pincode letters", input: queryStruct{Pincode: "11A001"}, wantField: "pincode", wantMsg: "pincode must contain digits only"},
		{name: "go field name without json tag", input: queryStruct{Plain: 11}, wantField: "Plain", wantMsg: "Plain must be less than or equal to 10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&tt.input)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("ValidateStruct() unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("ValidateStruct() expected error")
			}
			errs := err.Errors()
			if len(errs) != 1 {
				t.Fatalf("expected 1 error, got %d: %v", len(errs), err)
			}
			if errs[0].Field() != tt.wantField {
				t.Errorf("Field() = %q, want %q", errs[0].Field(), tt.wantField)
			}
			if errs[0].Error() != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", errs[0].Error(), tt.wantMsg)
			}
		})
	}
}

func TestToAPIError_SingleError(t *testing.T) {
	err := ValidateStruct(&queryStruct{Price: ptr(-5)})
	if err == nil {
		t.Fatal("expected validation error")
	}

	apiErr := err.ToAPIError()
	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("Code = %q, want VALIDATION_ERROR", apiErr.Code)
	}
	if apiErr.Details["field"] != "price" || apiErr.Details["tag"] != "gte" {
		t.Errorf("Details = %v", apiErr.Details)
	}
}

func TestToAPIError_MultipleErrors(t *testing.T) {
	err := ValidateStruct(&queryStruct{Price: ptr(-5), Category: "far too long"})
	if err == nil {
		t.Fatal("expected validation error")
	}

	apiErr := err.ToAPIError()
	if !strings.Contains(apiErr.Message, "price") || !strings.Contains(apiErr.Message, "category") {
		t.Errorf("Message = %q, want both fields", apiErr.Message)
	}
	fields, ok := apiErr.Details["fields"].([]map[string]interface{})
	if !ok || len(fields) != 2 {
		t.Errorf("Details[fields] = %v, want 2 entries", apiErr.Details["fields"])
	}
	if !strings.Contains(err.Error(), "; ") {
		t.Errorf("Error() = %q, want joined messages", err.Error())
	}
}

func TestToAPIError_Empty(t *testing.T) {
	apiErr := (&RequestValidationError{}).ToAPIError()
	if apiErr.Message != "Validation failed" {
		t.Errorf("Message = %q", apiErr.Message)
	}
}

// PlanAdvisor - Mobile and Broadband Plan Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/planadvisor

package recommend

import (
	"strconv"
	"strings"

	"github.com/tomtom215/planadvisor/internal/validation"
)

// parseNumber reads an optional numeric form field. Blank means absent.
func parseNumber(field, raw string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, badInput("%s must be a number, got %q", field, raw)
	}
	return &v, nil
}

// ParseMobileInput converts form text into a validated query.
func ParseMobileInput(in MobileInput) (MobileQuery, error) {
	q := MobileQuery{
		Category: strings.TrimSpace(in.Category),
		ISP:      strings.TrimSpace(in.ISP),
		Pincode:  strings.TrimSpace(in.Pincode),
	}

	var err error
	if q.Price, err = parseNumber("price", in.Price); err != nil {
		return q, err
	}
	if q.Validity, err = parseNumber("validity", in.Validity); err != nil {
		return q, err
	}
	if q.Data, err = parseNumber("data", in.Data); err != nil {
		return q, err
	}
	return q, q.Validate()
}

// Validate checks ranges and lengths.
func (q MobileQuery) Validate() error {
	if verr := validation.ValidateStruct(&q); verr != nil {
		return &inputError{detail: verr.Error(), cause: verr}
	}
	return nil
}

// ParseBroadbandInput converts form text into a validated query.
func ParseBroadbandInput(in BroadbandInput) (BroadbandQuery, error) {
	q := BroadbandQuery{Region: strings.TrimSpace(in.Region)}

	var err error
	if q.Price, err = parseNumber("price", in.Price); err != nil {
		return q, err
	}
	if q.Validity, err = parseNumber("validity", in.Validity); err != nil {
		return q, err
	}
	if q.Speed, err = parseNumber("speed", in.Speed); err != nil {
		return q, err
	}
	return q, q.Validate()
}

// Validate checks ranges and lengths.
func (q BroadbandQuery) Validate() error {
	if verr := validation.ValidateStruct(&q); verr != nil {
		return &inputError{detail: verr.Error(), cause: verr}
	}
	return nil
}

// PlanAdvisor - Mobile and Broadband Plan Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/planadvisor

package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/planadvisor/internal/recommend"
)

// maxJSONBytes bounds JSON request bodies.
const maxJSONBytes = 64 << 10

// SpeedTestRequest is the body of POST /api/v1/speedtest.
type SpeedTestRequest struct {
	ISP     string `json:"isp"`
	Pincode string `json:"pincode,omitempty"`
}

// MobileRequest is the body of POST /api/v1/recommend/mobile.
// Omitted or null numerics are absent; 0 is a real value.
type MobileRequest struct {
	Price    *float64 `json:"price"`
	Validity *float64 `json:"validity"`
	Data     *float64 `json:"data"`
	Category string   `json:"category"`
	ISP      string   `json:"isp"`
	Pincode  string   `json:"pincode"`
}

// Query normalizes the request into an engine query. The engine validates it.
func (m MobileRequest) Query() recommend.MobileQuery {
	return recommend.MobileQuery{
		Price:    m.Price,
		Validity: m.Validity,
		Data:     m.Data,
		Category: strings.TrimSpace(m.Category),
		ISP:      strings.TrimSpace(m.ISP),
		Pincode:  strings.TrimSpace(m.Pincode),
	}
}

// BroadbandRequest is the body of POST /api/v1/recommend/broadband.
type BroadbandRequest struct {
	Price    *float64 `json:"price"`
	Validity *float64 `json:"validity"`
	Speed    *float64 `json:"speed"`
	Region   string   `json:"region"`
}

// Query normalizes the request into an engine query.
func (b BroadbandRequest) Query() recommend.BroadbandQuery {
	return recommend.BroadbandQuery{
		Price:    b.Price,
		Validity: b.Validity,
		Speed:    b.Speed,
		Region:   strings.TrimSpace(b.Region),
	}
}

// mobileInputFrom reads the mobile form fields from form or query values.
func mobileInputFrom(v url.Values) recommend.MobileInput {
	return recommend.MobileInput{
		Price:    v.Get("price"),
		Validity: v.Get("validity"),
		Data:     v.Get("data"),
		Category: v.Get("category"),
		ISP:      v.Get("isp"),
		Pincode:  v.Get("pincode"),
	}
}

// broadbandInputFrom reads the broadband form fields from form or query values.
func broadbandInputFrom(v url.Values) recommend.BroadbandInput {
	return recommend.BroadbandInput{
		Price:    v.Get("price"),
		Validity: v.Get("validity"),
		Speed:    v.Get("speed"),
		Region:   v.Get("region"),
	}
}

// decodeJSON reads a single JSON object into dst, rejecting unknown fields
// and trailing data. An empty body leaves dst unchanged.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	if dec.More() {
		return errors.New("invalid JSON body: unexpected data after object")
	}
	return nil
}

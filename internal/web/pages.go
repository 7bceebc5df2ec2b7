// PlanAdvisor - Mobile and Broadband Plan Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/planadvisor

package web

import (
	"github.com/tomtom215/planadvisor/internal/catalog"
	"github.com/tomtom215/planadvisor/internal/isp"
	"github.com/tomtom215/planadvisor/internal/recommend"
)

// Page names a renderable page.
type Page string

// Pages served by the HTML routes.
const (
	PageIndex     Page = "index"
	PageSpeed     Page = "speed"
	PageRecommend Page = "recommend"
	PageBroadband Page = "broadband"
	PageAbout     Page = "about"
)

// StaticPage is the data for pages without dynamic content.
type StaticPage struct {
	Title string
}

// SpeedPage is the data for the ISP comparison page.
type SpeedPage struct {
	Title    string
	Message  string
	ISPs     []isp.Provider
	Best     isp.Provider
	HasBest  bool
	Selected string
	Pincode  string
}

// RecommendPage is the data for the mobile recommendation page.
// Form echoes the submitted values back into the inputs.
type RecommendPage struct {
	Title      string
	Message    string
	Form       recommend.MobileInput
	Categories []string
	ISPs       []string

	Columns []string
	Plans   []catalog.Record

	ISPSpeedInfo   *isp.Speed
	SelectedISP    string
	RecommendedISP string
}

// BroadbandPage is the data for the broadband recommendation page.
type BroadbandPage struct {
	Title   string
	Message string
	Form    recommend.BroadbandInput
	Regions []string

	Columns []string
	Plans   []catalog.Record
}

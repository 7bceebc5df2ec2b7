// PlanAdvisor - Mobile and Broadband Plan Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/planadvisor

package api

import (
	"net/http"

	"github.com/tomtom215/planadvisor/internal/catalog"
	"github.com/tomtom215/planadvisor/internal/recommend"
	"github.com/tomtom215/planadvisor/internal/web"
)

// maxFormBytes bounds form submissions; every form is a handful of short fields.
const maxFormBytes = 64 << 10

// IndexPage renders the landing page.
func (h *Handler) IndexPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, web.PageIndex, web.StaticPage{Title: "Home"})
}

// AboutPage renders the about page.
func (h *Handler) AboutPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, web.PageAbout, web.StaticPage{Title: "About"})
}

// SpeedTestPage renders the ISP comparison form.
func (h *Handler) SpeedTestPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, web.PageSpeed, h.speedPage())
}

// SpeedTestSubmit compares the submitted ISP with the best one.
func (h *Handler) SpeedTestSubmit(w http.ResponseWriter, r *http.Request) {
	if !h.parseForm(w, r) {
		return
	}
	name := r.PostForm.Get("isp")
	cmp := h.engine.SpeedTest(name)

	page := h.speedPage()
	page.Message = cmp.Message
	page.Selected = name
	page.Pincode = r.PostForm.Get("pincode")
	h.render(w, r, web.PageSpeed, page)
}

func (h *Handler) speedPage() web.SpeedPage {
	dir := h.engine.ISPs()
	best, ok := dir.Best()
	return web.SpeedPage{
		Title:   "ISP Speed",
		ISPs:    dir.Providers(),
		Best:    best,
		HasBest: ok,
	}
}

// RecommendPage renders the mobile plan form.
func (h *Handler) RecommendPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, web.PageRecommend, h.recommendPage(recommend.MobileInput{}))
}

// RecommendSubmit runs the mobile flow for the submitted form.
func (h *Handler) RecommendSubmit(w http.ResponseWriter, r *http.Request) {
	if !h.parseForm(w, r) {
		return
	}
	in := mobileInputFrom(r.PostForm)
	res := h.engine.MobileFromInput(r.Context(), in)
	h.logOutcome(r, recommend.FlowMobile, res.Outcome, len(res.Plans), res.Err)

	page := h.recommendPage(in)
	page.Message = res.Message
	page.Plans = catalog.MobileRecords(res.Plans)
	page.ISPSpeedInfo = res.ISPSpeedInfo
	page.SelectedISP = res.Query.ISP
	page.RecommendedISP = res.RecommendedISP
	h.render(w, r, web.PageRecommend, page)
}

func (h *Handler) recommendPage(in recommend.MobileInput) web.RecommendPage {
	return web.RecommendPage{
		Title:      "Mobile Plans",
		Form:       in,
		Categories: h.engine.Categories(),
		ISPs:       h.engine.ISPs().Names(),
		Columns:    h.engine.MobileColumns(),
	}
}

// BroadbandPage renders the broadband form with the input prompt.
func (h *Handler) BroadbandPage(w http.ResponseWriter, r *http.Request) {
	page := h.broadbandPage(recommend.BroadbandInput{})
	page.Message = recommend.MsgBroadbandPrompt
	h.render(w, r, web.PageBroadband, page)
}

// BroadbandSubmit runs the broadband flow for the submitted form.
func (h *Handler) BroadbandSubmit(w http.ResponseWriter, r *http.Request) {
	if !h.parseForm(w, r) {
		return
	}
	in := broadbandInputFrom(r.PostForm)
	res := h.engine.BroadbandFromInput(r.Context(), in)
	h.logOutcome(r, recommend.FlowBroadband, res.Outcome, len(res.Plans), res.Err)

	page := h.broadbandPage(in)
	page.Message = res.Message
	page.Plans = catalog.BroadbandRecords(res.Plans)
	h.render(w, r, web.PageBroadband, page)
}

func (h *Handler) broadbandPage(in recommend.BroadbandInput) web.BroadbandPage {
	return web.BroadbandPage{
		Title:   "Broadband Plans",
		Form:    in,
		Regions: h.engine.Regions(),
		Columns: h.engine.BroadbandColumns(),
	}
}

// parseForm reads a size-limited form body. It answers 400 itself on failure.
func (h *Handler) parseForm(w http.ResponseWriter, r *http.Request) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		h.logger.Warn().
			Err(err).
			Str("request_id", requestID(r)).
			Str("path", r.URL.Path).
			Msg("Rejected unreadable form submission")
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return false
	}
	return true
}

// render writes an HTML page. Template failures are logged and answered with 500.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, page web.Page, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.pages.Render(w, page, data); err != nil {
		h.logger.Error().
			Err(err).
			Str("request_id", requestID(r)).
			Str("page", string(page)).
			Msg("Failed to render page")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

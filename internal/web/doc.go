// PlanAdvisor - Mobile and Broadband Plan Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/planadvisor

// Package web renders the HTML pages from templates embedded in the binary.
//
// Every page shares templates/layout.html, which defines the "layout",
// "message" and "plans" templates; page files only define "content". Pages are
// rendered into a buffer first so a template error never leaves a partial
// response on the wire.
//
//	r, err := web.New()
//	err = r.Render(w, web.PageSpeed, web.SpeedPage{Title: "ISP Speed", ...})
package web

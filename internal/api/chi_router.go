// PlanAdvisor - Mobile and Broadband Plan Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/planadvisor

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/planadvisor/internal/middleware"
)

// Router wires handlers to routes.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router. A nil config uses DefaultChiMiddlewareConfig.
func NewRouter(handler *Handler, cfg *ChiMiddlewareConfig) *Router {
	return &Router{
		handler:       handler,
		chiMiddleware: NewChiMiddleware(cfg),
	}
}

// SetupChi configures all HTTP routes using Chi router.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// ========================
	// Global Middleware Stack
	// ========================
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS()) // CORS must be global to handle OPTIONS preflight
	r.Use(middleware.PrometheusMetrics)
	r.Use(chimiddleware.Compress(5, "text/html", "application/json"))

	r.NotFound(router.handler.NotFound)
	r.MethodNotAllowed(router.handler.MethodNotAllowed)

	// ========================
	// HTML Pages
	// ========================
	r.Group(func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(PageSecurityHeaders())

		r.Get("/", router.handler.IndexPage)
		r.Get("/about", router.handler.AboutPage)

		r.Get("/speedtest", router.handler.SpeedTestPage)
		r.Post("/speedtest", router.handler.SpeedTestSubmit)

		r.Get("/recommend", router.handler.RecommendPage)
		r.Post("/recommend", router.handler.RecommendSubmit)

		r.Get("/broadband", router.handler.BroadbandPage)
		r.Post("/broadband", router.handler.BroadbandSubmit)
	})

	// ========================
	// Health Endpoints
	// ========================
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitHealth())
		r.Use(APISecurityHeaders())
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})

	// ========================
	// JSON API
	// ========================
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())

		r.Get("/isps", router.handler.ListISPs)
		r.Get("/regions", router.handler.ListRegions)
		r.Get("/categories", router.handler.ListCategories)

		r.Get("/speedtest", router.handler.SpeedTestQuery)
		r.Post("/speedtest", router.handler.SpeedTestJSON)

		r.Route("/recommend", func(r chi.Router) {
			r.Get("/mobile", router.handler.MobileQuery)
			r.Post("/mobile", router.handler.MobileJSON)
			r.Get("/broadband", router.handler.BroadbandQuery)
			r.Post("/broadband", router.handler.BroadbandJSON)
		})
	})

	// ========================
	// Prometheus Metrics
	// ========================
	r.Handle("/metrics", promhttp.Handler())

	return r
}

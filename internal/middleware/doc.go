// PlanAdvisor - Mobile and Broadband Plan Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/planadvisor

/*
Package middleware provides HTTP middleware shared by the page and API routes.

Key Components:

  - RequestID: accepts or generates an X-Request-ID and stores it in the
    logging context so every log line of a request carries it
  - PrometheusMetrics: request count, duration and in-flight gauge, labelled
    by the chi route pattern to keep cardinality bounded

Both are plain func(http.Handler) http.Handler and can be passed to chi's Use:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.PrometheusMetrics)

See Also:

  - internal/api: router and handlers wrapped by this middleware
  - internal/metrics: Prometheus metric definitions
*/
package middleware

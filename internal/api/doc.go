// PlanAdvisor - Mobile and Broadband Plan Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/planadvisor

/*
Package api provides the HTTP surface of PlanAdvisor: server-rendered HTML
pages and a versioned JSON API over the same recommendation engine.

HTML Routes:

	GET  /            landing page
	GET  /speedtest   ISP comparison form
	POST /speedtest   comparison message against the fastest ISP
	GET  /recommend   mobile plan form
	POST /recommend   mobile plan recommendations
	GET  /broadband   broadband plan form
	POST /broadband   broadband plan recommendations
	GET  /about       static page

HTML routes always answer 200; failures are reported in the page message.

JSON API (/api/v1):

	GET       /isps                 ISP directory and best ISP
	GET       /regions              broadband regions
	GET       /categories           mobile plan classes
	GET, POST /speedtest            ISP comparison (?isp= or {"isp": ...})
	GET, POST /recommend/mobile     mobile recommendations
	GET, POST /recommend/broadband  broadband recommendations
	GET       /health/live          liveness
	GET       /health/ready         readiness (503 while the classifier breaker is open)

GET endpoints take form-style query parameters; POST endpoints take a JSON body
with numeric fields as numbers. Responses use the APIResponse envelope.
Invalid queries return 400 VALIDATION_ERROR and model failures return 500
PREDICTION_FAILED. Prometheus metrics are served at /metrics.

Middleware Stack:

	RequestID -> RealIP -> Recoverer -> CORS -> PrometheusMetrics
	  pages:  RateLimit -> PageSecurityHeaders
	  api:    RateLimit -> APISecurityHeaders
	  health: RateLimitHealth -> APISecurityHeaders
*/
package api

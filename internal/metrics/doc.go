// PlanAdvisor - Mobile and Broadband Plan Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/planadvisor

/*
Package metrics provides Prometheus metrics collection and export for observability.

All collectors are registered with the default registry through promauto and
exposed at /metrics:

	curl http://localhost:5000/metrics

# Available Metrics

Catalogs:
  - catalog_rows{catalog}: plans loaded per catalog
  - catalog_load_duration_seconds{catalog}, catalog_load_errors_total{catalog}

HTTP API:
  - api_requests_total{method,endpoint,status_code}
  - api_request_duration_seconds{method,endpoint}
  - api_active_requests, api_rate_limit_hits_total{endpoint}

Recommendations:
  - recommendations_total{flow,outcome}
  - recommendation_duration_seconds{flow}, recommendation_plans{flow}
  - result_cache_hits_total{flow}, result_cache_misses_total{flow}

Predictors:
  - predictor_duration_seconds{predictor}, predictor_errors_total{predictor}
  - circuit_breaker_state{name}, circuit_breaker_transitions_total{name,from,to}
*/
package metrics

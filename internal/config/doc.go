// PlanAdvisor - Mobile and Broadband Plan Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/planadvisor

/*
Package config provides centralized configuration management for PlanAdvisor.

Configuration is layered with Koanf:

 1. Struct defaults (defaultConfig)
 2. An optional YAML file: CONFIG_PATH, planadvisor.yaml, or /etc/planadvisor/planadvisor.yaml
 3. Environment variables (highest priority)

# Environment Variables

Server:
  - HTTP_HOST: Bind address (default: 0.0.0.0)
  - HTTP_PORT: Listen port (default: 5000)
  - HTTP_TIMEOUT: Read/write timeout (default: 30s)
  - ENVIRONMENT: development, staging or production

Security:
  - CORS_ORIGINS: Comma-separated allowed origins (default: *)
  - RATE_LIMIT_REQUESTS / RATE_LIMIT_WINDOW: Per-IP limit (default: 100 per 1m)
  - DISABLE_RATE_LIMIT: Disable rate limiting

Logging:
  - LOG_LEVEL: trace, debug, info, warn, error (default: info)
  - LOG_FORMAT: json or console (default: json)
  - LOG_CALLER: Include caller information

Catalogs and models:
  - MOBILE_CATALOG_PATH, BROADBAND_CATALOG_PATH: Plan CSV files
  - CLASSIFIER_BACKEND: xgboost (default) or onnx
  - XGBOOST_MODEL_PATH, ONNX_MODEL_PATH, ONNX_RUNTIME_LIB, LABEL_CLASSES_PATH
  - SCALER_PATH, FEATURES_PATH, KNN_MODEL_PATH: Broadband nearest-neighbour artifacts

Recommendations:
  - RECOMMEND_TOLERANCE: Relative range around numeric filters (default: 0.2)
  - RECOMMEND_MOBILE_LIMIT: Mobile plans returned (default: 4)
  - RECOMMEND_NEIGHBORS: Override the fitted n_neighbors (default: 0, use artifact)
  - RECOMMEND_CACHE_TTL: Result cache lifetime, 0 disables (default: 5m)
  - BREAKER_*: Classifier circuit breaker settings

# Usage

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}
	fmt.Println(cfg.Server.Addr())
*/
package config

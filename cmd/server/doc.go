// PlanAdvisor - Mobile and Broadband Plan Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/planadvisor

/*
Package main is the entry point for the PlanAdvisor server.

PlanAdvisor recommends mobile recharge plans and broadband plans from two CSV
catalogs and a set of fitted model artifacts, and compares ISP speed figures.
It serves an HTML form interface and a JSON API over the same recommendation
engine.

# Startup

 1. Configuration: Koanf v2 (defaults, optional config.yaml, environment)
 2. Logging: zerolog, with an slog bridge for the supervisor
 3. Catalogs: mobile and broadband CSVs read through in-memory DuckDB
 4. Predictors: feature list, scaler, KNN index, then the mobile classifier
    (XGBoost JSON or ONNX Runtime), optionally behind a circuit breaker
 5. Engine, page renderer and chi router
 6. Supervisor tree running the HTTP server until SIGINT or SIGTERM

Any artifact that fails to load stops startup with a fatal log entry; the
server never starts with a partial model set.

# Example

	export MOBILE_CATALOG_PATH=data/mobile_plans.csv
	export BROADBAND_CATALOG_PATH=data/broadband_plans.csv
	export XGBOOST_MODEL_PATH=models/plan_classifier.json
	export LABEL_CLASSES_PATH=models/label_classes.json
	export SCALER_PATH=models/scaler.json
	export FEATURES_PATH=models/features.json
	export KNN_MODEL_PATH=models/knn_model.json
	./planadvisor

Then open http://localhost:5000/ or query the API:

	curl 'http://localhost:5000/api/v1/recommend/mobile?price=299&category=Standard'
*/
package main

// PlanAdvisor - Mobile and Broadband Plan Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/planadvisor

/*
Package predictor evaluates the fitted models behind the recommendation flows.

Two contracts are exposed:

  - Classifier predicts a mobile plan category from [price, validity_days, data_per_day].
  - NeighborIndex returns catalog positions nearest to a scaled broadband feature vector.

# Artifacts

Models are trained offline and exported to formats that Go can read without
a Python runtime:

	models/xgboost_model.json   XGBoost Booster.save_model() JSON
	models/xgboost_model.onnx   optional ONNX export of the same classifier
	models/label_encoder.json   {"classes": ["Budget", "Premium", "Standard"]}
	models/scaler.json          {"kind": "standard", "mean": [...], "scale": [...]}
	models/features.json        ["Price (₹)", "Validity (days)", "Speed (Mbps)", "Region_Delhi", ...]
	models/knn_model.json       {"n_neighbors": 5, "metric": "minkowski", "p": 2}

The KNN artifact may also carry the fitted matrix as "fit_X". Without it the
index is rebuilt from the broadband catalog, which gives identical neighbours
when the catalog is the one the index was fitted on.

# Thread Safety

All predictors are immutable after loading and safe for concurrent use.
*/
package predictor

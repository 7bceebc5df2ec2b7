// PlanAdvisor - Mobile and Broadband Plan Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/planadvisor

package main

import (
	"context"
	"fmt"

	"github.com/tomtom215/planadvisor/internal/catalog"
	"github.com/tomtom215/planadvisor/internal/config"
	"github.com/tomtom215/planadvisor/internal/logging"
	"github.com/tomtom215/planadvisor/internal/predictor"
	"github.com/tomtom215/planadvisor/internal/recommend"
)

// appEngine is the engine plus the native resources it holds.
type appEngine struct {
	engine  *recommend.Engine
	closers []func() error
}

// Close stops the engine caches and releases model sessions.
func (a *appEngine) Close() {
	a.engine.Close()
	for _, c := range a.closers {
		if err := c(); err != nil {
			logging.Error().Err(err).Msg("Error releasing model resources")
		}
	}
}

// initEngine loads catalogs and artifacts and builds the recommendation engine.
func initEngine(ctx context.Context, cfg *config.Config) (*appEngine, error) {
	mobile, broadband, err := loadCatalogs(ctx, cfg.Data)
	if err != nil {
		return nil, err
	}

	features, err := predictor.LoadFeatures(cfg.Models.FeaturesPath)
	if err != nil {
		return nil, fmt.Errorf("load features: %w", err)
	}
	scaler, err := predictor.LoadScaler(cfg.Models.ScalerPath)
	if err != nil {
		return nil, fmt.Errorf("load scaler: %w", err)
	}
	knn, err := predictor.LoadKNN(cfg.Models.KNNPath)
	if err != nil {
		return nil, fmt.Errorf("load knn: %w", err)
	}
	index, err := predictor.BuildBroadbandIndex(knn, broadband, features, scaler)
	if err != nil {
		return nil, fmt.Errorf("build broadband index: %w", err)
	}

	classifier, closers, err := newClassifier(cfg.Models, cfg.Breaker)
	if err != nil {
		return nil, err
	}

	engine, err := recommend.NewEngine(recommendConfig(cfg.Recommend), recommend.Deps{
		Mobile:     mobile,
		Broadband:  broadband,
		Classifier: classifier,
		Index:      index,
		Features:   features,
		Scaler:     scaler,
	})
	if err != nil {
		for _, c := range closers {
			_ = c()
		}
		return nil, fmt.Errorf("create engine: %w", err)
	}
	return &appEngine{engine: engine, closers: closers}, nil
}

// loadCatalogs reads both plan CSVs. The DuckDB loader is closed before returning.
func loadCatalogs(ctx context.Context, cfg config.DataConfig) (*catalog.Mobile, *catalog.Broadband, error) {
	loader, err := catalog.NewLoader()
	if err != nil {
		return nil, nil, err
	}
	defer func() {
		if err := loader.Close(); err != nil {
			logging.Warn().Err(err).Msg("Error closing catalog loader")
		}
	}()

	mobile, err := loader.LoadMobile(ctx, cfg.MobileCatalogPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load mobile catalog: %w", err)
	}
	broadband, err := loader.LoadBroadband(ctx, cfg.BroadbandCatalogPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load broadband catalog: %w", err)
	}
	return mobile, broadband, nil
}

// newClassifier loads the configured backend and wraps it in a breaker when enabled.
func newClassifier(models config.ModelsConfig, breaker config.BreakerConfig) (predictor.Classifier, []func() error, error) {
	var (
		classifier predictor.Classifier
		closers    []func() error
	)

	switch models.ClassifierBackend {
	case config.BackendXGBoost:
		c, err := predictor.LoadXGBoost(models.XGBoostModelPath, models.LabelClassesPath)
		if err != nil {
			return nil, nil, fmt.Errorf("load xgboost classifier: %w", err)
		}
		classifier = c
	case config.BackendONNX:
		c, err := predictor.LoadONNX(predictor.ONNXConfig{
			ModelPath:  models.ONNXModelPath,
			RuntimeLib: models.ONNXRuntimeLib,
		}, models.LabelClassesPath)
		if err != nil {
			return nil, nil, fmt.Errorf("load onnx classifier: %w", err)
		}
		classifier = c
		closers = append(closers, c.Close)
	default:
		return nil, nil, fmt.Errorf("unknown classifier backend %q", models.ClassifierBackend)
	}

	if breaker.Enabled {
		classifier = predictor.NewBreakerClassifier(classifier, predictor.BreakerSettings{
			MaxRequests:         breaker.MaxRequests,
			Interval:            breaker.Interval,
			Timeout:             breaker.Timeout,
			ConsecutiveFailures: breaker.ConsecutiveFailures,
		})
	}

	logging.Info().
		Str("backend", models.ClassifierBackend).
		Bool("circuit_breaker", breaker.Enabled).
		Msg("Mobile classifier loaded")
	return classifier, closers, nil
}

// recommendConfig maps server configuration onto engine tuning.
func recommendConfig(rc config.RecommendConfig) recommend.Config {
	out := recommend.DefaultConfig()
	out.Tolerance = rc.Tolerance
	out.MobileLimit = rc.MobileLimit
	out.Neighbors = rc.Neighbors
	out.PredictTimeout = rc.PredictTimeout
	out.CacheTTL = rc.CacheTTL
	return out
}

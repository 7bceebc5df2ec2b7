// PlanAdvisor - Mobile and Broadband Plan Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/planadvisor

package config

import (
	"fmt"
	"strings"
)

// Supported classifier backends
const (
	BackendXGBoost = "xgboost"
	BackendONNX    = "onnx"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateSecurity(); err != nil {
		return err
	}

	if err := c.validateLogging(); err != nil {
		return err
	}

	if err := c.validateData(); err != nil {
		return err
	}

	if err := c.validateModels(); err != nil {
		return err
	}

	if err := c.validateRecommend(); err != nil {
		return err
	}

	return c.validateBreaker()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive, got %s", c.Server.Timeout)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("HTTP_SHUTDOWN_TIMEOUT must be positive, got %s", c.Server.ShutdownTimeout)
	}
	switch c.Server.Environment {
	case "development", "staging", "production":
		return nil
	default:
		return fmt.Errorf("ENVIRONMENT must be development, staging or production, got %q", c.Server.Environment)
	}
}

func (c *Config) validateSecurity() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < 1 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be at least 1, got %d", c.Security.RateLimitReqs)
	}
	if c.Security.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive, got %s", c.Security.RateLimitWindow)
	}
	return nil
}

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	validLevels := map[string]bool{
		"trace": true, "debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error (got %q)", c.Logging.Level)
	}

	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		return fmt.Errorf("LOG_FORMAT must be json or console (got %q)", c.Logging.Format)
	}
	return nil
}

func (c *Config) validateData() error {
	if c.Data.MobileCatalogPath == "" {
		return fmt.Errorf("MOBILE_CATALOG_PATH is required")
	}
	if c.Data.BroadbandCatalogPath == "" {
		return fmt.Errorf("BROADBAND_CATALOG_PATH is required")
	}
	return nil
}

func (c *Config) validateModels() error {
	m := c.Models
	switch m.ClassifierBackend {
	case BackendXGBoost:
		if m.XGBoostModelPath == "" {
			return fmt.Errorf("XGBOOST_MODEL_PATH is required when CLASSIFIER_BACKEND=xgboost")
		}
	case BackendONNX:
		if m.ONNXModelPath == "" {
			return fmt.Errorf("ONNX_MODEL_PATH is required when CLASSIFIER_BACKEND=onnx")
		}
		if m.ONNXRuntimeLib == "" {
			return fmt.Errorf("ONNX_RUNTIME_LIB is required when CLASSIFIER_BACKEND=onnx")
		}
	default:
		return fmt.Errorf("CLASSIFIER_BACKEND must be xgboost or onnx (got %q)", m.ClassifierBackend)
	}

	required := []struct{ name, value string }{
		{"LABEL_CLASSES_PATH", m.LabelClassesPath},
		{"SCALER_PATH", m.ScalerPath},
		{"FEATURES_PATH", m.FeaturesPath},
		{"KNN_MODEL_PATH", m.KNNPath},
	}
	for _, r := range required {
		if r.value == "" {
			return fmt.Errorf("%s is required", r.name)
		}
	}
	return nil
}

func (c *Config) validateRecommend() error {
	r := c.Recommend
	if r.Tolerance < 0 || r.Tolerance >= 1 {
		return fmt.Errorf("RECOMMEND_TOLERANCE must be in [0, 1), got %v", r.Tolerance)
	}
	if r.MobileLimit < 1 {
		return fmt.Errorf("RECOMMEND_MOBILE_LIMIT must be at least 1, got %d", r.MobileLimit)
	}
	if r.Neighbors < 0 {
		return fmt.Errorf("RECOMMEND_NEIGHBORS must not be negative, got %d", r.Neighbors)
	}
	if r.PredictTimeout <= 0 {
		return fmt.Errorf("RECOMMEND_PREDICT_TIMEOUT must be positive, got %s", r.PredictTimeout)
	}
	if r.CacheTTL < 0 {
		return fmt.Errorf("RECOMMEND_CACHE_TTL must not be negative, got %s", r.CacheTTL)
	}
	return nil
}

func (c *Config) validateBreaker() error {
	if !c.Breaker.Enabled {
		return nil
	}
	if c.Breaker.ConsecutiveFailures == 0 {
		return fmt.Errorf("BREAKER_CONSECUTIVE_FAILURES must be at least 1 when the breaker is enabled")
	}
	if c.Breaker.Timeout <= 0 {
		return fmt.Errorf("BREAKER_TIMEOUT must be positive, got %s", c.Breaker.Timeout)
	}
	return nil
}

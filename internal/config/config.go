// PlanAdvisor - Mobile and Broadband Plan Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/planadvisor

package config

import (
	"net"
	"strconv"
	"time"
)

// Config holds all application configuration.
// Values are layered: struct defaults, then an optional YAML file, then environment variables.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
	Data      DataConfig      `koanf:"data"`
	Models    ModelsConfig    `koanf:"models"`
	Recommend RecommendConfig `koanf:"recommend"`
	Breaker   BreakerConfig   `koanf:"breaker"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"` // development, staging, production
}

// SecurityConfig holds CORS and rate limiting settings.
// There are no user accounts, so authentication is not configurable.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `koanf:"level"`  // trace, debug, info, warn, error
	Format string `koanf:"format"` // json, console
	Caller bool   `koanf:"caller"` // include file:line in log output
}

// DataConfig points at the plan catalogs loaded at startup.
type DataConfig struct {
	MobileCatalogPath    string `koanf:"mobile_catalog_path"`
	BroadbandCatalogPath string `koanf:"broadband_catalog_path"`
}

// ModelsConfig points at the fitted predictor artifacts.
//
// ClassifierBackend selects how the mobile plan classifier is evaluated:
//   - "xgboost": XGBoostModelPath is an XGBoost JSON model (Booster.save_model)
//   - "onnx": ONNXModelPath is evaluated with ONNX Runtime loaded from ONNXRuntimeLib
//
// Both backends decode class indices with LabelClassesPath.
type ModelsConfig struct {
	ClassifierBackend string `koanf:"classifier_backend"`
	XGBoostModelPath  string `koanf:"xgboost_model_path"`
	ONNXModelPath     string `koanf:"onnx_model_path"`
	ONNXRuntimeLib    string `koanf:"onnx_runtime_lib"`
	LabelClassesPath  string `koanf:"label_classes_path"`
	ScalerPath        string `koanf:"scaler_path"`
	FeaturesPath      string `koanf:"features_path"`
	KNNPath           string `koanf:"knn_path"`
}

// RecommendConfig tunes the recommendation flows.
type RecommendConfig struct {
	Tolerance      float64       `koanf:"tolerance"`       // relative range around each numeric filter
	MobileLimit    int           `koanf:"mobile_limit"`    // plans returned by the mobile flow
	Neighbors      int           `koanf:"neighbors"`       // 0 = use n_neighbors from the KNN artifact
	PredictTimeout time.Duration `koanf:"predict_timeout"` // per-call classifier deadline
	CacheTTL       time.Duration `koanf:"cache_ttl"`       // 0 disables result caching
}

// BreakerConfig configures the circuit breaker around the mobile classifier.
type BreakerConfig struct {
	Enabled             bool          `koanf:"enabled"`
	MaxRequests         uint32        `koanf:"max_requests"` // probes allowed while half-open
	Interval            time.Duration `koanf:"interval"`     // closed-state counter reset period
	Timeout             time.Duration `koanf:"timeout"`      // open-state duration
	ConsecutiveFailures uint32        `koanf:"consecutive_failures"`
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// IsProduction reports whether the server runs in a production environment.
func (s ServerConfig) IsProduction() bool {
	return s.Environment == "production"
}

// Load reads configuration from defaults, config file and environment variables.
func Load() (*Config, error) {
	return LoadWithKoanf()
}

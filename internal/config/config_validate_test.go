// PlanAdvisor - Mobile and Broadband Plan Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/planadvisor

package config

import (
	"strings"
	"testing"
	"time"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"port zero", func(c *Config) { c.Server.Port = 0 }, "HTTP_PORT"},
		{"port too high", func(c *Config) { c.Server.Port = 70000 }, "HTTP_PORT"},
		{"unknown environment", func(c *Config) { c.Server.Environment = "qa" }, "ENVIRONMENT"},
		{"rate limit zero", func(c *Config) { c.Security.RateLimitReqs = 0 }, "RATE_LIMIT_REQUESTS"},
		{"rate limit disabled skips checks", func(c *Config) {
			c.Security.RateLimitDisabled = true
			c.Security.RateLimitReqs = 0
		}, ""},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }, "LOG_LEVEL"},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, "LOG_FORMAT"},
		{"missing mobile catalog", func(c *Config) { c.Data.MobileCatalogPath = "" }, "MOBILE_CATALOG_PATH"},
		{"missing broadband catalog", func(c *Config) { c.Data.BroadbandCatalogPath = "" }, "BROADBAND_CATALOG_PATH"},
		{"onnx without runtime", func(c *Config) {
			c.Models.ClassifierBackend = BackendONNX
			c.Models.ONNXRuntimeLib = ""
		}, "ONNX_RUNTIME_LIB"},
		{"missing scaler", func(c *Config) { c.Models.ScalerPath = "" }, "SCALER_PATH"},
		{"tolerance one", func(c *Config) { c.Recommend.Tolerance = 1 }, "RECOMMEND_TOLERANCE"},
		{"negative neighbors", func(c *Config) { c.Recommend.Neighbors = -1 }, "RECOMMEND_NEIGHBORS"},
		{"zero predict timeout", func(c *Config) { c.Recommend.PredictTimeout = 0 }, "RECOMMEND_PREDICT_TIMEOUT"},
		{"breaker without threshold", func(c *Config) { c.Breaker.ConsecutiveFailures = 0 }, "BREAKER_CONSECUTIVE_FAILURES"},
		{"breaker disabled skips checks", func(c *Config) {
			c.Breaker.Enabled = false
			c.Breaker.Timeout = -time.Second
		}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want mention of %s", err, tt.wantErr)
			}
		})
	}
}

func TestServerConfigAddr(t *testing.T) {
	s := ServerConfig{Host: "127.0.0.1", Port: 5000}
	if got := s.Addr(); got != "127.0.0.1:5000" {
		t.Errorf("Addr() = %q, want 127.0.0.1:5000", got)
	}
	if s.IsProduction() {
		t.Error("IsProduction() = true for empty environment")
	}
}

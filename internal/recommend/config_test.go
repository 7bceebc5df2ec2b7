// PlanAdvisor - Mobile and Broadband Plan Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/planadvisor

package recommend

import (
	"testing"
	"time"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() error = %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative tolerance", func(c *Config) { c.Tolerance = -0.1 }},
		{"tolerance of one", func(c *Config) { c.Tolerance = 1 }},
		{"zero limit", func(c *Config) { c.MobileLimit = 0 }},
		{"negative neighbors", func(c *Config) { c.Neighbors = -1 }},
		{"zero predict timeout", func(c *Config) { c.PredictTimeout = 0 }},
		{"negative cache ttl", func(c *Config) { c.CacheTTL = -time.Second }},
		{"negative cache size", func(c *Config) { c.CacheMaxEntries = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() expected error")
			}
		})
	}
}

func TestOutcomeFailed(t *testing.T) {
	for _, o := range []Outcome{OutcomeOK, OutcomeNoMatch, OutcomeShowAll} {
		if o.Failed() {
			t.Errorf("%q.Failed() = true", o)
		}
	}
	for _, o := range []Outcome{OutcomeBadInput, OutcomePredictorFailure} {
		if !o.Failed() {
			t.Errorf("%q.Failed() = false", o)
		}
	}
}

// PlanAdvisor - Mobile and Broadband Plan Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/planadvisor

package recommend

import (
	"fmt"
	"time"
)

// Config contains the tuning knobs for the recommendation flows.
type Config struct {
	// Tolerance is the relative half-width of mobile numeric ranges (0.2 = ±20%).
	Tolerance float64 `json:"tolerance"`

	// MobileLimit caps the number of mobile plans returned.
	MobileLimit int `json:"mobile_limit"`

	// Neighbors overrides the nearest-neighbour count. Zero uses the fitted index value.
	Neighbors int `json:"neighbors"`

	// PredictTimeout bounds a single classifier call.
	PredictTimeout time.Duration `json:"predict_timeout"`

	// CacheTTL is how long successful outcomes are memoized. Zero disables caching.
	CacheTTL time.Duration `json:"cache_ttl"`

	// CacheMaxEntries bounds each result cache. Zero is unbounded.
	CacheMaxEntries int `json:"cache_max_entries"`
}

// DefaultConfig returns the standard tuning.
func DefaultConfig() Config {
	return Config{
		Tolerance:       0.2,
		MobileLimit:     4,
		Neighbors:       0,
		PredictTimeout:  2 * time.Second,
		CacheTTL:        5 * time.Minute,
		CacheMaxEntries: 10000,
	}
}

// Validate checks the configuration for errors.
func (c Config) Validate() error {
	if c.Tolerance < 0 || c.Tolerance >= 1 {
		return fmt.Errorf("tolerance must be in [0, 1), got %v", c.Tolerance)
	}
	if c.MobileLimit < 1 {
		return fmt.Errorf("mobile_limit must be at least 1, got %d", c.MobileLimit)
	}
	if c.Neighbors < 0 {
		return fmt.Errorf("neighbors must not be negative, got %d", c.Neighbors)
	}
	if c.PredictTimeout <= 0 {
		return fmt.Errorf("predict_timeout must be positive, got %s", c.PredictTimeout)
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("cache_ttl must not be negative, got %s", c.CacheTTL)
	}
	if c.CacheMaxEntries < 0 {
		return fmt.Errorf("cache_max_entries must not be negative, got %d", c.CacheMaxEntries)
	}
	return nil
}

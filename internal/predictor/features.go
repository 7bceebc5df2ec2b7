// PlanAdvisor - Mobile and Broadband Plan Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/planadvisor

package predictor

import (
	"fmt"
	"strings"

	"github.com/tomtom215/planadvisor/internal/catalog"
)

// FeatureSet is the ordered broadband feature layout the scaler and index were fitted on:
// the numeric plan columns plus one Region_<name> indicator per one-hot region.
type FeatureSet struct {
	names   []string
	regions map[string]int // region name -> feature position
	price   int
	valid   int
	speed   int
}

// NewFeatureSet validates names. Every numeric column must appear exactly once.
func NewFeatureSet(names []string) (*FeatureSet, error) {
	fs := &FeatureSet{
		names:   append([]string(nil), names...),
		regions: make(map[string]int),
		price:   -1,
		valid:   -1,
		speed:   -1,
	}

	for i, name := range names {
		var slot *int
		switch name {
		case catalog.ColBroadbandPrice:
			slot = &fs.price
		case catalog.ColBroadbandValidity:
			slot = &fs.valid
		case catalog.ColBroadbandSpeed:
			slot = &fs.speed
		default:
			region, ok := strings.CutPrefix(name, catalog.RegionFeaturePrefix)
			if !ok || region == "" {
				return nil, fmt.Errorf("%w: unknown broadband feature %q", ErrArtifact, name)
			}
			if _, dup := fs.regions[region]; dup {
				return nil, fmt.Errorf("%w: duplicate feature %q", ErrArtifact, name)
			}
			fs.regions[region] = i
			continue
		}
		if *slot != -1 {
			return nil, fmt.Errorf("%w: duplicate feature %q", ErrArtifact, name)
		}
		*slot = i
	}

	if fs.price == -1 || fs.valid == -1 || fs.speed == -1 {
		return nil, fmt.Errorf("%w: features must include %q, %q and %q", ErrArtifact,
			catalog.ColBroadbandPrice, catalog.ColBroadbandValidity, catalog.ColBroadbandSpeed)
	}
	return fs, nil
}

// LoadFeatures reads a JSON array of feature names.
func LoadFeatures(path string) (*FeatureSet, error) {
	var names []string
	if err := readJSON(path, &names); err != nil {
		return nil, err
	}
	fs, err := NewFeatureSet(names)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return fs, nil
}

// Len is the vector length.
func (f *FeatureSet) Len() int { return len(f.names) }

// Names returns the feature names in vector order.
func (f *FeatureSet) Names() []string { return append([]string(nil), f.names...) }

// HasRegion reports whether region has a one-hot column.
func (f *FeatureSet) HasRegion(region string) bool {
	_, ok := f.regions[region]
	return ok
}

// Vector lays out a raw (unscaled) feature vector. An unknown or empty region
// leaves every region column at zero.
func (f *FeatureSet) Vector(price, validity, speed float64, region string) []float64 {
	v := make([]float64, len(f.names))
	v[f.price] = price
	v[f.valid] = validity
	v[f.speed] = speed
	if i, ok := f.regions[region]; ok {
		v[i] = 1
	}
	return v
}

// PlanVector lays out the raw feature vector of a catalog plan.
func (f *FeatureSet) PlanVector(p catalog.BroadbandPlan) []float64 {
	return f.Vector(p.Price, p.ValidityDays, p.SpeedMbps, p.Region)
}

// PlanAdvisor - Mobile and Broadband Plan Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/planadvisor

package predictor

import (
	"fmt"
	"math"
)

// Scaler kinds
const (
	ScalerStandard = "standard" // (x - mean) / scale
	ScalerMinMax   = "minmax"   // x*scale + min
)

type scalerArtifact struct {
	Kind  string    `json:"kind"`
	Mean  []float64 `json:"mean"`
	Min   []float64 `json:"min"`
	Scale []float64 `json:"scale"`
}

// Scaler applies a fitted per-feature affine transform.
type Scaler struct {
	kind   string
	offset []float64
	scale  []float64
}

// NewStandardScaler builds a StandardScaler transform. Zero scales are treated as 1.
func NewStandardScaler(mean, scale []float64) (*Scaler, error) {
	if len(mean) == 0 || len(mean) != len(scale) {
		return nil, fmt.Errorf("%w: standard scaler has %d means and %d scales", ErrArtifact, len(mean), len(scale))
	}
	s := &Scaler{kind: ScalerStandard, offset: append([]float64(nil), mean...), scale: make([]float64, len(scale))}
	for i, v := range scale {
		if v == 0 || math.IsNaN(v) {
			v = 1
		}
		s.scale[i] = v
	}
	return s, nil
}

// NewMinMaxScaler builds a MinMaxScaler transform from its fitted min_ and scale_.
func NewMinMaxScaler(minValues, scale []float64) (*Scaler, error) {
	if len(minValues) == 0 || len(minValues) != len(scale) {
		return nil, fmt.Errorf("%w: minmax scaler has %d mins and %d scales", ErrArtifact, len(minValues), len(scale))
	}
	return &Scaler{
		kind:   ScalerMinMax,
		offset: append([]float64(nil), minValues...),
		scale:  append([]float64(nil), scale...),
	}, nil
}

// LoadScaler reads a scaler artifact. A missing kind means standard.
func LoadScaler(path string) (*Scaler, error) {
	var a scalerArtifact
	if err := readJSON(path, &a); err != nil {
		return nil, err
	}
	switch a.Kind {
	case "", ScalerStandard:
		if a.Mean == nil && len(a.Scale) > 0 {
			a.Mean = make([]float64, len(a.Scale)) // fitted with_mean=False
		}
		return NewStandardScaler(a.Mean, a.Scale)
	case ScalerMinMax:
		return NewMinMaxScaler(a.Min, a.Scale)
	default:
		return nil, fmt.Errorf("%w: %s: unknown scaler kind %q", ErrArtifact, path, a.Kind)
	}
}

// Len is the number of features the scaler was fitted on.
func (s *Scaler) Len() int { return len(s.scale) }

// Transform scales x into a new slice.
func (s *Scaler) Transform(x []float64) ([]float64, error) {
	if len(x) != len(s.scale) {
		return nil, fmt.Errorf("%w: scaler expects %d features, got %d", ErrPredict, len(s.scale), len(x))
	}
	out := make([]float64, len(x))
	for i, v := range x {
		if s.kind == ScalerMinMax {
			out[i] = v*s.scale[i] + s.offset[i]
		} else {
			out[i] = (v - s.offset[i]) / s.scale[i]
		}
	}
	return out, nil
}

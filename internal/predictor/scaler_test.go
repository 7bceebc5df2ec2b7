// PlanAdvisor - Mobile and Broadband Plan Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/planadvisor

package predictor

import (
	"errors"
	"math"
	"testing"
)

func TestLoadScaler(t *testing.T) {
	tests := []struct {
		name    string
		content string
		input   []float64
		want    []float64
		wantErr bool
	}{
		{
			name:    "standard",
			content: `{"kind": "standard", "mean": [500, 30], "scale": [100, 10]}`,
			input:   []float64{700, 20},
			want:    []float64{2, -1},
		},
		{
			name:    "kind defaults to standard",
			content: `{"mean": [1], "scale": [2]}`,
			input:   []float64{5},
			want:    []float64{2},
		},
		{
			name:    "without mean",
			content: `{"scale": [4]}`,
			input:   []float64{8},
			want:    []float64{2},
		},
		{
			name:    "zero scale is identity",
			content: `{"mean": [3], "scale": [0]}`,
			input:   []float64{5},
			want:    []float64{2},
		},
		{
			name:    "minmax",
			content: `{"kind": "minmax", "min": [-0.5], "scale": [0.001]}`,
			input:   []float64{1000},
			want:    []float64{0.5},
		},
		{name: "unknown kind", content: `{"kind": "robust", "scale": [1]}`, wantErr: true},
		{name: "length mismatch", content: `{"mean": [1, 2], "scale": [1]}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := LoadScaler(writeArtifact(t, "scaler.json", tt.content))
			if tt.wantErr {
				if !errors.Is(err, ErrArtifact) {
					t.Fatalf("LoadScaler() error = %v, want ErrArtifact", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadScaler() error = %v", err)
			}
			got, err := s.Transform(tt.input)
			if err != nil {
				t.Fatalf("Transform() error = %v", err)
			}
			for i := range tt.want {
				if math.Abs(got[i]-tt.want[i]) > 1e-9 {
					t.Errorf("Transform()[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestScalerTransformLength(t *testing.T) {
	s, err := NewStandardScaler([]float64{0, 0}, []float64{1, 1})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Transform([]float64{1}); !errors.Is(err, ErrPredict) {
		t.Errorf("Transform(short) error = %v, want ErrPredict", err)
	}
}

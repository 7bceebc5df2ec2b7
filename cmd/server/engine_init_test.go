// PlanAdvisor - Mobile and Broadband Plan Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/planadvisor

package main

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/tomtom215/planadvisor/internal/config"
	"github.com/tomtom215/planadvisor/internal/predictor"
)

func TestNewClassifier_Errors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		models  config.ModelsConfig
		wantErr string
	}{
		{
			name:    "unknown backend",
			models:  config.ModelsConfig{ClassifierBackend: "tensorflow"},
			wantErr: "unknown classifier backend",
		},
		{
			name: "missing xgboost model",
			models: config.ModelsConfig{
				ClassifierBackend: config.BackendXGBoost,
				XGBoostModelPath:  filepath.Join(dir, "missing.json"),
				LabelClassesPath:  filepath.Join(dir, "labels.json"),
			},
			wantErr: "load xgboost classifier",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, closers, err := newClassifier(tt.models, config.BreakerConfig{})
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err, tt.wantErr)
			}
			if c != nil || closers != nil {
				t.Error("no classifier or closers should be returned on error")
			}
		})
	}
}

func TestNewClassifier_MissingArtifactIsArtifactError(t *testing.T) {
	dir := t.TempDir()
	_, _, err := newClassifier(config.ModelsConfig{
		ClassifierBackend: config.BackendXGBoost,
		XGBoostModelPath:  filepath.Join(dir, "model.json"),
		LabelClassesPath:  filepath.Join(dir, "labels.json"),
	}, config.BreakerConfig{Enabled: true})
	if !errors.Is(err, predictor.ErrArtifact) {
		t.Errorf("error = %v, want ErrArtifact", err)
	}
}

func TestRecommendConfig(t *testing.T) {
	rc := config.RecommendConfig{
		Tolerance:      0.1,
		MobileLimit:    6,
		Neighbors:      3,
		PredictTimeout: 500 * time.Millisecond,
		CacheTTL:       0,
	}
	got := recommendConfig(rc)

	if got.Tolerance != 0.1 || got.MobileLimit != 6 || got.Neighbors != 3 {
		t.Errorf("tuning not copied: %+v", got)
	}
	if got.PredictTimeout != 500*time.Millisecond {
		t.Errorf("PredictTimeout = %v, want 500ms", got.PredictTimeout)
	}
	if got.CacheTTL != 0 {
		t.Errorf("CacheTTL = %v, want 0 (disabled)", got.CacheTTL)
	}
	if err := got.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

// PlanAdvisor - Mobile and Broadband Plan Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/planadvisor

package predictor

import (
	"context"
	"errors"
	"math"
	"testing"
)

// multiClassModel is a three-class ensemble keyed on price:
// < 300 Budget, 300..999 Standard, >= 1000 Premium.
const multiClassModel = `{
  "learner": {
    "gradient_booster": {
      "name": "gbtree",
      "model": {
        "tree_info": [0, 1, 2],
        "trees": [
          {"left_children": [1, -1, -1], "right_children": [2, -1, -1],
           "split_indices": [0, 0, 0], "split_conditions": [300, 1.0, -1.0],
           "default_left": [true, false, false], "split_type": [0, 0, 0]},
          {"left_children": [1, -1, -1], "right_children": [2, -1, -1],
           "split_indices": [0, 0, 0], "split_conditions": [1000, -1.0, 1.0],
           "default_left": [0, 0, 0]},
          {"left_children": [1, -1, 3, -1, -1], "right_children": [2, -1, 4, -1, -1],
           "split_indices": [0, 0, 0, 0, 0], "split_conditions": [300, -0.5, 1000, 1.0, -0.5],
           "default_left": [0, 0, 0, 0, 0]}
        ]
      }
    },
    "learner_model_param": {"base_score": "[5E-1,5E-1,5E-1]", "num_class": "3", "num_feature": "3"},
    "objective": {"name": "multi:softprob"}
  },
  "version": [2, 1, 0]
}`

const binaryModel = `{
  "learner": {
    "gradient_booster": {
      "name": "gbtree",
      "model": {
        "tree_info": [0],
        "trees": [
          {"left_children": [1, -1, -1], "right_children": [2, -1, -1],
           "split_indices": [1, 0, 0], "split_conditions": [30, -2.0, 2.0],
           "default_left": [false, false, false]}
        ]
      }
    },
    "learner_model_param": {"base_score": "5E-1", "num_class": "0", "num_feature": "3"},
    "objective": {"name": "binary:logistic"}
  }
}`

func loadTestXGBoost(t *testing.T, model string, labels []string) *XGBoostClassifier {
	t.Helper()
	c, err := LoadXGBoost(
		writeArtifact(t, "model.json", model),
		writeArtifact(t, "labels.json", map[string][]string{"classes": labels}),
	)
	if err != nil {
		t.Fatalf("LoadXGBoost() error = %v", err)
	}
	return c
}

func TestXGBoostMultiClassPredict(t *testing.T) {
	c := loadTestXGBoost(t, multiClassModel, []string{"Budget", "Premium", "Standard"})

	tests := []struct {
		name     string
		features []float64
		want     string
	}{
		{"cheap", []float64{199, 28, 1.5}, "Budget"},
		{"boundary goes right", []float64{300, 28, 2}, "Standard"},
		{"mid", []float64{719, 84, 2}, "Standard"},
		{"expensive", []float64{2999, 365, 2.5}, "Premium"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Predict(context.Background(), tt.features)
			if err != nil {
				t.Fatalf("Predict() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Predict(%v) = %q, want %q", tt.features, got, tt.want)
			}
		})
	}
}

func TestXGBoostMargins(t *testing.T) {
	c := loadTestXGBoost(t, multiClassModel, []string{"Budget", "Premium", "Standard"})

	margins, err := c.Margins([]float64{199, 28, 1.5})
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{1.5, -0.5, 0}
	for i := range want {
		if math.Abs(margins[i]-want[i]) > 1e-12 {
			t.Errorf("margin[%d] = %v, want %v", i, margins[i], want[i])
		}
	}

	// NaN follows default_left: class 0 tree goes left
	margins, err = c.Margins([]float64{math.NaN(), 28, 1.5})
	if err != nil {
		t.Fatal(err)
	}
	if margins[0] != 1.5 {
		t.Errorf("missing value margin[0] = %v, want 1.5", margins[0])
	}
}

func TestXGBoostBinaryPredict(t *testing.T) {
	c := loadTestXGBoost(t, binaryModel, []string{"Monthly", "LongTerm"})

	if got, _ := c.Predict(context.Background(), []float64{199, 28, 1.5}); got != "Monthly" {
		t.Errorf("Predict(validity 28) = %q, want Monthly", got)
	}
	if got, _ := c.Predict(context.Background(), []float64{719, 84, 2}); got != "LongTerm" {
		t.Errorf("Predict(validity 84) = %q, want LongTerm", got)
	}
}

func TestXGBoostFeatureMismatch(t *testing.T) {
	c := loadTestXGBoost(t, multiClassModel, []string{"Budget", "Premium", "Standard"})

	_, err := c.Predict(context.Background(), []float64{199})
	if !errors.Is(err, ErrPredict) {
		t.Errorf("Predict(1 feature) error = %v, want ErrPredict", err)
	}
	if c.NumFeatures() != 3 {
		t.Errorf("NumFeatures() = %d, want 3", c.NumFeatures())
	}
}

func TestXGBoostCanceledContext(t *testing.T) {
	c := loadTestXGBoost(t, multiClassModel, []string{"Budget", "Premium", "Standard"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := c.Predict(ctx, []float64{199, 28, 1.5}); !errors.Is(err, context.Canceled) {
		t.Errorf("Predict() error = %v, want context.Canceled", err)
	}
}

func TestLoadXGBoostRejectsBadModels(t *testing.T) {
	tests := []struct {
		name   string
		model  string
		labels []string
	}{
		{"label count mismatch", multiClassModel, []string{"Budget", "Premium"}},
		{"no trees", `{"learner": {"gradient_booster": {"model": {"trees": []}}}}`, []string{"a", "b"}},
		{"dart booster", `{"learner": {"gradient_booster": {"name": "gblinear"}}}`, []string{"a", "b"}},
		{"categorical split", `{"learner": {
			"gradient_booster": {"model": {"tree_info": [0], "trees": [
				{"left_children": [1, -1, -1], "right_children": [2, -1, -1],
				 "split_indices": [0, 0, 0], "split_conditions": [1, 0, 0], "split_type": [1, 0, 0]}]}},
			"learner_model_param": {"num_class": "0"}, "objective": {"name": "binary:logistic"}}}`, []string{"a", "b"}},
		{"child before parent", `{"learner": {
			"gradient_booster": {"model": {"tree_info": [0], "trees": [
				{"left_children": [0, -1, -1], "right_children": [2, -1, -1],
				 "split_indices": [0, 0, 0], "split_conditions": [1, 0, 0]}]}},
			"learner_model_param": {"num_class": "0"}, "objective": {"name": "binary:logistic"}}}`, []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadXGBoost(
				writeArtifact(t, "model.json", tt.model),
				writeArtifact(t, "labels.json", map[string][]string{"classes": tt.labels}),
			)
			if !errors.Is(err, ErrArtifact) {
				t.Errorf("LoadXGBoost() error = %v, want ErrArtifact", err)
			}
		})
	}
}

func TestParseBaseScore(t *testing.T) {
	m, err := parseBaseScore("5E-1", 1, "binary:logistic")
	if err != nil || math.Abs(m[0]) > 1e-12 {
		t.Errorf("logistic 0.5 margin = %v, %v; want 0", m, err)
	}

	m, err = parseBaseScore("[1E-1,2E-1,3E-1]", 3, "multi:softprob")
	if err != nil || m[2] != 0.3 {
		t.Errorf("vector base score = %v, %v", m, err)
	}

	if _, err := parseBaseScore("1", 1, "binary:logistic"); !errors.Is(err, ErrArtifact) {
		t.Errorf("logistic base score 1 error = %v, want ErrArtifact", err)
	}
}

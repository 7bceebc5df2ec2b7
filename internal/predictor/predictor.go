// PlanAdvisor - Mobile and Broadband Plan Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/planadvisor

package predictor

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-json"
)

var (
	// ErrArtifact is returned when a model artifact is missing or malformed.
	ErrArtifact = errors.New("predictor artifact")

	// ErrPredict is returned when a loaded predictor cannot produce a result,
	// for example on a feature count mismatch.
	ErrPredict = errors.New("prediction failed")
)

// Classifier predicts a category label from a raw feature vector.
type Classifier interface {
	Predict(ctx context.Context, features []float64) (string, error)

	// Name identifies the backend in logs and metrics.
	Name() string
}

// NeighborIndex finds the catalog rows nearest to a scaled feature vector.
type NeighborIndex interface {
	// Nearest returns up to k row positions ordered nearest first.
	// k <= 0 uses the index default.
	Nearest(ctx context.Context, vector []float64, k int) ([]int, error)

	// Neighbors is the default k fitted with the index.
	Neighbors() int
}

// LabelEncoder maps class indices back to category labels.
type LabelEncoder struct {
	classes []string
}

// NewLabelEncoder builds an encoder from classes in index order.
func NewLabelEncoder(classes []string) (*LabelEncoder, error) {
	if len(classes) == 0 {
		return nil, fmt.Errorf("%w: label encoder has no classes", ErrArtifact)
	}
	return &LabelEncoder{classes: append([]string(nil), classes...)}, nil
}

// LoadLabelEncoder reads {"classes": [...]} or a bare JSON array.
func LoadLabelEncoder(path string) (*LabelEncoder, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrArtifact, err)
	}

	var wrapped struct {
		Classes []string `json:"classes"`
	}
	if err := json.Unmarshal(data, &wrapped); err == nil && len(wrapped.Classes) > 0 {
		return NewLabelEncoder(wrapped.Classes)
	}

	var bare []string
	if err := json.Unmarshal(data, &bare); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrArtifact, path, err)
	}
	return NewLabelEncoder(bare)
}

// Decode returns the label for class index i.
func (e *LabelEncoder) Decode(i int) (string, error) {
	if i < 0 || i >= len(e.classes) {
		return "", fmt.Errorf("%w: class index %d outside %d known labels", ErrPredict, i, len(e.classes))
	}
	return e.classes[i], nil
}

// Len returns the number of classes.
func (e *LabelEncoder) Len() int { return len(e.classes) }

// Classes returns the labels in index order.
func (e *LabelEncoder) Classes() []string { return append([]string(nil), e.classes...) }

// readJSON decodes a JSON artifact file into v.
func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrArtifact, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrArtifact, path, err)
	}
	return nil
}

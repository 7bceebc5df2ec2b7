// PlanAdvisor - Mobile and Broadband Plan Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/planadvisor

package predictor

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// xgbModel mirrors the subset of the XGBoost JSON model schema needed for inference.
type xgbModel struct {
	Learner struct {
		GradientBooster struct {
			Name  string `json:"name"`
			Model struct {
				Trees    []xgbTree `json:"trees"`
				TreeInfo []int     `json:"tree_info"`
			} `json:"model"`
		} `json:"gradient_booster"`
		LearnerModelParam struct {
			BaseScore  string `json:"base_score"`
			NumClass   string `json:"num_class"`
			NumFeature string `json:"num_feature"`
		} `json:"learner_model_param"`
		Objective struct {
			Name string `json:"name"`
		} `json:"objective"`
	} `json:"learner"`
}

type xgbTree struct {
	LeftChildren    []int     `json:"left_children"`
	RightChildren   []int     `json:"right_children"`
	SplitIndices    []int     `json:"split_indices"`
	SplitConditions []float64 `json:"split_conditions"`
	DefaultLeft     flagList  `json:"default_left"`
	SplitType       []int     `json:"split_type"`
}

// flagList decodes default_left, which XGBoost writes as booleans or as 0/1 integers.
type flagList []bool

func (f *flagList) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make([]bool, len(raw))
	for i, r := range raw {
		switch s := strings.TrimSpace(string(r)); s {
		case "true", "1":
			out[i] = true
		case "false", "0":
			out[i] = false
		default:
			return fmt.Errorf("invalid default_left value %s", s)
		}
	}
	*f = out
	return nil
}

// tree is a validated regression tree. Leaves hold their value in cond.
type tree struct {
	left, right []int
	feature     []int
	cond        []float64
	defaultLeft []bool
	class       int
}

func (t *tree) leaf(x []float64) float64 {
	node := 0
	for t.left[node] != -1 {
		v := x[t.feature[node]]
		switch {
		case math.IsNaN(v):
			if t.defaultLeft[node] {
				node = t.left[node]
			} else {
				node = t.right[node]
			}
		case v < t.cond[node]:
			node = t.left[node]
		default:
			node = t.right[node]
		}
	}
	return t.cond[node]
}

// XGBoostClassifier evaluates a gradient boosted tree ensemble exported with
// Booster.save_model("*.json"). Only numerical splits are supported.
type XGBoostClassifier struct {
	trees       []tree
	numClass    int       // 1 for binary objectives
	baseMargin  []float64 // per output group
	numFeatures int
	labels      *LabelEncoder
}

// LoadXGBoost reads an XGBoost JSON model and its label classes.
func LoadXGBoost(modelPath, labelsPath string) (*XGBoostClassifier, error) {
	labels, err := LoadLabelEncoder(labelsPath)
	if err != nil {
		return nil, err
	}

	var m xgbModel
	if err := readJSON(modelPath, &m); err != nil {
		return nil, err
	}
	c, err := newXGBoostClassifier(&m, labels)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", modelPath, err)
	}
	return c, nil
}

func newXGBoostClassifier(m *xgbModel, labels *LabelEncoder) (*XGBoostClassifier, error) {
	booster := m.Learner.GradientBooster
	if booster.Name != "" && booster.Name != "gbtree" {
		return nil, fmt.Errorf("%w: unsupported booster %q", ErrArtifact, booster.Name)
	}
	if len(booster.Model.Trees) == 0 {
		return nil, fmt.Errorf("%w: model has no trees", ErrArtifact)
	}

	params := m.Learner.LearnerModelParam
	numClass := 1
	if params.NumClass != "" {
		n, err := strconv.Atoi(params.NumClass)
		if err != nil {
			return nil, fmt.Errorf("%w: num_class %q: %w", ErrArtifact, params.NumClass, err)
		}
		if n > 1 {
			numClass = n
		}
	}

	wantLabels := numClass
	if numClass == 1 {
		wantLabels = 2
	}
	if labels.Len() != wantLabels {
		return nil, fmt.Errorf("%w: model predicts %d classes but label encoder has %d", ErrArtifact, wantLabels, labels.Len())
	}

	numFeatures := 0
	if params.NumFeature != "" {
		n, err := strconv.Atoi(params.NumFeature)
		if err != nil {
			return nil, fmt.Errorf("%w: num_feature %q: %w", ErrArtifact, params.NumFeature, err)
		}
		numFeatures = n
	}

	baseMargin, err := parseBaseScore(params.BaseScore, numClass, m.Learner.Objective.Name)
	if err != nil {
		return nil, err
	}

	trees := make([]tree, len(booster.Model.Trees))
	for i, raw := range booster.Model.Trees {
		class := 0
		if i < len(booster.Model.TreeInfo) {
			class = booster.Model.TreeInfo[i]
		}
		if class < 0 || class >= numClass {
			return nil, fmt.Errorf("%w: tree %d assigned to class %d of %d", ErrArtifact, i, class, numClass)
		}
		t, maxFeature, err := compileTree(raw, class)
		if err != nil {
			return nil, fmt.Errorf("tree %d: %w", i, err)
		}
		if maxFeature >= numFeatures {
			numFeatures = maxFeature + 1
		}
		trees[i] = t
	}

	return &XGBoostClassifier{
		trees:       trees,
		numClass:    numClass,
		baseMargin:  baseMargin,
		numFeatures: numFeatures,
		labels:      labels,
	}, nil
}

// compileTree validates node arrays and returns the highest split feature index.
func compileTree(raw xgbTree, class int) (tree, int, error) {
	n := len(raw.LeftChildren)
	if n == 0 {
		return tree{}, 0, fmt.Errorf("%w: empty tree", ErrArtifact)
	}
	if len(raw.RightChildren) != n || len(raw.SplitIndices) != n || len(raw.SplitConditions) != n {
		return tree{}, 0, fmt.Errorf("%w: inconsistent node arrays", ErrArtifact)
	}

	defaultLeft := []bool(raw.DefaultLeft)
	if len(defaultLeft) == 0 {
		defaultLeft = make([]bool, n)
	} else if len(defaultLeft) != n {
		return tree{}, 0, fmt.Errorf("%w: default_left has %d entries for %d nodes", ErrArtifact, len(defaultLeft), n)
	}

	maxFeature := -1
	for i := 0; i < n; i++ {
		if i < len(raw.SplitType) && raw.SplitType[i] != 0 {
			return tree{}, 0, fmt.Errorf("%w: categorical split at node %d is not supported", ErrArtifact, i)
		}
		l, r := raw.LeftChildren[i], raw.RightChildren[i]
		if l == -1 {
			continue
		}
		if l <= i || l >= n || r <= i || r >= n {
			return tree{}, 0, fmt.Errorf("%w: node %d has invalid children %d/%d", ErrArtifact, i, l, r)
		}
		if raw.SplitIndices[i] < 0 {
			return tree{}, 0, fmt.Errorf("%w: node %d splits on feature %d", ErrArtifact, i, raw.SplitIndices[i])
		}
		if raw.SplitIndices[i] > maxFeature {
			maxFeature = raw.SplitIndices[i]
		}
	}

	return tree{
		left:        raw.LeftChildren,
		right:       raw.RightChildren,
		feature:     raw.SplitIndices,
		cond:        raw.SplitConditions,
		defaultLeft: defaultLeft,
		class:       class,
	}, maxFeature, nil
}

// parseBaseScore reads base_score, written as "5E-1" or "[5E-1,...]", and
// converts it to margin space.
func parseBaseScore(s string, numClass int, objective string) ([]float64, error) {
	logistic := strings.HasSuffix(objective, ":logistic")
	s = strings.Trim(strings.TrimSpace(s), "[]")
	parts := []string{"0"}
	if logistic {
		parts = []string{"0.5"}
	}
	if s != "" {
		parts = strings.Split(s, ",")
	}

	values := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: base_score %q: %w", ErrArtifact, s, err)
		}
		values[i] = v
	}

	margin := make([]float64, numClass)
	for c := range margin {
		v := values[0]
		if len(values) == numClass {
			v = values[c]
		}
		if logistic {
			if v <= 0 || v >= 1 {
				return nil, fmt.Errorf("%w: base_score %v outside (0, 1) for %s", ErrArtifact, v, objective)
			}
			v = math.Log(v / (1 - v))
		}
		margin[c] = v
	}
	return margin, nil
}

// Name identifies the backend.
func (c *XGBoostClassifier) Name() string { return "xgboost" }

// NumFeatures is the minimum feature vector length the model reads.
func (c *XGBoostClassifier) NumFeatures() int { return c.numFeatures }

// Margins returns the raw per-class scores (one score for binary models).
func (c *XGBoostClassifier) Margins(features []float64) ([]float64, error) {
	if len(features) < c.numFeatures {
		return nil, fmt.Errorf("%w: model expects %d features, got %d", ErrPredict, c.numFeatures, len(features))
	}
	margins := append([]float64(nil), c.baseMargin...)
	for i := range c.trees {
		t := &c.trees[i]
		margins[t.class] += t.leaf(features)
	}
	return margins, nil
}

// Predict returns the label with the highest score.
func (c *XGBoostClassifier) Predict(ctx context.Context, features []float64) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	margins, err := c.Margins(features)
	if err != nil {
		return "", err
	}

	if c.numClass == 1 {
		if margins[0] > 0 {
			return c.labels.Decode(1)
		}
		return c.labels.Decode(0)
	}

	best := 0
	for i, m := range margins {
		if m > margins[best] {
			best = i
		}
	}
	return c.labels.Decode(best)
}

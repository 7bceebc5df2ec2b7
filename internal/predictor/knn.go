// PlanAdvisor - Mobile and Broadband Plan Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/planadvisor

package predictor

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/tomtom215/planadvisor/internal/catalog"
)

// KNNArtifact is the exported form of a fitted nearest-neighbour index.
type KNNArtifact struct {
	NNeighbors int         `json:"n_neighbors"`
	Metric     string      `json:"metric"` // minkowski (default), euclidean, manhattan
	P          float64     `json:"p"`      // minkowski power, default 2
	FitX       [][]float64 `json:"fit_X,omitempty"`
}

// LoadKNN reads a KNN artifact. Missing fields take scikit-learn defaults.
func LoadKNN(path string) (*KNNArtifact, error) {
	var a KNNArtifact
	if err := readJSON(path, &a); err != nil {
		return nil, err
	}
	if a.NNeighbors == 0 {
		a.NNeighbors = 5
	}
	if a.NNeighbors < 0 {
		return nil, fmt.Errorf("%w: %s: n_neighbors %d", ErrArtifact, path, a.NNeighbors)
	}
	return &a, nil
}

type distanceFunc func(a, b []float64) float64

func euclidean(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

func manhattan(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += math.Abs(a[i] - b[i])
	}
	return sum
}

func minkowski(p float64) distanceFunc {
	return func(a, b []float64) float64 {
		var sum float64
		for i := range a {
			sum += math.Pow(math.Abs(a[i]-b[i]), p)
		}
		return math.Pow(sum, 1/p)
	}
}

func resolveMetric(metric string, p float64) (distanceFunc, error) {
	if p == 0 {
		p = 2
	}
	switch metric {
	case "", "minkowski":
		switch p {
		case 1:
			return manhattan, nil
		case 2:
			return euclidean, nil
		}
		if p < 1 {
			return nil, fmt.Errorf("%w: minkowski p must be >= 1, got %v", ErrArtifact, p)
		}
		return minkowski(p), nil
	case "euclidean", "l2":
		return euclidean, nil
	case "manhattan", "cityblock", "l1":
		return manhattan, nil
	default:
		return nil, fmt.Errorf("%w: unsupported metric %q", ErrArtifact, metric)
	}
}

// KNNIndex is a brute-force nearest-neighbour index over fitted points.
type KNNIndex struct {
	points   [][]float64
	dim      int
	k        int
	distance distanceFunc
}

// NewKNNIndex builds an index over points, which are used as-is (already scaled).
func NewKNNIndex(a *KNNArtifact, points [][]float64) (*KNNIndex, error) {
	if len(points) == 0 {
		return nil, fmt.Errorf("%w: nearest-neighbour index has no points", ErrArtifact)
	}
	dim := len(points[0])
	for i, p := range points {
		if len(p) != dim {
			return nil, fmt.Errorf("%w: point %d has %d features, want %d", ErrArtifact, i, len(p), dim)
		}
	}
	dist, err := resolveMetric(a.Metric, a.P)
	if err != nil {
		return nil, err
	}
	k := a.NNeighbors
	if k <= 0 {
		k = 5
	}
	return &KNNIndex{points: points, dim: dim, k: k, distance: dist}, nil
}

// BuildBroadbandIndex returns an index whose row positions are broadband catalog
// positions. A fitted matrix in the artifact is used when present; otherwise the
// catalog plans are laid out with fs and scaled with sc.
func BuildBroadbandIndex(a *KNNArtifact, bb *catalog.Broadband, fs *FeatureSet, sc *Scaler) (*KNNIndex, error) {
	if sc.Len() != fs.Len() {
		return nil, fmt.Errorf("%w: scaler has %d features but feature list has %d", ErrArtifact, sc.Len(), fs.Len())
	}

	points := a.FitX
	if len(points) > 0 {
		if len(points) != bb.Len() {
			return nil, fmt.Errorf("%w: fitted matrix has %d rows but catalog has %d plans", ErrArtifact, len(points), bb.Len())
		}
	} else {
		points = make([][]float64, 0, bb.Len())
		for _, p := range bb.Plans() {
			scaled, err := sc.Transform(fs.PlanVector(p))
			if err != nil {
				return nil, err
			}
			points = append(points, scaled)
		}
	}

	idx, err := NewKNNIndex(a, points)
	if err != nil {
		return nil, err
	}
	if idx.dim != fs.Len() {
		return nil, fmt.Errorf("%w: index has %d features but feature list has %d", ErrArtifact, idx.dim, fs.Len())
	}
	return idx, nil
}

// Neighbors is the default number of neighbours returned.
func (i *KNNIndex) Neighbors() int { return i.k }

// Len is the number of indexed points.
func (i *KNNIndex) Len() int { return len(i.points) }

// Nearest returns up to k positions ordered by ascending distance.
// Ties keep index order.
func (i *KNNIndex) Nearest(ctx context.Context, vector []float64, k int) ([]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(vector) != i.dim {
		return nil, fmt.Errorf("%w: index expects %d features, got %d", ErrPredict, i.dim, len(vector))
	}
	for _, v := range vector {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: feature vector contains %v", ErrPredict, v)
		}
	}
	if k <= 0 {
		k = i.k
	}
	if k > len(i.points) {
		k = len(i.points)
	}

	order := make([]int, len(i.points))
	dist := make([]float64, len(i.points))
	for n, p := range i.points {
		order[n] = n
		d := i.distance(vector, p)
		if math.IsNaN(d) {
			d = math.Inf(1) // plans with missing cells rank last
		}
		dist[n] = d
	}
	sort.SliceStable(order, func(a, b int) bool {
		return dist[order[a]] < dist[order[b]]
	})
	return order[:k], nil
}

// PlanAdvisor - Mobile and Broadband Plan Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/planadvisor

package recommend

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tomtom215/planadvisor/internal/catalog"
	"github.com/tomtom215/planadvisor/internal/predictor"
)

func mobilePlan(name string, price, validity, data float64, class string, ppg float64) catalog.MobilePlan {
	return catalog.MobilePlan{
		Price:        price,
		ValidityDays: validity,
		DataPerDay:   data,
		PlanClass:    class,
		PricePerGB:   ppg,
		Fields: map[string]any{
			"name":                  name,
			catalog.ColPrice:        price,
			catalog.ColValidityDays: validity,
			catalog.ColDataPerDay:   data,
			catalog.ColPlanClass:    class,
			catalog.ColPricePerGB:   ppg,
		},
	}
}

func testMobileCatalog() *catalog.Mobile {
	return catalog.NewMobile(
		[]string{"name", catalog.ColPrice, catalog.ColValidityDays, catalog.ColDataPerDay, catalog.ColPlanClass, catalog.ColPricePerGB},
		[]catalog.MobilePlan{
			mobilePlan("A", 199, 28, 1.5, "Budget", 4.7),
			mobilePlan("B", 239, 28, 1.5, "Budget", 5.7),
			mobilePlan("C", 299, 28, 2, "Standard", 5.3),
			mobilePlan("D", 719, 84, 2, "Standard", 4.3),
			mobilePlan("E", 2999, 365, 2.5, "Premium", 3.3),
			mobilePlan("F", 179, 24, 1, "Budget", 7.5),
			mobilePlan("G", 209, 28, 1, "Budget", 7.0),
		},
	)
}

func broadbandPlan(name string, price, validity, speed float64, region string) catalog.BroadbandPlan {
	return catalog.BroadbandPlan{
		Price:        price,
		ValidityDays: validity,
		SpeedMbps:    speed,
		Region:       region,
		Fields: map[string]any{
			"Provider":                   name,
			catalog.ColBroadbandPrice:    price,
			catalog.ColBroadbandValidity: validity,
			catalog.ColBroadbandSpeed:    speed,
			catalog.ColBroadbandRegion:   region,
		},
	}
}

func testBroadbandCatalog() *catalog.Broadband {
	return catalog.NewBroadband(
		[]string{"Provider", catalog.ColBroadbandPrice, catalog.ColBroadbandValidity, catalog.ColBroadbandSpeed, catalog.ColBroadbandRegion},
		[]catalog.BroadbandPlan{
			broadbandPlan("P0", 499, 30, 40, "Delhi"),
			broadbandPlan("P1", 999, 30, 200, "Mumbai"),
			broadbandPlan("P2", 699, 30, 100, "Delhi"),
			broadbandPlan("P3", 1499, 90, 300, "Bangalore"),
		},
	)
}

var testFeatureNames = []string{
	catalog.ColBroadbandPrice,
	catalog.ColBroadbandValidity,
	catalog.ColBroadbandSpeed,
	"Region_Delhi",
	"Region_Mumbai",
}

// stubClassifier returns a fixed label or error, optionally after a delay that ignores ctx.
type stubClassifier struct {
	label string
	err   error
	delay time.Duration

	calls atomic.Int32
	mu    sync.Mutex
	got   []float64
}

func (s *stubClassifier) Name() string { return "stub" }

func (s *stubClassifier) Predict(_ context.Context, features []float64) (string, error) {
	s.calls.Add(1)
	s.mu.Lock()
	s.got = append([]float64(nil), features...)
	s.mu.Unlock()
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	return s.label, s.err
}

func (s *stubClassifier) lastFeatures() []float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.got
}

// stubIndex returns fixed neighbour positions and records its inputs.
type stubIndex struct {
	result    []int
	err       error
	neighbors int

	calls  int
	gotK   int
	gotVec []float64
}

func (s *stubIndex) Neighbors() int { return s.neighbors }

func (s *stubIndex) Nearest(_ context.Context, vector []float64, k int) ([]int, error) {
	s.calls++
	s.gotK = k
	s.gotVec = append([]float64(nil), vector...)
	return s.result, s.err
}

type engineOptions struct {
	config     func(*Config)
	classifier predictor.Classifier
	index      predictor.NeighborIndex
}

// newTestEngine builds an engine over the fixture catalogs with an identity scaler.
func newTestEngine(t *testing.T, opts engineOptions) *Engine {
	t.Helper()

	cfg := DefaultConfig()
	cfg.CacheTTL = 0
	if opts.config != nil {
		opts.config(&cfg)
	}

	fs, err := predictor.NewFeatureSet(testFeatureNames)
	if err != nil {
		t.Fatal(err)
	}
	sc, err := predictor.NewStandardScaler(make([]float64, len(testFeatureNames)), []float64{1, 1, 1, 1, 1})
	if err != nil {
		t.Fatal(err)
	}

	bb := testBroadbandCatalog()
	idx := opts.index
	if idx == nil {
		built, err := predictor.BuildBroadbandIndex(&predictor.KNNArtifact{NNeighbors: 2}, bb, fs, sc)
		if err != nil {
			t.Fatal(err)
		}
		idx = built
	}
	cls := opts.classifier
	if cls == nil {
		cls = &stubClassifier{label: "Standard"}
	}

	e, err := NewEngine(cfg, Deps{
		Mobile:     testMobileCatalog(),
		Broadband:  bb,
		Classifier: cls,
		Index:      idx,
		Features:   fs,
		Scaler:     sc,
	})
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	t.Cleanup(e.Close)
	return e
}

func planNames(fields []map[string]any, key string) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i], _ = f[key].(string)
	}
	return out
}

func mobileNames(plans []catalog.MobilePlan) []string {
	fields := make([]map[string]any, len(plans))
	for i, p := range plans {
		fields[i] = p.Fields
	}
	return planNames(fields, "name")
}

func broadbandNames(plans []catalog.BroadbandPlan) []string {
	fields := make([]map[string]any, len(plans))
	for i, p := range plans {
		fields[i] = p.Fields
	}
	return planNames(fields, "Provider")
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func f64(v float64) *float64 { return &v }

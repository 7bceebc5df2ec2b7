// PlanAdvisor - Mobile and Broadband Plan Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/planadvisor

package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/planadvisor/internal/catalog"
	"github.com/tomtom215/planadvisor/internal/predictor"
	"github.com/tomtom215/planadvisor/internal/recommend"
	"github.com/tomtom215/planadvisor/internal/web"
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

// stubClassifier returns a fixed label or error. available=false mimics an open breaker.
type stubClassifier struct {
	label       string
	err         error
	unavailable bool
}

func (s *stubClassifier) Name() string    { return "stub" }
func (s *stubClassifier) Available() bool { return !s.unavailable }
func (s *stubClassifier) Predict(_ context.Context, _ []float64) (string, error) {
	return s.label, s.err
}

// failingIndex always fails, standing in for a broken neighbour model.
type failingIndex struct{ err error }

func (f failingIndex) Neighbors() int { return 2 }
func (f failingIndex) Nearest(context.Context, []float64, int) ([]int, error) {
	return nil, f.err
}

type serverOptions struct {
	classifier *stubClassifier
	index      predictor.NeighborIndex
	middleware *ChiMiddlewareConfig
}

// newTestEngine builds a real engine over small fixture catalogs with an identity scaler.
func newTestEngine(t *testing.T, opts serverOptions) *recommend.Engine {
	t.Helper()

	mobile := catalog.NewMobile(
		[]string{"name", catalog.ColPrice, catalog.ColValidityDays, catalog.ColDataPerDay, catalog.ColPlanClass, catalog.ColPricePerGB},
		[]catalog.MobilePlan{
			mobilePlan("A", 199, 28, 1.5, "Budget", 4.7),
			mobilePlan("B", 239, 28, 1.5, "Budget", 5.7),
			mobilePlan("C", 299, 28, 2, "Standard", 5.3),
			mobilePlan("D", 719, 84, 2, "Standard", 4.3),
			mobilePlan("E", 2999, 365, 2.5, "Premium", 3.3),
		},
	)
	broadband := catalog.NewBroadband(
		[]string{"Provider", catalog.ColBroadbandPrice, catalog.ColBroadbandValidity, catalog.ColBroadbandSpeed, catalog.ColBroadbandRegion},
		[]catalog.BroadbandPlan{
			broadbandPlan("P0", 499, 30, 40, "Delhi"),
			broadbandPlan("P1", 999, 30, 200, "Mumbai"),
			broadbandPlan("P2", 699, 30, 100, "Delhi"),
			broadbandPlan("P3", 1499, 90, 300, "Bangalore"),
		},
	)

	features, err := predictor.NewFeatureSet([]string{
		catalog.ColBroadbandPrice, catalog.ColBroadbandValidity, catalog.ColBroadbandSpeed,
		"Region_Delhi", "Region_Mumbai",
	})
	if err != nil {
		t.Fatal(err)
	}
	scaler, err := predictor.NewStandardScaler(make([]float64, 5), []float64{1, 1, 1, 1, 1})
	if err != nil {
		t.Fatal(err)
	}

	index := opts.index
	if index == nil {
		index, err = predictor.BuildBroadbandIndex(&predictor.KNNArtifact{NNeighbors: 2}, broadband, features, scaler)
		if err != nil {
			t.Fatal(err)
		}
	}
	classifier := opts.classifier
	if classifier == nil {
		classifier = &stubClassifier{label: "Budget"}
	}

	cfg := recommend.DefaultConfig()
	cfg.CacheTTL = 0
	engine, err := recommend.NewEngine(cfg, recommend.Deps{
		Mobile:     mobile,
		Broadband:  broadband,
		Classifier: classifier,
		Index:      index,
		Features:   features,
		Scaler:     scaler,
	})
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	t.Cleanup(engine.Close)
	return engine
}

// newTestServer returns the full router over a fixture engine, rate limiting off by default.
func newTestServer(t *testing.T, opts serverOptions) http.Handler {
	t.Helper()

	pages, err := web.New()
	if err != nil {
		t.Fatalf("web.New() error = %v", err)
	}
	handler, err := NewHandler(newTestEngine(t, opts), pages)
	if err != nil {
		t.Fatalf("NewHandler() error = %v", err)
	}

	mw := opts.middleware
	if mw == nil {
		mw = DefaultChiMiddlewareConfig()
		mw.RateLimitDisabled = true
	}
	return NewRouter(handler, mw).SetupChi()
}

func doRequest(t *testing.T, srv http.Handler, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func postForm(t *testing.T, srv http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return doRequest(t, srv, req)
}

func postJSON(t *testing.T, srv http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader = strings.NewReader(body)
	req := httptest.NewRequest(http.MethodPost, path, r)
	req.Header.Set("Content-Type", "application/json")
	return doRequest(t, srv, req)
}

// envelope is APIResponse with Data left raw for per-test decoding.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *APIError       `json:"error"`
	Meta    *APIMeta        `json:"meta"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder, data any) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v\nbody: %s", err, rec.Body.String())
	}
	if data != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, data); err != nil {
			t.Fatalf("decode data: %v\nbody: %s", err, rec.Body.String())
		}
	}
	return env
}

func planColumn(plans []catalog.Record, key string) []string {
	out := make([]string, len(plans))
	for i, p := range plans {
		out[i], _ = p[key].(string)
	}
	return out
}

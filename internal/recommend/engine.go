// PlanAdvisor - Mobile and Broadband Plan Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/planadvisor

package recommend

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/planadvisor/internal/cache"
	"github.com/tomtom215/planadvisor/internal/catalog"
	"github.com/tomtom215/planadvisor/internal/isp"
	"github.com/tomtom215/planadvisor/internal/logging"
	"github.com/tomtom215/planadvisor/internal/metrics"
	"github.com/tomtom215/planadvisor/internal/predictor"
)

// Deps is the read-only state the engine is built from.
// Everything is loaded once at startup and never mutated.
type Deps struct {
	Mobile     *catalog.Mobile
	Broadband  *catalog.Broadband
	Classifier predictor.Classifier
	Index      predictor.NeighborIndex
	Features   *predictor.FeatureSet
	Scaler     *predictor.Scaler
	ISPs       *isp.Directory
}

// Engine runs the speed-test, mobile and broadband flows.
// It is safe for concurrent use.
type Engine struct {
	config Config
	logger zerolog.Logger

	mobile     *catalog.Mobile
	broadband  *catalog.Broadband
	classifier predictor.Classifier
	index      predictor.NeighborIndex
	features   *predictor.FeatureSet
	scaler     *predictor.Scaler
	isps       *isp.Directory

	// nil when caching is disabled
	mobileCache    *cache.Cache[*MobileResult]
	broadbandCache *cache.Cache[*BroadbandResult]
}

// NewEngine validates cfg and wires the engine.
func NewEngine(cfg Config, deps Deps) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	switch {
	case deps.Mobile == nil:
		return nil, errors.New("mobile catalog is required")
	case deps.Broadband == nil:
		return nil, errors.New("broadband catalog is required")
	case deps.Classifier == nil:
		return nil, errors.New("classifier is required")
	case deps.Index == nil:
		return nil, errors.New("neighbour index is required")
	case deps.Features == nil:
		return nil, errors.New("feature set is required")
	case deps.Scaler == nil:
		return nil, errors.New("scaler is required")
	}
	if deps.Scaler.Len() != deps.Features.Len() {
		return nil, fmt.Errorf("scaler has %d features but feature list has %d", deps.Scaler.Len(), deps.Features.Len())
	}
	if deps.ISPs == nil {
		deps.ISPs = isp.Default()
	}

	e := &Engine{
		config:     cfg,
		logger:     logging.Component("recommend"),
		mobile:     deps.Mobile,
		broadband:  deps.Broadband,
		classifier: deps.Classifier,
		index:      deps.Index,
		features:   deps.Features,
		scaler:     deps.Scaler,
		isps:       deps.ISPs,
	}

	if cfg.CacheTTL > 0 {
		opts := cache.Options{MaxEntries: cfg.CacheMaxEntries}
		e.mobileCache = cache.NewWithOptions[*MobileResult](cfg.CacheTTL, opts)
		e.broadbandCache = cache.NewWithOptions[*BroadbandResult](cfg.CacheTTL, opts)
	}

	e.logger.Info().
		Int("mobile_plans", deps.Mobile.Len()).
		Int("broadband_plans", deps.Broadband.Len()).
		Str("classifier", deps.Classifier.Name()).
		Int("neighbors", e.neighbors()).
		Dur("cache_ttl", cfg.CacheTTL).
		Msg("Recommendation engine ready")

	return e, nil
}

// Close stops the result caches.
func (e *Engine) Close() {
	if e.mobileCache != nil {
		e.mobileCache.Close()
	}
	if e.broadbandCache != nil {
		e.broadbandCache.Close()
	}
}

// ISPs returns the ISP directory.
func (e *Engine) ISPs() *isp.Directory { return e.isps }

// Regions returns the broadband catalog's sorted regions.
func (e *Engine) Regions() []string { return e.broadband.Regions() }

// Categories returns the mobile plan classes in catalog order.
func (e *Engine) Categories() []string { return e.mobile.Classes() }

// MobileColumns returns the mobile catalog's column order.
func (e *Engine) MobileColumns() []string { return e.mobile.Columns() }

// BroadbandColumns returns the broadband catalog's column order.
func (e *Engine) BroadbandColumns() []string { return e.broadband.Columns() }

// ClassifierName identifies the classifier backend.
func (e *Engine) ClassifierName() string { return e.classifier.Name() }

// ClassifierAvailable is false while a guarding circuit breaker is open.
func (e *Engine) ClassifierAvailable() bool {
	if a, ok := e.classifier.(interface{ Available() bool }); ok {
		return a.Available()
	}
	return true
}

func (e *Engine) neighbors() int {
	if e.config.Neighbors > 0 {
		return e.config.Neighbors
	}
	return e.index.Neighbors()
}

// SpeedTest compares the named ISP with the best one in the directory.
func (e *Engine) SpeedTest(name string) isp.Comparison {
	start := time.Now()
	c := e.isps.Compare(name)
	metrics.RecordRecommendation(FlowSpeedTest, string(c.Status), 0, time.Since(start))
	return c
}

// MobileFromInput parses form input and runs the mobile flow.
func (e *Engine) MobileFromInput(ctx context.Context, in MobileInput) *MobileResult {
	q, err := ParseMobileInput(in)
	if err != nil {
		res := e.mobileFailure(q, err)
		metrics.RecordRecommendation(FlowMobile, string(res.Outcome), 0, 0)
		return res
	}
	return e.Mobile(ctx, q)
}

// Mobile recommends mobile plans for q.
//
// A category filters plans directly. Without one, a query carrying price,
// validity and data is classified and the predicted category is used. Plans
// are then narrowed to ±Tolerance around each present numeric, ordered by
// price per GB and capped at MobileLimit.
func (e *Engine) Mobile(ctx context.Context, q MobileQuery) *MobileResult {
	start := time.Now()

	key := cache.GenerateKey(FlowMobile, q)
	if e.mobileCache != nil {
		if res, ok := e.mobileCache.Get(key); ok {
			metrics.RecordCacheLookup(FlowMobile, true)
			metrics.RecordRecommendation(FlowMobile, string(res.Outcome), len(res.Plans), time.Since(start))
			return res
		}
		metrics.RecordCacheLookup(FlowMobile, false)
	}

	res := e.runMobile(ctx, q)
	if e.mobileCache != nil && !res.Outcome.Failed() {
		e.mobileCache.Set(key, res)
	}

	metrics.RecordRecommendation(FlowMobile, string(res.Outcome), len(res.Plans), time.Since(start))
	return res
}

func (e *Engine) runMobile(ctx context.Context, q MobileQuery) *MobileResult {
	if err := q.Validate(); err != nil {
		return e.mobileFailure(q, err)
	}

	res := &MobileResult{Query: q}
	e.attachISP(res, q.ISP)

	tol := e.config.Tolerance
	criteria := catalog.MobileCriteria{PlanClass: q.Category}
	if q.Price != nil {
		criteria.Price = catalog.Around(*q.Price, tol)
	}
	if q.Validity != nil {
		criteria.Validity = catalog.Around(*q.Validity, tol)
	}
	if q.Data != nil {
		criteria.DataPerDay = catalog.Around(*q.Data, tol)
	}

	switch {
	case q.Category != "":
		res.Message = fmt.Sprintf(mobileCategoryMessage, q.Category)
	case q.complete():
		label, err := e.classify(ctx, []float64{*q.Price, *q.Validity, *q.Data})
		if err != nil {
			return e.mobileFailure(q, err)
		}
		criteria.PlanClass = label
		res.PredictedCategory = label
		res.Message = fmt.Sprintf(mobilePredictMessage, label)
	default:
		res.Message = MsgBestAvailable
	}

	plans := e.mobile.Filter(criteria)
	catalog.SortByPricePerGB(plans)
	res.Plans = catalog.Head(plans, e.config.MobileLimit)

	if len(res.Plans) == 0 {
		res.Outcome = OutcomeNoMatch
		res.Message = MsgNoMobileMatch
		return res
	}
	res.Outcome = OutcomeOK
	return res
}

// mobileFailure builds a BadInput or PredictorFailure result. ISP info is kept.
func (e *Engine) mobileFailure(q MobileQuery, err error) *MobileResult {
	res := &MobileResult{
		Outcome: classifyError(err),
		Message: mobileErrorPrefix + err.Error(),
		Query:   q,
		Err:     err,
	}
	e.attachISP(res, q.ISP)
	return res
}

func (e *Engine) attachISP(res *MobileResult, name string) {
	p, ok := e.isps.Lookup(name)
	if !ok {
		return
	}
	speed := p.Speed
	res.ISPSpeedInfo = &speed
	if best, ok := e.isps.Best(); ok && best.Name != p.Name {
		res.RecommendedISP = best.Name
	}
}

// classify runs the classifier under PredictTimeout.
func (e *Engine) classify(ctx context.Context, features []float64) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, e.config.PredictTimeout)
	defer cancel()

	type prediction struct {
		label string
		err   error
	}
	done := make(chan prediction, 1)
	start := time.Now()
	go func() {
		label, err := e.classifier.Predict(ctx, features)
		done <- prediction{label: label, err: err}
	}()

	var p prediction
	select {
	case p = <-done:
	case <-ctx.Done():
		p.err = fmt.Errorf("%s classifier: %w", e.classifier.Name(), ctx.Err())
	}
	metrics.RecordPrediction(e.classifier.Name(), time.Since(start), p.err)

	if p.err != nil {
		e.logger.Warn().
			Err(p.err).
			Str("request_id", logging.RequestIDFromContext(ctx)).
			Str("classifier", e.classifier.Name()).
			Msg("Mobile plan classification failed")
		return "", &predictorError{stage: "classifier", cause: p.err}
	}
	return p.label, nil
}

// BroadbandFromInput parses form input and runs the broadband flow.
func (e *Engine) BroadbandFromInput(ctx context.Context, in BroadbandInput) *BroadbandResult {
	q, err := ParseBroadbandInput(in)
	if err != nil {
		res := broadbandFailure(q, err)
		metrics.RecordRecommendation(FlowBroadband, string(res.Outcome), 0, 0)
		return res
	}
	return e.Broadband(ctx, q)
}

// Broadband recommends broadband plans nearest to q.
//
// A query with no numeric field and no known region returns the whole catalog.
// Otherwise the query is encoded with the feature set (absent numerics as 0),
// scaled and matched against the neighbour index, nearest first.
func (e *Engine) Broadband(ctx context.Context, q BroadbandQuery) *BroadbandResult {
	start := time.Now()

	key := cache.GenerateKey(FlowBroadband, q)
	if e.broadbandCache != nil {
		if res, ok := e.broadbandCache.Get(key); ok {
			metrics.RecordCacheLookup(FlowBroadband, true)
			metrics.RecordRecommendation(FlowBroadband, string(res.Outcome), len(res.Plans), time.Since(start))
			return res
		}
		metrics.RecordCacheLookup(FlowBroadband, false)
	}

	res := e.runBroadband(ctx, q)
	if e.broadbandCache != nil && !res.Outcome.Failed() {
		e.broadbandCache.Set(key, res)
	}

	metrics.RecordRecommendation(FlowBroadband, string(res.Outcome), len(res.Plans), time.Since(start))
	return res
}

func (e *Engine) runBroadband(ctx context.Context, q BroadbandQuery) *BroadbandResult {
	if err := q.Validate(); err != nil {
		return broadbandFailure(q, err)
	}

	if q.Price == nil && q.Validity == nil && q.Speed == nil && !e.features.HasRegion(q.Region) {
		return &BroadbandResult{
			Outcome: OutcomeShowAll,
			Message: MsgBroadbandShowAll,
			Plans:   e.broadband.Plans(),
			Query:   q,
		}
	}

	vector := e.features.Vector(valueOrZero(q.Price), valueOrZero(q.Validity), valueOrZero(q.Speed), q.Region)
	scaled, err := e.scaler.Transform(vector)
	if err != nil {
		return e.broadbandPredictorFailure(ctx, q, "scaler", err)
	}

	start := time.Now()
	indices, err := e.index.Nearest(ctx, scaled, e.neighbors())
	metrics.RecordPrediction("knn", time.Since(start), err)
	if err != nil {
		return e.broadbandPredictorFailure(ctx, q, "index", err)
	}

	plans := make([]catalog.BroadbandPlan, 0, len(indices))
	for _, i := range indices {
		p, ok := e.broadband.At(i)
		if !ok {
			return e.broadbandPredictorFailure(ctx, q, "index",
				fmt.Errorf("%w: neighbour %d outside catalog of %d plans", predictor.ErrPredict, i, e.broadband.Len()))
		}
		plans = append(plans, p)
	}

	res := &BroadbandResult{
		Outcome: OutcomeOK,
		Message: MsgBroadbandMatched,
		Plans:   plans,
		Query:   q,
	}
	if len(plans) == 0 {
		res.Outcome = OutcomeNoMatch
	}
	return res
}

func (e *Engine) broadbandPredictorFailure(ctx context.Context, q BroadbandQuery, stage string, cause error) *BroadbandResult {
	e.logger.Warn().
		Err(cause).
		Str("request_id", logging.RequestIDFromContext(ctx)).
		Str("stage", stage).
		Msg("Broadband recommendation failed")
	return broadbandFailure(q, &predictorError{stage: stage, cause: cause})
}

func broadbandFailure(q BroadbandQuery, err error) *BroadbandResult {
	return &BroadbandResult{
		Outcome: classifyError(err),
		Message: broadbandErrorPrefix + err.Error(),
		Query:   q,
		Err:     err,
	}
}

// classifyError maps an error to its failure outcome.
func classifyError(err error) Outcome {
	if errors.Is(err, ErrBadInput) {
		return OutcomeBadInput
	}
	return OutcomePredictorFailure
}

func valueOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

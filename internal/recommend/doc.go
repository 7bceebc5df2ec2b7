// PlanAdvisor - Mobile and Broadband Plan Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/planadvisor

// Package recommend implements the three user-facing flows: ISP speed
// comparison, mobile plan recommendation and broadband plan recommendation.
//
// # Architecture
//
// An Engine is built once at startup from immutable Deps (catalogs,
// classifier, neighbour index, feature set, scaler and ISP directory) and is
// shared by every request handler. Nothing in the engine mutates after
// NewEngine returns apart from the result caches.
//
// # Outcomes
//
// Each flow returns a result tagged with an Outcome:
//
//   - OutcomeOK: plans were selected
//   - OutcomeNoMatch: the query was valid but nothing matched
//   - OutcomeShowAll: a broadband query with no signal, full catalog returned
//   - OutcomeBadInput: the query failed parsing or validation (errors.Is ErrBadInput)
//   - OutcomePredictorFailure: classifier, scaler or index failed (errors.Is ErrPredictor)
//
// Results carry the user-facing Message in every case, so HTML handlers can
// render them directly while the JSON API maps failures to status codes.
//
// # Optional Fields
//
// Numeric query fields are pointers. Nil means the field was not supplied;
// an explicit 0 is a real value and takes part in filtering and encoding.
//
// # Caching
//
// Successful outcomes (OK, NoMatch, ShowAll) are memoized per normalized
// query for Config.CacheTTL. Failures are never cached. Cached results are
// shared and must not be modified by callers.
//
// # Observability
//
// Every flow records recommendation metrics by flow and outcome; classifier
// and index calls record predictor latency and errors.
package recommend

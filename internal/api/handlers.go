// PlanAdvisor - Mobile and Broadband Plan Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/planadvisor

package api

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/planadvisor/internal/isp"
	"github.com/tomtom215/planadvisor/internal/logging"
	"github.com/tomtom215/planadvisor/internal/recommend"
	"github.com/tomtom215/planadvisor/internal/web"
)

// Recommender is the recommendation engine as seen by the handlers.
// *recommend.Engine implements it.
type Recommender interface {
	ISPs() *isp.Directory
	Regions() []string
	Categories() []string
	MobileColumns() []string
	BroadbandColumns() []string
	ClassifierName() string
	ClassifierAvailable() bool

	SpeedTest(name string) isp.Comparison
	MobileFromInput(ctx context.Context, in recommend.MobileInput) *recommend.MobileResult
	Mobile(ctx context.Context, q recommend.MobileQuery) *recommend.MobileResult
	BroadbandFromInput(ctx context.Context, in recommend.BroadbandInput) *recommend.BroadbandResult
	Broadband(ctx context.Context, q recommend.BroadbandQuery) *recommend.BroadbandResult
}

// Renderer renders an HTML page. *web.Renderer implements it.
type Renderer interface {
	Render(w io.Writer, page web.Page, data any) error
}

// Handler contains dependencies for the HTTP handlers.
//
// Handler methods are split across files:
//   - handlers_pages.go: HTML form pages
//   - handlers_api.go: JSON API endpoints
//   - handlers_health.go: liveness and readiness
type Handler struct {
	engine    Recommender
	pages     Renderer
	startTime time.Time
	logger    zerolog.Logger
}

// NewHandler creates a handler over a ready engine and page renderer.
func NewHandler(engine Recommender, pages Renderer) (*Handler, error) {
	if engine == nil {
		return nil, errors.New("api: recommender is required")
	}
	if pages == nil {
		return nil, errors.New("api: renderer is required")
	}
	return &Handler{
		engine:    engine,
		pages:     pages,
		startTime: time.Now(),
		logger:    logging.Component("api"),
	}, nil
}

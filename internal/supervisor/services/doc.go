// PlanAdvisor - Mobile and Broadband Plan Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/planadvisor

// Package services adapts PlanAdvisor components to suture.Service.
//
// HTTPServerService turns http.Server's ListenAndServe/Shutdown pair into a
// single context-aware Serve method. A listener error is returned so the
// supervisor restarts it; context cancellation triggers a bounded graceful
// shutdown.
package services

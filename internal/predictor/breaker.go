// PlanAdvisor - Mobile and Broadband Plan Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/planadvisor

package predictor

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/planadvisor/internal/logging"
	"github.com/tomtom215/planadvisor/internal/metrics"
)

// BreakerSettings configures BreakerClassifier.
type BreakerSettings struct {
	MaxRequests         uint32        // probes allowed while half-open
	Interval            time.Duration // closed-state counter reset period
	Timeout             time.Duration // open-state duration before probing
	ConsecutiveFailures uint32        // failures that open the circuit
}

// BreakerClassifier wraps a Classifier with a circuit breaker so that a
// failing backend (for example a broken ONNX runtime) fails fast.
// Caller cancellation does not count as a failure.
type BreakerClassifier struct {
	inner Classifier
	cb    *gobreaker.CircuitBreaker[string]
}

// NewBreakerClassifier wraps inner.
func NewBreakerClassifier(inner Classifier, s BreakerSettings) *BreakerClassifier {
	name := "classifier-" + inner.Name()
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	threshold := s.ConsecutiveFailures
	if threshold == 0 {
		threshold = 5
	}

	cb := gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:        name,
		MaxRequests: s.MaxRequests,
		Interval:    s.Interval,
		Timeout:     s.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Circuit breaker state transition")
			metrics.RecordBreakerTransition(name, from.String(), to.String(), stateToFloat(to))
		},
		IsSuccessful: func(err error) bool {
			// context cancellation is the caller's doing, not a backend fault
			return err == nil || errors.Is(err, context.Canceled)
		},
	})

	return &BreakerClassifier{inner: inner, cb: cb}
}

// Name identifies the wrapped backend.
func (b *BreakerClassifier) Name() string { return b.inner.Name() }

// State returns the current breaker state.
func (b *BreakerClassifier) State() gobreaker.State { return b.cb.State() }

// Predict calls the wrapped classifier unless the circuit is open.
func (b *BreakerClassifier) Predict(ctx context.Context, features []float64) (string, error) {
	label, err := b.cb.Execute(func() (string, error) {
		return b.inner.Predict(ctx, features)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return "", fmt.Errorf("%w: %s classifier unavailable: %w", ErrPredict, b.inner.Name(), err)
	}
	return label, err
}

// stateToFloat converts circuit breaker state to numeric value for metrics
// Available reports whether calls are currently let through.
func (b *BreakerClassifier) Available() bool { return b.cb.State() != gobreaker.StateOpen }

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package permutations

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Search outcomes used as metric labels.
const (
	outcomeSuccess    = "success"
	outcomeNoSolution = "no_solution"
	outcomeTimedOut   = "timed_out"
	outcomeCanceled   = "canceled"
	outcomeInvalid    = "invalid"
)

var tracer = otel.Tracer("smooshedmorse.permutations")

// -----------------------------------------------------------------------------
// Search Metrics
// -----------------------------------------------------------------------------

var (
	// searchesTotal counts finished searches by outcome.
	//
	// Labels:
	//   - outcome: success, no_solution, timed_out, canceled or invalid
	searchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "smooshedmorse",
			Subsystem: "permutations",
			Name:      "searches_total",
			Help:      "Total permutation searches by outcome",
		},
		[]string{"outcome"},
	)

	// candidatesTotal counts candidates produced by all frames.
	candidatesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "smooshedmorse",
			Subsystem: "permutations",
			Name:      "candidates_total",
			Help:      "Total candidate selections generated",
		},
	)

	// backtracksTotal counts popped frames.
	backtracksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "smooshedmorse",
			Subsystem: "permutations",
			Name:      "backtracks_total",
			Help:      "Total frames popped during search",
		},
	)

	// searchDuration tracks wall-clock time per search.
	searchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "smooshedmorse",
			Subsystem: "permutations",
			Name:      "search_duration_seconds",
			Help:      "Duration of permutation searches",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10), // 100us to ~26s
		},
	)
)

// startSolveSpan creates a span for a Solve call.
func startSolveSpan(ctx context.Context, increment int, prune bool) (context.Context, trace.Span) {
	return tracer.Start(ctx, "Searcher.Solve",
		trace.WithAttributes(
			attribute.Int("permutations.increment", increment),
			attribute.Bool("permutations.prune", prune),
		),
	)
}

// recordOutcome sets span attributes and updates the Prometheus metrics.
func recordOutcome(span trace.Span, outcome string, stats Stats, d time.Duration) {
	span.SetAttributes(
		attribute.String("permutations.outcome", outcome),
		attribute.Int64("permutations.steps", stats.Steps),
		attribute.Int64("permutations.candidates", stats.Candidates),
		attribute.Int64("permutations.backtracks", stats.Backtracks),
		attribute.Int("permutations.max_depth", stats.MaxDepth),
	)
	if outcome == outcomeSuccess {
		span.SetStatus(codes.Ok, "")
	} else {
		span.SetStatus(codes.Error, outcome)
	}

	searchesTotal.WithLabelValues(outcome).Inc()
	candidatesTotal.Add(float64(stats.Candidates))
	backtracksTotal.Add(float64(stats.Backtracks))
	if outcome != outcomeInvalid {
		searchDuration.Observe(d.Seconds())
	}
}

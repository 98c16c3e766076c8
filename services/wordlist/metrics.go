// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package wordlist

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Package-level tracer and meter for index operations.
var (
	tracer = otel.Tracer("smooshedmorse.wordlist")
	meter  = otel.Meter("smooshedmorse.wordlist")
)

var (
	buildDuration metric.Float64Histogram
	buildTotal    metric.Int64Counter
	cacheTotal    metric.Int64Counter

	metricsOnce sync.Once
	metricsErr  error
)

// lookupsTotal counts code lookups against any index.
var lookupsTotal = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "smooshedmorse",
	Subsystem: "wordlist",
	Name:      "lookups_total",
	Help:      "Total smooshed code lookups",
})

// initMetrics initializes the metrics. Safe to call multiple times.
func initMetrics() error {
	metricsOnce.Do(func() {
		var err error

		buildDuration, err = meter.Float64Histogram(
			"wordlist_build_duration_seconds",
			metric.WithDescription("Duration of word index builds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		buildTotal, err = meter.Int64Counter(
			"wordlist_builds_total",
			metric.WithDescription("Total word index builds"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		cacheTotal, err = meter.Int64Counter(
			"wordlist_cache_total",
			metric.WithDescription("Index cache lookups by result"),
		)
		if err != nil {
			metricsErr = err
			return
		}
	})
	return metricsErr
}

func startBuildSpan(ctx context.Context, words int) (context.Context, trace.Span) {
	return tracer.Start(ctx, "wordlist.Build",
		trace.WithAttributes(attribute.Int("wordlist.words", words)),
	)
}

func recordBuild(ctx context.Context, span trace.Span, d time.Duration, codeCount int, err error) {
	span.SetAttributes(attribute.Int("wordlist.codes", codeCount))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	if initMetrics() != nil {
		return
	}
	attrs := metric.WithAttributes(attribute.Bool("success", err == nil))
	buildDuration.Record(ctx, d.Seconds(), attrs)
	buildTotal.Add(ctx, 1, attrs)
}

func recordCache(ctx context.Context, hit bool) {
	if initMetrics() != nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	cacheTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
}

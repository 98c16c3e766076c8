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
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/AleutianAI/smooshedmorse/pkg/morse"
	"github.com/AleutianAI/smooshedmorse/pkg/validation"
)

// Report is the outcome of a recovery, shaped for CLI and HTTP output.
type Report struct {
	// Generated is the random permutation the target was built from, if any.
	Generated string `json:"generated,omitempty"`

	// Target is the smooshed Morse input.
	Target string `json:"target"`

	// Solution is the recovered permutation, empty unless Outcome is success.
	Solution string `json:"solution,omitempty"`

	// Verified is true when encoding Solution reproduces Target.
	Verified bool `json:"verified"`

	// Outcome is success, no_solution, timed_out or canceled.
	Outcome string `json:"outcome"`

	// Stats describes the search work.
	Stats Stats `json:"stats"`

	// DurationMS is the search time in milliseconds.
	DurationMS float64 `json:"duration_ms"`
}

// Service validates targets, optionally generates them, and runs searches.
//
// # Thread Safety
//
// Safe for concurrent use. Random generation is serialized.
type Service struct {
	table     *morse.Table
	searcher  *Searcher
	logger    *slog.Logger
	mu        sync.Mutex
	generator *Generator
}

// NewService creates a recovery service over table.
//
// # Inputs
//
//   - table: Morse table; its alphabet is the root pool.
//   - config: Search configuration. Nil uses DefaultConfig().
//   - seed: Seed for random targets (see RNGFromSeed).
//   - logger: Logger. Nil uses slog.Default().
func NewService(table *morse.Table, config *Config, seed int64, logger *slog.Logger) (*Service, error) {
	if logger == nil {
		logger = slog.Default()
	}
	searcher, err := NewSearcher(table, table.Alphabet(), config, logger)
	if err != nil {
		return nil, err
	}
	generator, err := NewGenerator(table, table.Alphabet(), seed)
	if err != nil {
		return nil, err
	}
	return &Service{
		table:     table,
		searcher:  searcher,
		logger:    logger,
		generator: generator,
	}, nil
}

// Searcher returns the underlying searcher.
func (s *Service) Searcher() *Searcher { return s.searcher }

// Recover validates raw and searches for a permutation encoding it.
//
// # Outputs
//
//   - *Report: Nil when raw is malformed; otherwise filled even on
//     ErrNoSolution or ErrSearchTimedOut.
//   - error: *validation.TargetError for malformed input, or the Solve error.
//
// # Example
//
//	report, err := svc.Recover(ctx, ".--...-.-.-.....")
//	if errors.Is(err, validation.ErrWrongLength) {
//	    // reject before searching
//	}
func (s *Service) Recover(ctx context.Context, raw string) (*Report, error) {
	target, err := validation.ParseTarget(raw, s.table)
	if err != nil {
		searchesTotal.WithLabelValues(outcomeInvalid).Inc()
		return nil, fmt.Errorf("invalid target: %w", err)
	}
	return s.recover(ctx, target, "")
}

// RecoverRandom generates a random permutation, encodes it and recovers a
// permutation from the encoding.
func (s *Service) RecoverRandom(ctx context.Context) (*Report, error) {
	s.mu.Lock()
	perm, target, err := s.generator.Generate()
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	s.logger.Debug("generated random permutation", slog.String("permutation", string(perm)))
	return s.recover(ctx, target, string(perm))
}

func (s *Service) recover(ctx context.Context, target morse.Bits, generated string) (*Report, error) {
	result, err := s.searcher.Solve(ctx, target)
	if result == nil {
		return nil, err
	}

	report := &Report{
		Generated:  generated,
		Target:     target.String(),
		Outcome:    outcomeOf(result.State, err),
		Stats:      result.Stats,
		DurationMS: float64(result.Duration) / float64(time.Millisecond),
	}
	if result.State == StateSuccess {
		report.Solution = string(result.Solution)
		encoded, encErr := s.table.EncodeSymbols(result.Solution)
		report.Verified = encErr == nil && encoded.Equal(target)
	}

	s.logger.Info("permutation search finished",
		slog.String("outcome", report.Outcome),
		slog.String("solution", report.Solution),
		slog.Int64("steps", report.Stats.Steps),
		slog.Float64("duration_ms", report.DurationMS),
	)
	return report, err
}

func outcomeOf(state State, err error) string {
	switch {
	case state == StateSuccess:
		return outcomeSuccess
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return outcomeCanceled
	case state == StateTimedOut:
		return outcomeTimedOut
	default:
		return outcomeNoSolution
	}
}

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
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/smooshedmorse/pkg/morse"
	"github.com/AleutianAI/smooshedmorse/pkg/validation"
)

const challengeTarget = ".--...-.-.-.....-.--........----.-.-..---.---.--.--.-.-....-..-...-.---..--.----.."

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newSearcher(t *testing.T, table *morse.Table, config *Config) *Searcher {
	t.Helper()
	s, err := NewSearcher(table, table.Alphabet(), config, quietLogger())
	require.NoError(t, err)
	return s
}

// assertPermutationOf checks that solution uses every alphabet symbol once.
func assertPermutationOf(t *testing.T, alphabet, solution []rune) {
	t.Helper()
	require.Len(t, solution, len(alphabet))
	seen := make(map[rune]bool, len(solution))
	for _, r := range solution {
		assert.False(t, seen[r], "symbol %q repeated", r)
		seen[r] = true
	}
	for _, r := range alphabet {
		assert.True(t, seen[r], "symbol %q missing", r)
	}
}

// tinyTable has codes a=".", b="..", c="-" so that committing "a" first at
// offset 0 leads to a dead end for target "..-.".
func tinyTable(t *testing.T) *morse.Table {
	t.Helper()
	table, err := morse.NewTable([]rune("abc"), []string{".", "..", "-"})
	require.NoError(t, err)
	return table
}

func TestSearcher_ChallengeTarget(t *testing.T) {
	table := morse.Default()
	target := morse.MustParseBits(challengeTarget)
	require.Len(t, target, table.TotalBits())

	for _, increment := range []int{1, 2, 3} {
		config := DefaultConfig()
		config.Increment = increment
		s := newSearcher(t, table, config)

		result, err := s.Solve(context.Background(), target)
		require.NoError(t, err, "increment %d", increment)
		assert.Equal(t, StateSuccess, result.State)
		assertPermutationOf(t, table.Alphabet(), result.Solution)

		encoded, err := table.EncodeSymbols(result.Solution)
		require.NoError(t, err)
		assert.Equal(t, challengeTarget, encoded.String())
	}
}

func TestSearcher_RoundTrip(t *testing.T) {
	table := morse.Default()
	s := newSearcher(t, table, nil)

	for seed := int64(1); seed <= 5; seed++ {
		gen, err := NewGenerator(table, table.Alphabet(), seed)
		require.NoError(t, err)
		perm, target, err := gen.Generate()
		require.NoError(t, err)

		result, err := s.Solve(context.Background(), target)
		require.NoError(t, err, "seed %d permutation %s", seed, string(perm))
		assertPermutationOf(t, table.Alphabet(), result.Solution)

		encoded, err := table.EncodeSymbols(result.Solution)
		require.NoError(t, err)
		assert.True(t, encoded.Equal(target), "seed %d", seed)
	}
}

func TestSearcher_Deterministic(t *testing.T) {
	table := morse.Default()
	target := morse.MustParseBits(challengeTarget)

	first, err := newSearcher(t, table, nil).Solve(context.Background(), target)
	require.NoError(t, err)
	second, err := newSearcher(t, table, nil).Solve(context.Background(), target)
	require.NoError(t, err)

	assert.Equal(t, first.Solution, second.Solution)
	assert.Equal(t, first.Stats, second.Stats)
}

func TestSearcher_AllDotsHasNoSolution(t *testing.T) {
	table := morse.Default()
	target := morse.MustParseBits(strings.Repeat(".", table.TotalBits()))

	for _, prune := range []bool{true, false} {
		config := DefaultConfig()
		config.Prune = prune
		s := newSearcher(t, table, config)

		result, err := s.Solve(context.Background(), target)
		assert.ErrorIs(t, err, ErrNoSolution, "prune=%v", prune)
		require.NotNil(t, result)
		assert.Equal(t, StateFailure, result.State)
		assert.Nil(t, result.Solution)
		assert.Positive(t, result.Stats.Candidates)
	}
}

func TestSearcher_WrongLengthGeneratesNoCandidates(t *testing.T) {
	table := morse.Default()
	s := newSearcher(t, table, nil)

	before := testutil.ToFloat64(candidatesTotal)
	for _, raw := range []string{".", strings.Repeat("-", table.TotalBits()+1), challengeTarget[2:]} {
		result, err := s.Solve(context.Background(), morse.MustParseBits(raw))
		assert.ErrorIs(t, err, validation.ErrWrongLength)
		assert.Nil(t, result)

		_, err = s.Start(morse.MustParseBits(raw))
		assert.ErrorIs(t, err, validation.ErrWrongLength)
	}
	assert.Equal(t, before, testutil.ToFloat64(candidatesTotal))
}

func TestSearch_StepBacktracksAndRestoresOffset(t *testing.T) {
	table := tinyTable(t)
	config := DefaultConfig()
	config.Increment = 1
	config.Prune = false
	s := newSearcher(t, table, config)

	search, err := s.Start(morse.MustParseBits("..-."))
	require.NoError(t, err)
	assert.Equal(t, 1, search.Depth())
	assert.Equal(t, 0, search.Offset())

	// a matches at 0 and pushes a frame at offset 1.
	assert.Equal(t, StateExploring, search.Step())
	assert.Equal(t, 2, search.Depth())
	assert.Equal(t, 1, search.Offset())

	// b and c both mismatch at offset 1.
	search.Step()
	search.Step()
	assert.Equal(t, 2, search.Depth())
	assert.Equal(t, int64(2), search.Stats().Mismatches)

	// The child is exhausted: pop back to the root at offset 0.
	search.Step()
	assert.Equal(t, 1, search.Depth())
	assert.Equal(t, 0, search.Offset())
	assert.Equal(t, int64(1), search.Stats().Backtracks)

	// b matches at 0, so the child starts at offset 2, not 1+2.
	search.Step()
	assert.Equal(t, 2, search.Depth())
	assert.Equal(t, 2, search.Offset())

	for search.Step() == StateExploring {
	}
	assert.Equal(t, StateSuccess, search.State())
	assert.Equal(t, "bca", string(search.Solution()))

	stats := search.Stats()
	assert.Equal(t, int64(8), stats.Steps)
	assert.Equal(t, int64(7), stats.Candidates)
	assert.Equal(t, int64(3), stats.Mismatches)
	assert.Equal(t, 3, stats.MaxDepth)

	// Concluded searches do not move.
	assert.Equal(t, StateSuccess, search.Step())
	assert.Equal(t, int64(8), search.Stats().Steps)
}

func TestSearch_PruneFindsSameSolution(t *testing.T) {
	table := tinyTable(t)
	target := morse.MustParseBits("..-.")

	pruned := DefaultConfig()
	pruned.Increment = 1
	plain := *pruned
	plain.Prune = false

	a, err := newSearcher(t, table, pruned).Solve(context.Background(), target)
	require.NoError(t, err)
	b, err := newSearcher(t, table, &plain).Solve(context.Background(), target)
	require.NoError(t, err)

	assert.Equal(t, b.Solution, a.Solution)
	assert.Less(t, a.Stats.Steps, b.Stats.Steps)
}

func TestSearcher_PruneEquivalence(t *testing.T) {
	// Seven real Morse letters keep the unpruned search small.
	table, err := morse.NewTable([]rune("abcdefg"),
		[]string{".-", "-...", "-.-.", "-..", ".", "..-.", "--."})
	require.NoError(t, err)

	gen, err := NewGenerator(table, table.Alphabet(), 42)
	require.NoError(t, err)

	for i := 0; i < 25; i++ {
		_, target, err := gen.Generate()
		require.NoError(t, err)

		for increment := 1; increment <= 4; increment++ {
			pruned := DefaultConfig()
			pruned.Increment = increment
			plain := *pruned
			plain.Prune = false

			a, errA := newSearcher(t, table, pruned).Solve(context.Background(), target)
			b, errB := newSearcher(t, table, &plain).Solve(context.Background(), target)
			require.NoError(t, errA)
			require.NoError(t, errB)
			assert.Equal(t, string(b.Solution), string(a.Solution),
				"target %s increment %d", target, increment)
			assert.LessOrEqual(t, a.Stats.Candidates, b.Stats.Candidates)
		}
	}
}

func TestSearcher_StepBudget(t *testing.T) {
	table := tinyTable(t)
	config := DefaultConfig()
	config.Increment = 1
	config.Prune = false
	config.MaxSteps = 3
	s := newSearcher(t, table, config)

	result, err := s.Solve(context.Background(), morse.MustParseBits("..-."))
	assert.ErrorIs(t, err, ErrSearchTimedOut)
	assert.False(t, errors.Is(err, ErrNoSolution))
	require.NotNil(t, result)
	assert.Equal(t, StateTimedOut, result.State)
	assert.Equal(t, int64(3), result.Stats.Steps)
	assert.Nil(t, result.Solution)
}

func TestSearcher_TimeBudget(t *testing.T) {
	table := morse.Default()
	config := DefaultConfig()
	config.Prune = false
	config.TimeLimit = time.Nanosecond
	s := newSearcher(t, table, config)

	// The unpruned all-dots search needs far more than one check interval.
	target := morse.MustParseBits(strings.Repeat(".", table.TotalBits()))
	result, err := s.Solve(context.Background(), target)
	assert.ErrorIs(t, err, ErrSearchTimedOut)
	require.NotNil(t, result)
	assert.Equal(t, StateTimedOut, result.State)
	assert.Equal(t, int64(deadlineCheckEvery), result.Stats.Steps)
}

func TestSearcher_ContextCanceled(t *testing.T) {
	s := newSearcher(t, morse.Default(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := s.Solve(ctx, morse.MustParseBits(challengeTarget))
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, result)
	assert.Equal(t, int64(0), result.Stats.Candidates)
}

func TestNewSearcher_Errors(t *testing.T) {
	table := morse.Default()

	_, err := NewSearcher(table, table.Alphabet(), &Config{Increment: 0}, nil)
	assert.ErrorIs(t, err, ErrInvalidIncrement)

	var algErr *AlgorithmError
	assert.ErrorAs(t, err, &algErr)

	_, err = NewSearcher(table, table.Alphabet(), &Config{Increment: 3, MaxSteps: -1}, nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = NewSearcher(table, nil, nil, nil)
	assert.ErrorIs(t, err, ErrEmptyAlphabet)

	_, err = NewSearcher(table, []rune("ab?"), nil, nil)
	assert.ErrorIs(t, err, morse.ErrUnknownSymbol)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "exploring", StateExploring.String())
	assert.Equal(t, "success", StateSuccess.String())
	assert.Equal(t, "failure", StateFailure.String())
	assert.Equal(t, "timed_out", StateTimedOut.String())
	assert.Equal(t, "state(9)", State(9).String())
}

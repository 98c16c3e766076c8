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
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/AleutianAI/smooshedmorse/pkg/morse"
	"github.com/AleutianAI/smooshedmorse/pkg/validation"
)

// deadlineCheckEvery is how many steps pass between context and clock checks.
const deadlineCheckEvery = 4096

// State is the state of a Search.
type State int

const (
	// StateExploring means the search has not concluded yet.
	StateExploring State = iota

	// StateSuccess means a full permutation was found.
	StateSuccess

	// StateFailure means the root frame was exhausted.
	StateFailure

	// StateTimedOut means the step or time budget ran out.
	StateTimedOut
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateExploring:
		return "exploring"
	case StateSuccess:
		return "success"
	case StateFailure:
		return "failure"
	case StateTimedOut:
		return "timed_out"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Config configures a Searcher.
type Config struct {
	// Increment is the number of symbols each frame places. Must be >= 1.
	// Default: 3
	Increment int

	// MaxSteps bounds the number of search steps. Zero means unbounded.
	MaxSteps int64

	// TimeLimit bounds wall-clock time spent in Solve. Zero means unbounded.
	TimeLimit time.Duration

	// Prune enables prefix filtering inside frames.
	// Default: true
	Prune bool

	// ProgressInterval is the minimum time between progress log lines.
	// Default: 2s
	ProgressInterval time.Duration
}

// DefaultConfig returns the default search configuration.
func DefaultConfig() *Config {
	return &Config{
		Increment:        3,
		Prune:            true,
		ProgressInterval: 2 * time.Second,
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.Increment < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidIncrement, c.Increment)
	}
	if c.MaxSteps < 0 {
		return fmt.Errorf("%w: max steps %d is negative", ErrInvalidConfig, c.MaxSteps)
	}
	if c.TimeLimit < 0 {
		return fmt.Errorf("%w: time limit %s is negative", ErrInvalidConfig, c.TimeLimit)
	}
	return nil
}

// Stats counts the work done by one search.
type Stats struct {
	// Steps is the number of calls to Step that did work.
	Steps int64 `json:"steps"`

	// Candidates is the number of selections produced by all frames.
	Candidates int64 `json:"candidates"`

	// Mismatches is the number of candidates rejected against the target.
	Mismatches int64 `json:"mismatches"`

	// Backtracks is the number of frames popped below the root.
	Backtracks int64 `json:"backtracks"`

	// MaxDepth is the deepest stack reached, root counted as 1.
	MaxDepth int `json:"max_depth"`
}

// Result is the outcome of Solve.
type Result struct {
	// Solution is the recovered permutation. Nil unless State is StateSuccess.
	Solution []rune

	// State is the final search state.
	State State

	// Stats describes the work done.
	Stats Stats

	// Duration is the wall-clock time spent.
	Duration time.Duration
}

// Searcher recovers permutations for a fixed alphabet and codec.
//
// # Description
//
// The alphabet is encoded once at construction. TotalBits is the sum of
// its code lengths and is the only target length Solve accepts.
//
// # Thread Safety
//
// Safe for concurrent use.
type Searcher struct {
	alphabet  []rune
	codes     []morse.Bits
	totalBits int
	config    Config
	logger    *slog.Logger
}

// NewSearcher creates a searcher.
//
// # Inputs
//
//   - codec: Encoder for alphabet symbols.
//   - alphabet: Ordered symbols forming the root pool.
//   - config: Search configuration. Nil uses DefaultConfig().
//   - logger: Progress logger. Nil uses slog.Default().
//
// # Outputs
//
//   - *Searcher: Ready for use.
//   - error: Invalid configuration, empty alphabet or unencodable symbol.
func NewSearcher(codec Codec, alphabet []rune, config *Config, logger *slog.Logger) (*Searcher, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, &AlgorithmError{Algorithm: "Searcher", Operation: "New", Err: err}
	}
	if len(alphabet) == 0 {
		return nil, &AlgorithmError{Algorithm: "Searcher", Operation: "New", Err: ErrEmptyAlphabet}
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &Searcher{
		alphabet: append([]rune(nil), alphabet...),
		codes:    make([]morse.Bits, len(alphabet)),
		config:   *config,
		logger:   logger.With(slog.String("component", "permutations")),
	}
	for i, r := range alphabet {
		code, err := codec.Encode(r)
		if err != nil {
			return nil, &AlgorithmError{Algorithm: "Searcher", Operation: "New", Err: err}
		}
		s.codes[i] = code
		s.totalBits += len(code)
	}
	return s, nil
}

// TotalBits returns the target length this searcher accepts.
func (s *Searcher) TotalBits() int { return s.totalBits }

// Config returns a copy of the configuration.
func (s *Searcher) Config() Config { return s.config }

// Start prepares a steppable search for target.
//
// The length check happens here, so a malformed target never generates a
// candidate. The returned Search ignores TimeLimit; only Solve enforces it.
func (s *Searcher) Start(target morse.Bits) (*Search, error) {
	if len(target) != s.totalBits {
		return nil, &validation.TargetError{
			Kind:   validation.ErrWrongLength,
			Length: len(target),
			Want:   s.totalBits,
		}
	}

	var opts []FrameOption
	if s.config.Prune {
		opts = append(opts, WithPrefixFilter(target))
	}
	root := newFrame(append([]rune(nil), s.alphabet...), append([]morse.Bits(nil), s.codes...),
		s.config.Increment, 0, opts...)

	return &Search{
		target:    target,
		increment: s.config.Increment,
		maxSteps:  s.config.MaxSteps,
		stack:     []*Frame{root},
		stats:     Stats{MaxDepth: 1},
	}, nil
}

// Solve runs a search for target to completion.
//
// # Outputs
//
//   - *Result: Always non-nil once the target has the right length, even on
//     failure, so callers can report Stats.
//   - error: nil on success; ErrNoSolution when no permutation matches;
//     ErrSearchTimedOut when a budget ran out; the context error when ctx is
//     done; a *validation.TargetError for a wrong-length target.
func (s *Searcher) Solve(ctx context.Context, target morse.Bits) (*Result, error) {
	ctx, span := startSolveSpan(ctx, s.config.Increment, s.config.Prune)
	defer span.End()

	search, err := s.Start(target)
	if err != nil {
		recordOutcome(span, outcomeInvalid, Stats{}, 0)
		return nil, err
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		recordOutcome(span, outcomeCanceled, Stats{}, 0)
		return search.result(0), fmt.Errorf("search canceled before start: %w", ctxErr)
	}

	start := time.Now()
	var deadline time.Time
	if s.config.TimeLimit > 0 {
		deadline = start.Add(s.config.TimeLimit)
	}
	progress := rate.Sometimes{Interval: s.config.ProgressInterval}

	var state State
	for {
		state = search.Step()
		if state != StateExploring {
			break
		}
		if search.stats.Steps%deadlineCheckEvery != 0 {
			continue
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			result := search.result(time.Since(start))
			recordOutcome(span, outcomeCanceled, result.Stats, result.Duration)
			return result, fmt.Errorf("search canceled after %d steps: %w", result.Stats.Steps, ctxErr)
		}
		if !deadline.IsZero() && time.Now().After(deadline) {
			search.state = StateTimedOut
			state = StateTimedOut
			break
		}
		progress.Do(func() {
			s.logger.Debug("search progress",
				slog.Int64("steps", search.stats.Steps),
				slog.Int("depth", search.Depth()),
				slog.Int("offset", search.Offset()),
				slog.Int64("backtracks", search.stats.Backtracks),
			)
		})
	}

	result := search.result(time.Since(start))
	switch state {
	case StateSuccess:
		recordOutcome(span, outcomeSuccess, result.Stats, result.Duration)
		s.logger.Debug("search succeeded",
			slog.String("solution", string(result.Solution)),
			slog.Int64("steps", result.Stats.Steps),
			slog.Duration("duration", result.Duration),
		)
		return result, nil
	case StateTimedOut:
		recordOutcome(span, outcomeTimedOut, result.Stats, result.Duration)
		return result, fmt.Errorf("%w after %d steps (%s)", ErrSearchTimedOut,
			result.Stats.Steps, result.Duration.Round(time.Millisecond))
	default:
		recordOutcome(span, outcomeNoSolution, result.Stats, result.Duration)
		return result, ErrNoSolution
	}
}

// Search is a single, steppable run of the backtracking search.
//
// # Description
//
// Each call to Step takes one candidate from the top frame and either
// rejects it, pushes a child frame, pops an exhausted frame, or concludes.
// Tests drive Step directly to observe the stack between moves.
//
// # Thread Safety
//
// Not safe for concurrent use.
type Search struct {
	target    morse.Bits
	increment int
	maxSteps  int64
	stack     []*Frame
	state     State
	solution  []rune
	stats     Stats
}

// Step advances the search by one move and returns the resulting state.
// Once the search has concluded Step is a no-op.
func (s *Search) Step() State {
	if s.state != StateExploring {
		return s.state
	}
	if s.maxSteps > 0 && s.stats.Steps >= s.maxSteps {
		s.state = StateTimedOut
		return s.state
	}
	s.stats.Steps++

	top := s.stack[len(s.stack)-1]
	candidate, ok := top.Next()
	if !ok {
		s.stack = s.stack[:len(s.stack)-1]
		if len(s.stack) == 0 {
			s.state = StateFailure
			return s.state
		}
		s.stats.Backtracks++
		return s.state
	}
	s.stats.Candidates++

	// An out-of-range slice is a mismatch like any other.
	if !s.target.HasPrefixAt(top.Offset(), candidate.Code) {
		s.stats.Mismatches++
		return s.state
	}

	top.Commit(candidate)
	if len(candidate.Leftover) == 0 {
		s.solution = s.committedTakes()
		s.state = StateSuccess
		return s.state
	}

	s.stack = append(s.stack, top.child(candidate, s.increment))
	s.stats.MaxDepth = max(s.stats.MaxDepth, len(s.stack))
	return s.state
}

// committedTakes concatenates the committed takes of the stack, root first.
func (s *Search) committedTakes() []rune {
	var out []rune
	for _, f := range s.stack {
		c, ok := f.Committed()
		if !ok {
			break
		}
		out = append(out, c.Take...)
	}
	return out
}

// State returns the current state.
func (s *Search) State() State { return s.state }

// Depth returns the number of frames on the stack.
func (s *Search) Depth() int { return len(s.stack) }

// Offset returns the bit offset of the top frame, or -1 when the stack is empty.
func (s *Search) Offset() int {
	if len(s.stack) == 0 {
		return -1
	}
	return s.stack[len(s.stack)-1].Offset()
}

// Top returns the top frame, or nil when the stack is empty.
func (s *Search) Top() *Frame {
	if len(s.stack) == 0 {
		return nil
	}
	return s.stack[len(s.stack)-1]
}

// Solution returns the recovered permutation once the state is StateSuccess.
func (s *Search) Solution() []rune {
	return append([]rune(nil), s.solution...)
}

// Stats returns the work counters so far.
func (s *Search) Stats() Stats { return s.stats }

func (s *Search) result(d time.Duration) *Result {
	r := &Result{State: s.state, Stats: s.stats, Duration: d}
	if s.state == StateSuccess {
		r.Solution = s.Solution()
	}
	return r
}

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
	"fmt"

	"github.com/AleutianAI/smooshedmorse/pkg/morse"
)

// Codec encodes a single symbol to its Morse signals.
//
// *morse.Table satisfies Codec.
type Codec interface {
	Encode(r rune) (morse.Bits, error)
}

// Candidate is one ordered selection produced by a Frame.
type Candidate struct {
	// Take is the selected symbols in order.
	Take []rune

	// Code is the concatenated code of Take.
	Code morse.Bits

	// Leftover is the pool minus Take, in pool order.
	Leftover []rune
}

// FrameOption configures a Frame.
type FrameOption func(*Frame)

// WithPrefixFilter makes the frame skip selections whose partial code already
// disagrees with target at the frame's offset.
//
// The filtered enumeration is the unfiltered one with the non-matching
// selections removed, so the first matching candidate is the same either way.
func WithPrefixFilter(target morse.Bits) FrameOption {
	return func(f *Frame) {
		f.target = target
	}
}

// Frame is one level of the backtracking search.
//
// # Description
//
// A Frame owns a pool of symbols and enumerates every ordered selection of
// batchSize distinct symbols from it, one per call to Next. Selections are
// generated by a depth-first odometer over pool indices, so nothing beyond
// the current selection is held in memory and the order is lexicographic in
// pool order.
//
// The offset is the bit position in the target where this frame's code must
// match. It is fixed when the frame is created.
//
// # Thread Safety
//
// Not safe for concurrent use.
type Frame struct {
	pool      []rune
	codes     []morse.Bits
	batchSize int
	offset    int
	target    morse.Bits

	// odometer state: idx[p] is the pool index at position p, -1 when unset.
	idx     []int
	used    []bool
	partial []int
	pos     int
	done    bool

	generated int64
	committed *Candidate
}

// NewFrame creates a frame over pool.
//
// # Inputs
//
//   - pool: Symbols still to be placed. Order defines enumeration order.
//   - desiredBatchSize: Increment. The frame uses min(desiredBatchSize, len(pool)).
//   - offset: Bit offset in the target for this frame's code.
//   - codec: Encoder for pool symbols.
//   - opts: Optional settings such as WithPrefixFilter.
//
// # Outputs
//
//   - *Frame: Ready to enumerate. An empty pool yields no candidates.
//   - error: ErrInvalidIncrement, or the codec error for an unknown symbol.
func NewFrame(pool []rune, desiredBatchSize, offset int, codec Codec, opts ...FrameOption) (*Frame, error) {
	if desiredBatchSize < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidIncrement, desiredBatchSize)
	}

	codes := make([]morse.Bits, len(pool))
	for i, r := range pool {
		code, err := codec.Encode(r)
		if err != nil {
			return nil, fmt.Errorf("encode pool symbol %q: %w", r, err)
		}
		codes[i] = code
	}

	return newFrame(append([]rune(nil), pool...), codes, desiredBatchSize, offset, opts...), nil
}

// newFrame builds a frame from already encoded pool symbols.
func newFrame(pool []rune, codes []morse.Bits, desiredBatchSize, offset int, opts ...FrameOption) *Frame {
	k := min(desiredBatchSize, len(pool))

	f := &Frame{
		pool:      pool,
		codes:     codes,
		batchSize: k,
		offset:    offset,
		idx:       make([]int, k),
		used:      make([]bool, len(pool)),
		partial:   make([]int, k+1),
		done:      k == 0,
	}
	for i := range f.idx {
		f.idx[i] = -1
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Next returns the next untried selection, or false once the frame is
// exhausted. It never returns the same selection twice.
func (f *Frame) Next() (Candidate, bool) {
	if !f.advance() {
		return Candidate{}, false
	}
	f.generated++

	take := make([]rune, f.batchSize)
	code := make(morse.Bits, 0, f.partial[f.batchSize])
	for p, i := range f.idx {
		take[p] = f.pool[i]
		code = append(code, f.codes[i]...)
	}

	leftover := make([]rune, 0, len(f.pool)-f.batchSize)
	for i, r := range f.pool {
		if !f.used[i] {
			leftover = append(leftover, r)
		}
	}

	return Candidate{Take: take, Code: code, Leftover: leftover}, true
}

// advance moves the odometer to the next complete selection.
func (f *Frame) advance() bool {
	if f.done {
		return false
	}

	k := f.batchSize
	n := len(f.pool)
	pos := f.pos
	if pos == k {
		// Release the last position of the selection handed out previously.
		pos = k - 1
		f.used[f.idx[pos]] = false
	}

	for pos >= 0 {
		next := f.idx[pos] + 1
		for next < n && (f.used[next] || !f.accepts(pos, next)) {
			next++
		}
		if next >= n {
			f.idx[pos] = -1
			pos--
			if pos >= 0 {
				f.used[f.idx[pos]] = false
			}
			continue
		}

		f.idx[pos] = next
		f.used[next] = true
		f.partial[pos+1] = f.partial[pos] + len(f.codes[next])
		pos++
		if pos == k {
			f.pos = k
			return true
		}
	}

	f.pos = 0
	f.done = true
	return false
}

// accepts reports whether pool index i may sit at position pos.
func (f *Frame) accepts(pos, i int) bool {
	if f.target == nil {
		return true
	}
	return f.target.HasPrefixAt(f.offset+f.partial[pos], f.codes[i])
}

// Commit records c as the selection this frame has matched. The child frame
// starts at Offset() + len(c.Code).
func (f *Frame) Commit(c Candidate) {
	f.committed = &c
}

// Committed returns the matched selection, if any.
func (f *Frame) Committed() (Candidate, bool) {
	if f.committed == nil {
		return Candidate{}, false
	}
	return *f.committed, true
}

// Offset returns the bit offset recorded when the frame was created.
func (f *Frame) Offset() int { return f.offset }

// BatchSize returns the number of symbols per selection.
func (f *Frame) BatchSize() int { return f.batchSize }

// Pool returns a copy of the frame's pool.
func (f *Frame) Pool() []rune { return append([]rune(nil), f.pool...) }

// Generated returns how many candidates Next has produced.
func (f *Frame) Generated() int64 { return f.generated }

// Exhausted reports whether Next has run out of candidates.
func (f *Frame) Exhausted() bool { return f.done }

// child builds the frame for the pool left over by c. Codes are carried over
// from the parent so pool symbols are encoded once per search.
func (f *Frame) child(c Candidate, desiredBatchSize int) *Frame {
	codes := make([]morse.Bits, 0, len(c.Leftover))
	for i := range f.pool {
		if !f.used[i] {
			codes = append(codes, f.codes[i])
		}
	}
	var opts []FrameOption
	if f.target != nil {
		opts = append(opts, WithPrefixFilter(f.target))
	}
	return newFrame(c.Leftover, codes, desiredBatchSize, f.offset+len(c.Code), opts...)
}

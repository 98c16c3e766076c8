// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package morse

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// Dot is the textual form of a short signal (false).
	Dot = '.'

	// Dash is the textual form of a long signal (true).
	Dash = '-'
)

// ErrInvalidSignal is returned when text contains a rune other than Dot or Dash.
var ErrInvalidSignal = errors.New("invalid morse signal")

// Bits is a sequence of Morse signals. A dot is false, a dash is true.
type Bits []bool

// String renders the bits using Dot and Dash.
func (b Bits) String() string {
	var sb strings.Builder
	sb.Grow(len(b))
	for _, dash := range b {
		if dash {
			sb.WriteByte(Dash)
		} else {
			sb.WriteByte(Dot)
		}
	}
	return sb.String()
}

// Equal reports whether b and other hold the same signals.
func (b Bits) Equal(other Bits) bool {
	if len(b) != len(other) {
		return false
	}
	for i := range b {
		if b[i] != other[i] {
			return false
		}
	}
	return true
}

// HasPrefixAt reports whether code occurs in b starting at offset.
//
// A range that would run past the end of b is a mismatch, not an error.
func (b Bits) HasPrefixAt(offset int, code Bits) bool {
	if offset < 0 || offset+len(code) > len(b) {
		return false
	}
	return b[offset : offset+len(code)].Equal(code)
}

// Dashes returns the number of dashes in b.
func (b Bits) Dashes() int {
	n := 0
	for _, dash := range b {
		if dash {
			n++
		}
	}
	return n
}

// LongestDashRun returns the length of the longest run of consecutive dashes.
func (b Bits) LongestDashRun() int {
	longest, run := 0, 0
	for _, dash := range b {
		if dash {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 0
		}
	}
	return longest
}

// IsPalindrome reports whether b reads the same in both directions.
func (b Bits) IsPalindrome() bool {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		if b[i] != b[j] {
			return false
		}
	}
	return true
}

// IsBalanced reports whether b has as many dots as dashes.
func (b Bits) IsBalanced() bool {
	return 2*b.Dashes() == len(b)
}

// ParseBits parses a textual Morse string made only of Dot and Dash.
//
// The returned error wraps ErrInvalidSignal and names the first offending
// rune and its byte position.
func ParseBits(s string) (Bits, error) {
	bits := make(Bits, 0, len(s))
	for i, r := range s {
		switch r {
		case Dot:
			bits = append(bits, false)
		case Dash:
			bits = append(bits, true)
		default:
			return nil, fmt.Errorf("%w: %q at position %d", ErrInvalidSignal, r, i)
		}
	}
	return bits, nil
}

// MustParseBits is like ParseBits but panics on error. Intended for constants
// and tests.
func MustParseBits(s string) Bits {
	bits, err := ParseBits(s)
	if err != nil {
		panic(err)
	}
	return bits
}

// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package validation

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/AleutianAI/smooshedmorse/pkg/morse"
)

var (
	// ErrInvalidSymbol means the target contains a rune other than '.' or '-'.
	ErrInvalidSymbol = errors.New("invalid symbol in smooshed morse target")

	// ErrWrongLength means the target does not have exactly the expected number of signals.
	ErrWrongLength = errors.New("wrong length of smooshed morse target")
)

// TargetError describes why a smooshed Morse target was rejected.
//
// # Description
//
// Kind is ErrInvalidSymbol or ErrWrongLength; errors.Is matches on it.
//
// # Example
//
//	err := validation.ValidateTarget(raw, table.TotalBits())
//	var terr *validation.TargetError
//	if errors.As(err, &terr) && errors.Is(err, validation.ErrWrongLength) {
//	    fmt.Println(terr.Length, terr.Want)
//	}
type TargetError struct {
	// Kind is the sentinel classifying the failure.
	Kind error

	// Symbol is the first offending rune (ErrInvalidSymbol only).
	Symbol rune

	// Position is the byte offset of Symbol (ErrInvalidSymbol only).
	Position int

	// Length is the number of signals received.
	Length int

	// Want is the number of signals expected (ErrWrongLength only).
	Want int
}

// Error returns a human-readable message.
func (e *TargetError) Error() string {
	if errors.Is(e.Kind, ErrInvalidSymbol) {
		return fmt.Sprintf("%v: %q at position %d (only %q and %q are allowed)",
			e.Kind, e.Symbol, e.Position, morse.Dot, morse.Dash)
	}
	return fmt.Sprintf("%v: got %d signals, want %d", e.Kind, e.Length, e.Want)
}

// Unwrap returns the sentinel kind.
func (e *TargetError) Unwrap() error {
	return e.Kind
}

// ValidateTarget checks that raw is a smooshed Morse string of exactly
// totalBits signals.
//
// The symbol check runs before the length check, so "-a" reports
// ErrInvalidSymbol even though its length is also wrong.
//
// Example:
//
//	if err := validation.ValidateTarget(raw, table.TotalBits()); err != nil {
//	    return fmt.Errorf("invalid target: %w", err)
//	}
func ValidateTarget(raw string, totalBits int) error {
	for i, r := range raw {
		if r != morse.Dot && r != morse.Dash {
			return &TargetError{
				Kind:     ErrInvalidSymbol,
				Symbol:   r,
				Position: i,
				Length:   utf8.RuneCountInString(raw),
			}
		}
	}
	if len(raw) != totalBits {
		return &TargetError{Kind: ErrWrongLength, Length: len(raw), Want: totalBits}
	}
	return nil
}

// ParseTarget validates raw against table and returns its signals.
func ParseTarget(raw string, table *morse.Table) (morse.Bits, error) {
	if err := ValidateTarget(raw, table.TotalBits()); err != nil {
		return nil, err
	}
	bits, err := morse.ParseBits(raw)
	if err != nil {
		return nil, err
	}
	return bits, nil
}

// ValidateCode checks that raw is a non-empty Morse string of any length.
// Used for word decoding where the length is free.
func ValidateCode(raw string) error {
	if raw == "" {
		return &TargetError{Kind: ErrWrongLength, Length: 0, Want: 1}
	}
	for i, r := range raw {
		if r != morse.Dot && r != morse.Dash {
			return &TargetError{Kind: ErrInvalidSymbol, Symbol: r, Position: i, Length: utf8.RuneCountInString(raw)}
		}
	}
	return nil
}

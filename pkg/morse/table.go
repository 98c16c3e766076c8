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
	"sync"
	"unicode"
)

// englishAlphabet and englishCodes are parallel: englishCodes[i] is the code of
// englishAlphabet[i].
const (
	englishAlphabet = "abcdefghijklmnopqrstuvwxyz"
	englishCodes    = ".- -... -.-. -.. . ..-. --. .... .. .--- -.- .-.. -- -. --- .--. --.- .-. ... - ..- ...- .-- -..- -.-- --.."
)

var (
	// ErrUnknownSymbol is returned when a rune has no code in the table.
	ErrUnknownSymbol = errors.New("symbol not in morse table")

	// ErrInvalidTable is returned by NewTable for malformed definitions.
	ErrInvalidTable = errors.New("invalid morse table")
)

// Table maps symbols to codes.
//
// Lookups are case-insensitive for letters. A Table is injective: no two
// symbols share a code.
type Table struct {
	alphabet  []rune
	codes     map[rune]Bits
	symbols   map[string]rune
	totalBits int
}

// NewTable builds a table from an ordered alphabet and the code of each
// symbol, in the same order, written with Dot and Dash.
//
// # Outputs
//
//   - *Table: the table
//   - error: wraps ErrInvalidTable on length mismatch, empty or duplicate
//     codes, duplicate symbols, or invalid signals
func NewTable(alphabet []rune, codes []string) (*Table, error) {
	if len(alphabet) == 0 {
		return nil, fmt.Errorf("%w: empty alphabet", ErrInvalidTable)
	}
	if len(alphabet) != len(codes) {
		return nil, fmt.Errorf("%w: %d symbols but %d codes", ErrInvalidTable, len(alphabet), len(codes))
	}

	t := &Table{
		alphabet: make([]rune, 0, len(alphabet)),
		codes:    make(map[rune]Bits, len(alphabet)),
		symbols:  make(map[string]rune, len(alphabet)),
	}
	for i, r := range alphabet {
		r = unicode.ToLower(r)
		if _, dup := t.codes[r]; dup {
			return nil, fmt.Errorf("%w: duplicate symbol %q", ErrInvalidTable, r)
		}
		bits, err := ParseBits(codes[i])
		if err != nil {
			return nil, fmt.Errorf("%w: symbol %q: %v", ErrInvalidTable, r, err)
		}
		if len(bits) == 0 {
			return nil, fmt.Errorf("%w: symbol %q has an empty code", ErrInvalidTable, r)
		}
		if other, dup := t.symbols[codes[i]]; dup {
			return nil, fmt.Errorf("%w: %q and %q share code %s", ErrInvalidTable, other, r, codes[i])
		}
		t.alphabet = append(t.alphabet, r)
		t.codes[r] = bits
		t.symbols[codes[i]] = r
		t.totalBits += len(bits)
	}
	return t, nil
}

var (
	defaultTable     *Table
	defaultTableOnce sync.Once
)

// Default returns the international Morse table for the letters a to z.
func Default() *Table {
	defaultTableOnce.Do(func() {
		t, err := NewTable([]rune(englishAlphabet), strings.Fields(englishCodes))
		if err != nil {
			panic(fmt.Sprintf("morse: default table: %v", err))
		}
		defaultTable = t
	})
	return defaultTable
}

// Alphabet returns a copy of the table's symbols in definition order.
func (t *Table) Alphabet() []rune {
	out := make([]rune, len(t.alphabet))
	copy(out, t.alphabet)
	return out
}

// Len returns the number of symbols.
func (t *Table) Len() int {
	return len(t.alphabet)
}

// TotalBits is the sum of every symbol's code length, which is the length
// of the smooshed encoding of any permutation of the alphabet.
func (t *Table) TotalBits() int {
	return t.totalBits
}

// Encode returns the code of r. The returned slice must not be modified.
func (t *Table) Encode(r rune) (Bits, error) {
	bits, ok := t.codes[unicode.ToLower(r)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSymbol, r)
	}
	return bits, nil
}

// EncodeSymbols concatenates the codes of symbols in order.
func (t *Table) EncodeSymbols(symbols []rune) (Bits, error) {
	out := make(Bits, 0, 4*len(symbols))
	for _, r := range symbols {
		bits, err := t.Encode(r)
		if err != nil {
			return nil, err
		}
		out = append(out, bits...)
	}
	return out, nil
}

// EncodeString concatenates the codes of the runes of word.
func (t *Table) EncodeString(word string) (Bits, error) {
	return t.EncodeSymbols([]rune(word))
}

// Decode returns the symbol whose code is exactly code.
func (t *Table) Decode(code Bits) (rune, bool) {
	r, ok := t.symbols[code.String()]
	return r, ok
}

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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_Table(t *testing.T) {
	table := Default()

	assert.Equal(t, 26, table.Len())
	assert.Equal(t, 82, table.TotalBits())
	assert.Equal(t, []rune("abcdefghijklmnopqrstuvwxyz"), table.Alphabet())
}

func TestTable_Encode(t *testing.T) {
	table := Default()

	tests := []struct {
		symbol rune
		want   string
	}{
		{'a', ".-"},
		{'k', "-.-"},
		{'z', "--.."},
		{'S', "..."},
		{'e', "."},
	}
	for _, tt := range tests {
		t.Run(string(tt.symbol), func(t *testing.T) {
			bits, err := table.Encode(tt.symbol)
			require.NoError(t, err)
			assert.Equal(t, tt.want, bits.String())
		})
	}

	_, err := table.Encode('à')
	assert.True(t, errors.Is(err, ErrUnknownSymbol))
}

func TestTable_EncodeString(t *testing.T) {
	table := Default()

	bits, err := table.EncodeString("Carlotta")
	require.NoError(t, err)
	assert.Equal(t, "-.-..-.-..-..-----.-", bits.String())

	bits, err = table.EncodeString("")
	require.NoError(t, err)
	assert.Empty(t, bits)

	_, err = table.EncodeString("b b")
	assert.ErrorIs(t, err, ErrUnknownSymbol)
}

func TestTable_Decode(t *testing.T) {
	table := Default()

	r, ok := table.Decode(MustParseBits("-."))
	assert.True(t, ok)
	assert.Equal(t, 'n', r)

	_, ok = table.Decode(MustParseBits("----"))
	assert.False(t, ok)
}

func TestNewTable_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		alphabet string
		codes    []string
	}{
		{"empty", "", nil},
		{"length mismatch", "ab", []string{"."}},
		{"duplicate symbol", "aA", []string{".", "-"}},
		{"duplicate code", "ab", []string{".-", ".-"}},
		{"empty code", "ab", []string{".", ""}},
		{"bad signal", "ab", []string{".", "_"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTable([]rune(tt.alphabet), tt.codes)
			assert.ErrorIs(t, err, ErrInvalidTable)
		})
	}
}

func TestParseBits(t *testing.T) {
	bits, err := ParseBits(".-.-")
	require.NoError(t, err)
	assert.Equal(t, Bits{false, true, false, true}, bits)

	for _, bad := range []string{".- ", "a", "-.3-", "-♡", "_."} {
		_, err := ParseBits(bad)
		assert.ErrorIs(t, err, ErrInvalidSignal, "input %q", bad)
	}
}

func TestBits_HasPrefixAt(t *testing.T) {
	target := MustParseBits(".--.")

	assert.True(t, target.HasPrefixAt(0, MustParseBits(".-")))
	assert.True(t, target.HasPrefixAt(2, MustParseBits("-.")))
	assert.False(t, target.HasPrefixAt(1, MustParseBits("..")))
	// Past the end is a mismatch, never a panic.
	assert.False(t, target.HasPrefixAt(3, MustParseBits("..")))
	assert.False(t, target.HasPrefixAt(-1, MustParseBits(".")))
}

func TestBits_Shapes(t *testing.T) {
	assert.Equal(t, 0, Bits{}.LongestDashRun())
	assert.Equal(t, 3, MustParseBits("-.---.").LongestDashRun())

	assert.True(t, MustParseBits("-.--.-").IsPalindrome())
	assert.True(t, MustParseBits(".").IsPalindrome())
	assert.False(t, MustParseBits("-.").IsPalindrome())

	assert.True(t, MustParseBits("-.--..").IsBalanced())
	assert.True(t, Bits{}.IsBalanced())
	assert.False(t, MustParseBits("---..").IsBalanced())
}

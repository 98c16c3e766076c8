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
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/smooshedmorse/pkg/morse"
)

// ate, p and an all encode to ".--.".
var indexWords = []string{"ate", "p", "sos", "an", "e"}

func buildIndex(t *testing.T, words []string, config *BuildConfig) *Index {
	t.Helper()
	list, err := NewList(words)
	require.NoError(t, err)
	idx, err := Build(context.Background(), list, morse.Default(), config)
	require.NoError(t, err)
	return idx
}

func TestBuild(t *testing.T) {
	idx := buildIndex(t, indexWords, nil)

	assert.Equal(t, 5, idx.Len())
	assert.Equal(t, 3, idx.CodeCount())
	assert.Equal(t, "sos", idx.Word(2))
	assert.Equal(t, "...---...", idx.Code(2))
	assert.Equal(t, indexWords, idx.Words())
}

func TestBuild_ChunkingIsInvisible(t *testing.T) {
	words := []string{"the", "quick", "brown", "fox", "jumps", "over", "lazy", "dog", "ate", "an", "p"}
	whole := buildIndex(t, words, &BuildConfig{Workers: 1, ChunkSize: 1000})
	chunked := buildIndex(t, words, &BuildConfig{Workers: 4, ChunkSize: 2})

	assert.Equal(t, whole.Codes(), chunked.Codes())
	for id := range words {
		assert.Equal(t, whole.Code(uint32(id)), chunked.Code(uint32(id)))
	}
}

type failingCodec struct{}

func (failingCodec) EncodeString(string) (morse.Bits, error) {
	return nil, morse.ErrUnknownSymbol
}

func TestBuild_CodecError(t *testing.T) {
	list, err := NewList(indexWords)
	require.NoError(t, err)

	_, err = Build(context.Background(), list, failingCodec{}, nil)
	assert.ErrorIs(t, err, morse.ErrUnknownSymbol)
}

func TestBuild_Canceled(t *testing.T) {
	list, err := NewList(indexWords)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Build(ctx, list, morse.Default(), nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestIndex_Lookup(t *testing.T) {
	idx := buildIndex(t, indexWords, nil)

	before := testutil.ToFloat64(lookupsTotal)
	assert.Equal(t, []string{"ate", "p", "an"}, idx.LookupString(".--."))
	assert.Equal(t, []string{"sos"}, idx.Lookup(morse.MustParseBits("...---...")))
	assert.Nil(t, idx.LookupString("-------"))
	assert.Equal(t, before+3, testutil.ToFloat64(lookupsTotal))
}

func TestIndex_Postings(t *testing.T) {
	idx := buildIndex(t, indexWords, nil)

	bm := idx.Postings(".--.")
	require.NotNil(t, bm)
	assert.Equal(t, []uint32{0, 1, 3}, bm.ToArray())

	bm.Add(4)
	assert.Equal(t, uint64(3), idx.Postings(".--.").GetCardinality(), "postings are copied")
	assert.Nil(t, idx.Postings("--"))
}

func TestIndex_Codes(t *testing.T) {
	idx := buildIndex(t, indexWords, nil)

	assert.Equal(t, []CodeStat{
		{Code: ".--.", Words: 3},
		{Code: ".", Words: 1},
		{Code: "...---...", Words: 1},
	}, idx.Codes())
}

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
	"fmt"
	"log/slog"
	"runtime"
	"sort"
	"time"

	"github.com/RoaringBitmap/roaring/v2"
	"golang.org/x/sync/errgroup"

	"github.com/AleutianAI/smooshedmorse/pkg/morse"
)

// BuildConfig configures Build.
type BuildConfig struct {
	// Workers bounds concurrent encoding goroutines.
	// Default: runtime.GOMAXPROCS(0)
	Workers int

	// ChunkSize is the number of words each goroutine encodes.
	// Default: 4096
	ChunkSize int

	// Logger receives a summary line. Nil uses slog.Default().
	Logger *slog.Logger
}

// DefaultBuildConfig returns the default build configuration.
func DefaultBuildConfig() *BuildConfig {
	return &BuildConfig{
		Workers:   runtime.GOMAXPROCS(0),
		ChunkSize: 4096,
	}
}

// Codec encodes words to smooshed Morse. *morse.Table satisfies Codec.
type Codec interface {
	EncodeString(word string) (morse.Bits, error)
}

// Index maps smooshed codes to the words that produce them.
//
// # Thread Safety
//
// Read-only after Build or Store.Load; safe for concurrent readers.
type Index struct {
	words       []string
	codes       []string
	postings    map[string]*roaring.Bitmap
	fingerprint uint64
}

// Build encodes every word of list and groups word IDs by code.
//
// # Inputs
//
//   - ctx: Cancels the build between chunks.
//   - list: Loaded word list. Word IDs are positions in list.Words.
//   - codec: Word encoder.
//   - config: Build options. Nil uses DefaultBuildConfig().
//
// # Outputs
//
//   - *Index: The built index.
//   - error: ctx error, or the codec error for the first unencodable word.
func Build(ctx context.Context, list *List, codec Codec, config *BuildConfig) (*Index, error) {
	if config == nil {
		config = DefaultBuildConfig()
	}
	workers := config.Workers
	if workers < 1 {
		workers = 1
	}
	chunkSize := config.ChunkSize
	if chunkSize < 1 {
		chunkSize = 4096
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	ctx, span := startBuildSpan(ctx, len(list.Words))
	defer span.End()
	start := time.Now()

	codes := make([]string, len(list.Words))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for lo := 0; lo < len(list.Words); lo += chunkSize {
		hi := min(lo+chunkSize, len(list.Words))
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			// Each goroutine writes a disjoint range of codes.
			for i := lo; i < hi; i++ {
				bits, err := codec.EncodeString(list.Words[i])
				if err != nil {
					return fmt.Errorf("encode %q: %w", list.Words[i], err)
				}
				codes[i] = bits.String()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		recordBuild(ctx, span, time.Since(start), 0, err)
		return nil, err
	}

	idx := newIndex(append([]string(nil), list.Words...), codes, list.Fingerprint)
	recordBuild(ctx, span, time.Since(start), len(idx.postings), nil)

	logger.Info("word index built",
		slog.Int("words", len(idx.words)),
		slog.Int("codes", len(idx.postings)),
		slog.Duration("duration", time.Since(start)),
	)
	return idx, nil
}

// newIndex groups word IDs by code.
func newIndex(words, codes []string, fingerprint uint64) *Index {
	postings := make(map[string]*roaring.Bitmap, len(words))
	for id, code := range codes {
		bm, ok := postings[code]
		if !ok {
			bm = roaring.New()
			postings[code] = bm
		}
		bm.Add(uint32(id))
	}
	for _, bm := range postings {
		bm.RunOptimize()
	}
	return &Index{
		words:       words,
		codes:       codes,
		postings:    postings,
		fingerprint: fingerprint,
	}
}

// Len returns the number of indexed words.
func (idx *Index) Len() int { return len(idx.words) }

// CodeCount returns the number of distinct codes.
func (idx *Index) CodeCount() int { return len(idx.postings) }

// Fingerprint returns the fingerprint of the indexed list.
func (idx *Index) Fingerprint() uint64 { return idx.fingerprint }

// Word returns the word with the given ID.
func (idx *Index) Word(id uint32) string { return idx.words[id] }

// Code returns the smooshed code of the word with the given ID.
func (idx *Index) Code(id uint32) string { return idx.codes[id] }

// Words returns the indexed words in ID order.
func (idx *Index) Words() []string { return append([]string(nil), idx.words...) }

// Lookup returns the words whose smooshed code equals code, in list order.
// An unknown code returns nil.
func (idx *Index) Lookup(code morse.Bits) []string {
	return idx.LookupString(code.String())
}

// LookupString is Lookup for a textual code.
func (idx *Index) LookupString(code string) []string {
	lookupsTotal.Inc()
	bm, ok := idx.postings[code]
	if !ok {
		return nil
	}
	out := make([]string, 0, bm.GetCardinality())
	it := bm.Iterator()
	for it.HasNext() {
		out = append(out, idx.words[it.Next()])
	}
	return out
}

// Postings returns a copy of the word ID bitmap for code, or nil.
func (idx *Index) Postings(code string) *roaring.Bitmap {
	bm, ok := idx.postings[code]
	if !ok {
		return nil
	}
	return bm.Clone()
}

// CodeStat is a code with the number of words that share it.
type CodeStat struct {
	Code  string `json:"code"`
	Words int    `json:"words"`
}

// Codes returns every distinct code with its word count, most shared first
// and ties broken by code.
func (idx *Index) Codes() []CodeStat {
	out := make([]CodeStat, 0, len(idx.postings))
	for code, bm := range idx.postings {
		out = append(out, CodeStat{Code: code, Words: int(bm.GetCardinality())})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Words != out[j].Words {
			return out[i].Words > out[j].Words
		}
		return out[i].Code < out[j].Code
	})
	return out
}

// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package wordlist loads word lists and indexes them by smooshed Morse code.
//
// # Loading
//
// Load reads one word per line. Files ending in .gz, .zst or .lz4 are
// decompressed on the fly. Words are trimmed and lowercased; lines that are
// not plain ASCII letters are skipped and counted.
//
// # Index
//
// Build encodes every word and groups word IDs by code in roaring bitmaps,
// so the words sharing a code are one posting list. Encoding runs in
// parallel chunks.
//
// # Store
//
// Store persists built indexes in BadgerDB keyed by the list's xxhash
// fingerprint. An unchanged list reuses the cached index on the next run.
//
//	list, err := wordlist.Load("enable1.txt.gz")
//	idx, err := wordlist.Build(ctx, list, morse.Default(), nil)
//	words := idx.Lookup(morse.MustParseBits("-....--...."))
package wordlist

// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package challenges answers the word-list puzzles built on smooshed Morse.
//
// Each challenge scans a wordlist.Index:
//
//   - ambiguous: the codes shared by the most words
//   - dashes: the first word whose code has a run of at least N dashes
//   - balanced: words of L letters whose code has as many dots as dashes
//   - palindrome: words of L letters whose code reads the same reversed
//
// Results are reported as Matches, one per code, in word-list order.
package challenges

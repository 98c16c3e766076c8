// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package permutations recovers an alphabet permutation from its smooshed
// Morse encoding.
//
// # Overview
//
// A smooshed Morse target is the concatenation of the codes of every symbol
// in some permutation of the alphabet, with no separators. Because the Morse
// table is not prefix-free the split points are unknown, so recovery is a
// depth-first backtracking search.
//
// The search keeps an explicit stack of [Frame] values. Each frame owns the
// pool of symbols not yet placed and lazily enumerates ordered selections of
// up to Increment symbols from that pool. A selection whose code matches the
// target at the frame's offset is committed and a child frame is pushed over
// the remaining pool. A frame that runs out of selections is popped and its
// parent resumes with its next selection. The search succeeds when a matching
// selection leaves the pool empty and fails when the root frame is exhausted.
//
// # Usage
//
//	searcher, err := permutations.NewSearcher(morse.Default(), morse.Default().Alphabet(), nil, logger)
//	if err != nil {
//	    return err
//	}
//	result, err := searcher.Solve(ctx, target)
//	switch {
//	case errors.Is(err, permutations.ErrNoSolution):
//	    // valid target, no permutation encodes it
//	case err != nil:
//	    return err
//	}
//	fmt.Println(string(result.Solution))
//
// # Determinism
//
// Frames enumerate selections in lexicographic order of pool indices, so the
// same target, alphabet and increment always produce the same solution.
// Prefix pruning (on by default) skips selections that cannot match and does
// not change which solution is found first.
//
// # Thread Safety
//
// A [Searcher] is safe for concurrent use; each call to Solve or Start builds
// its own [Search]. A [Search] and its frames must not be shared between
// goroutines.
package permutations

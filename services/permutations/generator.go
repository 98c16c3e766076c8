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
	"math/rand"

	"github.com/AleutianAI/smooshedmorse/pkg/morse"
)

// defaultRNGSeed is used when callers pass seed 0.
const defaultRNGSeed int64 = 1

// RNGFromSeed returns a deterministic *rand.Rand. Seed 0 maps to a fixed
// default so the zero value stays reproducible.
func RNGFromSeed(seed int64) *rand.Rand {
	if seed == 0 {
		seed = defaultRNGSeed
	}
	return rand.New(rand.NewSource(seed))
}

// Generator produces random permutations and their smooshed targets.
//
// Not safe for concurrent use; *rand.Rand is not goroutine-safe.
type Generator struct {
	codec    Codec
	alphabet []rune
	rng      *rand.Rand
}

// NewGenerator creates a generator seeded with seed (see RNGFromSeed).
func NewGenerator(codec Codec, alphabet []rune, seed int64) (*Generator, error) {
	if len(alphabet) == 0 {
		return nil, &AlgorithmError{Algorithm: "Generator", Operation: "New", Err: ErrEmptyAlphabet}
	}
	return &Generator{
		codec:    codec,
		alphabet: append([]rune(nil), alphabet...),
		rng:      RNGFromSeed(seed),
	}, nil
}

// Generate shuffles the alphabet and encodes the result.
//
// # Outputs
//
//   - []rune: The shuffled permutation.
//   - morse.Bits: Its smooshed encoding.
//   - error: Non-nil only if the codec rejects a symbol.
func (g *Generator) Generate() ([]rune, morse.Bits, error) {
	perm := append([]rune(nil), g.alphabet...)
	// Fisher–Yates.
	for i := len(perm) - 1; i > 0; i-- {
		j := g.rng.Intn(i + 1)
		perm[i], perm[j] = perm[j], perm[i]
	}

	target := make(morse.Bits, 0, len(perm)*4)
	for _, r := range perm {
		code, err := g.codec.Encode(r)
		if err != nil {
			return nil, nil, &AlgorithmError{
				Algorithm: "Generator",
				Operation: "Generate",
				Err:       fmt.Errorf("encode %q: %w", r, err),
			}
		}
		target = append(target, code...)
	}
	return perm, target, nil
}

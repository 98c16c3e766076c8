// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package challenges

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/AleutianAI/smooshedmorse/pkg/morse"
	"github.com/AleutianAI/smooshedmorse/services/wordlist"
)

var tracer = otel.Tracer("smooshedmorse.challenges")

var (
	// ErrUnknownChallenge is returned by Run for a name not in Names.
	ErrUnknownChallenge = errors.New("unknown challenge")

	// ErrNoMatch means no word in the list satisfies the challenge.
	ErrNoMatch = errors.New("no word matches the challenge")

	// ErrInvalidOptions is returned for a non-positive length or run.
	ErrInvalidOptions = errors.New("invalid challenge options")
)

// Challenge names accepted by Run.
const (
	Ambiguous  = "ambiguous"
	Dashes     = "dashes"
	Balanced   = "balanced"
	Palindrome = "palindrome"
)

// Default parameters, taken from the puzzle statements.
const (
	DefaultDashRun          = 15
	DefaultBalancedLetters  = 21
	DefaultPalindromeLetters = 13
)

// Names lists the challenges in presentation order.
func Names() []string {
	return []string{Ambiguous, Dashes, Balanced, Palindrome}
}

// Options tunes a challenge run. Zero fields take the challenge's default.
type Options struct {
	// Letters is the word length for balanced and palindrome.
	Letters int `json:"letters,omitempty"`

	// DashRun is the minimum run of consecutive dashes for dashes.
	DashRun int `json:"dash_run,omitempty"`

	// MaxWords ignores codes shared by more words than this (ambiguous).
	// Zero means no cap.
	MaxWords int `json:"max_words,omitempty"`
}

// Match is one code and the words of the list that encode to it.
type Match struct {
	Code  string   `json:"code"`
	Words []string `json:"words"`
}

// Run executes the named challenge against idx.
//
// # Outputs
//
//   - []Match: Non-empty on success.
//   - error: ErrUnknownChallenge, ErrInvalidOptions, or ErrNoMatch.
func Run(ctx context.Context, idx *wordlist.Index, name string, opts Options, logger *slog.Logger) ([]Match, error) {
	if logger == nil {
		logger = slog.Default()
	}
	_, span := tracer.Start(ctx, "challenges.Run",
		trace.WithAttributes(
			attribute.String("challenge.name", name),
			attribute.Int("wordlist.words", idx.Len()),
		),
	)
	defer span.End()

	var (
		matches []Match
		err     error
	)
	switch name {
	case Ambiguous:
		matches, err = MostAmbiguous(idx, opts.MaxWords)
	case Dashes:
		var m Match
		m, err = FirstDashRun(idx, withDefault(opts.DashRun, DefaultDashRun))
		if err == nil {
			matches = []Match{m}
		}
	case Balanced:
		matches, err = FindBalanced(idx, withDefault(opts.Letters, DefaultBalancedLetters))
	case Palindrome:
		matches, err = FindPalindromes(idx, withDefault(opts.Letters, DefaultPalindromeLetters))
	default:
		err = fmt.Errorf("%w: %q (want one of %v)", ErrUnknownChallenge, name, Names())
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("challenge.matches", len(matches)))

	for _, m := range matches {
		logger.Info("challenge match",
			slog.String("challenge", name),
			slog.String("code", m.Code),
			slog.Any("words", m.Words),
		)
	}
	return matches, nil
}

func withDefault(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}

// MostAmbiguous returns every code shared by the largest number of words.
// Codes with more than maxWords words are skipped when maxWords > 0.
func MostAmbiguous(idx *wordlist.Index, maxWords int) ([]Match, error) {
	if maxWords < 0 {
		return nil, fmt.Errorf("%w: max words %d", ErrInvalidOptions, maxWords)
	}

	best := 0
	var matches []Match
	// Codes() is sorted by word count, so the first eligible entry sets best.
	for _, stat := range idx.Codes() {
		if maxWords > 0 && stat.Words > maxWords {
			continue
		}
		if best == 0 {
			best = stat.Words
		}
		if stat.Words < best {
			break
		}
		matches = append(matches, Match{Code: stat.Code, Words: idx.LookupString(stat.Code)})
	}
	if len(matches) == 0 {
		return nil, ErrNoMatch
	}
	return matches, nil
}

// FirstDashRun returns the first word, in list order, whose code has at
// least run consecutive dashes. The match lists every word sharing that code.
func FirstDashRun(idx *wordlist.Index, run int) (Match, error) {
	if run < 1 {
		return Match{}, fmt.Errorf("%w: dash run %d", ErrInvalidOptions, run)
	}
	for id := 0; id < idx.Len(); id++ {
		code := idx.Code(uint32(id))
		if morse.MustParseBits(code).LongestDashRun() >= run {
			return Match{Code: code, Words: idx.LookupString(code)}, nil
		}
	}
	return Match{}, fmt.Errorf("%w: no code with %d dashes in a row", ErrNoMatch, run)
}

// FindBalanced returns the words of the given length whose code has as many
// dots as dashes.
func FindBalanced(idx *wordlist.Index, letters int) ([]Match, error) {
	return filterByLength(idx, letters, morse.Bits.IsBalanced)
}

// FindPalindromes returns the words of the given length whose code is a
// palindrome.
func FindPalindromes(idx *wordlist.Index, letters int) ([]Match, error) {
	return filterByLength(idx, letters, morse.Bits.IsPalindrome)
}

// filterByLength groups the words of the given length whose code satisfies
// keep, one Match per code in order of first appearance.
func filterByLength(idx *wordlist.Index, letters int, keep func(morse.Bits) bool) ([]Match, error) {
	if letters < 1 {
		return nil, fmt.Errorf("%w: letters %d", ErrInvalidOptions, letters)
	}

	var matches []Match
	for id := 0; id < idx.Len(); id++ {
		word := idx.Word(uint32(id))
		if len(word) != letters {
			continue
		}
		code := idx.Code(uint32(id))
		if !keep(morse.MustParseBits(code)) {
			continue
		}
		i := slices.IndexFunc(matches, func(m Match) bool { return m.Code == code })
		if i < 0 {
			matches = append(matches, Match{Code: code})
			i = len(matches) - 1
		}
		matches[i].Words = append(matches[i].Words, word)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: %d-letter words", ErrNoMatch, letters)
	}
	return matches, nil
}

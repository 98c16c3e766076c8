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
	"regexp"
	"strings"
)

// ErrInvalidWord is returned for words that are not plain ASCII letters.
var ErrInvalidWord = errors.New("invalid word")

// wordPattern matches words that can be encoded with the letter table.
// Allows: ASCII letters only, 1-64 characters.
var wordPattern = regexp.MustCompile(`^[A-Za-z]{1,64}$`)

// ValidateWord validates a word before encoding.
//
// Valid words:
//   - 1-64 characters
//   - ASCII letters A-Z and a-z
//
// Example:
//
//	if err := validation.ValidateWord(word); err != nil {
//	    return nil, err
//	}
func ValidateWord(word string) error {
	if word == "" {
		return fmt.Errorf("%w: word cannot be empty", ErrInvalidWord)
	}
	if !wordPattern.MatchString(word) {
		return fmt.Errorf("%w: %q (must be 1-64 ASCII letters)", ErrInvalidWord, word)
	}
	return nil
}

// ValidateWords validates multiple words.
// Returns an error listing all invalid words if any fail validation.
func ValidateWords(words []string) error {
	var invalid []string
	for _, w := range words {
		if err := ValidateWord(w); err != nil {
			invalid = append(invalid, w)
		}
	}

	if len(invalid) > 0 {
		return fmt.Errorf("%w: %q", ErrInvalidWord, invalid)
	}
	return nil
}

// SanitizeWord trims, lowercases and validates a word.
//
//	word, err := validation.SanitizeWord(userInput)
//	if err != nil {
//	    return err
//	}
func SanitizeWord(word string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(word))
	if err := ValidateWord(normalized); err != nil {
		return "", err
	}
	return normalized, nil
}

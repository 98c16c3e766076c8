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
	"strings"
	"testing"

	"github.com/AleutianAI/smooshedmorse/pkg/morse"
)

const sampleTarget = ".--...-.-.-.....-.--........----.-.-..---.---.--.--.-.-....-..-...-.---..--.----.."

func TestValidateTarget(t *testing.T) {
	total := morse.Default().TotalBits()

	tests := []struct {
		name    string
		raw     string
		wantErr error
	}{
		{"sample permutation", sampleTarget, nil},
		{"all dots", strings.Repeat(".", total), nil},
		{"empty", "", ErrWrongLength},
		{"too short", "-..-", ErrWrongLength},
		{"one too long", sampleTarget + ".", ErrWrongLength},
		{"one too short", sampleTarget[1:], ErrWrongLength},
		{"space", " ", ErrInvalidSymbol},
		{"punctuation", "-!.-", ErrInvalidSymbol},
		{"letters", "-abc-", ErrInvalidSymbol},
		{"trailing space", sampleTarget[1:] + " ", ErrInvalidSymbol},
		{"underscore", "_.", ErrInvalidSymbol},
		{"unicode", "-♡", ErrInvalidSymbol},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTarget(tt.raw, total)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("ValidateTarget(%q) error = %v, want nil", tt.raw, err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateTarget(%q) error = %v, want %v", tt.raw, err, tt.wantErr)
			}
		})
	}
}

func TestValidateTarget_ErrorDetail(t *testing.T) {
	err := ValidateTarget("..x", 82)
	var terr *TargetError
	if !errors.As(err, &terr) {
		t.Fatalf("error %v is not a *TargetError", err)
	}
	if terr.Symbol != 'x' || terr.Position != 2 {
		t.Errorf("got symbol %q at %d, want 'x' at 2", terr.Symbol, terr.Position)
	}

	err = ValidateTarget("...", 82)
	if !errors.As(err, &terr) {
		t.Fatalf("error %v is not a *TargetError", err)
	}
	if terr.Length != 3 || terr.Want != 82 {
		t.Errorf("got length %d want %d, expected 3 and 82", terr.Length, terr.Want)
	}
	if !strings.Contains(err.Error(), "got 3 signals, want 82") {
		t.Errorf("unexpected message: %s", err)
	}
}

func TestParseTarget(t *testing.T) {
	table := morse.Default()

	bits, err := ParseTarget(sampleTarget, table)
	if err != nil {
		t.Fatalf("ParseTarget() error = %v", err)
	}
	if bits.String() != sampleTarget {
		t.Errorf("round trip mismatch: %s", bits)
	}

	if _, err := ParseTarget("..", table); !errors.Is(err, ErrWrongLength) {
		t.Errorf("ParseTarget(..) error = %v, want ErrWrongLength", err)
	}
}

func TestValidateCode(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr error
	}{
		{"single dot", ".", nil},
		{"word", "....---.-.......", nil},
		{"empty", "", ErrWrongLength},
		{"space inside", ".- .-.", ErrInvalidSymbol},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCode(tt.raw)
			if !errors.Is(err, tt.wantErr) && !(err == nil && tt.wantErr == nil) {
				t.Errorf("ValidateCode(%q) error = %v, want %v", tt.raw, err, tt.wantErr)
			}
		})
	}
}

func TestValidateWord(t *testing.T) {
	tests := []struct {
		name    string
		word    string
		wantErr bool
	}{
		{"simple", "Carlotta", false},
		{"long", "supercalifragilistichespiralidoso", false},
		{"single", "a", false},

		{"empty", "", true},
		{"ampersand", "S&C", true},
		{"digits", "S4ndr0", true},
		{"unicode", "AB♡", true},
		{"trailing space", "Sandro ", true},
		{"inner space", "S C", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateWord(tt.word)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateWord(%q) error = %v, wantErr %v", tt.word, err, tt.wantErr)
			}
		})
	}
}

func TestValidateWords(t *testing.T) {
	if err := ValidateWords([]string{"horse", "Lancelot"}); err != nil {
		t.Errorf("ValidateWords() error = %v", err)
	}
	if err := ValidateWords([]string{"horse", "b b"}); !errors.Is(err, ErrInvalidWord) {
		t.Errorf("ValidateWords() error = %v, want ErrInvalidWord", err)
	}
	if err := ValidateWords(nil); err != nil {
		t.Errorf("ValidateWords(nil) error = %v", err)
	}
}

func TestSanitizeWord(t *testing.T) {
	tests := []struct {
		name    string
		word    string
		want    string
		wantErr bool
	}{
		{"lowercase passthrough", "horse", "horse", false},
		{"uppercase normalized", "HORSE", "horse", false},
		{"with spaces trimmed", "  Horse  ", "horse", false},
		{"invalid rejected", "h0rse", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SanitizeWord(tt.word)
			if (err != nil) != tt.wantErr {
				t.Errorf("SanitizeWord(%q) error = %v, wantErr %v", tt.word, err, tt.wantErr)
				return
			}
			if got != tt.want {
				t.Errorf("SanitizeWord(%q) = %q, want %q", tt.word, got, tt.want)
			}
		})
	}
}

// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package ux

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePersonalityLevel(t *testing.T) {
	tests := []struct {
		input string
		want  PersonalityLevel
	}{
		{"full", PersonalityFull},
		{"F", PersonalityFull},
		{"standard", PersonalityStandard},
		{"std", PersonalityStandard},
		{"minimal", PersonalityMinimal},
		{"min", PersonalityMinimal},
		{"machine", PersonalityMachine},
		{"quiet", PersonalityMachine},
		{" q ", PersonalityMachine},
		{"", PersonalityStandard},
		{"nautical", PersonalityStandard},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParsePersonalityLevel(tt.input))
		})
	}
}

func TestInitPersonality(t *testing.T) {
	original := GetPersonality()
	defer SetPersonality(original)

	t.Run("flag wins over environment", func(t *testing.T) {
		t.Setenv(PersonalityEnv, "full")
		assert.Equal(t, PersonalityMinimal, InitPersonality("minimal"))
		assert.Equal(t, PersonalityMinimal, GetPersonality().Level)
	})

	t.Run("environment used without flag", func(t *testing.T) {
		t.Setenv(PersonalityEnv, "machine")
		assert.Equal(t, PersonalityMachine, InitPersonality(""))
		assert.False(t, ShouldShowColors())
	})
}

func TestSetPersonalityLevel_ShowStats(t *testing.T) {
	original := GetPersonality()
	defer SetPersonality(original)

	SetPersonalityLevel(PersonalityFull)
	assert.True(t, GetPersonality().ShowStats)

	SetPersonalityLevel(PersonalityStandard)
	assert.False(t, GetPersonality().ShowStats)
	assert.True(t, ShouldShowColors())
}

func TestDefaultPersonality(t *testing.T) {
	p := DefaultPersonality()
	assert.Equal(t, PersonalityFull, p.Level)
	assert.True(t, p.ShowStats)
}

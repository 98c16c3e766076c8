// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package ux

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPrinter(level PersonalityLevel) (*Printer, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return NewPrinter(&out, &errOut, level), &out, &errOut
}

func TestPrinter_MachineMode(t *testing.T) {
	p, out, errOut := newTestPrinter(PersonalityMachine)

	p.Title("Smooshed Morse")
	p.Success("recovered")
	p.Warning("slow search")
	p.Error("no solution")
	p.Field("Solution", "wirnbfzehatqlojpgcvusyxkmd")
	p.Box("Target", ".-")

	assert.Equal(t,
		"OK: recovered\nsolution\twirnbfzehatqlojpgcvusyxkmd\nTarget: .-\n",
		out.String())
	assert.Equal(t, "WARN: slow search\nERROR: no solution\n", errOut.String())
}

func TestPrinter_MinimalMode(t *testing.T) {
	p, out, errOut := newTestPrinter(PersonalityMinimal)

	p.Success("recovered")
	p.Field("Target", "-.-.")
	p.Error("bad input")

	assert.Equal(t, "✓ recovered\nTarget: -.-.\n", out.String())
	assert.Equal(t, "✗ bad input\n", errOut.String())
}

func TestPrinter_FullModeContainsText(t *testing.T) {
	p, out, _ := newTestPrinter(PersonalityFull)

	p.Title("Smooshed Morse")
	p.Box("Solution", "abc")
	p.Field("Steps", "42")

	text := out.String()
	assert.Contains(t, text, "Smooshed Morse")
	assert.Contains(t, text, "Solution")
	assert.Contains(t, text, "abc")
	assert.Contains(t, text, "42")
}

func TestPrinter_Signals(t *testing.T) {
	p, _, _ := newTestPrinter(PersonalityMachine)
	assert.Equal(t, ".--.", p.Signals(".--."))

	p, _, _ = newTestPrinter(PersonalityFull)
	rendered := p.Signals(".--.")
	assert.Equal(t, 4, strings.Count(rendered, ".")+strings.Count(rendered, "-"))
}

func TestPrinter_JSON(t *testing.T) {
	p, out, _ := newTestPrinter(PersonalityMachine)

	require.NoError(t, p.JSON(map[string]any{"code": ".-", "word": "a"}))
	assert.JSONEq(t, `{"code": ".-", "word": "a"}`, out.String())
	assert.True(t, strings.HasSuffix(out.String(), "\n"))

	assert.Error(t, p.JSON(make(chan int)))
}

func TestNewPrinter_DefaultsToCurrentPersonality(t *testing.T) {
	original := GetPersonality()
	defer SetPersonality(original)

	SetPersonalityLevel(PersonalityMinimal)
	p := NewPrinter(&bytes.Buffer{}, &bytes.Buffer{}, "")
	assert.Equal(t, PersonalityMinimal, p.Level())
}

func TestBoxWidth(t *testing.T) {
	assert.Equal(t, 40, boxWidth("short"))
	assert.Equal(t, 86, boxWidth(strings.Repeat(".", 82)))
	assert.Equal(t, 100, boxWidth(strings.Repeat("-", 300)))
}

func TestIcon_Render(t *testing.T) {
	for _, icon := range []Icon{IconSuccess, IconWarning, IconError, IconArrow, IconBullet} {
		assert.Contains(t, icon.Render(), string(icon))
	}
}

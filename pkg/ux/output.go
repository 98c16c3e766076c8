// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package ux provides terminal output styling for the smooshedmorse CLI.
package ux

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Palette - deep ocean teals, with amber for dashes
var (
	ColorTealBright  = lipgloss.Color("#2CD7C7") // Bright teal - highlights, success
	ColorTealPrimary = lipgloss.Color("#20B9B4") // Primary teal - dots
	ColorTealDeep    = lipgloss.Color("#16858E") // Deep teal - borders
	ColorSlate       = lipgloss.Color("#2C4A54") // Slate - muted text

	ColorSuccess = lipgloss.Color("#2CD7C7")
	ColorWarning = lipgloss.Color("#F4D03F") // Amber - warnings, dashes
	ColorError   = lipgloss.Color("#E74C3C")
)

// Styles provides pre-configured lipgloss styles
var Styles = struct {
	Title     lipgloss.Style
	Bold      lipgloss.Style
	Muted     lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
	Error     lipgloss.Style
	Highlight lipgloss.Style

	Dot  lipgloss.Style
	Dash lipgloss.Style

	Box      lipgloss.Style
	ErrorBox lipgloss.Style
}{
	Title:     lipgloss.NewStyle().Bold(true).Foreground(ColorTealBright),
	Bold:      lipgloss.NewStyle().Bold(true),
	Muted:     lipgloss.NewStyle().Foreground(ColorSlate),
	Success:   lipgloss.NewStyle().Foreground(ColorSuccess),
	Warning:   lipgloss.NewStyle().Foreground(ColorWarning),
	Error:     lipgloss.NewStyle().Foreground(ColorError),
	Highlight: lipgloss.NewStyle().Foreground(ColorTealBright).Bold(true),

	Dot:  lipgloss.NewStyle().Foreground(ColorTealPrimary),
	Dash: lipgloss.NewStyle().Foreground(ColorWarning),

	Box: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorTealDeep).
		Padding(0, 1),
	ErrorBox: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorError).
		Padding(0, 1),
}

// Icon provides themed status icons
type Icon string

const (
	IconSuccess Icon = "✓"
	IconWarning Icon = "⚠"
	IconError   Icon = "✗"
	IconArrow   Icon = "→"
	IconBullet  Icon = "•"
)

// Render returns the icon with appropriate styling
func (i Icon) Render() string {
	switch i {
	case IconSuccess:
		return Styles.Success.Render(string(i))
	case IconWarning:
		return Styles.Warning.Render(string(i))
	case IconError:
		return Styles.Error.Render(string(i))
	default:
		return string(i)
	}
}

// Printer writes command output at a personality level.
//
// Results go to out; warnings and errors in machine mode go to errOut so
// scripts can read stdout unpolluted.
type Printer struct {
	out    io.Writer
	errOut io.Writer
	level  PersonalityLevel
}

// NewPrinter creates a Printer. An empty level uses the current personality.
func NewPrinter(out, errOut io.Writer, level PersonalityLevel) *Printer {
	if level == "" {
		level = GetPersonality().Level
	}
	return &Printer{out: out, errOut: errOut, level: level}
}

// Level returns the printer's personality level.
func (p *Printer) Level() PersonalityLevel { return p.level }

// Out returns the result writer.
func (p *Printer) Out() io.Writer { return p.out }

// Title prints a styled title. Machine mode prints nothing.
func (p *Printer) Title(text string) {
	if p.level == PersonalityMachine {
		return
	}
	fmt.Fprintln(p.out, Styles.Title.Render(text))
}

// Success prints a success message with checkmark
func (p *Printer) Success(text string) {
	switch p.level {
	case PersonalityMachine:
		fmt.Fprintf(p.out, "OK: %s\n", text)
	case PersonalityMinimal:
		fmt.Fprintf(p.out, "%s %s\n", IconSuccess, text)
	default:
		fmt.Fprintf(p.out, "%s %s\n", IconSuccess.Render(), Styles.Success.Render(text))
	}
}

// Warning prints a warning message
func (p *Printer) Warning(text string) {
	switch p.level {
	case PersonalityMachine:
		fmt.Fprintf(p.errOut, "WARN: %s\n", text)
	case PersonalityMinimal:
		fmt.Fprintf(p.out, "%s %s\n", IconWarning, text)
	default:
		fmt.Fprintf(p.out, "%s %s\n", IconWarning.Render(), Styles.Warning.Render(text))
	}
}

// Error prints an error message
func (p *Printer) Error(text string) {
	switch p.level {
	case PersonalityMachine:
		fmt.Fprintf(p.errOut, "ERROR: %s\n", text)
	case PersonalityMinimal:
		fmt.Fprintf(p.errOut, "%s %s\n", IconError, text)
	default:
		fmt.Fprintf(p.errOut, "%s %s\n", IconError.Render(), Styles.Error.Render(text))
	}
}

// Line prints text unchanged. It is the machine-mode result line.
func (p *Printer) Line(text string) {
	fmt.Fprintln(p.out, text)
}

// Field prints a labelled value.
func (p *Printer) Field(label, value string) {
	switch p.level {
	case PersonalityMachine:
		fmt.Fprintf(p.out, "%s\t%s\n", strings.ToLower(label), value)
	case PersonalityMinimal:
		fmt.Fprintf(p.out, "%s: %s\n", label, value)
	default:
		fmt.Fprintf(p.out, "%s %s %s\n", Styles.Muted.Render("│"), Styles.Bold.Render(label+":"), value)
	}
}

// Box prints text in a rounded box. Machine mode prints "title: content".
func (p *Printer) Box(title, content string) {
	if p.level == PersonalityMachine {
		fmt.Fprintf(p.out, "%s: %s\n", title, content)
		return
	}
	if p.level == PersonalityMinimal {
		fmt.Fprintf(p.out, "%s\n%s\n", title, content)
		return
	}
	fmt.Fprintln(p.out, Styles.Box.Width(boxWidth(content)).Render(Styles.Title.Render(title)+"\n"+content))
}

// Signals renders a dot/dash string, coloring dots and dashes apart when
// colors are enabled.
func (p *Printer) Signals(code string) string {
	if p.level == PersonalityMachine || p.level == PersonalityMinimal {
		return code
	}
	var b strings.Builder
	for _, r := range code {
		switch r {
		case '.':
			b.WriteString(Styles.Dot.Render("."))
		case '-':
			b.WriteString(Styles.Dash.Render("-"))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// JSON writes v as indented JSON followed by a newline.
func (p *Printer) JSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode json output: %w", err)
	}
	_, err = fmt.Fprintln(p.out, string(data))
	return err
}

// boxWidth sizes a box to its widest line, between 40 and 100 columns.
func boxWidth(content string) int {
	width := 40
	for _, line := range strings.Split(content, "\n") {
		width = max(width, lipgloss.Width(line)+4)
	}
	return min(width, 100)
}

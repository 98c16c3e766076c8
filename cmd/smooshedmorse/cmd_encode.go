// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/smooshedmorse/pkg/ux"
	"github.com/AleutianAI/smooshedmorse/pkg/validation"
)

type encodeResult struct {
	Word   string `json:"word"`
	Code   string `json:"code"`
	Length int    `json:"length"`
}

func newEncodeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "encode WORD...",
		Short:   "Encode words to smooshed Morse",
		Example: "  smooshedmorse encode Horse",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return usageErrorf("encode needs at least one word")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			results := make([]encodeResult, 0, len(args))
			for _, raw := range args {
				word, err := validation.SanitizeWord(raw)
				if err != nil {
					return err
				}
				bits, err := a.table.EncodeString(word)
				if err != nil {
					return err
				}
				results = append(results, encodeResult{Word: word, Code: bits.String(), Length: len(bits)})
			}
			return a.printEncoded(results)
		},
	}
}

func (a *app) printEncoded(results []encodeResult) error {
	if a.jsonOutput {
		return a.printer.JSON(results)
	}
	for _, r := range results {
		switch a.printer.Level() {
		case ux.PersonalityMachine:
			a.printer.Line(r.Code)
		case ux.PersonalityMinimal:
			a.printer.Field(r.Word, r.Code)
		default:
			a.printer.Field(r.Word, fmt.Sprintf("%s %s", a.printer.Signals(r.Code),
				ux.Styles.Muted.Render("("+strconv.Itoa(r.Length)+" signals)")))
		}
	}
	return nil
}

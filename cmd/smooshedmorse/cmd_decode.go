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
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/smooshedmorse/pkg/ux"
	"github.com/AleutianAI/smooshedmorse/pkg/validation"
)

func newDecodeCmd(a *app) *cobra.Command {
	var words string

	cmd := &cobra.Command{
		Use:   "decode CODE",
		Short: "List the words of a word list that encode to CODE",
		Long: `List the words of a word list that encode to CODE.

CODE starts with a dot or a dash, so give it after --.`,
		Example: "  smooshedmorse decode --words enable1.txt.gz -- '....---.-.....'",
		Args:    exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code := args[0]
			if err := validation.ValidateCode(code); err != nil {
				return err
			}

			idx, err := a.loadIndex(cmd.Context(), words)
			if err != nil {
				return err
			}

			matches := idx.LookupString(code)
			if matches == nil {
				matches = []string{}
			}
			a.log.Info("decoded", "code", code, "matches", len(matches))
			return a.printDecoded(code, matches)
		},
	}
	cmd.Flags().StringVarP(&words, "words", "w", "", "word list file (.txt, .gz, .zst, .lz4)")
	return cmd
}

func (a *app) printDecoded(code string, words []string) error {
	if a.jsonOutput {
		return a.printer.JSON(words)
	}
	if a.printer.Level() == ux.PersonalityMachine {
		for _, w := range words {
			a.printer.Line(w)
		}
		return nil
	}
	if len(words) == 0 {
		a.printer.Warning("no word encodes to " + code)
		return nil
	}
	a.printer.Field(a.printer.Signals(code), strconv.Itoa(len(words))+" words")
	a.printer.Line(strings.Join(words, "\n"))
	return nil
}

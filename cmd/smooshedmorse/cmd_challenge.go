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
	"strings"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/smooshedmorse/pkg/ux"
	"github.com/AleutianAI/smooshedmorse/services/challenges"
)

func newChallengeCmd(a *app) *cobra.Command {
	var (
		words string
		opts  challenges.Options
	)

	cmd := &cobra.Command{
		Use:   "challenge NAME",
		Short: "Solve a word-list puzzle: " + strings.Join(challenges.Names(), ", "),
		Long: `Solve one of the smooshed Morse word-list puzzles:

  ambiguous   the codes shared by the most words
  dashes      the first word whose code has --dash-run dashes in a row (default 15)
  balanced    --letters letter words with as many dots as dashes (default 21)
  palindrome  --letters letter words whose code is a palindrome (default 13)`,
		Example:   "  smooshedmorse challenge ambiguous --words enable1.txt",
		ValidArgs: challenges.Names(),
		Args:      exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := a.loadIndex(cmd.Context(), words)
			if err != nil {
				return err
			}
			matches, err := challenges.Run(cmd.Context(), idx, args[0], opts, a.log)
			if err != nil {
				return err
			}
			return a.printMatches(args[0], matches)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&words, "words", "w", "", "word list file (.txt, .gz, .zst, .lz4)")
	flags.IntVar(&opts.Letters, "letters", 0, "word length for balanced and palindrome")
	flags.IntVar(&opts.DashRun, "dash-run", 0, "consecutive dashes for dashes")
	flags.IntVar(&opts.MaxWords, "max-words", 0, "ignore codes shared by more words (ambiguous)")
	return cmd
}

func (a *app) printMatches(name string, matches []challenges.Match) error {
	if a.jsonOutput {
		return a.printer.JSON(matches)
	}

	p := a.printer
	if p.Level() == ux.PersonalityMachine {
		for _, m := range matches {
			p.Field(m.Code, strings.Join(m.Words, ","))
		}
		return nil
	}

	p.Title("Challenge: " + name)
	for _, m := range matches {
		p.Field(p.Signals(m.Code), strings.Join(m.Words, ", "))
	}
	return nil
}

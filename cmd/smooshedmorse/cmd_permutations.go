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
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/smooshedmorse/pkg/ux"
	"github.com/AleutianAI/smooshedmorse/services/permutations"
)

type permutationsFlags struct {
	increment int
	seed      int64
	maxSteps  int64
	timeout   time.Duration
	noPrune   bool
}

func newPermutationsCmd(a *app) *cobra.Command {
	var f permutationsFlags

	cmd := &cobra.Command{
		Use:   "permutations [TARGET]",
		Short: "Recover an alphabet permutation from its smooshed Morse encoding",
		Long: `Given the smooshed Morse encoding of a permutation of the alphabet, find one
of the permutations it encodes. Without TARGET a random permutation is
generated, encoded and recovered.

TARGET starts with a dot or a dash, so give it after --.`,
		Example: "  smooshedmorse permutations -- '.--...-.-.-.....-.--........----.-.-..---.---.--.--.-.-....-..-...-.---..--.----..'\n" +
			"  smooshedmorse permutations --seed 42 --increment 2",
		Args: rangeArgs(0, 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pcfg, seed := a.searchConfig(cmd, f)
			svc, err := permutations.NewService(a.table, pcfg, seed, a.log)
			if err != nil {
				return usageErrorf("%w", err)
			}

			var report *permutations.Report
			if len(args) == 1 {
				report, err = svc.Recover(cmd.Context(), args[0])
			} else {
				report, err = svc.RecoverRandom(cmd.Context())
			}
			if report != nil {
				if printErr := a.printReport(report); printErr != nil {
					return printErr
				}
			}
			return err
		},
	}

	flags := cmd.Flags()
	flags.IntVarP(&f.increment, "increment", "i", 3, "symbols tried per search frame")
	flags.Int64Var(&f.seed, "seed", 1, "seed for the random permutation")
	flags.Int64Var(&f.maxSteps, "max-steps", 0, "give up after this many search steps (0 = unbounded)")
	flags.DurationVar(&f.timeout, "timeout", 0, "give up after this long, e.g. 30s (0 = unbounded)")
	flags.BoolVar(&f.noPrune, "no-prune", false, "try every candidate instead of only those matching the target")
	return cmd
}

// searchConfig starts from the config file and applies the flags the user set.
func (a *app) searchConfig(cmd *cobra.Command, f permutationsFlags) (*permutations.Config, int64) {
	pcfg := permutations.DefaultConfig()
	pcfg.Increment = a.cfg.Search.Increment
	pcfg.MaxSteps = a.cfg.Search.MaxSteps
	pcfg.TimeLimit = a.cfg.Search.TimeLimit
	pcfg.Prune = a.cfg.Search.Prune
	seed := a.cfg.Search.Seed

	flags := cmd.Flags()
	if flags.Changed("increment") {
		pcfg.Increment = f.increment
	}
	if flags.Changed("seed") {
		seed = f.seed
	}
	if flags.Changed("max-steps") {
		pcfg.MaxSteps = f.maxSteps
	}
	if flags.Changed("timeout") {
		pcfg.TimeLimit = f.timeout
	}
	if flags.Changed("no-prune") {
		pcfg.Prune = !f.noPrune
	}

	a.log.Debug("search configuration",
		slog.Int("increment", pcfg.Increment),
		slog.Int64("max_steps", pcfg.MaxSteps),
		slog.Duration("time_limit", pcfg.TimeLimit),
		slog.Bool("prune", pcfg.Prune),
		slog.Int64("seed", seed),
	)
	return pcfg, seed
}

func (a *app) printReport(r *permutations.Report) error {
	if a.jsonOutput {
		return a.printer.JSON(r)
	}

	p := a.printer
	if p.Level() == ux.PersonalityMachine {
		if r.Generated != "" {
			p.Field("generated", r.Generated)
		}
		p.Field("target", r.Target)
		p.Field("solution", r.Solution)
		p.Field("outcome", r.Outcome)
		return nil
	}

	p.Title("Permutation recovery")
	if r.Generated != "" {
		p.Field("Generated", r.Generated)
	}
	p.Field("Target", p.Signals(r.Target))
	switch {
	case r.Solution != "" && r.Verified:
		p.Field("Solution", r.Solution)
		p.Success("solution re-encodes to the target")
	case r.Solution != "":
		p.Field("Solution", r.Solution)
		p.Warning("solution does not re-encode to the target")
	default:
		p.Field("Outcome", strings.ReplaceAll(r.Outcome, "_", " "))
	}

	if ux.GetPersonality().ShowStats && p.Level() == ux.PersonalityFull {
		p.Box("Search statistics", fmt.Sprintf(
			"steps       %d\ncandidates  %d\nmismatches  %d\nbacktracks  %d\nmax depth   %d\nduration    %.2fms",
			r.Stats.Steps, r.Stats.Candidates, r.Stats.Mismatches, r.Stats.Backtracks, r.Stats.MaxDepth, r.DurationMS,
		))
	}
	return nil
}

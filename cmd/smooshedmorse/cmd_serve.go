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
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/smooshedmorse/services/api"
	"github.com/AleutianAI/smooshedmorse/services/permutations"
	"github.com/AleutianAI/smooshedmorse/services/wordlist"
)

func newServeCmd(a *app) *cobra.Command {
	var (
		addr  string
		words string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve encoding, decoding and permutation recovery over HTTP",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if !cmd.Flags().Changed("addr") {
				addr = a.cfg.Server.Addr
			}

			pcfg, seed := a.searchConfig(cmd, permutationsFlags{})
			svc, err := permutations.NewService(a.table, pcfg, seed, a.log)
			if err != nil {
				return usageErrorf("%w", err)
			}

			var idx *wordlist.Index
			if words != "" || a.cfg.Wordlist.Path != "" {
				if idx, err = a.loadIndex(ctx, words); err != nil {
					return err
				}
			} else {
				a.log.Warn("no word list configured; decode and challenges are disabled")
			}

			srv, err := api.New(api.Config{Addr: addr}, api.Deps{
				Table:        a.table,
				Permutations: svc,
				Index:        idx,
				Logger:       a.log,
			})
			if err != nil {
				return err
			}
			a.printer.Success("listening on " + addr)
			a.log.Info("server configured", slog.String("addr", addr), slog.Bool("wordlist", idx != nil))
			return srv.Run(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":12380", "listen address")
	cmd.Flags().StringVarP(&words, "words", "w", "", "word list file for decode and challenges")
	return cmd
}

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
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/AleutianAI/smooshedmorse/cmd/smooshedmorse/config"
	"github.com/AleutianAI/smooshedmorse/pkg/ux"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Create or inspect the configuration file",
		// Replaces the root hook: init must work before any file exists.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := ux.InitPersonality(a.personalityLevel)
			if a.jsonOutput {
				level = ux.PersonalityMachine
			}
			a.printer = ux.NewPrinter(a.stdout, a.stderr, level)
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write the default configuration file",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.ResolvePath(a.configPath)
			if err := config.WriteDefault(path); err != nil {
				return err
			}
			a.printer.Success("wrote " + path)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := config.Load(a.configPath)
			if err != nil {
				return usageErrorf("%w", err)
			}
			if a.jsonOutput {
				return a.printer.JSON(cfg)
			}
			data, err := yaml.Marshal(cfg)
			if err != nil {
				return err
			}
			a.printer.Line(string(data))
			return nil
		},
	})
	return cmd
}

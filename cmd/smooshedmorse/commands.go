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
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/AleutianAI/smooshedmorse/cmd/smooshedmorse/config"
	"github.com/AleutianAI/smooshedmorse/pkg/logging"
	"github.com/AleutianAI/smooshedmorse/pkg/morse"
	"github.com/AleutianAI/smooshedmorse/pkg/ux"
	"github.com/AleutianAI/smooshedmorse/services/telemetry"
)

// app carries the state shared by every command of one invocation.
type app struct {
	stdout io.Writer
	stderr io.Writer

	// Global flags.
	configPath       string
	jsonOutput       bool
	logLevel         string
	personalityLevel string

	cfg     *config.Config
	logger  *logging.Logger
	log     *slog.Logger
	printer *ux.Printer
	table   *morse.Table
	runID   string

	telemetryShutdown func(context.Context) error
}

// execute runs one CLI invocation and returns the process exit code.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := &app{stdout: stdout, stderr: stderr, table: morse.Default()}
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	code := exitCodeFor(err)
	if err != nil && a.log != nil {
		a.log.Debug("command failed", slog.String("error", err.Error()), slog.Int("exit_code", code))
	}
	a.close()

	if err == nil {
		return ExitOK
	}
	if a.printer == nil {
		a.printer = ux.NewPrinter(stdout, stderr, ux.PersonalityMachine)
	}
	a.printer.Error(err.Error())
	return code
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "smooshedmorse",
		Short: "Smooshed Morse encoding, decoding and permutation recovery",
		Long: `Normally a space separates the codes of consecutive letters. In smooshed
Morse every code is run together into a single string of dots and dashes,
so decoding needs a word list and recovering an alphabet permutation needs
a backtracking search.`,
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default ~/.smooshedmorse/config.yaml, or $"+config.EnvPath+")")
	flags.BoolVarP(&a.jsonOutput, "json", "j", false, "serialize output to JSON")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error (overrides config)")
	flags.StringVar(&a.personalityLevel, "output", "", "output style: full, standard, minimal, machine")

	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageErrorf("%w", err)
	})

	root.AddCommand(
		newEncodeCmd(a),
		newDecodeCmd(a),
		newPermutationsCmd(a),
		newChallengeCmd(a),
		newServeCmd(a),
		newConfigCmd(a),
		newVersionCmd(a),
	)
	return root
}

// setup loads configuration and builds the logger, printer and telemetry.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	level := ux.InitPersonality(a.personalityLevel)
	if a.jsonOutput {
		level = ux.PersonalityMachine
	}
	a.printer = ux.NewPrinter(a.stdout, a.stderr, level)

	cfg, path, err := config.Load(a.configPath)
	if err != nil {
		return usageErrorf("%w", err)
	}
	a.cfg = cfg

	levelName := cfg.Logging.Level
	if a.logLevel != "" {
		levelName = a.logLevel
	}
	logLevel, err := logging.ParseLevel(levelName)
	if err != nil {
		return usageErrorf("%w", err)
	}

	a.runID = uuid.NewString()
	a.logger = logging.New(logging.Config{
		Level:   logLevel,
		LogDir:  cfg.Logging.Dir,
		Service: "smooshedmorse",
		JSON:    cfg.Logging.JSON,
		Output:  a.stderr,
	}).With(slog.String("run_id", a.runID), slog.String("command", cmd.Name()))
	a.log = a.logger.Slog()
	slog.SetDefault(a.log)

	tcfg := telemetry.DefaultConfig()
	tcfg.TraceExporter = cfg.Telemetry.TraceExporter
	tcfg.MetricExporter = cfg.Telemetry.MetricExporter
	tcfg.OTLPEndpoint = cfg.Telemetry.OTLPEndpoint
	tcfg.OTLPInsecure = cfg.Telemetry.OTLPInsecure
	shutdown, err := telemetry.Init(cmd.Context(), tcfg)
	if err != nil {
		return fmt.Errorf("init telemetry: %w", err)
	}
	a.telemetryShutdown = shutdown

	a.log.Debug("configuration loaded", slog.String("path", path), slog.String("output", string(level)))
	return nil
}

// close flushes telemetry and closes the logger. Safe to call after a
// failed or skipped setup.
func (a *app) close() {
	var errs []error
	if a.telemetryShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		errs = append(errs, a.telemetryShutdown(ctx))
		cancel()
	}
	if a.logger != nil {
		errs = append(errs, a.logger.Close())
	}
	if err := errors.Join(errs...); err != nil {
		fmt.Fprintf(a.stderr, "cleanup: %v\n", err)
	}
}

// exactArgs is cobra.ExactArgs reporting a usage error.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return usageErrorf("%w", err)
		}
		return nil
	}
}

// rangeArgs is cobra.RangeArgs reporting a usage error.
func rangeArgs(lo, hi int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.RangeArgs(lo, hi)(cmd, args); err != nil {
			return usageErrorf("%w", err)
		}
		return nil
	}
}

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.jsonOutput {
				return a.printer.JSON(map[string]string{"version": telemetry.Version})
			}
			a.printer.Line(telemetry.Version)
			return nil
		},
	}
}

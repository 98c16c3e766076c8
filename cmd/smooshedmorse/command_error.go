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

	"github.com/AleutianAI/smooshedmorse/pkg/validation"
	"github.com/AleutianAI/smooshedmorse/services/challenges"
	"github.com/AleutianAI/smooshedmorse/services/permutations"
)

// Process exit codes.
const (
	ExitOK             = 0
	ExitFailure        = 1
	ExitInvalidInput   = 2
	ExitNoSolution     = 3
	ExitBudgetExceeded = 4
)

// CommandError wraps a command failure with the exit code it maps to.
//
// # Description
//
// Commands return plain errors; execute classifies them with exitCodeFor.
// A CommandError pins the exit code explicitly, which is how usage errors
// such as a missing argument reach ExitInvalidInput.
//
// # Example
//
//	err := NewCommandError("decode", ExitInvalidInput, originalErr)
//	fmt.Println(err.Error()) // "decode: <original>"
//
//	var cmdErr *CommandError
//	if errors.As(err, &cmdErr) {
//	    os.Exit(cmdErr.ExitCode)
//	}
type CommandError struct {
	// Command is the command path that failed, e.g. "smooshedmorse decode".
	Command string

	// ExitCode is the process exit code.
	ExitCode int

	// Wrapped is the underlying error.
	Wrapped error
}

// Error returns "command: cause".
func (e *CommandError) Error() string {
	if e.Wrapped == nil {
		return fmt.Sprintf("%s (exit %d)", e.Command, e.ExitCode)
	}
	if e.Command == "" {
		return e.Wrapped.Error()
	}
	return fmt.Sprintf("%s: %v", e.Command, e.Wrapped)
}

// Unwrap returns the underlying error.
func (e *CommandError) Unwrap() error {
	return e.Wrapped
}

// NewCommandError creates a CommandError.
func NewCommandError(cmd string, exitCode int, wrapped error) *CommandError {
	return &CommandError{Command: cmd, ExitCode: exitCode, Wrapped: wrapped}
}

// usageErrorf reports a bad invocation.
func usageErrorf(format string, args ...any) error {
	return &CommandError{ExitCode: ExitInvalidInput, Wrapped: fmt.Errorf(format, args...)}
}

// exitCodeFor maps an error onto a process exit code.
//
// # Outputs
//
//   - int: ExitOK for nil; a CommandError's own code; otherwise the code of
//     the first recognized sentinel in the chain, or ExitFailure.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitOK
	}

	var cmdErr *CommandError
	if errors.As(err, &cmdErr) && cmdErr.ExitCode != 0 {
		return cmdErr.ExitCode
	}

	switch {
	case errors.Is(err, validation.ErrInvalidSymbol),
		errors.Is(err, validation.ErrWrongLength),
		errors.Is(err, validation.ErrInvalidWord),
		errors.Is(err, challenges.ErrInvalidOptions),
		errors.Is(err, challenges.ErrUnknownChallenge):
		return ExitInvalidInput
	case errors.Is(err, permutations.ErrNoSolution),
		errors.Is(err, challenges.ErrNoMatch):
		return ExitNoSolution
	case errors.Is(err, permutations.ErrSearchTimedOut),
		errors.Is(err, context.DeadlineExceeded):
		return ExitBudgetExceeded
	default:
		return ExitFailure
	}
}

// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package permutations

import "errors"

var (
	// ErrNoSolution is returned when the root frame is exhausted without a
	// match. It is an expected outcome for a well-formed target.
	ErrNoSolution = errors.New("no solution found")

	// ErrSearchTimedOut is returned when the step or time budget runs out
	// before the search reaches a conclusion.
	ErrSearchTimedOut = errors.New("search timed out")

	// ErrInvalidIncrement is returned for a batch size below one.
	ErrInvalidIncrement = errors.New("increment must be at least 1")

	// ErrInvalidConfig is returned for a configuration with negative budgets.
	ErrInvalidConfig = errors.New("invalid search configuration")

	// ErrEmptyAlphabet is returned when a searcher or generator is built
	// without symbols.
	ErrEmptyAlphabet = errors.New("alphabet is empty")
)

// AlgorithmError wraps a failure with the component and operation that
// produced it.
type AlgorithmError struct {
	Algorithm string
	Operation string
	Err       error
}

func (e *AlgorithmError) Error() string {
	return e.Algorithm + "." + e.Operation + ": " + e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *AlgorithmError) Unwrap() error {
	return e.Err
}

// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package api

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AleutianAI/smooshedmorse/pkg/validation"
	"github.com/AleutianAI/smooshedmorse/services/challenges"
	"github.com/AleutianAI/smooshedmorse/services/permutations"
	"github.com/AleutianAI/smooshedmorse/services/telemetry"
)

// Error codes returned in ErrorResponse.Code.
const (
	CodeInvalidInput        = "invalid_input"
	CodeInvalidTarget       = "invalid_target"
	CodeNoSolution          = "no_solution"
	CodeTimedOut            = "timed_out"
	CodeCanceled            = "canceled"
	CodeUnknownChallenge    = "unknown_challenge"
	CodeNoMatch             = "no_match"
	CodeWordlistUnavailable = "wordlist_unavailable"
	CodeInternal            = "internal"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"request_id,omitempty"`

	// Report is set when a permutation search ran but did not succeed.
	Report *permutations.Report `json:"report,omitempty"`
}

// EncodeResponse is returned by GET /v1/encode/:word.
type EncodeResponse struct {
	Word   string `json:"word"`
	Code   string `json:"code"`
	Length int    `json:"length"`
}

// DecodeResponse is returned by GET /v1/decode. Words is empty, not null,
// when no word matches.
type DecodeResponse struct {
	Code  string   `json:"code"`
	Words []string `json:"words"`
}

// PermutationRequest is the body of POST /v1/permutations.
type PermutationRequest struct {
	// Target is the smooshed encoding of a permutation. Empty requests a
	// randomly generated one.
	Target string `json:"target"`
}

// ChallengeQuery holds the optional challenge parameters.
type ChallengeQuery struct {
	Letters  int `form:"letters" binding:"omitempty,min=1,max=64"`
	DashRun  int `form:"dash_run" binding:"omitempty,min=1"`
	MaxWords int `form:"max_words" binding:"omitempty,min=1"`
}

// ChallengeResponse is returned by GET /v1/challenges/:name.
type ChallengeResponse struct {
	Challenge string             `json:"challenge"`
	Matches   []challenges.Match `json:"matches"`
}

func (s *Server) fail(c *gin.Context, status int, code string, err error) {
	c.JSON(status, ErrorResponse{
		Error:     err.Error(),
		Code:      code,
		RequestID: c.GetString(requestIDKey),
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"version":  telemetry.Version,
		"wordlist": s.deps.Index != nil,
	})
}

func (s *Server) handleEncode(c *gin.Context) {
	word, err := validation.SanitizeWord(c.Param("word"))
	if err != nil {
		s.fail(c, http.StatusBadRequest, CodeInvalidInput, err)
		return
	}
	bits, err := s.deps.Table.EncodeString(word)
	if err != nil {
		s.fail(c, http.StatusBadRequest, CodeInvalidInput, err)
		return
	}
	c.JSON(http.StatusOK, EncodeResponse{Word: word, Code: bits.String(), Length: len(bits)})
}

func (s *Server) handleDecode(c *gin.Context) {
	if s.deps.Index == nil {
		s.fail(c, http.StatusServiceUnavailable, CodeWordlistUnavailable, errors.New("no word list loaded"))
		return
	}
	code := c.Query("code")
	if err := validation.ValidateCode(code); err != nil {
		s.fail(c, http.StatusBadRequest, CodeInvalidInput, err)
		return
	}

	words := s.deps.Index.LookupString(code)
	if words == nil {
		words = []string{}
	}
	c.JSON(http.StatusOK, DecodeResponse{Code: code, Words: words})
}

func (s *Server) handlePermutations(c *gin.Context) {
	var req PermutationRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		s.fail(c, http.StatusBadRequest, CodeInvalidInput, err)
		return
	}

	ctx := c.Request.Context()
	var (
		report *permutations.Report
		err    error
	)
	if req.Target == "" {
		report, err = s.deps.Permutations.RecoverRandom(ctx)
	} else {
		report, err = s.deps.Permutations.Recover(ctx, req.Target)
	}

	if err == nil {
		c.JSON(http.StatusOK, report)
		return
	}

	status, code := permutationStatus(err)
	if status == http.StatusInternalServerError {
		telemetry.LoggerWithTrace(ctx, s.logger).Error("permutation search failed", slog.String("error", err.Error()))
	}
	c.JSON(status, ErrorResponse{
		Error:     err.Error(),
		Code:      code,
		RequestID: c.GetString(requestIDKey),
		Report:    report,
	})
}

// permutationStatus maps a recovery error to an HTTP status and error code.
func permutationStatus(err error) (int, string) {
	switch {
	case errors.Is(err, validation.ErrInvalidSymbol), errors.Is(err, validation.ErrWrongLength):
		return http.StatusBadRequest, CodeInvalidTarget
	case errors.Is(err, permutations.ErrNoSolution):
		return http.StatusNotFound, CodeNoSolution
	case errors.Is(err, permutations.ErrSearchTimedOut):
		return http.StatusRequestTimeout, CodeTimedOut
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, CodeCanceled
	default:
		return http.StatusInternalServerError, CodeInternal
	}
}

func (s *Server) handleChallenge(c *gin.Context) {
	if s.deps.Index == nil {
		s.fail(c, http.StatusServiceUnavailable, CodeWordlistUnavailable, errors.New("no word list loaded"))
		return
	}
	var q ChallengeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		s.fail(c, http.StatusBadRequest, CodeInvalidInput, err)
		return
	}

	name := c.Param("name")
	opts := challenges.Options{Letters: q.Letters, DashRun: q.DashRun, MaxWords: q.MaxWords}
	matches, err := challenges.Run(c.Request.Context(), s.deps.Index, name, opts, s.logger)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, ChallengeResponse{Challenge: name, Matches: matches})
	case errors.Is(err, challenges.ErrUnknownChallenge):
		s.fail(c, http.StatusNotFound, CodeUnknownChallenge, err)
	case errors.Is(err, challenges.ErrInvalidOptions):
		s.fail(c, http.StatusBadRequest, CodeInvalidInput, err)
	case errors.Is(err, challenges.ErrNoMatch):
		s.fail(c, http.StatusNotFound, CodeNoMatch, err)
	default:
		s.fail(c, http.StatusInternalServerError, CodeInternal, err)
	}
}

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
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/AleutianAI/smooshedmorse/pkg/morse"
	"github.com/AleutianAI/smooshedmorse/services/permutations"
	"github.com/AleutianAI/smooshedmorse/services/telemetry"
	"github.com/AleutianAI/smooshedmorse/services/wordlist"
)

// =============================================================================
// Configuration
// =============================================================================

// Config holds HTTP server options.
//
// # Examples
//
//	cfg := api.Config{Addr: ":8080"}
type Config struct {
	// Addr is the listen address.
	// Default: ":12380"
	Addr string

	// ServiceName names the otelgin server spans.
	// Default: "smooshedmorse"
	ServiceName string

	// ShutdownTimeout bounds graceful shutdown once ctx is canceled.
	// Default: 10s
	ShutdownTimeout time.Duration

	// GinMode sets the Gin framework mode ("debug", "release", "test").
	// Default: "release"
	GinMode string
}

// Deps are the services the handlers call.
type Deps struct {
	// Table encodes words. Required.
	Table *morse.Table

	// Permutations recovers permutations. Required.
	Permutations *permutations.Service

	// Index backs decoding and challenges. Nil disables both.
	Index *wordlist.Index

	// Logger receives request and lifecycle logs. Nil uses slog.Default().
	Logger *slog.Logger
}

// =============================================================================
// Server
// =============================================================================

// Server is the HTTP front end.
//
// # Thread Safety
//
// Safe for concurrent requests. Deps must not be modified after New.
type Server struct {
	config Config
	deps   Deps
	logger *slog.Logger
	router *gin.Engine
}

// New builds the router and registers every route.
//
// # Outputs
//
//   - *Server: Ready to Run.
//   - error: A required dependency is missing.
func New(config Config, deps Deps) (*Server, error) {
	if deps.Table == nil {
		return nil, errors.New("api: morse table is required")
	}
	if deps.Permutations == nil {
		return nil, errors.New("api: permutation service is required")
	}
	applyConfigDefaults(&config)

	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{config: config, deps: deps, logger: logger}
	s.initRouter()
	return s, nil
}

func applyConfigDefaults(cfg *Config) {
	if cfg.Addr == "" {
		cfg.Addr = ":12380"
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = "smooshedmorse"
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}
	if cfg.GinMode == "" {
		cfg.GinMode = gin.ReleaseMode
	}
}

func (s *Server) initRouter() {
	gin.SetMode(s.config.GinMode)

	s.router = gin.New()
	s.router.Use(gin.Recovery())
	s.router.Use(otelgin.Middleware(s.config.ServiceName))
	s.router.Use(requestID())
	s.router.Use(requestLogger(s.logger))

	s.router.GET("/metrics", gin.WrapH(metricsHandler()))

	v1 := s.router.Group("/v1")
	{
		v1.GET("/health", s.handleHealth)
		v1.GET("/encode/:word", s.handleEncode)
		v1.GET("/decode", s.handleDecode)
		v1.POST("/permutations", s.handlePermutations)
		v1.GET("/challenges/:name", s.handleChallenge)
	}
}

// metricsHandler prefers the handler installed by telemetry.Init and falls
// back to the default Prometheus registry.
func metricsHandler() http.Handler {
	if h := telemetry.MetricsHandler(); h != nil {
		return h
	}
	return promhttp.Handler()
}

// Router returns the Gin engine. Tests drive it with httptest.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Run serves until ctx is canceled, then shuts down gracefully.
//
// # Outputs
//
//   - error: Nil after a clean shutdown; otherwise the listen or shutdown error.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", slog.String("addr", s.config.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen on %s: %w", s.config.Addr, err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package config

import (
	"time"
)

// Config is the smooshedmorse configuration file.
type Config struct {
	Search    SearchConfig    `yaml:"search"`
	Wordlist  WordlistConfig  `yaml:"wordlist"`
	Logging   LoggingConfig   `yaml:"logging"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Server    ServerConfig    `yaml:"server"`
}

// SearchConfig tunes permutation recovery.
type SearchConfig struct {
	// Increment is the number of symbols tried per frame.
	Increment int `yaml:"increment" validate:"min=1,max=6"`

	// MaxSteps bounds the search. 0 is unbounded.
	MaxSteps int64 `yaml:"max_steps" validate:"gte=0"`

	// TimeLimit bounds the search wall time, e.g. "30s". 0 is unbounded.
	TimeLimit time.Duration `yaml:"time_limit" validate:"gte=0"`

	// Seed drives random target generation.
	Seed int64 `yaml:"seed"`

	// Prune skips candidates whose code cannot match the target.
	Prune bool `yaml:"prune"`
}

// WordlistConfig locates the word list and its index cache.
type WordlistConfig struct {
	// Path is the word list file (.txt, .gz, .zst or .lz4).
	Path string `yaml:"path"`

	// IndexDir holds the BadgerDB index cache. Empty disables caching.
	IndexDir string `yaml:"index_dir"`
}

type LoggingConfig struct {
	Level string `yaml:"level" validate:"oneof=debug info warn warning error"`
	JSON  bool   `yaml:"json"`
	Dir   string `yaml:"dir"`
}

type TelemetryConfig struct {
	TraceExporter  string `yaml:"trace_exporter" validate:"oneof=none stdout otlp"`
	MetricExporter string `yaml:"metric_exporter" validate:"oneof=none stdout prometheus"`
	OTLPEndpoint   string `yaml:"otlp_endpoint" validate:"required_if=TraceExporter otlp"`
	OTLPInsecure   bool   `yaml:"otlp_insecure"`
}

type ServerConfig struct {
	Addr string `yaml:"addr" validate:"required"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		Search: SearchConfig{
			Increment: 3,
			Seed:      1,
			Prune:     true,
		},
		Wordlist: WordlistConfig{
			IndexDir: "~/.smooshedmorse/index",
		},
		Logging: LoggingConfig{
			Level: "warn",
		},
		Telemetry: TelemetryConfig{
			TraceExporter:  "none",
			MetricExporter: "none",
			OTLPEndpoint:   "localhost:4317",
			OTLPInsecure:   true,
		},
		Server: ServerConfig{
			Addr: ":12380",
		},
	}
}

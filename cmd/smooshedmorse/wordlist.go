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
	"fmt"
	"log/slog"

	"github.com/AleutianAI/smooshedmorse/cmd/smooshedmorse/config"
	"github.com/AleutianAI/smooshedmorse/services/wordlist"
)

// loadIndex loads the word list named by path, or by wordlist.path in the
// config, and returns its index. With wordlist.index_dir set the index is
// cached in BadgerDB and reused while the list is unchanged.
func (a *app) loadIndex(ctx context.Context, path string) (*wordlist.Index, error) {
	if path == "" {
		path = a.cfg.Wordlist.Path
	}
	if path == "" {
		return nil, usageErrorf("no word list: pass --words or set wordlist.path in the config")
	}

	list, err := wordlist.Load(config.ExpandHome(path))
	if err != nil {
		return nil, err
	}
	a.log.Debug("word list loaded",
		slog.String("path", path),
		slog.Int("words", len(list.Words)),
		slog.Int("skipped", list.Skipped),
		slog.String("fingerprint", list.FingerprintHex()),
	)

	build := wordlist.DefaultBuildConfig()
	build.Logger = a.log

	if a.cfg.Wordlist.IndexDir == "" {
		return wordlist.Build(ctx, list, a.table, build)
	}

	store, err := wordlist.OpenStore(wordlist.StoreConfig{
		Path:   config.ExpandHome(a.cfg.Wordlist.IndexDir),
		Logger: a.log,
	})
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := store.Close(); err != nil {
			a.log.Warn("closing index store", slog.String("error", err.Error()))
		}
	}()

	idx, cached, err := store.LoadOrBuild(ctx, list, a.table, build)
	if err != nil {
		return nil, fmt.Errorf("word index: %w", err)
	}
	a.log.Debug("word index ready", slog.Bool("cached", cached), slog.Int("codes", idx.CodeCount()))
	return idx, nil
}

// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package wordlist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/dgraph-io/badger/v4"
)

// storeFormatVersion is bumped when the on-disk layout changes.
const storeFormatVersion = 1

// ErrCorruptIndex is returned when a cached index does not match its metadata.
var ErrCorruptIndex = errors.New("cached word index is corrupt")

// StoreConfig holds configuration for the index cache.
type StoreConfig struct {
	// Path is the directory for BadgerDB files. Ignored when InMemory is true.
	Path string

	// InMemory keeps the cache in memory only. Useful for testing.
	InMemory bool

	// SyncWrites enables synchronous writes.
	SyncWrites bool

	// Logger receives BadgerDB's own log output. Nil silences it.
	Logger *slog.Logger
}

// InMemoryStoreConfig returns a configuration for tests.
func InMemoryStoreConfig() StoreConfig {
	return StoreConfig{InMemory: true}
}

// badgerLogger adapts slog.Logger to BadgerDB's Logger interface.
type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

// Store caches built indexes in BadgerDB, keyed by list fingerprint.
//
// Key layout per fingerprint (16 hex digits):
//
//	idx/<fp>/meta            JSON storeMeta, written last
//	idx/<fp>/words           newline-joined words in ID order
//	idx/<fp>/code/<code>     roaring bitmap of word IDs
//
// # Thread Safety
//
// Safe for concurrent use.
type Store struct {
	db *badger.DB
}

type storeMeta struct {
	Version   int       `json:"version"`
	Words     int       `json:"words"`
	Codes     int       `json:"codes"`
	CreatedAt time.Time `json:"created_at"`
}

// OpenStore opens the index cache.
//
// # Outputs
//
//   - *Store: Caller must call Close.
//   - error: Missing path, unwritable directory, or BadgerDB open failure.
func OpenStore(cfg StoreConfig) (*Store, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("path is required for persistent index store")
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Path, 0750); err != nil {
			return nil, fmt.Errorf("create index store directory %s: %w", cfg.Path, err)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts = opts.WithSyncWrites(cfg.SyncWrites).WithNumVersionsToKeep(1)

	if cfg.Logger != nil {
		opts = opts.WithLogger(&badgerLogger{logger: cfg.Logger})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open index store: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func keyPrefix(fingerprint uint64) string {
	return fmt.Sprintf("idx/%016x/", fingerprint)
}

// Save writes idx under its fingerprint, replacing any previous copy.
func (s *Store) Save(idx *Index) error {
	prefix := keyPrefix(idx.fingerprint)
	if err := s.db.DropPrefix([]byte(prefix)); err != nil {
		return fmt.Errorf("clear previous index: %w", err)
	}

	wb := s.db.NewWriteBatch()
	defer wb.Cancel()

	if err := wb.Set([]byte(prefix+"words"), []byte(strings.Join(idx.words, "\n"))); err != nil {
		return fmt.Errorf("write words: %w", err)
	}
	for code, bm := range idx.postings {
		data, err := bm.ToBytes()
		if err != nil {
			return fmt.Errorf("serialize postings for %s: %w", code, err)
		}
		if err := wb.Set([]byte(prefix+"code/"+code), data); err != nil {
			return fmt.Errorf("write postings for %s: %w", code, err)
		}
	}
	if err := wb.Flush(); err != nil {
		return fmt.Errorf("flush index: %w", err)
	}

	meta, err := json.Marshal(storeMeta{
		Version:   storeFormatVersion,
		Words:     len(idx.words),
		Codes:     len(idx.postings),
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("encode index metadata: %w", err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(prefix+"meta"), meta)
	})
}

// Load reads the index cached for fingerprint.
//
// # Outputs
//
//   - *Index: The cached index, or nil when absent.
//   - bool: True when an index was found.
//   - error: ErrCorruptIndex when the stored data is inconsistent, or a
//     database error.
func (s *Store) Load(fingerprint uint64) (*Index, bool, error) {
	prefix := keyPrefix(fingerprint)

	var idx *Index
	err := s.db.View(func(txn *badger.Txn) error {
		var meta storeMeta
		item, err := txn.Get([]byte(prefix + "meta"))
		if err != nil {
			return err
		}
		if err := item.Value(func(val []byte) error { return json.Unmarshal(val, &meta) }); err != nil {
			return fmt.Errorf("%w: metadata: %v", ErrCorruptIndex, err)
		}
		if meta.Version != storeFormatVersion {
			return fmt.Errorf("%w: format version %d", ErrCorruptIndex, meta.Version)
		}

		item, err = txn.Get([]byte(prefix + "words"))
		if err != nil {
			return fmt.Errorf("%w: words: %v", ErrCorruptIndex, err)
		}
		raw, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		words := strings.Split(string(raw), "\n")
		if len(words) != meta.Words {
			return fmt.Errorf("%w: %d words, metadata says %d", ErrCorruptIndex, len(words), meta.Words)
		}

		codes := make([]string, len(words))
		postings := make(map[string]*roaring.Bitmap, meta.Codes)

		codePrefix := []byte(prefix + "code/")
		it := txn.NewIterator(badger.IteratorOptions{Prefix: codePrefix, PrefetchValues: true, PrefetchSize: 100})
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			code := string(item.Key()[len(codePrefix):])
			bm := roaring.New()
			if err := item.Value(func(val []byte) error { return bm.UnmarshalBinary(val) }); err != nil {
				return fmt.Errorf("%w: postings for %s: %v", ErrCorruptIndex, code, err)
			}
			bits := bm.Iterator()
			for bits.HasNext() {
				id := bits.Next()
				if int(id) >= len(codes) {
					return fmt.Errorf("%w: word id %d out of range", ErrCorruptIndex, id)
				}
				codes[id] = code
			}
			postings[code] = bm
		}
		if len(postings) != meta.Codes {
			return fmt.Errorf("%w: %d codes, metadata says %d", ErrCorruptIndex, len(postings), meta.Codes)
		}

		idx = &Index{words: words, codes: codes, postings: postings, fingerprint: fingerprint}
		return nil
	})

	switch {
	case errors.Is(err, badger.ErrKeyNotFound):
		return nil, false, nil
	case err != nil:
		return nil, false, err
	}
	return idx, true, nil
}

// Drop removes the index cached for fingerprint.
func (s *Store) Drop(fingerprint uint64) error {
	return s.db.DropPrefix([]byte(keyPrefix(fingerprint)))
}

// LoadOrBuild returns the cached index for list, building and caching it on
// a miss. A corrupt cache entry is dropped and rebuilt.
//
// The bool result is true when the index came from the cache.
func (s *Store) LoadOrBuild(ctx context.Context, list *List, codec Codec, config *BuildConfig) (*Index, bool, error) {
	logger := slog.Default()
	if config != nil && config.Logger != nil {
		logger = config.Logger
	}

	idx, ok, err := s.Load(list.Fingerprint)
	switch {
	case errors.Is(err, ErrCorruptIndex):
		logger.Warn("dropping corrupt word index cache",
			slog.String("fingerprint", list.FingerprintHex()),
			slog.String("error", err.Error()),
		)
		if dropErr := s.Drop(list.Fingerprint); dropErr != nil {
			return nil, false, fmt.Errorf("drop corrupt index: %w", dropErr)
		}
	case err != nil:
		return nil, false, fmt.Errorf("load cached index: %w", err)
	case ok:
		recordCache(ctx, true)
		logger.Debug("word index loaded from cache",
			slog.String("fingerprint", list.FingerprintHex()),
			slog.Int("words", idx.Len()),
		)
		return idx, true, nil
	}

	recordCache(ctx, false)
	idx, err = Build(ctx, list, codec, config)
	if err != nil {
		return nil, false, err
	}
	if err := s.Save(idx); err != nil {
		return nil, false, fmt.Errorf("cache index: %w", err)
	}
	return idx, false, nil
}

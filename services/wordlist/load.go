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
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/AleutianAI/smooshedmorse/pkg/validation"
)

// ErrEmptyList is returned when a word list holds no usable words.
var ErrEmptyList = errors.New("word list has no valid words")

// Compression identifies how a word list file is compressed.
type Compression int

const (
	// CompressionNone is a plain text list.
	CompressionNone Compression = iota

	// CompressionGzip is a .gz list.
	CompressionGzip

	// CompressionZstd is a .zst list.
	CompressionZstd

	// CompressionLZ4 is a .lz4 frame list.
	CompressionLZ4
)

// String returns the compression name.
func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionGzip:
		return "gzip"
	case CompressionZstd:
		return "zstd"
	case CompressionLZ4:
		return "lz4"
	default:
		return fmt.Sprintf("compression(%d)", int(c))
	}
}

// DetectCompression picks the compression from the file extension.
func DetectCompression(path string) Compression {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz", ".gzip":
		return CompressionGzip
	case ".zst", ".zstd":
		return CompressionZstd
	case ".lz4":
		return CompressionLZ4
	default:
		return CompressionNone
	}
}

// List is a normalized word list.
type List struct {
	// Words holds the accepted words in file order, duplicates removed.
	Words []string

	// Skipped counts lines that were not valid words.
	Skipped int

	// Fingerprint is the xxhash of the normalized words.
	Fingerprint uint64
}

// FingerprintHex returns the fingerprint as 16 hex digits.
func (l *List) FingerprintHex() string {
	return fmt.Sprintf("%016x", l.Fingerprint)
}

// Load opens path and reads it as a word list.
func Load(path string) (*List, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open word list: %w", err)
	}
	defer f.Close()

	list, err := Read(f, DetectCompression(path))
	if err != nil {
		return nil, fmt.Errorf("read word list %s: %w", path, err)
	}
	return list, nil
}

// Read decompresses r and parses one word per line.
//
// Blank lines and lines starting with '#' are ignored without counting as
// skipped.
func Read(r io.Reader, compression Compression) (*List, error) {
	src, closeFn, err := decompress(r, compression)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	list := &List{}
	seen := make(map[string]struct{})
	digest := xxhash.New()

	scanner := bufio.NewScanner(src)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		word, err := validation.SanitizeWord(line)
		if err != nil {
			list.Skipped++
			continue
		}
		if _, dup := seen[word]; dup {
			continue
		}
		seen[word] = struct{}{}
		list.Words = append(list.Words, word)
		_, _ = digest.WriteString(word)
		_, _ = digest.WriteString("\n")
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan words: %w", err)
	}
	if len(list.Words) == 0 {
		return nil, ErrEmptyList
	}

	list.Fingerprint = digest.Sum64()
	return list, nil
}

// NewList builds a List from words already in memory.
func NewList(words []string) (*List, error) {
	return Read(strings.NewReader(strings.Join(words, "\n")), CompressionNone)
}

func decompress(r io.Reader, compression Compression) (io.Reader, func(), error) {
	switch compression {
	case CompressionNone:
		return r, func() {}, nil
	case CompressionGzip:
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, nil, fmt.Errorf("open gzip stream: %w", err)
		}
		return zr, func() { _ = zr.Close() }, nil
	case CompressionZstd:
		zr, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, nil, fmt.Errorf("open zstd stream: %w", err)
		}
		return zr, zr.Close, nil
	case CompressionLZ4:
		return lz4.NewReader(r), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unsupported compression %s", compression)
	}
}

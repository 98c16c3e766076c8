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
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleWords = `# sample list
Horse
sos

ate
p
an
b4d
horse
e
`

func TestDetectCompression(t *testing.T) {
	tests := []struct {
		path string
		want Compression
	}{
		{"enable1.txt", CompressionNone},
		{"words", CompressionNone},
		{"enable1.txt.gz", CompressionGzip},
		{"enable1.GZ", CompressionGzip},
		{"enable1.txt.zst", CompressionZstd},
		{"enable1.zstd", CompressionZstd},
		{"enable1.lz4", CompressionLZ4},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectCompression(tt.path))
		})
	}
}

func TestCompression_String(t *testing.T) {
	assert.Equal(t, "zstd", CompressionZstd.String())
	assert.Equal(t, "compression(9)", Compression(9).String())
}

func TestRead_Plain(t *testing.T) {
	list, err := Read(strings.NewReader(sampleWords), CompressionNone)
	require.NoError(t, err)

	assert.Equal(t, []string{"horse", "sos", "ate", "p", "an", "e"}, list.Words)
	assert.Equal(t, 1, list.Skipped, "b4d is not a word")
	assert.NotZero(t, list.Fingerprint)
	assert.Len(t, list.FingerprintHex(), 16)
}

func TestRead_Empty(t *testing.T) {
	_, err := Read(strings.NewReader("# nothing\n\n123\n"), CompressionNone)
	assert.ErrorIs(t, err, ErrEmptyList)
}

func TestNewList_Fingerprint(t *testing.T) {
	a, err := NewList([]string{"a", "b"})
	require.NoError(t, err)
	b, err := NewList([]string{"A", " b ", "a"})
	require.NoError(t, err)
	c, err := NewList([]string{"b", "a"})
	require.NoError(t, err)

	assert.Equal(t, a.Fingerprint, b.Fingerprint, "normalization and dedup keep the fingerprint")
	assert.NotEqual(t, a.Fingerprint, c.Fingerprint, "order is part of the fingerprint")
}

func compress(t *testing.T, c Compression, text string) []byte {
	t.Helper()

	var buf bytes.Buffer
	var w io.WriteCloser
	switch c {
	case CompressionGzip:
		w = gzip.NewWriter(&buf)
	case CompressionZstd:
		zw, err := zstd.NewWriter(&buf)
		require.NoError(t, err)
		w = zw
	case CompressionLZ4:
		w = lz4.NewWriter(&buf)
	default:
		t.Fatalf("unexpected compression %s", c)
	}
	_, err := io.WriteString(w, text)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestLoad_Compressed(t *testing.T) {
	plain, err := Read(strings.NewReader(sampleWords), CompressionNone)
	require.NoError(t, err)

	tests := []struct {
		name        string
		file        string
		compression Compression
	}{
		{"gzip", "words.txt.gz", CompressionGzip},
		{"zstd", "words.txt.zst", CompressionZstd},
		{"lz4", "words.txt.lz4", CompressionLZ4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			require.NoError(t, os.WriteFile(path, compress(t, tt.compression, sampleWords), 0600))

			list, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, plain.Words, list.Words)
			assert.Equal(t, plain.Fingerprint, list.Fingerprint)
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	path := filepath.Join(t.TempDir(), "broken.gz")
	require.NoError(t, os.WriteFile(path, []byte("not gzip at all"), 0600))
	_, err = Load(path)
	assert.Error(t, err)
}

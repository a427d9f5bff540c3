package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLooksBinary(t *testing.T) {
	tests := []struct {
		name  string
		chunk []byte
		want  bool
	}{
		{
			name:  "empty chunk is text",
			chunk: nil,
			want:  false,
		},
		{
			name:  "plain ascii is text",
			chunk: []byte("package main\n\nfunc main() {}\n"),
			want:  false,
		},
		{
			name:  "null byte at start is binary",
			chunk: append([]byte{0x00}, []byte("otherwise fine text")...),
			want:  true,
		},
		{
			name:  "null byte in the middle is binary",
			chunk: []byte("looks like text\x00but is not"),
			want:  true,
		},
		{
			name:  "tabs and newlines count as printable",
			chunk: []byte("col1\tcol2\r\nval1\tval2\r\n"),
			want:  false,
		},
		{
			name: "half non-printable is binary",
			chunk: append(
				bytes.Repeat([]byte{0x01}, 50),
				bytes.Repeat([]byte("a"), 50)...,
			),
			want: true,
		},
		{
			name: "just above threshold is text",
			chunk: append(
				bytes.Repeat([]byte("a"), 71),
				bytes.Repeat([]byte{0x01}, 29)...,
			),
			want: false,
		},
		{
			name: "just below threshold is binary",
			chunk: append(
				bytes.Repeat([]byte("a"), 69),
				bytes.Repeat([]byte{0x01}, 31)...,
			),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, looksBinary(tt.chunk))
		})
	}
}

func TestIsBinaryFile(t *testing.T) {
	dir := t.TempDir()

	write := func(name string, content []byte) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, content, 0o644))
		return path
	}

	t.Run("empty file is text", func(t *testing.T) {
		assert.False(t, isBinaryFile(write("empty.txt", nil)))
	})

	t.Run("text file is text", func(t *testing.T) {
		assert.False(t, isBinaryFile(write("notes.txt", []byte("hello world\n"))))
	})

	t.Run("null byte file is binary", func(t *testing.T) {
		assert.True(t, isBinaryFile(write("blob.bin", []byte{0x7f, 'E', 'L', 'F', 0x00, 0x01})))
	})

	t.Run("null byte beyond the sample is not seen", func(t *testing.T) {
		content := append(bytes.Repeat([]byte("a"), binarySampleSize), 0x00)
		assert.False(t, isBinaryFile(write("late-null.dat", content)))
	})

	t.Run("unreadable file is binary", func(t *testing.T) {
		assert.True(t, isBinaryFile(filepath.Join(dir, "does-not-exist")))
	})
}

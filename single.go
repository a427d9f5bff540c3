package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
	"unicode/utf8"
)

var (
	errBinaryFile  = errors.New("appears to be a binary file")
	errInvalidUTF8 = errors.New("file is not valid UTF-8")
)

// countSingleFile tokenizes one explicitly named file. Unlike the folder
// pipeline this mode is strict: binary files are rejected and invalid
// UTF-8 is an error instead of being dropped, so a bad file is surfaced to
// the user rather than silently under-counted.
func countSingleFile(tk Tokenizer, path string) (FileStats, error) {
	info, err := os.Stat(path)
	if err != nil {
		return FileStats{}, fmt.Errorf("accessing %s: %w", path, err)
	}
	if info.IsDir() {
		return FileStats{}, fmt.Errorf("%s is a directory, not a file", path)
	}
	if !info.Mode().IsRegular() {
		return FileStats{}, fmt.Errorf("%s is not a regular file", path)
	}
	if isBinaryFile(path) {
		return FileStats{}, fmt.Errorf("%s: %w", path, errBinaryFile)
	}

	start := time.Now()
	content, err := os.ReadFile(path)
	if err != nil {
		return FileStats{}, fmt.Errorf("reading %s: %w", path, err)
	}
	if !utf8.Valid(content) {
		return FileStats{}, fmt.Errorf("%s: %w", path, errInvalidUTF8)
	}

	text := string(content)
	count := tk.CountTokens(text)

	lines := 0
	if len(text) > 0 {
		lines = strings.Count(text, "\n") + 1
	}

	return FileStats{
		TokenCount: count,
		ByteSize:   info.Size(),
		Characters: utf8.RuneCountInString(text),
		Lines:      lines,
		Duration:   time.Since(start),
	}, nil
}

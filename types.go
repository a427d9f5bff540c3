package main

import "time"

// FileTask identifies one candidate file queued for token counting.
// Tasks are created by discovery and consumed exactly once by a worker.
type FileTask struct {
	Path string
}

// FileResult holds the outcome of processing a single file.
// Exactly one of two shapes holds: a successful result has Err == nil and a
// populated TokenCount/ByteSize; a failed result has Err != nil with
// TokenCount == 0 and ByteSize == 0. Results are never mutated after the
// worker that produced them sends them on.
type FileResult struct {
	Path       string
	TokenCount int
	ByteSize   int64
	Duration   time.Duration
	Err        error
}

// ProcessingStats aggregates a whole folder run.
// Invariant at completion: TotalFiles == Processed + Failed + Skipped.
type ProcessingStats struct {
	TotalFiles  int
	Processed   int
	Failed      int
	Skipped     int
	TotalTokens int64
	TotalBytes  int64
	Elapsed     time.Duration
	Errors      []string
}

// FilterOptions control which files discovery keeps.
type FilterOptions struct {
	Include    []string
	Exclude    []string
	ShowHidden bool
	NoIgnore   bool
	MaxSize    int64 // bytes, 0 for no limit
	MaxDepth   int   // 0 for no limit
	LangOnly   bool  // keep only files with a known text file type
}

// FileStats holds the detailed figures for a single-file run.
type FileStats struct {
	TokenCount int
	ByteSize   int64
	Characters int
	Lines      int
	Duration   time.Duration
}

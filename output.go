package main

import (
	"fmt"
	"strings"
	"time"
)

// maxErrorsShown caps the error listing in the summary; the remainder is
// reported as a count.
const maxErrorsShown = 10

// formatSize renders a byte count in human-readable units.
func formatSize(sizeBytes int64) string {
	size := float64(sizeBytes)
	for _, unit := range []string{"B", "KB", "MB", "GB"} {
		if size < 1024.0 {
			return fmt.Sprintf("%.1f %s", size, unit)
		}
		size /= 1024.0
	}
	return fmt.Sprintf("%.1f TB", size)
}

// renderSummary builds the human-readable end-of-run report for a folder
// scan.
func renderSummary(root string, stats ProcessingStats) string {
	var b strings.Builder

	b.WriteString(strings.Repeat("=", 60))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Summary - %s\n", root))
	b.WriteString(strings.Repeat("=", 60))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Files found:      %d\n", stats.TotalFiles))
	b.WriteString(fmt.Sprintf("Files processed:  %d\n", stats.Processed))
	b.WriteString(fmt.Sprintf("Files failed:     %d\n", stats.Failed))
	b.WriteString(fmt.Sprintf("Files skipped:    %d\n", stats.Skipped))
	b.WriteString(fmt.Sprintf("Total tokens:     %d\n", stats.TotalTokens))
	b.WriteString(fmt.Sprintf("Total size:       %s\n", formatSize(stats.TotalBytes)))
	b.WriteString(fmt.Sprintf("Processing time:  %.2fs\n", stats.Elapsed.Seconds()))

	if stats.Processed > 0 {
		avg := float64(stats.TotalTokens) / float64(stats.Processed)
		b.WriteString(fmt.Sprintf("Avg tokens/file:  %.0f\n", avg))
	}

	if len(stats.Errors) > 0 {
		if len(stats.Errors) <= maxErrorsShown {
			b.WriteString("\nErrors encountered:\n")
			for _, e := range stats.Errors {
				b.WriteString(fmt.Sprintf("  - %s\n", e))
			}
		} else {
			b.WriteString(fmt.Sprintf("\n%d errors encountered (showing first %d):\n", len(stats.Errors), maxErrorsShown))
			for _, e := range stats.Errors[:maxErrorsShown] {
				b.WriteString(fmt.Sprintf("  - %s\n", e))
			}
			b.WriteString(fmt.Sprintf("  ... and %d more errors\n", len(stats.Errors)-maxErrorsShown))
		}
	}

	return b.String()
}

// renderFileResults builds the verbose per-file listing, one line per
// result in the order results were received.
func renderFileResults(results []FileResult) string {
	var b strings.Builder
	for _, res := range results {
		if res.Err != nil {
			b.WriteString(fmt.Sprintf("Failed: %s - %v\n", res.Path, res.Err))
			continue
		}
		b.WriteString(fmt.Sprintf("%s: %d tokens (%s)\n", res.Path, res.TokenCount, formatSize(res.ByteSize)))
	}
	return b.String()
}

// renderFileStats builds the output for a single-file run. With detailed
// off only the file name and token count are shown.
func renderFileStats(path, encodingName string, stats FileStats, detailed bool) string {
	var b strings.Builder

	b.WriteString("File Analysis Results\n")
	b.WriteString(strings.Repeat("=", 50))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("File:        %s\n", path))
	b.WriteString(fmt.Sprintf("Token count: %d\n", stats.TokenCount))

	if detailed {
		b.WriteString(fmt.Sprintf("File size:   %s\n", formatSize(stats.ByteSize)))
		b.WriteString(fmt.Sprintf("Characters:  %d\n", stats.Characters))
		b.WriteString(fmt.Sprintf("Lines:       %d\n", stats.Lines))
		if stats.Characters > 0 {
			ratio := float64(stats.TokenCount) / float64(stats.Characters)
			b.WriteString(fmt.Sprintf("Tokens/char: %.3f\n", ratio))
		}
		b.WriteString(fmt.Sprintf("Encoding:    %s\n", encodingName))
		b.WriteString(fmt.Sprintf("Time:        %s\n", stats.Duration.Round(time.Microsecond)))
	}

	return b.String()
}

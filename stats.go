package main

import (
	"fmt"
	"time"
)

// aggregateResults folds per-file results into run totals. The fold is
// commutative, so totals do not depend on completion order; the error list
// keeps the order results were received for reproducible output.
func aggregateResults(discovered int, results []FileResult, elapsed time.Duration) ProcessingStats {
	stats := ProcessingStats{
		TotalFiles: discovered,
		Elapsed:    elapsed,
	}

	for _, res := range results {
		if res.Err != nil {
			stats.Failed++
			stats.Errors = append(stats.Errors, fmt.Sprintf("%s: %v", res.Path, res.Err))
			continue
		}
		stats.Processed++
		stats.TotalTokens += int64(res.TokenCount)
		stats.TotalBytes += res.ByteSize
	}

	// Files discovered but never enqueued (binary-classified) show up as
	// skipped rather than vanishing from the accounting.
	stats.Skipped = stats.TotalFiles - stats.Processed - stats.Failed
	return stats
}

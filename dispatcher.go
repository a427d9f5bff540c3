package main

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
)

const defaultWorkers = 4

// runPool fans the task list out over a bounded pool of workers and blocks
// until every task has produced a result. Results arrive in completion
// order, one per task, failures included. An invalid worker count is a
// configuration error reported before any work starts.
func runPool(tk Tokenizer, tasks []FileTask, workers int) ([]FileResult, error) {
	if workers < 1 {
		return nil, fmt.Errorf("worker count must be at least 1, got %d", workers)
	}

	jobs := make(chan FileTask, len(tasks))
	results := make(chan FileResult, len(tasks))

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for task := range jobs {
				results <- processFile(tk, task.Path)
			}
		}()
	}

	for _, task := range tasks {
		jobs <- task
	}
	close(jobs)

	wg.Wait()
	close(results)

	out := make([]FileResult, 0, len(tasks))
	for res := range results {
		out = append(out, res)
	}
	return out, nil
}

// processFile reads, decodes and tokenizes one file. It never lets a
// failure escape: anything that goes wrong (file vanished, permission
// denied, read error) lands in the result's Err field and the run carries
// on. Decoding is lenient here, invalid UTF-8 sequences are dropped rather
// than failing the file, so one odd file cannot abort a bulk scan.
func processFile(tk Tokenizer, path string) FileResult {
	start := time.Now()

	content, err := os.ReadFile(path)
	if err != nil {
		return FileResult{Path: path, Err: err, Duration: time.Since(start)}
	}

	text := strings.ToValidUTF8(string(content), "")
	count := tk.CountTokens(text)

	return FileResult{
		Path:       path,
		TokenCount: count,
		ByteSize:   int64(len(content)),
		Duration:   time.Since(start),
	}
}

// countFolder runs the whole folder pipeline: discovery, the worker pool,
// and the stats fold. It returns the aggregate stats together with the raw
// per-file results so report writers can consume them.
func countFolder(tk Tokenizer, root string, opts FilterOptions, langData *LanguageData, workers int) (ProcessingStats, []FileResult, error) {
	start := time.Now()

	tasks, discovered, err := discoverFiles(root, opts, langData)
	if err != nil {
		return ProcessingStats{}, nil, err
	}

	results, err := runPool(tk, tasks, workers)
	if err != nil {
		return ProcessingStats{}, nil, err
	}

	stats := aggregateResults(discovered, results, time.Since(start))
	return stats, results, nil
}

package main

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAggregateResults(t *testing.T) {
	results := []FileResult{
		{Path: "a.txt", TokenCount: 10, ByteSize: 100},
		{Path: "b.txt", TokenCount: 5, ByteSize: 50},
		{Path: "c.txt", Err: errors.New("permission denied")},
		{Path: "d.txt", TokenCount: 0, ByteSize: 0}, // empty file, still a success
	}

	stats := aggregateResults(6, results, 2*time.Second)

	assert.Equal(t, 6, stats.TotalFiles)
	assert.Equal(t, 3, stats.Processed)
	assert.Equal(t, 1, stats.Failed)
	assert.Equal(t, 2, stats.Skipped)
	assert.Equal(t, int64(15), stats.TotalTokens)
	assert.Equal(t, int64(150), stats.TotalBytes)
	assert.Equal(t, 2*time.Second, stats.Elapsed)
	assert.Equal(t, []string{"c.txt: permission denied"}, stats.Errors)
	assert.Equal(t, stats.TotalFiles, stats.Processed+stats.Failed+stats.Skipped)
}

func TestAggregateResultsEmpty(t *testing.T) {
	stats := aggregateResults(0, nil, 0)

	assert.Zero(t, stats.TotalFiles)
	assert.Zero(t, stats.Processed)
	assert.Zero(t, stats.Failed)
	assert.Zero(t, stats.Skipped)
	assert.Zero(t, stats.TotalTokens)
	assert.Empty(t, stats.Errors)
}

func TestAggregateResultsErrorOrder(t *testing.T) {
	// The error list keeps the order results were received.
	results := []FileResult{
		{Path: "third.txt", Err: errors.New("e3")},
		{Path: "first.txt", Err: errors.New("e1")},
		{Path: "second.txt", Err: errors.New("e2")},
	}

	stats := aggregateResults(3, results, 0)
	assert.Equal(t, []string{
		"third.txt: e3",
		"first.txt: e1",
		"second.txt: e2",
	}, stats.Errors)
}

func TestAggregateResultsOrderIndependentTotals(t *testing.T) {
	results := []FileResult{
		{Path: "a", TokenCount: 1, ByteSize: 10},
		{Path: "b", TokenCount: 2, ByteSize: 20},
		{Path: "c", TokenCount: 3, ByteSize: 30},
		{Path: "d", Err: errors.New("boom")},
		{Path: "e", TokenCount: 4, ByteSize: 40},
	}

	baseline := aggregateResults(len(results), results, 0)

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 10; i++ {
		shuffled := make([]FileResult, len(results))
		copy(shuffled, results)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})

		stats := aggregateResults(len(shuffled), shuffled, 0)
		assert.Equal(t, baseline.TotalTokens, stats.TotalTokens)
		assert.Equal(t, baseline.TotalBytes, stats.TotalBytes)
		assert.Equal(t, baseline.Processed, stats.Processed)
		assert.Equal(t, baseline.Failed, stats.Failed)
		assert.Equal(t, baseline.Skipped, stats.Skipped)
	}
}

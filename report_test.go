package main

import (
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCSVReport(t *testing.T) {
	results := []FileResult{
		{Path: "b.txt", TokenCount: 20, ByteSize: 2048, Duration: 5 * time.Millisecond},
		{Path: "a.txt", TokenCount: 10, ByteSize: 1024, Duration: 2 * time.Millisecond},
		{Path: "broken.txt", Err: errors.New("permission denied")},
	}

	path := filepath.Join(t.TempDir(), "report.csv")
	require.NoError(t, writeCSVReport(results, path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3, "header plus one row per successful file")

	assert.Equal(t, []string{"file_path", "token_count", "file_size_bytes", "file_size_formatted", "processing_time"}, rows[0])
	assert.Equal(t, []string{"a.txt", "10", "1024", "1.0 KB", "0.002"}, rows[1])
	assert.Equal(t, []string{"b.txt", "20", "2048", "2.0 KB", "0.005"}, rows[2])
}

func TestWriteCSVReportEmptyResults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, writeCSVReport(nil, path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1, "header only")
}

func TestWriteCSVReportBadPath(t *testing.T) {
	err := writeCSVReport(nil, filepath.Join(t.TempDir(), "missing-dir", "report.csv"))
	require.Error(t, err)
}

func TestWritePDFReport(t *testing.T) {
	results := []FileResult{
		{Path: "a.txt", TokenCount: 10, ByteSize: 1024, Duration: time.Millisecond},
		{Path: "broken.txt", Err: errors.New("boom")},
	}
	stats := aggregateResults(3, results, time.Second)

	path := filepath.Join(t.TempDir(), "report.pdf")
	require.NoError(t, writePDFReport(".", stats, results, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	header := make([]byte, 5)
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	_, err = f.Read(header)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-", string(header))
}

func TestTruncatePath(t *testing.T) {
	assert.Equal(t, "short.txt", truncatePath("short.txt", 20))
	long := "/very/long/path/to/some/deeply/nested/file.txt"
	got := truncatePath(long, 20)
	assert.Len(t, got, 20)
	assert.True(t, len(got) <= 20)
	assert.Contains(t, got, "file.txt")
}

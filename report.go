package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"

	"github.com/jung-kurt/gofpdf"
)

// writeCSVReport writes one row per successfully processed file, sorted by
// path so identical runs produce identical reports.
func writeCSVReport(results []FileResult, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report %s: %w", path, err)
	}
	defer f.Close()

	sorted := make([]FileResult, len(results))
	copy(sorted, results)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Path < sorted[j].Path })

	w := csv.NewWriter(f)
	if err := w.Write([]string{"file_path", "token_count", "file_size_bytes", "file_size_formatted", "processing_time"}); err != nil {
		return fmt.Errorf("writing report header: %w", err)
	}
	for _, res := range sorted {
		if res.Err != nil {
			continue
		}
		row := []string{
			res.Path,
			fmt.Sprintf("%d", res.TokenCount),
			fmt.Sprintf("%d", res.ByteSize),
			formatSize(res.ByteSize),
			fmt.Sprintf("%.3f", res.Duration.Seconds()),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing report row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

const (
	pdfMargin     = 10 // mm
	pdfLineHeight = 6  // mm
	pdfFontSize   = 9
)

// writePDFReport renders the summary block followed by the per-file table
// into an A4 PDF.
func writePDFReport(root string, stats ProcessingStats, results []FileResult, path string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, pdfLineHeight+2, fmt.Sprintf("Token Report - %s", root), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", pdfFontSize)
	summaryLines := []string{
		fmt.Sprintf("Files found: %d   Processed: %d   Failed: %d   Skipped: %d", stats.TotalFiles, stats.Processed, stats.Failed, stats.Skipped),
		fmt.Sprintf("Total tokens: %d   Total size: %s   Time: %.2fs", stats.TotalTokens, formatSize(stats.TotalBytes), stats.Elapsed.Seconds()),
	}
	for _, line := range summaryLines {
		pdf.CellFormat(0, pdfLineHeight, line, "", 1, "L", false, 0, "")
	}
	pdf.Ln(3)

	// Table header
	colWidths := []float64{100, 25, 30, 25}
	headers := []string{"File", "Tokens", "Size", "Time (s)"}
	pdf.SetFont("Helvetica", "B", pdfFontSize)
	for i, h := range headers {
		pdf.CellFormat(colWidths[i], pdfLineHeight, h, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	sorted := make([]FileResult, len(results))
	copy(sorted, results)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Path < sorted[j].Path })

	pdf.SetFont("Courier", "", pdfFontSize-1)
	for _, res := range sorted {
		if res.Err != nil {
			continue
		}
		pdf.CellFormat(colWidths[0], pdfLineHeight, truncatePath(res.Path, 58), "1", 0, "L", false, 0, "")
		pdf.CellFormat(colWidths[1], pdfLineHeight, fmt.Sprintf("%d", res.TokenCount), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colWidths[2], pdfLineHeight, formatSize(res.ByteSize), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colWidths[3], pdfLineHeight, fmt.Sprintf("%.3f", res.Duration.Seconds()), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("writing PDF report %s: %w", path, err)
	}
	return nil
}

// truncatePath shortens long paths from the left so the file name stays
// visible in fixed-width table cells.
func truncatePath(path string, max int) string {
	if len(path) <= max {
		return path
	}
	return "..." + path[len(path)-(max-3):]
}

package main

import (
	"io"
	"os"
)

const binarySampleSize = 1024

// printableThreshold is the minimum fraction of printable bytes a sample
// must contain to be treated as text.
const printableThreshold = 0.7

// looksBinary applies the classification heuristic to a leading chunk of a
// file. A chunk is binary if it contains a null byte or if fewer than 70%
// of its bytes are printable ASCII / tab / newline / carriage return. An
// empty chunk is text.
func looksBinary(chunk []byte) bool {
	if len(chunk) == 0 {
		return false
	}

	printable := 0
	for _, b := range chunk {
		if b == 0x00 {
			return true
		}
		if (b >= 0x20 && b <= 0x7e) || b == '\t' || b == '\n' || b == '\r' {
			printable++
		}
	}
	return float64(printable)/float64(len(chunk)) < printableThreshold
}

// isBinaryFile samples the first 1024 bytes of the file at path and reports
// whether it looks binary. Files that cannot be sampled are treated as
// binary so they are excluded rather than failed.
func isBinaryFile(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return true
	}
	defer f.Close()

	buf := make([]byte, binarySampleSize)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return true
	}
	return looksBinary(buf[:n])
}

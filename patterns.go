package main

import (
	"fmt"
	"path/filepath"
	"strings"
)

// parsePatterns splits a comma-separated string of glob patterns into a
// slice, trimming whitespace and dropping empty entries.
func parsePatterns(patterns string) []string {
	if patterns == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(patterns, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// validatePatterns rejects malformed glob patterns up front so a bad
// pattern is a configuration error rather than a mid-walk surprise.
func validatePatterns(patterns []string) error {
	for _, p := range patterns {
		if _, err := filepath.Match(p, "probe"); err != nil {
			return fmt.Errorf("invalid glob pattern %q: %w", p, err)
		}
	}
	return nil
}

// matchesAnyPattern checks if name matches any of the glob patterns.
// Patterns are matched against the base filename only.
func matchesAnyPattern(name string, patterns []string) bool {
	for _, pattern := range patterns {
		// Patterns are validated before the walk starts.
		if matched, _ := filepath.Match(pattern, name); matched {
			return true
		}
	}
	return false
}

// keepName decides whether a base filename passes the include/exclude
// filters: kept iff it matches no exclude pattern and, when include
// patterns exist, matches at least one of them. Excludes win over includes.
func keepName(name string, include, exclude []string) bool {
	if matchesAnyPattern(name, exclude) {
		return false
	}
	if len(include) == 0 {
		return true
	}
	return matchesAnyPattern(name, include)
}

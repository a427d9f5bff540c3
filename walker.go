package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	gitignore "github.com/monochromegane/go-gitignore"
)

var errNotDirectory = errors.New("path is not a directory")

// discoverFiles walks root recursively and returns the tasks to tokenize
// plus the number of candidate files discovered. A candidate is a regular
// file that survives the name filters; binary-classified candidates count
// as discovered but are not enqueued, which is how they end up reported as
// skipped. Root must be an existing directory.
func discoverFiles(root string, opts FilterOptions, langData *LanguageData) ([]FileTask, int, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, 0, fmt.Errorf("accessing %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, 0, fmt.Errorf("%s: %w", root, errNotDirectory)
	}

	var ignoreMatcher gitignore.IgnoreMatcher
	if !opts.NoIgnore {
		gitIgnorePath := filepath.Join(root, ".gitignore")
		if _, err := os.Stat(gitIgnorePath); err == nil {
			matcher, err := gitignore.NewGitIgnore(gitIgnorePath)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: could not parse %s: %v\n", gitIgnorePath, err)
			} else {
				ignoreMatcher = matcher
			}
		}
	}

	var tasks []FileTask
	discovered := 0

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Discovery errors abort the run; per-file trouble is handled
			// later by the workers.
			return fmt.Errorf("walking %s: %w", path, err)
		}
		if path == root {
			return nil
		}

		baseName := d.Name()
		isDir := d.IsDir()

		if !opts.ShowHidden && isHidden(baseName) {
			if isDir {
				return fs.SkipDir
			}
			return nil
		}

		relPath, _ := filepath.Rel(root, path)
		if ignoreMatcher != nil && ignoreMatcher.Match(path, isDir) {
			if isDir {
				return fs.SkipDir
			}
			return nil
		}

		// Files and directories share the same depth boundary.
		if opts.MaxDepth > 0 && countPathSeparators(relPath) >= opts.MaxDepth {
			if isDir {
				return fs.SkipDir
			}
			return nil
		}

		if isDir {
			if matchesAnyPattern(baseName, opts.Exclude) {
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		if !keepName(baseName, opts.Include, opts.Exclude) {
			return nil
		}
		if opts.LangOnly && langData != nil {
			if _, known := langData.LanguageForFile(path); !known {
				return nil
			}
		}
		if opts.MaxSize > 0 {
			fi, err := d.Info()
			if err != nil {
				return fmt.Errorf("stat %s: %w", path, err)
			}
			if fi.Size() > opts.MaxSize {
				return nil
			}
		}

		discovered++
		if isBinaryFile(path) {
			return nil
		}
		tasks = append(tasks, FileTask{Path: path})
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	return tasks, discovered, nil
}

// isHidden reports whether a base name is a dotfile. "." and ".." are not
// considered hidden.
func isHidden(name string) bool {
	if name == "." || name == ".." {
		return false
	}
	return len(name) > 0 && name[0] == '.'
}

// countPathSeparators counts separators in a root-relative path, which is
// the entry's depth below the root.
func countPathSeparators(path string) int {
	path = filepath.ToSlash(path)
	if path == "." || path == "" {
		return 0
	}
	return strings.Count(strings.Trim(path, "/"), "/")
}

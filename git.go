package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// isGitURL reports whether the input looks like a git repository URL.
func isGitURL(input string) bool {
	return strings.HasSuffix(input, ".git") ||
		strings.HasPrefix(input, "git@")
}

// cloneGitRepo clones a repository into a temporary directory so the
// folder pipeline can run over it. Only the default branch is fetched,
// with no history, since only the checked-out tree gets tokenized. The
// caller is responsible for removing the returned directory.
func cloneGitRepo(url string, quiet bool) (string, error) {
	tempDir, err := os.MkdirTemp("", "tokenscope-git-")
	if err != nil {
		return "", fmt.Errorf("creating temporary directory: %w", err)
	}

	var progress io.Writer
	if !quiet {
		progress = os.Stderr
	}

	_, err = git.PlainClone(tempDir, false, &git.CloneOptions{
		URL:           url,
		Progress:      progress,
		ReferenceName: plumbing.HEAD,
		SingleBranch:  true,
		Depth:         1,
	})
	if err != nil {
		_ = os.RemoveAll(tempDir)
		return "", fmt.Errorf("cloning %s: %w", url, err)
	}

	return tempDir, nil
}

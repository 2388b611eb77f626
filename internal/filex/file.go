// Package filex contains filesystem helpers for locating the client's data files.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ExpandHome replaces a leading "~" with the current user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home dir: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// EnsureParentDir creates the directory that will hold path (mode 0700) and
// returns the cleaned, home-expanded path. The in-memory SQLite DSN and bare
// file names are returned unchanged.
func EnsureParentDir(path string) (string, error) {
	if path == "" || path == ":memory:" || strings.HasPrefix(path, "file:") {
		return path, nil
	}

	expanded, err := ExpandHome(path)
	if err != nil {
		return "", err
	}
	expanded = filepath.Clean(expanded)

	dir := filepath.Dir(expanded)
	if dir == "." {
		return expanded, nil
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return expanded, nil
}

package util

import (
	"os"
	"path/filepath"
)

// FindRepoRoot finds the root of the git repository enclosing start.
// Returns start unchanged if no .git directory is found on the way up.
func FindRepoRoot(start string) string {
	dir := start
	for {
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			return start
		}
		dir = parent
	}
}
